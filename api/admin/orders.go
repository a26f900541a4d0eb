package admin

import (
	"errors"
	"net/http"
	"strings"

	"dewode_server/lib"
	"dewode_server/structs"
	"dewode_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListOrders handles GET /admin/orders
func (arm *AdminRoutesManager) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := arm.orderService.GetAllOrders(r.Context())
	if err != nil {
		arm.logger.Error("Failed to list orders", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.order.listFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"orders": orders,
			"meta":   map[string]any{"count": len(orders)},
		}),
		gecho.Send(),
	)
}

// GetOrderDetails handles GET /admin/orders/{id}
func (arm *AdminRoutesManager) GetOrderDetails(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.order.invalidOrderId"), gecho.Send())
		return
	}

	order, err := arm.orderService.GetOrderById(r.Context(), id)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.order.notFound"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to fetch order", gecho.Field("error", err), gecho.Field("order_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("error.order.fetchFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{"order": order}),
		gecho.Send(),
	)
}

// UpdateOrderStatus handles PUT /admin/orders/{id}/status. The admin can
// move an order to any valid status.
func (arm *AdminRoutesManager) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.order.invalidOrderId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.OrderStatusRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.order.invalidRequestBody"), gecho.WithData(err), gecho.Send())
		return
	}

	status := tables.OrderStatus(strings.ToUpper(strings.TrimSpace(body.Status)))

	order, err := arm.orderService.UpdateStatus(r.Context(), id, status)
	if err != nil {
		switch {
		case errors.Is(err, lib.ErrNotFound):
			gecho.NotFound(w, gecho.WithMessage("error.order.notFound"), gecho.Send())
		case errors.Is(err, lib.ErrValidation):
			gecho.BadRequest(w, gecho.WithMessage("error.order.invalidStatus"), gecho.Send())
		default:
			arm.logger.Error("Failed to update order status", gecho.Field("error", err), gecho.Field("order_id", id))
			gecho.InternalServerError(w, gecho.WithMessage("error.order.updateFailed"), gecho.Send())
		}
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.statusUpdated"),
		gecho.WithData(map[string]any{"order": order}),
		gecho.Send(),
	)
}

// UpdateOrderTracking handles PUT /admin/orders/{id}/tracking. Setting a
// tracking number triggers the shipping notification email.
func (arm *AdminRoutesManager) UpdateOrderTracking(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.order.invalidOrderId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.TrackingRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.order.invalidRequestBody"), gecho.WithData(err), gecho.Send())
		return
	}

	order, err := arm.orderService.UpdateTracking(r.Context(), id, body.TrackingNumber)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("error.order.notFound"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to update tracking number", gecho.Field("error", err), gecho.Field("order_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("error.order.updateFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.trackingUpdated"),
		gecho.WithData(map[string]any{"order": order}),
		gecho.Send(),
	)
}
