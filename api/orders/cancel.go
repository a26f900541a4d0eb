package orders

import (
	"errors"
	"net/http"

	"dewode_server/lib"
	"dewode_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Cancel handles POST /orders/{id}/cancel. Customers may cancel their own
// orders while they are still pending or paid.
func (orm *OrderRoutesManager) Cancel(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.order.invalidOrderId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.OrderLookupRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidRequestBody"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	order, err := orm.orderService.CancelByCustomer(r.Context(), orderID, body.Email)
	if err != nil {
		switch {
		case errors.Is(err, lib.ErrNotFound):
			gecho.NotFound(w, gecho.WithMessage("error.order.notFound"), gecho.Send())
		case errors.Is(err, lib.ErrForbiddenTransition):
			gecho.BadRequest(w, gecho.WithMessage("error.order.cannotCancel"), gecho.Send())
		default:
			orm.logger.Error("Failed to cancel order", gecho.Field("error", err), gecho.Field("order_id", orderID))
			gecho.InternalServerError(w, gecho.WithMessage("error.order.cancelFailed"), gecho.Send())
		}
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.cancelled"),
		gecho.WithData(map[string]any{
			"orderNumber": order.OrderNumber,
			"status":      order.Status,
		}),
		gecho.Send(),
	)
}
