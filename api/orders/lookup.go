package orders

import (
	"net/http"

	"dewode_server/lib"
	"dewode_server/structs"

	"github.com/MonkyMars/gecho"
)

// Lookup handles POST /orders/lookup: order history for a verified email.
func (orm *OrderRoutesManager) Lookup(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.OrderLookupRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidRequestBody"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	verified, err := orm.verificationService.IsVerified(r.Context(), body.Email)
	if err != nil {
		orm.logger.Error("Failed to check verification for order lookup", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.order.lookupFailed"), gecho.Send())
		return
	}
	if !verified {
		gecho.Forbidden(w,
			gecho.WithMessage("error.order.emailNotVerified"),
			gecho.Send(),
		)
		return
	}

	orders, err := orm.orderService.GetOrdersByEmail(r.Context(), body.Email)
	if err != nil {
		orm.logger.Error("Failed to fetch orders by email", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.order.lookupFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"orders": orders,
			"meta": map[string]any{
				"count": len(orders),
			},
		}),
		gecho.Send(),
	)
}
