package orders

import (
	"errors"
	"net/http"

	"dewode_server/lib"
	"dewode_server/structs"

	"github.com/MonkyMars/gecho"
)

// Checkout handles POST /orders/checkout. The email must have passed
// verification; pricing is snapshotted server-side.
func (orm *OrderRoutesManager) Checkout(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CheckoutRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidRequestBody"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	order, err := orm.orderService.CreateOrder(r.Context(), body)
	if err != nil {
		switch {
		case errors.Is(err, lib.ErrNotVerified):
			gecho.Forbidden(w,
				gecho.WithMessage("error.order.emailNotVerified"),
				gecho.Send(),
			)
		case errors.Is(err, lib.ErrNotFound):
			gecho.BadRequest(w,
				gecho.WithMessage("error.order.productUnavailable"),
				gecho.Send(),
			)
		case errors.Is(err, lib.ErrValidation):
			gecho.BadRequest(w,
				gecho.WithMessage("error.order.invalidItems"),
				gecho.Send(),
			)
		default:
			orm.logger.Error("Failed to create order", gecho.Field("error", err))
			gecho.InternalServerError(w,
				gecho.WithMessage("error.order.creationFailed"),
				gecho.WithData(map[string]string{"error": err.Error()}),
				gecho.Send(),
			)
		}
		return
	}

	// Drop the session cart after a successful checkout, best effort.
	if sessionID, cookieErr := lib.GetCookieValue(lib.CartCookieName, r); cookieErr == nil && sessionID != "" {
		if clearErr := orm.cartSessionService.ClearCart(r.Context(), sessionID); clearErr != nil {
			orm.logger.Warn("Failed to clear cart after checkout",
				gecho.Field("error", clearErr),
				gecho.Field("session_id", sessionID),
			)
		}
	}

	// The bank account for the transfer is shown on the confirmation screen
	settings, err := orm.settingsService.GetSettings(r.Context())
	if err != nil {
		orm.logger.Warn("Failed to load settings for checkout response", gecho.Field("error", err))
	}

	data := map[string]any{
		"orderNumber": order.OrderNumber,
		"orderId":     order.Id,
		"status":      order.Status,
		"totalAmount": order.TotalAmount,
	}
	if settings != nil {
		data["bank"] = map[string]string{
			"bankName":    settings.BankName,
			"bankAccount": settings.BankAccount,
			"bankHolder":  settings.BankHolder,
		}
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.created"),
		gecho.WithData(data),
		gecho.Send(),
	)
}
