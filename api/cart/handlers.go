package cart

import (
	"errors"
	"net/http"

	"dewode_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type addItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
}

// Quantity below 1 removes the line, mirroring the cart semantics.
type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart handles GET /cart
func (crm *CartRoutesManager) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID, err := crm.ensureSession(w, r)
	if err != nil {
		crm.logger.Error("Failed to mint cart session", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.cart.sessionFailed"), gecho.Send())
		return
	}

	c, err := crm.cartSessionService.GetCart(r.Context(), sessionID)
	if err != nil {
		crm.logger.Error("Failed to load cart", gecho.Field("error", err), gecho.Field("session_id", sessionID))
		gecho.InternalServerError(w, gecho.WithMessage("error.cart.loadFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"items": c.Items(),
			"total": c.Total(),
			"count": c.Count(),
		}),
		gecho.Send(),
	)
}

// AddItem handles POST /cart/items
func (crm *CartRoutesManager) AddItem(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[addItemRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.cart.invalidRequestBody"), gecho.WithData(err), gecho.Send())
		return
	}

	sessionID, err := crm.ensureSession(w, r)
	if err != nil {
		crm.logger.Error("Failed to mint cart session", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.cart.sessionFailed"), gecho.Send())
		return
	}

	c, err := crm.cartSessionService.AddItem(r.Context(), sessionID, body.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, lib.ErrNotFound):
			gecho.NotFound(w, gecho.WithMessage("error.products.notFound"), gecho.Send())
		case errors.Is(err, lib.ErrConflict):
			gecho.BadRequest(w, gecho.WithMessage("error.cart.productSoldOut"), gecho.Send())
		default:
			crm.logger.Error("Failed to add cart item", gecho.Field("error", err), gecho.Field("session_id", sessionID))
			gecho.InternalServerError(w, gecho.WithMessage("error.cart.addFailed"), gecho.Send())
		}
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"items": c.Items(),
			"total": c.Total(),
			"count": c.Count(),
		}),
		gecho.Send(),
	)
}

// UpdateQuantity handles PUT /cart/items/{productId}
func (crm *CartRoutesManager) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[quantityRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.cart.invalidRequestBody"), gecho.WithData(err), gecho.Send())
		return
	}

	sessionID, err := crm.ensureSession(w, r)
	if err != nil {
		gecho.InternalServerError(w, gecho.WithMessage("error.cart.sessionFailed"), gecho.Send())
		return
	}

	c, err := crm.cartSessionService.UpdateQuantity(r.Context(), sessionID, productID, body.Quantity)
	if err != nil {
		crm.logger.Error("Failed to update cart quantity", gecho.Field("error", err), gecho.Field("session_id", sessionID))
		gecho.InternalServerError(w, gecho.WithMessage("error.cart.updateFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"items": c.Items(),
			"total": c.Total(),
			"count": c.Count(),
		}),
		gecho.Send(),
	)
}

// RemoveItem handles DELETE /cart/items/{productId}
func (crm *CartRoutesManager) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	sessionID, err := crm.ensureSession(w, r)
	if err != nil {
		gecho.InternalServerError(w, gecho.WithMessage("error.cart.sessionFailed"), gecho.Send())
		return
	}

	c, err := crm.cartSessionService.RemoveItem(r.Context(), sessionID, productID)
	if err != nil {
		crm.logger.Error("Failed to remove cart item", gecho.Field("error", err), gecho.Field("session_id", sessionID))
		gecho.InternalServerError(w, gecho.WithMessage("error.cart.removeFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"items": c.Items(),
			"total": c.Total(),
			"count": c.Count(),
		}),
		gecho.Send(),
	)
}

// ClearCart handles DELETE /cart
func (crm *CartRoutesManager) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID, err := lib.GetCookieValue(lib.CartCookieName, r)
	if err != nil || sessionID == "" {
		gecho.Success(w, gecho.WithMessage("success.cart.cleared"), gecho.Send())
		return
	}

	if err := crm.cartSessionService.ClearCart(r.Context(), sessionID); err != nil {
		crm.logger.Error("Failed to clear cart", gecho.Field("error", err), gecho.Field("session_id", sessionID))
		gecho.InternalServerError(w, gecho.WithMessage("error.cart.clearFailed"), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithMessage("success.cart.cleared"), gecho.Send())
}
