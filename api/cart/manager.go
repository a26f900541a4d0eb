package cart

import (
	"net/http"
	"time"

	"dewode_server/lib"
	"dewode_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CartRoutesManager struct {
	logger             *gecho.Logger
	cartSessionService *services.CartSessionService
}

func NewCartRoutesManager(
	logger *gecho.Logger,
	cartSessionService *services.CartSessionService,
) *CartRoutesManager {
	return &CartRoutesManager{
		logger:             logger,
		cartSessionService: cartSessionService,
	}
}

func (crm *CartRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", crm.GetCart)
		r.Post("/items", crm.AddItem)
		r.Put("/items/{productId}", crm.UpdateQuantity)
		r.Delete("/items/{productId}", crm.RemoveItem)
		r.Delete("/", crm.ClearCart)
	})
}

// ensureSession returns the cart session id from the cookie, minting a
// fresh one when absent or empty.
func (crm *CartRoutesManager) ensureSession(w http.ResponseWriter, r *http.Request) (string, error) {
	sessionID, err := lib.GetCookieValue(lib.CartCookieName, r)
	if err == nil && sessionID != "" {
		return sessionID, nil
	}

	sessionID, err = lib.GenerateCartSessionID()
	if err != nil {
		return "", err
	}

	lib.SetCookie(lib.CartCookieName, sessionID, time.Now().Add(14*24*time.Hour), w)
	return sessionID, nil
}
