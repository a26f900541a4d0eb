package orders

import (
	"dewode_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type OrderRoutesManager struct {
	logger              *gecho.Logger
	orderService        *services.OrderService
	cartSessionService  *services.CartSessionService
	verificationService *services.VerificationService
	settingsService     *services.SettingsService
}

func NewOrderRoutesManager(
	logger *gecho.Logger,
	orderService *services.OrderService,
	cartSessionService *services.CartSessionService,
	verificationService *services.VerificationService,
	settingsService *services.SettingsService,
) *OrderRoutesManager {
	return &OrderRoutesManager{
		logger:              logger,
		orderService:        orderService,
		cartSessionService:  cartSessionService,
		verificationService: verificationService,
		settingsService:     settingsService,
	}
}

func (orm *OrderRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/checkout", orm.Checkout)
		r.Post("/lookup", orm.Lookup)
		r.Post("/{id}/cancel", orm.Cancel)
	})
}
