package admin

import (
	"dewode_server/api/middleware"
	"dewode_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger          *gecho.Logger
	productService  *services.ProductService
	orderService    *services.OrderService
	contentService  *services.ContentService
	settingsService *services.SettingsService
	mw              *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	productService *services.ProductService,
	orderService *services.OrderService,
	contentService *services.ContentService,
	settingsService *services.SettingsService,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:          logger,
		productService:  productService,
		orderService:    orderService,
		contentService:  contentService,
		settingsService: settingsService,
		mw:              mw,
	}
}

func (arm *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(arm.mw.AdminAuthMiddleware)

		r.Get("/products", arm.ListAllProducts)
		r.Get("/orders", arm.ListOrders)
		r.Get("/orders/{id}", arm.GetOrderDetails)
		r.Get("/sales-report", arm.GetSalesReport)
		r.Get("/settings", arm.GetSettings)
		r.Get("/hero", arm.ListHeroImages)
		r.Get("/collections", arm.ListCollections)

		// Mutations sit behind CSRF
		r.Group(func(r chi.Router) {
			r.Use(arm.mw.CSRFMiddleware())

			r.Post("/products", arm.CreateProduct)
			r.Put("/products/{id}", arm.UpdateProduct)
			r.Delete("/products/{id}", arm.DeleteProduct)

			r.Put("/orders/{id}/status", arm.UpdateOrderStatus)
			r.Put("/orders/{id}/tracking", arm.UpdateOrderTracking)

			r.Post("/hero", arm.CreateHeroImage)
			r.Put("/hero/{id}", arm.UpdateHeroImage)
			r.Delete("/hero/{id}", arm.DeleteHeroImage)

			r.Put("/collections", arm.PutCollection)
			r.Delete("/collections/{id}", arm.DeleteCollection)

			r.Put("/settings", arm.UpdateSettings)
		})
	})
}
