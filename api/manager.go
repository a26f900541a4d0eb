package api

import (
	"dewode_server/api/admin"
	"dewode_server/api/auth"
	"dewode_server/api/cart"
	"dewode_server/api/content"
	"dewode_server/api/debug"
	"dewode_server/api/health"
	"dewode_server/api/orders"
	"dewode_server/api/products"
	"dewode_server/api/verify"

	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	productRoutes *products.ProductRoutesManager
	cartRoutes    *cart.CartRoutesManager
	orderRoutes   *orders.OrderRoutesManager
	verifyRoutes  *verify.VerifyRoutesManager
	contentRoutes *content.ContentRoutesManager
	authRoutes    *auth.AuthRoutesManager
	adminRoutes   *admin.AdminRoutesManager
	healthRoutes  *health.HealthRoutesManager
	debugRoutes   *debug.DebugRoutesManager
}

func newRouterManager(
	productRoutes *products.ProductRoutesManager,
	cartRoutes *cart.CartRoutesManager,
	orderRoutes *orders.OrderRoutesManager,
	verifyRoutes *verify.VerifyRoutesManager,
	contentRoutes *content.ContentRoutesManager,
	authRoutes *auth.AuthRoutesManager,
	adminRoutes *admin.AdminRoutesManager,
	healthRoutes *health.HealthRoutesManager,
	debugRoutes *debug.DebugRoutesManager,
) *routerManager {
	return &routerManager{
		productRoutes: productRoutes,
		cartRoutes:    cartRoutes,
		orderRoutes:   orderRoutes,
		verifyRoutes:  verifyRoutes,
		contentRoutes: contentRoutes,
		authRoutes:    authRoutes,
		adminRoutes:   adminRoutes,
		healthRoutes:  healthRoutes,
		debugRoutes:   debugRoutes,
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.productRoutes.RegisterRoutes(r)
	rm.cartRoutes.RegisterRoutes(r)
	rm.orderRoutes.RegisterRoutes(r)
	rm.verifyRoutes.RegisterRoutes(r)
	rm.contentRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.debugRoutes.RegisterRoutes(r)
}
