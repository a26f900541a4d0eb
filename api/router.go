package api

import (
	"net/http"

	"dewode_server/api/admin"
	"dewode_server/api/auth"
	"dewode_server/api/cart"
	"dewode_server/api/content"
	"dewode_server/api/debug"
	"dewode_server/api/health"
	"dewode_server/api/middleware"
	"dewode_server/api/orders"
	"dewode_server/api/products"
	"dewode_server/api/verify"
	"dewode_server/config"
	"dewode_server/services"
	"dewode_server/store"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

func App(st store.Store) chi.Router {
	r := chi.NewRouter()

	// create loggers
	logLevel := gecho.ParseLogLevel(config.GetLogLevel())
	mwLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(false), gecho.WithLogLevel(logLevel)))
	standardLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(true), gecho.WithLogLevel(logLevel)))

	cfg := config.GetConfig()

	// Services
	sm := services.NewServiceManager(standardLogger, cfg, st)

	// Initialize middleware
	mw := middleware.NewMiddleware(cfg, mwLogger, sm.CacheService, sm.AuthService)

	// Core infra
	r.Use(chiware.RequestID)
	r.Use(chiware.RealIP)
	r.Use(chiware.Recoverer)

	// Limits & security
	r.Use(mw.BodyLimit(10 * 1024 * 1024))
	r.Use(mw.SecurityHeaders())

	// Observability
	r.Use(mw.SetupLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware)

	// CORS (must be before auth / csrf)
	r.Use(mw.SetupCORS().Handler)

	// Rate limiting
	r.Use(mw.RateLimitMiddleware())

	// Register all routes
	newRouterManager(
		products.NewProductRoutesManager(standardLogger, sm.ProductService),
		cart.NewCartRoutesManager(standardLogger, sm.CartSessionService),
		orders.NewOrderRoutesManager(standardLogger, sm.OrderService, sm.CartSessionService, sm.VerificationService, sm.SettingsService),
		verify.NewVerifyRoutesManager(standardLogger, sm.VerificationService),
		content.NewContentRoutesManager(standardLogger, sm.ContentService),
		auth.NewAuthRoutesManager(standardLogger, sm.AuthService, cfg, mw),
		admin.NewAdminRoutesManager(standardLogger, sm.ProductService, sm.OrderService, sm.ContentService, sm.SettingsService, mw),
		health.NewHealthRoutesManager(sm.HealthService),
		debug.NewDebugRoutesManager(sm.CacheService, sm.VerificationService),
	).RegisterRoutes(r)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		gecho.Success(w,
			gecho.WithMessage("Welcome to the DEW ODE API"),
			gecho.Send(),
		)
	})

	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		gecho.NotFound(w,
			gecho.Send(),
		)
	})

	return r
}
