package services

import (
	"dewode_server/store"
	"dewode_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService         *AuthService
	EmailService        *EmailService
	CacheService        *CacheService
	HealthService       *HealthService
	ProductService      *ProductService
	OrderService        *OrderService
	VerificationService *VerificationService
	CartSessionService  *CartSessionService
	ContentService      *ContentService
	SettingsService     *SettingsService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, st store.Store) *ServiceManager {
	cacheService := NewCacheService(logger)
	emailService := NewEmailService(logger, cfg)
	authService := NewAuthService(cfg, logger, st)
	healthService := NewHealthService(logger, st, cacheService)
	productService := NewProductService(logger, st, cacheService)
	verificationService := NewVerificationService(logger, st, emailService, cacheService)
	cartSessionService := NewCartSessionService(logger, st, cacheService)
	contentService := NewContentService(logger, st)
	settingsService := NewSettingsService(logger, cfg, st)
	orderService := NewOrderService(logger, cfg, st, emailService, verificationService)

	return &ServiceManager{
		AuthService:         authService,
		EmailService:        emailService,
		CacheService:        cacheService,
		HealthService:       healthService,
		ProductService:      productService,
		OrderService:        orderService,
		VerificationService: verificationService,
		CartSessionService:  cartSessionService,
		ContentService:      contentService,
		SettingsService:     settingsService,
	}
}
