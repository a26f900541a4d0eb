package debug

import (
	"dewode_server/config"
	"dewode_server/services"

	"github.com/go-chi/chi/v5"
)

type DebugRoutesManager struct {
	cacheService        *services.CacheService
	verificationService *services.VerificationService
}

func NewDebugRoutesManager(cacheService *services.CacheService, verificationService *services.VerificationService) *DebugRoutesManager {
	return &DebugRoutesManager{
		cacheService:        cacheService,
		verificationService: verificationService,
	}
}

func (drm *DebugRoutesManager) RegisterRoutes(r chi.Router) {
	// Debug routes - only in non-production environments
	if !config.IsProduction() {
		r.Route("/debug", func(r chi.Router) {
			r.Post("/cache/clear", drm.ClearCache)
			r.Post("/verify/clear", drm.ClearVerified)
		})
	}
}
