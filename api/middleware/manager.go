package middleware

import (
	"dewode_server/services"
	"dewode_server/structs"

	"github.com/MonkyMars/gecho"
)

type Middleware struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	cacheService *services.CacheService
	authService  *services.AuthService
}

func NewMiddleware(
	cfg *structs.Config,
	logger *gecho.Logger,
	cacheService *services.CacheService,
	authService *services.AuthService,
) *Middleware {
	return &Middleware{
		logger:       logger,
		cfg:          cfg,
		cacheService: cacheService,
		authService:  authService,
	}
}
