package verify

import (
	"dewode_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type VerifyRoutesManager struct {
	logger              *gecho.Logger
	verificationService *services.VerificationService
}

func NewVerifyRoutesManager(
	logger *gecho.Logger,
	verificationService *services.VerificationService,
) *VerifyRoutesManager {
	return &VerifyRoutesManager{
		logger:              logger,
		verificationService: verificationService,
	}
}

func (vrm *VerifyRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/verify", func(r chi.Router) {
		r.Post("/send", vrm.SendCode)
		r.Post("/confirm", vrm.ConfirmCode)
		r.Get("/status", vrm.GetStatus)
	})
}
