package services

import (
	"context"
	"crypto/subtle"
	"time"

	"dewode_server/lib"
	"dewode_server/store"
	"dewode_server/structs"

	"github.com/MonkyMars/gecho"
)

// AuthService authenticates the single admin account. Credentials live in
// the settings row; when no row exists yet the configured bootstrap
// credentials apply so a fresh install can log in.
type AuthService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	store  store.Store
}

func NewAuthService(cfg *structs.Config, logger *gecho.Logger, st store.Store) *AuthService {
	return &AuthService{
		logger: logger,
		cfg:    cfg,
		store:  st,
	}
}

// Login checks the admin id and password and, on success, returns a signed
// access token plus its expiry. All failure modes collapse to
// lib.ErrInvalidCredentials so callers cannot probe which part was wrong.
func (as *AuthService) Login(ctx context.Context, req *structs.AdminLoginRequest) (string, time.Time, error) {
	startTime := time.Now()

	settings, err := as.store.GetSettings(ctx)
	if err != nil {
		as.logger.Error("Failed to load settings during login", gecho.Field("error", err))
		return "", time.Time{}, lib.ErrInvalidCredentials
	}

	var valid bool
	adminID := as.cfg.Auth.DefaultAdminID

	if settings != nil && settings.AdminPasswordHash != "" {
		adminID = settings.AdminID
		valid, err = lib.VerifyPassword(req.Password, settings.AdminPasswordHash)
		if err != nil {
			as.logger.Error("Failed to verify admin password hash", gecho.Field("error", err))
			return "", time.Time{}, lib.ErrInvalidCredentials
		}
	} else {
		// Bootstrap credentials from configuration, first run only.
		valid = subtle.ConstantTimeCompare([]byte(req.Password), []byte(as.cfg.Auth.DefaultAdminPassword)) == 1
	}

	if req.AdminID != adminID || !valid {
		as.logger.Debug("Invalid admin login attempt", gecho.Field("admin_id", req.AdminID))
		return "", time.Time{}, lib.ErrInvalidCredentials
	}

	token, expiresAt, err := lib.SignToken(adminID, "admin", as.cfg.Auth.AccessTokenExpiry, as.cfg.Auth.AccessTokenSecret)
	if err != nil {
		as.logger.Error("Failed to sign admin access token", gecho.Field("error", err))
		return "", time.Time{}, err
	}

	as.logger.Info("Admin logged in",
		gecho.Field("admin_id", adminID),
		gecho.Field("elapsed_time_ms", time.Since(startTime).Milliseconds()),
	)
	return token, expiresAt, nil
}

func (as *AuthService) GetAccessTokenSecret() string {
	return as.cfg.Auth.AccessTokenSecret
}
