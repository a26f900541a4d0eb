package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"dewode_server/config"
	"dewode_server/lib"
	"dewode_server/structs"
	"dewode_server/store"
	"dewode_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

// codeMailer is the slice of EmailService the verification flow needs.
type codeMailer interface {
	SendVerificationCodeEmail(email, code string, expiry time.Duration) error
}

// verifiedMarker persists the "this address has been proven" flag.
type verifiedMarker interface {
	MarkEmailVerified(email string) error
	IsEmailVerified(email string) (bool, error)
	ClearEmailVerified(email string) error
}

// VerificationService implements the email verification gate that checkout
// sits behind. Codes are single use and expire after cfg.Email.CodeExpiry.
type VerificationService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	store  store.Store
	mailer codeMailer
	marker verifiedMarker
}

func NewVerificationService(logger *gecho.Logger, st store.Store, mailer codeMailer, marker verifiedMarker) *VerificationService {
	return &VerificationService{
		logger: logger,
		cfg:    config.GetConfig(),
		store:  st,
		mailer: mailer,
		marker: marker,
	}
}

// SendCode issues a fresh 6-digit code for email and mails it. A new code
// supersedes any previous unused one because VerifyCode only consults the
// latest.
func (vs *VerificationService) SendCode(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	value, err := lib.GenerateVerificationCode()
	if err != nil {
		vs.logger.Error("Failed to generate verification code", gecho.Field("error", err))
		return err
	}

	code := &tables.VerificationCode{
		Email:     email,
		Code:      value,
		ExpiresAt: time.Now().Add(vs.cfg.Email.CodeExpiry),
		CreatedAt: time.Now(),
	}

	if err := vs.store.CreateCode(ctx, code); err != nil {
		vs.logger.Error("Failed to store verification code", gecho.Field("error", err), gecho.Field("email", email))
		return err
	}

	if err := vs.mailer.SendVerificationCodeEmail(email, code.Code, vs.cfg.Email.CodeExpiry); err != nil {
		vs.logger.Error("Failed to send verification code email", gecho.Field("error", err), gecho.Field("email", email))
		return err
	}

	return nil
}

// VerifyCode checks the submitted code against the latest unused one for
// email. On success the code is consumed and the address is marked verified.
// Returns lib.ErrInvalidCode on mismatch or absence, lib.ErrExpiredCode when
// the latest code has aged out.
func (vs *VerificationService) VerifyCode(ctx context.Context, email, submitted string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	latest, err := vs.store.LatestCode(ctx, email)
	if err != nil {
		return err
	}
	if latest == nil {
		return lib.ErrInvalidCode
	}
	if time.Now().After(latest.ExpiresAt) {
		return lib.ErrExpiredCode
	}
	if latest.Code != strings.TrimSpace(submitted) {
		return lib.ErrInvalidCode
	}

	if err := vs.store.MarkCodeUsed(ctx, latest.Id); err != nil {
		vs.logger.Error("Failed to mark verification code used", gecho.Field("error", err), gecho.Field("email", email))
		return err
	}

	if err := vs.marker.MarkEmailVerified(email); err != nil {
		vs.logger.Error("Failed to persist verified marker", gecho.Field("error", err), gecho.Field("email", email))
		return err
	}

	return nil
}

// ClearVerified drops the verified marker, forcing the address through
// the code flow again.
func (vs *VerificationService) ClearVerified(ctx context.Context, email string) error {
	return vs.marker.ClearEmailVerified(strings.ToLower(strings.TrimSpace(email)))
}

// IsVerified reports whether email has completed verification.
func (vs *VerificationService) IsVerified(ctx context.Context, email string) (bool, error) {
	verified, err := vs.marker.IsEmailVerified(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// A cache outage should not hard-fail checkout status checks.
		if !errors.Is(err, context.Canceled) {
			vs.logger.Warn("Verified marker lookup failed", gecho.Field("error", err), gecho.Field("email", email))
		}
		return false, err
	}
	return verified, nil
}
