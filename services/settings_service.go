package services

import (
	"context"
	"time"

	"dewode_server/lib"
	"dewode_server/store"
	"dewode_server/structs"
	"dewode_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// SettingsService manages the singleton settings row: admin credentials
// and the bank account shown at checkout.
type SettingsService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	store  store.Store
}

func NewSettingsService(logger *gecho.Logger, cfg *structs.Config, st store.Store) *SettingsService {
	return &SettingsService{
		logger: logger,
		cfg:    cfg,
		store:  st,
	}
}

// GetSettings returns the stored settings or, when the row is absent, a
// default built from configuration. The password hash never leaves the
// service in either case.
func (ss *SettingsService) GetSettings(ctx context.Context) (*tables.Settings, error) {
	settings, err := ss.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		fallback := &tables.Settings{
			AdminID: ss.cfg.Auth.DefaultAdminID,
		}
		if ss.cfg.Bank != nil {
			fallback.BankName = ss.cfg.Bank.Name
			fallback.BankAccount = ss.cfg.Bank.Account
			fallback.BankHolder = ss.cfg.Bank.Holder
		}
		return fallback, nil
	}
	return settings, nil
}

// UpdateSettings writes the settings row. An empty input password keeps
// the current hash; a non-empty one is rehashed.
func (ss *SettingsService) UpdateSettings(ctx context.Context, input *structs.SettingsInput) (*tables.Settings, error) {
	current, err := ss.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	settings := &tables.Settings{
		AdminID:     input.AdminID,
		BankName:    input.BankName,
		BankAccount: input.BankAccount,
		BankHolder:  input.BankHolder,
		UpdatedAt:   time.Now(),
	}

	if current != nil {
		settings.ID = current.ID
		settings.AdminPasswordHash = current.AdminPasswordHash
	} else {
		settings.ID = uuid.New()
	}

	// The first saved row must carry a password, otherwise the bootstrap
	// credentials would stay active with a different admin id on record.
	if input.Password == "" && settings.AdminPasswordHash == "" {
		return nil, lib.ErrValidation
	}

	if input.Password != "" {
		hash, err := lib.HashPassword(input.Password, lib.DefaultArgonParams)
		if err != nil {
			ss.logger.Error("Failed to hash admin password", gecho.Field("error", err))
			return nil, err
		}
		settings.AdminPasswordHash = hash
	}

	saved, err := ss.store.SaveSettings(ctx, settings)
	if err != nil {
		ss.logger.Error("Failed to save settings", gecho.Field("error", err))
		return nil, err
	}

	ss.logger.Info("Settings updated", gecho.Field("admin_id", saved.AdminID))
	return saved, nil
}
