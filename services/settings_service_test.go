package services

import (
	"context"
	"testing"

	"dewode_server/lib"
	"dewode_server/store"
	"dewode_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingsServiceForTest(t *testing.T) *SettingsService {
	t.Helper()

	cfg := &structs.Config{
		Auth: &structs.AuthConfig{DefaultAdminID: "admin"},
		Bank: &structs.BankConfig{
			Name:    "WOORI BANK",
			Account: "1002-000-000000",
			Holder:  "DEW&ODE",
		},
	}
	return NewSettingsService(gecho.NewDefaultLogger(), cfg, store.NewEmptyMemoryStore())
}

// Without a stored row customers must still see transfer instructions,
// so the fallback carries the compiled bank account alongside the
// default admin id.
func TestGetSettingsFallsBackToDefaults(t *testing.T) {
	svc := newSettingsServiceForTest(t)

	settings, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin", settings.AdminID)
	assert.Equal(t, "WOORI BANK", settings.BankName)
	assert.Equal(t, "1002-000-000000", settings.BankAccount)
	assert.Equal(t, "DEW&ODE", settings.BankHolder)
}

func TestUpdateSettingsFirstSaveRequiresPassword(t *testing.T) {
	svc := newSettingsServiceForTest(t)

	_, err := svc.UpdateSettings(context.Background(), &structs.SettingsInput{
		AdminID:  "dewode",
		BankName: "KB Kookmin",
	})

	assert.ErrorIs(t, err, lib.ErrValidation)
}

func TestUpdateSettingsHashesPassword(t *testing.T) {
	svc := newSettingsServiceForTest(t)
	ctx := context.Background()

	saved, err := svc.UpdateSettings(ctx, &structs.SettingsInput{
		AdminID:     "dewode",
		Password:    "hunter2-but-longer",
		BankName:    "KB Kookmin",
		BankAccount: "123-456-789012",
		BankHolder:  "DEW ODE",
	})
	require.NoError(t, err)
	assert.Equal(t, "dewode", saved.AdminID)
	assert.NotEqual(t, "hunter2-but-longer", saved.AdminPasswordHash)

	ok, err := lib.VerifyPassword("hunter2-but-longer", saved.AdminPasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateSettingsEmptyPasswordKeepsHash(t *testing.T) {
	svc := newSettingsServiceForTest(t)
	ctx := context.Background()

	first, err := svc.UpdateSettings(ctx, &structs.SettingsInput{
		AdminID:  "dewode",
		Password: "hunter2-but-longer",
	})
	require.NoError(t, err)

	second, err := svc.UpdateSettings(ctx, &structs.SettingsInput{
		AdminID:     "dewode",
		BankName:    "Shinhan",
		BankAccount: "987-654-321098",
	})
	require.NoError(t, err)

	assert.Equal(t, first.AdminPasswordHash, second.AdminPasswordHash)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Shinhan", second.BankName)
}
