package services

import (
	"context"
	"testing"
	"time"

	"dewode_server/lib"
	"dewode_server/store"
	"dewode_server/structs"
	"dewode_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthServiceForTest(t *testing.T, st store.Store) *AuthService {
	t.Helper()

	cfg := &structs.Config{
		Auth: &structs.AuthConfig{
			AccessTokenSecret:    "test-secret-at-least-32-characters-long",
			AccessTokenExpiry:    time.Hour,
			DefaultAdminID:       "admin",
			DefaultAdminPassword: "bootstrap-password",
		},
	}
	return NewAuthService(cfg, gecho.NewDefaultLogger(), st)
}

func TestLoginBootstrapCredentials(t *testing.T) {
	svc := newAuthServiceForTest(t, store.NewEmptyMemoryStore())

	token, expiresAt, err := svc.Login(context.Background(), &structs.AdminLoginRequest{
		AdminID:  "admin",
		Password: "bootstrap-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
}

func TestLoginBootstrapWrongPassword(t *testing.T) {
	svc := newAuthServiceForTest(t, store.NewEmptyMemoryStore())

	_, _, err := svc.Login(context.Background(), &structs.AdminLoginRequest{
		AdminID:  "admin",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)
}

func TestLoginUsesStoredCredentialsWhenSet(t *testing.T) {
	st := store.NewEmptyMemoryStore()
	ctx := context.Background()

	hash, err := lib.HashPassword("stored-password", lib.DefaultArgonParams)
	require.NoError(t, err)

	_, err = st.SaveSettings(ctx, &tables.Settings{
		AdminID:           "dewode",
		AdminPasswordHash: hash,
	})
	require.NoError(t, err)

	svc := newAuthServiceForTest(t, st)

	// The bootstrap credentials stop working once a row with a hash exists
	_, _, err = svc.Login(ctx, &structs.AdminLoginRequest{
		AdminID:  "admin",
		Password: "bootstrap-password",
	})
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)

	token, _, err := svc.Login(ctx, &structs.AdminLoginRequest{
		AdminID:  "dewode",
		Password: "stored-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginWrongAdminID(t *testing.T) {
	svc := newAuthServiceForTest(t, store.NewEmptyMemoryStore())

	_, _, err := svc.Login(context.Background(), &structs.AdminLoginRequest{
		AdminID:  "intruder",
		Password: "bootstrap-password",
	})
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)
}
