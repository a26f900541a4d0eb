package services

import (
	"context"
	"sync"
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

// stubCodeMailer captures the last code sent so tests can replay it.
type stubCodeMailer struct {
	mu       sync.Mutex
	lastCode string
	sent     int
}

func (m *stubCodeMailer) SendVerificationCodeEmail(email, code string, expiry time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastCode = code
	m.sent++
	return nil
}

// stubMarker keeps verified flags in a map instead of Redis.
type stubMarker struct {
	verified map[string]bool
}

func newStubMarker() *stubMarker {
	return &stubMarker{verified: make(map[string]bool)}
}

func (m *stubMarker) MarkEmailVerified(email string) error {
	m.verified[email] = true
	return nil
}

func (m *stubMarker) IsEmailVerified(email string) (bool, error) {
	return m.verified[email], nil
}

func (m *stubMarker) ClearEmailVerified(email string) error {
	delete(m.verified, email)
	return nil
}

func newVerificationServiceForTest(t *testing.T) (*VerificationService, *store.MemoryStore, *stubCodeMailer, *stubMarker) {
	t.Helper()

	st := store.NewEmptyMemoryStore()
	mailer := &stubCodeMailer{}
	marker := newStubMarker()
	svc := &VerificationService{
		logger: gecho.NewDefaultLogger(),
		cfg: &structs.Config{
			Email: &structs.EmailConfig{CodeExpiry: 10 * time.Minute},
		},
		store:  st,
		mailer: mailer,
		marker: marker,
	}
	return svc, st, mailer, marker
}

func TestSendCodeStoresAndMails(t *testing.T) {
	svc, st, mailer, _ := newVerificationServiceForTest(t)
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, " Jiwoo@Example.com "))

	assert.Equal(t, 1, mailer.sent)
	assert.Len(t, mailer.lastCode, 6)

	stored, err := st.LatestCode(ctx, "jiwoo@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, mailer.lastCode, stored.Code)
}

func TestVerifyCodeHappyPath(t *testing.T) {
	svc, _, mailer, marker := newVerificationServiceForTest(t)
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, "jiwoo@example.com"))
	require.NoError(t, svc.VerifyCode(ctx, "jiwoo@example.com", mailer.lastCode))

	assert.True(t, marker.verified["jiwoo@example.com"])

	verified, err := svc.IsVerified(ctx, "JIWOO@example.com")
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestClearVerifiedRevokesMarker(t *testing.T) {
	svc, _, mailer, _ := newVerificationServiceForTest(t)
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, "jiwoo@example.com"))
	require.NoError(t, svc.VerifyCode(ctx, "jiwoo@example.com", mailer.lastCode))
	require.NoError(t, svc.ClearVerified(ctx, "JIWOO@example.com"))

	verified, err := svc.IsVerified(ctx, "jiwoo@example.com")
	require.NoError(t, err)
	assert.False(t, verified)
}

func TestVerifyCodeIsSingleUse(t *testing.T) {
	svc, _, mailer, _ := newVerificationServiceForTest(t)
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, "jiwoo@example.com"))
	require.NoError(t, svc.VerifyCode(ctx, "jiwoo@example.com", mailer.lastCode))

	err := svc.VerifyCode(ctx, "jiwoo@example.com", mailer.lastCode)
	assert.ErrorIs(t, err, lib.ErrInvalidCode)
}

func TestVerifyCodeMismatch(t *testing.T) {
	svc, _, mailer, marker := newVerificationServiceForTest(t)
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, "jiwoo@example.com"))

	wrong := "000000"
	if mailer.lastCode == wrong {
		wrong = "999999"
	}
	err := svc.VerifyCode(ctx, "jiwoo@example.com", wrong)
	assert.ErrorIs(t, err, lib.ErrInvalidCode)
	assert.False(t, marker.verified["jiwoo@example.com"])
}

func TestVerifyCodeNoCodeIssued(t *testing.T) {
	svc, _, _, _ := newVerificationServiceForTest(t)

	err := svc.VerifyCode(context.Background(), "nobody@example.com", "123456")
	assert.ErrorIs(t, err, lib.ErrInvalidCode)
}

func TestVerifyCodeExpired(t *testing.T) {
	svc, st, _, _ := newVerificationServiceForTest(t)
	ctx := context.Background()

	require.NoError(t, st.CreateCode(ctx, &tables.VerificationCode{
		Email:     "jiwoo@example.com",
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	err := svc.VerifyCode(ctx, "jiwoo@example.com", "123456")
	assert.ErrorIs(t, err, lib.ErrExpiredCode)
}

func TestVerifyCodeOnlyLatestCounts(t *testing.T) {
	svc, _, mailer, _ := newVerificationServiceForTest(t)
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, "jiwoo@example.com"))
	first := mailer.lastCode

	// Force distinct creation times so the second code is strictly newer
	time.Sleep(5 * time.Millisecond)

	require.NoError(t, svc.SendCode(ctx, "jiwoo@example.com"))
	second := mailer.lastCode

	if first != second {
		err := svc.VerifyCode(ctx, "jiwoo@example.com", first)
		assert.ErrorIs(t, err, lib.ErrInvalidCode)
	}
	require.NoError(t, svc.VerifyCode(ctx, "jiwoo@example.com", second))
}
