package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple", DefaultArgonParams)
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	first, err := HashPassword("same input", nil)
	require.NoError(t, err)
	second, err := HashPassword("same input", nil)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDecodeArgon2HashRejectsGarbage(t *testing.T) {
	_, err := DecodeArgon2Hash("not-a-hash")
	assert.ErrorIs(t, err, ErrInvalidHash)

	_, err = DecodeArgon2Hash("$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA")
	assert.ErrorIs(t, err, ErrInvalidHash)
}

func TestGenerateOrderNumberFormat(t *testing.T) {
	number := GenerateOrderNumber()

	require.Len(t, number, 11)
	assert.Equal(t, "DO-", number[:3])
	for _, c := range number[3:] {
		assert.True(t, (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'), "unexpected character %q", c)
	}
}

func TestGenerateVerificationCodeFormat(t *testing.T) {
	code, err := GenerateVerificationCode()
	require.NoError(t, err)

	require.Len(t, code, 6)
	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9', "unexpected character %q", c)
	}
}
