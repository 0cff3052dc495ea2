package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestStaticVerifier(t *testing.T) {
	verifier := NewStaticVerifier("admin", "password")

	assert.NoError(t, verifier.VerifyCredentials("admin", "password"))
	assert.ErrorIs(t, verifier.VerifyCredentials("admin", "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, verifier.VerifyCredentials("other", "password"), ErrInvalidCredentials)
	assert.ErrorIs(t, verifier.VerifyCredentials("", ""), ErrInvalidCredentials)
}

func TestBcryptVerifier(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	verifier := NewBcryptVerifier("admin", string(hash))

	assert.NoError(t, verifier.VerifyCredentials("admin", "password"))
	assert.ErrorIs(t, verifier.VerifyCredentials("admin", "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, verifier.VerifyCredentials("other", "password"), ErrInvalidCredentials)
}
