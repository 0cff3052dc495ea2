package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a login attempt does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialVerifier checks a username/password pair. The login route
// depends on this interface so a real user store can replace the fixed
// operator identity without touching the request pipeline.
type CredentialVerifier interface {
	VerifyCredentials(username, password string) error
}

// StaticVerifier matches a single configured identity with plain-text
// comparison. Comparisons are constant-time.
type StaticVerifier struct {
	username string
	password string
}

func NewStaticVerifier(username, password string) *StaticVerifier {
	return &StaticVerifier{username: username, password: password}
}

func (v *StaticVerifier) VerifyCredentials(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(v.username), []byte(username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(v.password), []byte(password)) == 1
	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}

// BcryptVerifier matches a single configured identity against a bcrypt
// password hash.
type BcryptVerifier struct {
	username     string
	passwordHash []byte
}

func NewBcryptVerifier(username, passwordHash string) *BcryptVerifier {
	return &BcryptVerifier{username: username, passwordHash: []byte(passwordHash)}
}

func (v *BcryptVerifier) VerifyCredentials(username, password string) error {
	if subtle.ConstantTimeCompare([]byte(v.username), []byte(username)) != 1 {
		// Burn a comparison anyway so unknown usernames cost the same.
		_ = bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password))
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
