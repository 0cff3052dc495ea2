package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of issued tokens.
const TokenTTL = time.Hour

var (
	// ErrTokenMissing is returned when no bearer token was supplied.
	ErrTokenMissing = errors.New("token missing")
	// ErrTokenInvalid is returned for malformed tokens or bad signatures.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired is returned for tokens past their expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Claims are the verified contents of a bearer token.
type Claims struct {
	Username string
	IssuedAt time.Time
	Expiry   time.Time
}

// TokenService issues and verifies HS256 bearer tokens. Tokens are
// self-contained; nothing is stored server-side and there is no
// revocation before expiry.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService constructs a TokenService signing with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: TokenTTL}
}

// Issue signs a token carrying username as the subject claim.
func (s *TokenService) Issue(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded claims.
func (s *TokenService) Verify(tokenString string) (Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return Claims{}, ErrTokenMissing
	}

	parsed := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &parsed, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if !token.Valid || strings.TrimSpace(parsed.Subject) == "" {
		return Claims{}, ErrTokenInvalid
	}

	claims := Claims{Username: parsed.Subject}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time
	}
	if parsed.ExpiresAt != nil {
		claims.Expiry = parsed.ExpiresAt.Time
	}
	return claims, nil
}
