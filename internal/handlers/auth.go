package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/adressbuch/apiserver/internal/auth"
)

// AuthHandler provides the login endpoint and the authenticated test route.
type AuthHandler struct {
	verifier auth.CredentialVerifier
	tokens   *auth.TokenService
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(verifier auth.CredentialVerifier, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{verifier: verifier, tokens: tokens}
}

// AuthRouter registers the login and protected test routes.
func AuthRouter(r chi.Router, verifier auth.CredentialVerifier, tokens *auth.TokenService) {
	handler := NewAuthHandler(verifier, tokens)

	r.Post("/login", handler.Login)
	r.With(RequireAuth(tokens)).Get("/protected", handler.Protected)
}

// RequireAuth enforces bearer authentication. A missing token is 401;
// an invalid or expired token is 403. Verified claims are attached to
// the request context.
func RequireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, codeTokenMissing, "bearer token is required")
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				if errors.Is(err, auth.ErrTokenMissing) {
					writeError(w, http.StatusUnauthorized, codeTokenMissing, "bearer token is required")
					return
				}
				writeError(w, http.StatusForbidden, codeTokenInvalid, "token is invalid or expired")
				return
			}

			ctx := context.WithValue(r.Context(), contextClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Login verifies the supplied credentials and issues a bearer token
// with a fixed one-hour lifetime.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBodyNotJSON, errBodyNotJSON.Error())
		return
	}

	if err := h.verifier.VerifyCredentials(req.Username, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, codeInvalidCredentials, "Anmeldedaten sind nicht korrekt")
		return
	}

	token, err := h.tokens.Issue(req.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternalError, "failed to create token")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}

// Protected confirms that the caller is authenticated.
func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Sie sind authentifiziert!"))
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
