package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adressbuch/apiserver/internal/auth"
	"github.com/adressbuch/apiserver/internal/validation"
)

// Machine-readable error codes carried in every error response.
const (
	codeBodyNotJSON        = "body_not_json"
	codeTokenMissing       = "token_missing"
	codeTokenInvalid       = "token_invalid"
	codeValidationError    = "validation_error"
	codeNotFound           = "not_found"
	codePersistenceError   = "persistence_error"
	codeInvalidCredentials = "invalid_credentials"
	codeInternalError      = "internal_error"
)

type contextKey string

const contextClaimsKey contextKey = "claims"

var (
	errBodyNotJSON = errors.New("request body is not valid JSON")
	errNotAnObject = errors.New("request body must be a JSON object")
)

// ErrorResponse is the error payload: a machine-readable code, a
// human-readable message, and for validation failures the full set of
// field violations.
type ErrorResponse struct {
	Error   string                  `json:"error"`
	Message string                  `json:"message"`
	Fields  []validation.FieldError `json:"fields,omitempty"`
}

// decodeObject strictly parses the request body as one JSON object.
// Unparsable bodies are reported as errBodyNotJSON so routes can
// distinguish them from schema violations.
func decodeObject(r *http.Request) (map[string]any, error) {
	var payload any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, errBodyNotJSON
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, errNotAnObject
	}
	return obj, nil
}

func writeBodyError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBodyNotJSON) {
		writeError(w, http.StatusBadRequest, codeBodyNotJSON, errBodyNotJSON.Error())
		return
	}
	writeError(w, http.StatusBadRequest, codeValidationError, errNotAnObject.Error())
}

func claimsFromContext(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(contextClaimsKey).(auth.Claims)
	return claims, ok
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

func writeValidationError(w http.ResponseWriter, errs validation.Errors) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:   codeValidationError,
		Message: "request did not match the person schema",
		Fields:  errs,
	})
}

// Healthz is a liveness probe.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
