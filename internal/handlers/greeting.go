package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/adressbuch/apiserver/internal/services"
	"github.com/adressbuch/apiserver/types"
)

// GreetingHandler provides the greeting routes. Every greeting is
// recorded with the channel it arrived on.
type GreetingHandler struct {
	greetingService *services.GreetingService
}

// NewGreetingHandler constructs a handler with the provided service.
func NewGreetingHandler(greetingService *services.GreetingService) *GreetingHandler {
	return &GreetingHandler{greetingService: greetingService}
}

// GreetingRouter registers greeting routes. They are unauthenticated.
func GreetingRouter(r chi.Router, greetingService *services.GreetingService) {
	handler := NewGreetingHandler(greetingService)

	r.Get("/", handler.GreetByQuery)
	r.Post("/body", handler.GreetByBody)
	r.Get("/{name}", handler.GreetByParam)
}

// GreetByQuery handles GET /hello?name=X.
func (h *GreetingHandler) GreetByQuery(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeText(w, http.StatusBadRequest, "Name fehlt")
		return
	}

	if _, err := h.greetingService.Record(r.Context(), name, types.GreetingSourceQuery); err != nil {
		writeError(w, http.StatusInternalServerError, codePersistenceError, "failed to record greeting")
		return
	}
	writeText(w, http.StatusOK, fmt.Sprintf("hallo mein query ist: %s", name))
}

// GreetByParam handles GET /hello/{name}.
func (h *GreetingHandler) GreetByParam(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if _, err := h.greetingService.Record(r.Context(), name, types.GreetingSourceParam); err != nil {
		writeError(w, http.StatusInternalServerError, codePersistenceError, "failed to record greeting")
		return
	}
	writeText(w, http.StatusOK, fmt.Sprintf("hallo mein Name ist auch %s", name))
}

// GreetByBody handles POST /hello/body with a {"name": ...} payload.
func (h *GreetingHandler) GreetByBody(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeObject(r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	name, _ := fields["name"].(string)
	if strings.TrimSpace(name) == "" {
		writeText(w, http.StatusBadRequest, "JSON muss ein 'name'-Feld enthalten")
		return
	}

	if _, err := h.greetingService.Record(r.Context(), name, types.GreetingSourceBody); err != nil {
		writeError(w, http.StatusInternalServerError, codePersistenceError, "failed to record greeting")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Name gespeichert", "name": name})
}

func writeText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}
