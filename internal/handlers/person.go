package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/adressbuch/apiserver/internal/services"
	"github.com/adressbuch/apiserver/internal/store"
	"github.com/adressbuch/apiserver/internal/validation"
)

// PersonHandler provides HTTP handlers for address-book entries.
type PersonHandler struct {
	personService *services.PersonService
}

// NewPersonHandler constructs a handler with the provided service.
func NewPersonHandler(personService *services.PersonService) *PersonHandler {
	return &PersonHandler{personService: personService}
}

// PersonRouter registers person routes on the given router. Every route
// requires bearer authentication, reads included.
func PersonRouter(r chi.Router, personService *services.PersonService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewPersonHandler(personService)

	r.Use(authMiddleware)
	r.Get("/", handler.ListPersons)
	r.Post("/", handler.CreatePerson)
	r.Route("/{personID}", func(r chi.Router) {
		r.Get("/", handler.GetPerson)
		r.Put("/", handler.UpdatePerson)
		r.Delete("/", handler.DeletePerson)
	})
}

func (h *PersonHandler) ListPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := h.personService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, codePersistenceError, "failed to list persons")
		return
	}
	writeJSON(w, http.StatusOK, persons)
}

func (h *PersonHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	id, err := parsePersonID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationError, err.Error())
		return
	}

	person, err := h.personService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "person not found")
			return
		}
		writeError(w, http.StatusInternalServerError, codePersistenceError, "failed to fetch person")
		return
	}

	writeJSON(w, http.StatusOK, person)
}

func (h *PersonHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeObject(r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	person, verrs := validation.Person(fields)
	if verrs != nil {
		writeValidationError(w, verrs)
		return
	}

	created, err := h.personService.Create(r.Context(), person, actor(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, codePersistenceError, "failed to create person")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdatePerson applies a partial or full update. Supplied fields are
// merged over the stored record and the merged result is re-validated
// before it is persisted.
func (h *PersonHandler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	id, err := parsePersonID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationError, err.Error())
		return
	}

	fields, err := decodeObject(r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	updated, err := h.personService.Update(r.Context(), id, fields, actor(r))
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			writeValidationError(w, verrs)
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, codeNotFound, "person not found")
		default:
			writeError(w, http.StatusInternalServerError, codePersistenceError, "failed to update person")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *PersonHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	id, err := parsePersonID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationError, err.Error())
		return
	}

	if err := h.personService.Delete(r.Context(), id, actor(r)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "person not found")
			return
		}
		writeError(w, http.StatusInternalServerError, codePersistenceError, "failed to delete person")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "person deleted"})
}

func parsePersonID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "personID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid person id")
	}
	return id, nil
}

// actor returns the authenticated username for audit attribution.
func actor(r *http.Request) string {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		return ""
	}
	return claims.Username
}
