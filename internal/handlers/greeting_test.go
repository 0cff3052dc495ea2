package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adressbuch/apiserver/internal/services"
	"github.com/adressbuch/apiserver/types"
)

// memoryGreetingRepo is an in-memory GreetingRepository for handler tests.
type memoryGreetingRepo struct {
	greetings []types.Greeting
}

func (m *memoryGreetingRepo) Record(ctx context.Context, name, source string) (types.Greeting, error) {
	greeting := types.Greeting{
		ID:        len(m.greetings) + 1,
		Name:      name,
		Source:    source,
		CreatedAt: time.Now(),
	}
	m.greetings = append(m.greetings, greeting)
	return greeting, nil
}

func (m *memoryGreetingRepo) List(ctx context.Context) ([]types.Greeting, error) {
	return append([]types.Greeting(nil), m.greetings...), nil
}

func newGreetingTestRouter(t *testing.T) (*chi.Mux, *memoryGreetingRepo) {
	t.Helper()

	repo := &memoryGreetingRepo{}
	router := chi.NewRouter()
	router.Route("/hello", func(r chi.Router) {
		GreetingRouter(r, services.NewGreetingService(repo))
	})
	return router, repo
}

func TestGreetByQuery(t *testing.T) {
	router, repo := newGreetingTestRouter(t)

	recorder := doRequest(router, http.MethodGet, "/hello?name=Max", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Max")

	require.Len(t, repo.greetings, 1)
	assert.Equal(t, "Max", repo.greetings[0].Name)
	assert.Equal(t, types.GreetingSourceQuery, repo.greetings[0].Source)
}

func TestGreetByQuery_MissingName(t *testing.T) {
	router, repo := newGreetingTestRouter(t)

	recorder := doRequest(router, http.MethodGet, "/hello", "", "")
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, repo.greetings)
}

func TestGreetByParam(t *testing.T) {
	router, repo := newGreetingTestRouter(t)

	recorder := doRequest(router, http.MethodGet, "/hello/Erika", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Erika")

	require.Len(t, repo.greetings, 1)
	assert.Equal(t, types.GreetingSourceParam, repo.greetings[0].Source)
}

func TestGreetByBody(t *testing.T) {
	router, repo := newGreetingTestRouter(t)

	recorder := doRequest(router, http.MethodPost, "/hello/body", "", `{"name":"Max"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "Max", resp["name"])

	require.Len(t, repo.greetings, 1)
	assert.Equal(t, types.GreetingSourceBody, repo.greetings[0].Source)
}

func TestGreetByBody_MissingName(t *testing.T) {
	router, repo := newGreetingTestRouter(t)

	recorder := doRequest(router, http.MethodPost, "/hello/body", "", `{}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, repo.greetings)
}

func TestGreetByBody_MalformedJSON(t *testing.T) {
	router, _ := newGreetingTestRouter(t)

	recorder := doRequest(router, http.MethodPost, "/hello/body", "", `{"name": `)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "body_not_json", decodeErrorResponse(t, recorder).Error)
}
