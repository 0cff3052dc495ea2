package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adressbuch/apiserver/internal/events"
	"github.com/adressbuch/apiserver/internal/store"
	"github.com/adressbuch/apiserver/internal/validation"
	"github.com/adressbuch/apiserver/types"
)

// memoryPersonRepo is an in-memory PersonRepository for tests.
type memoryPersonRepo struct {
	nextID  int
	persons map[int]types.Person
}

func newMemoryPersonRepo() *memoryPersonRepo {
	return &memoryPersonRepo{nextID: 1, persons: make(map[int]types.Person)}
}

func (m *memoryPersonRepo) Create(ctx context.Context, person types.Person) (types.Person, error) {
	person.ID = m.nextID
	m.nextID++
	m.persons[person.ID] = person
	return person, nil
}

func (m *memoryPersonRepo) List(ctx context.Context) ([]types.Person, error) {
	persons := make([]types.Person, 0, len(m.persons))
	for id := 1; id < m.nextID; id++ {
		if person, ok := m.persons[id]; ok {
			persons = append(persons, person)
		}
	}
	return persons, nil
}

func (m *memoryPersonRepo) Get(ctx context.Context, id int) (types.Person, error) {
	person, ok := m.persons[id]
	if !ok {
		return types.Person{}, store.ErrNotFound
	}
	return person, nil
}

func (m *memoryPersonRepo) Replace(ctx context.Context, person types.Person) (types.Person, error) {
	if _, ok := m.persons[person.ID]; !ok {
		return types.Person{}, store.ErrNotFound
	}
	m.persons[person.ID] = person
	return person, nil
}

func (m *memoryPersonRepo) Delete(ctx context.Context, id int) error {
	if _, ok := m.persons[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.persons, id)
	return nil
}

// capturePublisher records published events.
type capturePublisher struct {
	channels []string
	events   []events.PersonEvent
}

func (c *capturePublisher) PublishPerson(ctx context.Context, channel string, event events.PersonEvent) error {
	c.channels = append(c.channels, channel)
	c.events = append(c.events, event)
	return nil
}

func testPerson() types.Person {
	return types.Person{
		Vorname:       "Max",
		Nachname:      "Mustermann",
		PLZ:           "10115",
		Telefonnummer: "030123456",
		Email:         "max@example.com",
	}
}

func TestPersonService_CreateAssignsID(t *testing.T) {
	service := NewPersonService(newMemoryPersonRepo(), zerolog.Nop())

	first, err := service.Create(context.Background(), testPerson(), "admin")
	require.NoError(t, err)
	second, err := service.Create(context.Background(), testPerson(), "admin")
	require.NoError(t, err)

	assert.NotZero(t, first.ID)
	assert.NotZero(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID)

	fetched, err := service.Get(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, fetched)
}

func TestPersonService_UpdateMergesSuppliedFields(t *testing.T) {
	service := NewPersonService(newMemoryPersonRepo(), zerolog.Nop())

	created, err := service.Create(context.Background(), testPerson(), "admin")
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), created.ID, map[string]any{
		"email": "neu@example.com",
	}, "admin")
	require.NoError(t, err)

	assert.Equal(t, "neu@example.com", updated.Email)
	assert.Equal(t, created.Vorname, updated.Vorname)
	assert.Equal(t, created.Nachname, updated.Nachname)
	assert.Equal(t, created.PLZ, updated.PLZ)
	assert.Equal(t, created.Telefonnummer, updated.Telefonnummer)
	assert.Equal(t, created.ID, updated.ID)
}

func TestPersonService_UpdateValidatesMergedRecord(t *testing.T) {
	service := NewPersonService(newMemoryPersonRepo(), zerolog.Nop())

	created, err := service.Create(context.Background(), testPerson(), "admin")
	require.NoError(t, err)

	_, err = service.Update(context.Background(), created.ID, map[string]any{
		"email": "not-an-email",
	}, "admin")

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.NotEmpty(t, verrs)
	assert.Equal(t, "email", verrs[0].Field)

	// The stored record is untouched after a failed merge.
	fetched, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, fetched.Email)
}

func TestPersonService_UpdateMissingID(t *testing.T) {
	service := NewPersonService(newMemoryPersonRepo(), zerolog.Nop())

	_, err := service.Update(context.Background(), 999, map[string]any{
		"email": "neu@example.com",
	}, "admin")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPersonService_DeleteMissingID(t *testing.T) {
	service := NewPersonService(newMemoryPersonRepo(), zerolog.Nop())

	err := service.Delete(context.Background(), 999, "admin")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPersonService_PublishesLifecycleEvents(t *testing.T) {
	publisher := &capturePublisher{}
	service := NewPersonService(newMemoryPersonRepo(), zerolog.Nop()).WithPublisher(publisher)

	created, err := service.Create(context.Background(), testPerson(), "admin")
	require.NoError(t, err)
	_, err = service.Update(context.Background(), created.ID, map[string]any{"ort": "Berlin"}, "admin")
	require.NoError(t, err)
	require.NoError(t, service.Delete(context.Background(), created.ID, "admin"))

	require.Equal(t, []string{
		events.ChannelPersonCreated,
		events.ChannelPersonUpdated,
		events.ChannelPersonDeleted,
	}, publisher.channels)
	for _, event := range publisher.events {
		assert.Equal(t, created.ID, event.PersonID)
		assert.Equal(t, "admin", event.Actor)
		assert.False(t, event.OccurredAt.IsZero())
	}
}
