package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/adressbuch/apiserver/internal/events"
	"github.com/adressbuch/apiserver/internal/validation"
	"github.com/adressbuch/apiserver/types"
)

// PersonRepository defines persistence operations for address-book entries.
type PersonRepository interface {
	Create(ctx context.Context, person types.Person) (types.Person, error)
	List(ctx context.Context) ([]types.Person, error)
	Get(ctx context.Context, id int) (types.Person, error)
	Replace(ctx context.Context, person types.Person) (types.Person, error)
	Delete(ctx context.Context, id int) error
}

// EventPublisher emits person lifecycle audit events.
type EventPublisher interface {
	PublishPerson(ctx context.Context, channel string, event events.PersonEvent) error
}

// PersonService encapsulates person use-cases.
type PersonService struct {
	repo      PersonRepository
	publisher EventPublisher
	logger    zerolog.Logger
}

func NewPersonService(repo PersonRepository, logger zerolog.Logger) *PersonService {
	return &PersonService{repo: repo, logger: logger}
}

// WithPublisher enables lifecycle audit events.
func (s *PersonService) WithPublisher(publisher EventPublisher) *PersonService {
	s.publisher = publisher
	return s
}

func (s *PersonService) Create(ctx context.Context, person types.Person, actor string) (types.Person, error) {
	created, err := s.repo.Create(ctx, person)
	if err != nil {
		return types.Person{}, err
	}
	s.publish(ctx, events.ChannelPersonCreated, created.ID, actor)
	return created, nil
}

func (s *PersonService) List(ctx context.Context) ([]types.Person, error) {
	return s.repo.List(ctx)
}

func (s *PersonService) Get(ctx context.Context, id int) (types.Person, error) {
	return s.repo.Get(ctx, id)
}

// Update applies a partial update: the stored record is fetched, the
// supplied fields are merged over it (supplied value wins, absent key
// keeps the stored value), the merged record is re-validated, and the
// merge result is persisted as a full replace. Validation failures are
// returned as validation.Errors.
func (s *PersonService) Update(ctx context.Context, id int, fields map[string]any, actor string) (types.Person, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Person{}, err
	}

	merged, verrs := validation.Merge(existing, fields)
	if verrs != nil {
		return types.Person{}, verrs
	}
	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Replace(ctx, merged)
	if err != nil {
		return types.Person{}, err
	}
	s.publish(ctx, events.ChannelPersonUpdated, updated.ID, actor)
	return updated, nil
}

func (s *PersonService) Delete(ctx context.Context, id int, actor string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.ChannelPersonDeleted, id, actor)
	return nil
}

// publish is best-effort: a broker failure must never fail the request.
func (s *PersonService) publish(ctx context.Context, channel string, personID int, actor string) {
	if s.publisher == nil {
		return
	}
	event := events.PersonEvent{
		PersonID:   personID,
		Actor:      actor,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.PublishPerson(ctx, channel, event); err != nil {
		s.logger.Warn().Err(err).Str("channel", channel).Int("person_id", personID).
			Msg("failed to publish person event")
	}
}
