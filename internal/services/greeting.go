package services

import (
	"context"

	"github.com/adressbuch/apiserver/types"
)

// GreetingRepository defines persistence operations for greetings.
type GreetingRepository interface {
	Record(ctx context.Context, name, source string) (types.Greeting, error)
	List(ctx context.Context) ([]types.Greeting, error)
}

// GreetingService encapsulates greeting use-cases.
type GreetingService struct {
	repo GreetingRepository
}

func NewGreetingService(repo GreetingRepository) *GreetingService {
	return &GreetingService{repo: repo}
}

func (s *GreetingService) Record(ctx context.Context, name, source string) (types.Greeting, error) {
	return s.repo.Record(ctx, name, source)
}

func (s *GreetingService) List(ctx context.Context) ([]types.Greeting, error) {
	return s.repo.List(ctx)
}
