package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/adressbuch/apiserver/types"
)

// GreetingRepository records greeting requests.
type GreetingRepository struct {
	db *sql.DB
}

func NewGreetingRepository(db *sql.DB) *GreetingRepository {
	return &GreetingRepository{db: db}
}

func (r *GreetingRepository) Record(ctx context.Context, name, source string) (types.Greeting, error) {
	greeting := types.Greeting{
		Name:      name,
		Source:    source,
		CreatedAt: time.Now(),
	}

	const query = `
		INSERT INTO greetings (name, source, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, greeting.Name, greeting.Source, greeting.CreatedAt).
		Scan(&greeting.ID); err != nil {
		return types.Greeting{}, err
	}
	return greeting, nil
}

func (r *GreetingRepository) List(ctx context.Context) ([]types.Greeting, error) {
	const query = `
		SELECT id, name, source, created_at
		FROM greetings
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	greetings := make([]types.Greeting, 0)
	for rows.Next() {
		var greeting types.Greeting
		if err := rows.Scan(&greeting.ID, &greeting.Name, &greeting.Source, &greeting.CreatedAt); err != nil {
			return nil, err
		}
		greetings = append(greetings, greeting)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return greetings, nil
}
