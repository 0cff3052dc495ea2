package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/adressbuch/apiserver/types"
)

// PersonRepository handles persistence for address-book entries. Every
// operation is one parameterized round trip; nothing is cached in
// process.
type PersonRepository struct {
	db *sql.DB
}

func NewPersonRepository(db *sql.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

func (r *PersonRepository) Create(ctx context.Context, person types.Person) (types.Person, error) {
	now := time.Now()
	person.CreatedAt = now
	person.UpdatedAt = now

	const query = `
		INSERT INTO persons (vorname, nachname, plz, strasse, ort, telefonnummer, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		person.Vorname,
		person.Nachname,
		person.PLZ,
		person.Strasse,
		person.Ort,
		person.Telefonnummer,
		person.Email,
		person.CreatedAt,
		person.UpdatedAt,
	).Scan(&person.ID); err != nil {
		return types.Person{}, err
	}
	return person, nil
}

func (r *PersonRepository) List(ctx context.Context) ([]types.Person, error) {
	const query = `
		SELECT id, vorname, nachname, plz, strasse, ort, telefonnummer, email, created_at, updated_at
		FROM persons
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	persons := make([]types.Person, 0)
	for rows.Next() {
		var person types.Person
		if err := rows.Scan(
			&person.ID,
			&person.Vorname,
			&person.Nachname,
			&person.PLZ,
			&person.Strasse,
			&person.Ort,
			&person.Telefonnummer,
			&person.Email,
			&person.CreatedAt,
			&person.UpdatedAt,
		); err != nil {
			return nil, err
		}
		persons = append(persons, person)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return persons, nil
}

func (r *PersonRepository) Get(ctx context.Context, id int) (types.Person, error) {
	const query = `
		SELECT id, vorname, nachname, plz, strasse, ort, telefonnummer, email, created_at, updated_at
		FROM persons
		WHERE id = $1`
	var person types.Person
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&person.ID,
		&person.Vorname,
		&person.Nachname,
		&person.PLZ,
		&person.Strasse,
		&person.Ort,
		&person.Telefonnummer,
		&person.Email,
		&person.CreatedAt,
		&person.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Person{}, ErrNotFound
		}
		return types.Person{}, err
	}
	return person, nil
}

// Replace overwrites all mutable fields of the record at person.ID. A
// missing row is reported through the affected-row count, not a query
// error.
func (r *PersonRepository) Replace(ctx context.Context, person types.Person) (types.Person, error) {
	person.UpdatedAt = time.Now()

	const query = `
		UPDATE persons
		SET vorname = $1,
			nachname = $2,
			plz = $3,
			strasse = $4,
			ort = $5,
			telefonnummer = $6,
			email = $7,
			updated_at = $8
		WHERE id = $9`
	result, err := r.db.ExecContext(
		ctx,
		query,
		person.Vorname,
		person.Nachname,
		person.PLZ,
		person.Strasse,
		person.Ort,
		person.Telefonnummer,
		person.Email,
		person.UpdatedAt,
		person.ID,
	)
	if err != nil {
		return types.Person{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Person{}, err
	}
	if affected == 0 {
		return types.Person{}, ErrNotFound
	}
	return person, nil
}

func (r *PersonRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM persons WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
