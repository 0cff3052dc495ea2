package types

import "time"

// Person represents one address-book entry.
//
// JSON field names keep the German wire vocabulary the clients already
// speak. The validate tags are checked by go-playground/validator; the
// four required fields must be present and non-empty, and email must be
// syntactically valid.
type Person struct {
	// ID is the unique identifier assigned by the store.
	ID int `json:"id"`

	// Vorname is the person's first name.
	Vorname string `json:"vorname" validate:"required"`

	// Nachname is the person's last name.
	Nachname string `json:"nachname" validate:"required"`

	// PLZ is the postal code. Optional.
	PLZ string `json:"plz,omitempty"`

	// Strasse is the street address. Optional.
	Strasse string `json:"strasse,omitempty"`

	// Ort is the city. Optional.
	Ort string `json:"ort,omitempty"`

	// Telefonnummer is the phone number.
	Telefonnummer string `json:"telefonnummer" validate:"required"`

	// Email is the contact email address.
	Email string `json:"email" validate:"required,email"`

	// CreatedAt is the timestamp when the record was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the most recent update.
	UpdatedAt time.Time `json:"updated_at"`
}
