// Package validation checks inbound person payloads against the fixed
// seven-field schema, collecting every violation in one pass.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/adressbuch/apiserver/types"
)

// FieldError describes one schema violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the batched set of field violations for one payload.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return strings.Join(parts, "; ")
}

// allowedFields is the closed set of recognized payload keys.
var allowedFields = map[string]struct{}{
	"vorname":       {},
	"nachname":      {},
	"plz":           {},
	"strasse":       {},
	"ort":           {},
	"telefonnummer": {},
	"email":         {},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report violations under json field names, not Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Person validates a decoded payload object as a complete person record.
// Unknown keys and non-string values are rejected per key; the four
// required fields must be present and non-empty; email must be
// syntactically valid. All violations are returned together.
func Person(fields map[string]any) (types.Person, Errors) {
	return Merge(types.Person{}, fields)
}

// Merge applies the supplied keys onto an existing record (supplied value
// wins, absent key keeps the stored value) and validates the merged
// result, so constraints hold even under partial updates.
func Merge(existing types.Person, fields map[string]any) (types.Person, Errors) {
	var errs Errors

	merged := existing
	for key, value := range fields {
		if _, ok := allowedFields[key]; !ok {
			errs = append(errs, FieldError{Field: key, Message: "is not an allowed field"})
			continue
		}
		text, ok := value.(string)
		if !ok {
			errs = append(errs, FieldError{Field: key, Message: "must be a string"})
			continue
		}
		switch key {
		case "vorname":
			merged.Vorname = text
		case "nachname":
			merged.Nachname = text
		case "plz":
			merged.PLZ = text
		case "strasse":
			merged.Strasse = text
		case "ort":
			merged.Ort = text
		case "telefonnummer":
			merged.Telefonnummer = text
		case "email":
			merged.Email = text
		}
	}

	if err := validate.Struct(merged); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			for _, fe := range invalid {
				errs = append(errs, FieldError{Field: fe.Field(), Message: tagMessage(fe)})
			}
		} else {
			errs = append(errs, FieldError{Field: "", Message: err.Error()})
		}
	}

	if len(errs) > 0 {
		return types.Person{}, errs
	}
	return merged, nil
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
