package schemagrid

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when a configuration or an edit event
	// references a field that is not declared by the schema.
	// It indicates a configuration bug of the caller.
	ErrMissingField = errors.New("missing schema field")

	// ErrNoItems is returned when a schema document
	// does not describe an array of objects.
	ErrNoItems = errors.New("schema has no items properties")

	// ErrMissingKey is returned when an edited row
	// has no value for the key field of the table.
	ErrMissingKey = errors.New("row has no key")
)

func missingField(name, where string) error {
	if where == "" {
		return fmt.Errorf("%w %q", ErrMissingField, name)
	}
	return fmt.Errorf("%w %q in %s", ErrMissingField, name, where)
}
