package engine

import (
	"fmt"
	"strings"
)

// ValidationError rejects a create/update whose required fields are missing
// or malformed. Nothing is mutated when it is returned.
type ValidationError struct {
	Fields []string
}

func (e ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

// NotFoundError indicates a mutation targeted a nonexistent id.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// InvalidFormatError rejects an import payload before any state is touched.
type InvalidFormatError struct {
	Reason string
}

func (e InvalidFormatError) Error() string {
	return "invalid import format: " + e.Reason
}
