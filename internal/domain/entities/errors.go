package entities

import "strings"

// ValidationError reports a draft that is missing required fields.
// It is raised before any store call.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// StoreError is the uniform failure returned for anything the persistence layer rejected.
type StoreError struct {
	Op      string
	Message string
	Details string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return e.Op + ": " + e.Message
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
