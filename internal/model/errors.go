package model

import "fmt"

// ValidationError marks a source record that cannot be normalized into an
// event. Callers skip the record and continue; it is never fatal to a run.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid record: %s %s", e.Field, e.Reason)
}
