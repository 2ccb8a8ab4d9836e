package models

import (
	"errors"
	"fmt"
)

var ErrLookupFailed = errors.New("registry lookup failed")

// LookupError wraps a single registry lookup failure. The correlation
// engine swallows these; they exist so call sites can log the pair that
// degraded to zero evidence.
type LookupError struct {
	Drug    string
	Symptom string
	Err     error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup failed for (%s, %s): %v", e.Drug, e.Symptom, e.Err)
}

func (e *LookupError) Unwrap() error {
	return ErrLookupFailed
}

func NewLookupError(drug, symptom string, err error) error {
	return &LookupError{Drug: drug, Symptom: symptom, Err: err}
}
