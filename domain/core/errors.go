package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound           = errors.New("resource not found")
	ErrAssessmentNotFound = fmt.Errorf("%w: assessment", ErrNotFound)

	// Analysis errors
	ErrInsufficientData     = errors.New("insufficient data: no diagnostic modality supplied")
	ErrMalformedObservation = errors.New("malformed observation: raw data missing")
	ErrUnknownModality      = errors.New("unknown diagnostic modality")
	ErrUnknownConstitution  = errors.New("unknown constitution type")
	ErrRuleTableInvalid     = errors.New("invalid rule table")
	ErrModalityUnavailable  = errors.New("modality service unavailable")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewMalformedObservationError(modality string) error {
	return fmt.Errorf("%w for modality %s", ErrMalformedObservation, modality)
}

func NewRuleTableError(section string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrRuleTableInvalid, section, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInsufficientDataError(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

func IsMalformedObservationError(err error) bool {
	return errors.Is(err, ErrMalformedObservation)
}
