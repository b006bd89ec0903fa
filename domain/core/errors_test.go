package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMalformedObservationErrorCarriesSentinel(t *testing.T) {
	err := NewMalformedObservationError("touch")

	assert.True(t, IsMalformedObservationError(err))
	assert.Contains(t, err.Error(), "touch")
	assert.False(t, IsMalformedObservationError(ErrInsufficientData))
}

func TestNotFoundHelpers(t *testing.T) {
	assert.True(t, IsNotFoundError(NewNotFoundError("assessment", "a-1")))
	assert.True(t, IsNotFoundError(ErrAssessmentNotFound))
	assert.False(t, IsNotFoundError(ErrInsufficientData))
}

func TestUnknownModalitySentinelWraps(t *testing.T) {
	err := fmt.Errorf("%w %q", ErrUnknownModality, "taste")
	assert.ErrorIs(t, err, ErrUnknownModality)
}
