package suggestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sizhen/domain/core"
	"sizhen/domain/diagnosis"
)

func TestProviderCoversAllConstitutions(t *testing.T) {
	p, err := NewProvider()
	require.NoError(t, err)

	for _, c := range diagnosis.ConstitutionOrder() {
		assert.NotEmpty(t, p.Suggestions(c), "constitution %s has no guidance", c)
	}
}

func TestLoadRejectsUnknownConstitution(t *testing.T) {
	_, err := Load([]byte("made-up-type:\n  - do something\n"))
	assert.ErrorIs(t, err, core.ErrUnknownConstitution)
}
