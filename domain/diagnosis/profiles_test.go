package diagnosis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampBounds(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-12.5))
	assert.Equal(t, 0.0, Clamp(0))
	assert.Equal(t, 42.5, Clamp(42.5))
	assert.Equal(t, 100.0, Clamp(100))
	assert.Equal(t, 100.0, Clamp(170))
}

func TestElementProfileValueRoundTrip(t *testing.T) {
	p := NewElementProfile()
	for _, e := range ElementOrder() {
		assert.Equal(t, NeutralValue, p.Value(e))
		p.SetValue(e, 72)
		assert.Equal(t, 72.0, p.Value(e))
	}
}

func TestElementProfileAddImbalanceDeduplicates(t *testing.T) {
	p := NewElementProfile()
	p.AddImbalance("qi-deficiency")
	p.AddImbalance("blood-stasis")
	p.AddImbalance("qi-deficiency")

	assert.Equal(t, []string{"qi-deficiency", "blood-stasis"}, p.Imbalances)
}

func TestYinYangBalanceSeverityAndSide(t *testing.T) {
	assert.Equal(t, 0, BalanceBalanced.Severity())
	assert.Equal(t, 1, BalanceSlightYangExcess.Severity())
	assert.Equal(t, 2, BalanceModerateYinExcess.Severity())
	assert.Equal(t, 3, BalanceSevereYangExcess.Severity())

	assert.True(t, BalanceModerateYinExcess.YinSided())
	assert.False(t, BalanceModerateYangExcess.YinSided())
	assert.False(t, BalanceBalanced.YinSided())
}

func TestOrganProfileAdd(t *testing.T) {
	p := NewOrganProfile()
	p.Add(OrganKidney, 10)
	p.Add(OrganHeart, -10)

	assert.Equal(t, 30.0, p.Kidney)
	assert.Equal(t, 10.0, p.Heart)
	assert.Equal(t, OrganBaseline, p.Spleen)
}
