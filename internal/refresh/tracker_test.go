package refresh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackerRejectsNonPositiveDistance(t *testing.T) {
	for _, d := range []int{0, -48} {
		_, err := NewTracker(d)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestTrackerThresholdIsInclusive(t *testing.T) {
	tr, err := NewTracker(48)
	require.NoError(t, err)

	for y := -47; y <= 47; y++ {
		assert.False(t, tr.Reached(y), "scrollY %d", y)
	}
	assert.True(t, tr.Reached(48))
	assert.True(t, tr.Reached(-48))
	assert.True(t, tr.Reached(100))
}

func TestFactor(t *testing.T) {
	assert.Equal(t, 2, Factor(0))
	assert.Equal(t, 5, Factor(1))

	prev := Factor(0)
	for f := 0.0; f <= 2.0; f += 0.01 {
		got := Factor(f)
		assert.GreaterOrEqual(t, got, prev, "fraction %.2f", f)
		prev = got
	}
}

func TestTrackerDamp(t *testing.T) {
	tr, err := NewTracker(48)
	require.NoError(t, err)

	tests := []struct {
		name       string
		raw        int
		scrollY    int
		userDriven bool
		want       int
	}{
		{"at rest halves", 10, 0, true, 5},
		{"truncates toward zero", 7, 0, true, 3},
		{"negative truncates toward zero", -7, 0, true, -3},
		{"at threshold divides by five", 25, 48, true, 5},
		{"deeper past start", -24, -24, true, -6},
		{"programmatic passes through", 17, 40, false, 17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Damp(tt.raw, tt.scrollY, tt.userDriven))
		})
	}
}

func TestTrackerFractionIsNotClamped(t *testing.T) {
	tr, err := NewTracker(48)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, tr.Fraction(-24), 1e-9)
	assert.InDelta(t, 1.5, tr.Fraction(72), 1e-9)
}
