package refresh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeOf(t *testing.T) {
	tests := []struct {
		flags int
		want  Mode
	}{
		{0, ModeNone},
		{1, ModeStart},
		{2, ModeEnd},
		{3, ModeBoth},
	}
	for _, tt := range tests {
		got, err := ModeOf(tt.flags)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []int{-1, 4, 255} {
		_, err := ModeOf(bad)
		assert.ErrorIs(t, err, ErrInvalidArgument, "flags %d", bad)
	}
}

func TestModeFlags(t *testing.T) {
	assert.Equal(t, ModeStart|ModeEnd, ModeBoth)
	assert.Equal(t, Mode(0), ModeNone)

	assert.False(t, ModeNone.HasStart())
	assert.False(t, ModeNone.HasEnd())
	assert.True(t, ModeStart.HasStart())
	assert.False(t, ModeStart.HasEnd())
	assert.True(t, ModeEnd.HasEnd())
	assert.False(t, ModeEnd.HasStart())
	assert.True(t, ModeBoth.HasStart())
	assert.True(t, ModeBoth.HasEnd())

	assert.True(t, ModeBoth.Includes(ModeEnd))
	assert.False(t, ModeStart.Includes(ModeEnd))
	assert.True(t, ModeStart.Includes(ModeNone))
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeNone, ModeStart, ModeEnd, ModeBoth} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	got, err := ParseMode(" BOTH ")
	require.NoError(t, err)
	assert.Equal(t, ModeBoth, got)

	_, err = ParseMode("sideways")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEdgeOf(t *testing.T) {
	assert.Equal(t, ModeEnd, edgeOf(12))
	assert.Equal(t, ModeStart, edgeOf(-12))
	assert.Equal(t, ModeNone, edgeOf(0))
}
