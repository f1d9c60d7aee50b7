package dnd

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDropRatio(t *testing.T) {
	for _, r := range []float64{0, 0.01, 0.2, 0.25, 0.49, 0.5} {
		assert.NoError(t, ValidateDropRatio(r), "ratio %v", r)
	}
	for _, r := range []float64{-0.0001, -1, 0.5001, 1, math.NaN(), math.Inf(1)} {
		err := ValidateDropRatio(r)
		require.Error(t, err, "ratio %v", r)
		assert.True(t, errors.Is(err, ErrInvalidDropRatio))
	}
}

func TestClassifyVertical(t *testing.T) {
	testCases := []struct {
		pos, ratio float64
		want       VerticalZone
	}{
		{0, 0.2, ZoneAbove},
		{0.1, 0.2, ZoneAbove},
		{0.2, 0.2, ZoneAbove}, // boundary goes to the outer zone
		{0.21, 0.2, ZoneMiddle},
		{0.5, 0.2, ZoneMiddle},
		{0.79, 0.2, ZoneMiddle},
		{1, 0.2, ZoneBelow},
		{0.9, 0.2, ZoneBelow},

		// out of range positions are clamped
		{-3, 0.2, ZoneAbove},
		{7, 0.2, ZoneBelow},

		// ratio 0 leaves only the middle zone
		{0, 0, ZoneMiddle},
		{0.5, 0, ZoneMiddle},
		{1, 0, ZoneMiddle},

		// ratio 0.5 collapses the middle zone
		{0.25, 0.5, ZoneAbove},
		{0.5, 0.5, ZoneAbove},
		{0.51, 0.5, ZoneBelow},
	}

	for _, tc := range testCases {
		got := ClassifyVertical(tc.pos, tc.ratio)
		assert.Equal(t, tc.want, got, "ClassifyVertical(%v, %v)", tc.pos, tc.ratio)
	}
}

func TestClassifyVerticalLowerBoundary(t *testing.T) {
	for _, ratio := range []float64{0.05, 0.1, 0.2, 0.3, 0.45} {
		assert.Equal(t, ZoneBelow, ClassifyVertical(1-ratio, ratio), "ratio %v", ratio)
		assert.Equal(t, ZoneAbove, ClassifyVertical(ratio, ratio), "ratio %v", ratio)
	}
}

func TestClassifyVerticalSweep(t *testing.T) {
	for _, ratio := range []float64{0.1, 0.2, 1.0 / 3, 0.4} {
		for i := 0; i <= 100; i++ {
			p := float64(i) / 100
			got := ClassifyVertical(p, ratio)
			switch {
			case p <= ratio:
				assert.Equal(t, ZoneAbove, got, "p=%v ratio=%v", p, ratio)
			case p >= 1-ratio:
				assert.Equal(t, ZoneBelow, got, "p=%v ratio=%v", p, ratio)
			default:
				assert.Equal(t, ZoneMiddle, got, "p=%v ratio=%v", p, ratio)
			}
		}
	}
}

func TestDecisionFor(t *testing.T) {
	assert.Equal(t, InsertBefore, DecisionFor(ZoneAbove))
	assert.Equal(t, InsertInto, DecisionFor(ZoneMiddle))
	assert.Equal(t, InsertAfter, DecisionFor(ZoneBelow))
	assert.Equal(t, "reject", Reject.String())
}

func TestParseZoneAndMode(t *testing.T) {
	z, err := ParseVerticalZone("Below")
	require.NoError(t, err)
	assert.Equal(t, ZoneBelow, z)

	_, err = ParseVerticalZone("sideways")
	assert.Error(t, err)

	m, err := ParseDragMode("clone_other")
	require.NoError(t, err)
	assert.Equal(t, ModeCloneOther, m)

	m, err = ParseDragMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeNone, m)

	_, err = ParseDragMode("fling")
	assert.Error(t, err)
}
