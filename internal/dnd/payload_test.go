package dnd

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadInt(t *testing.T) {
	testCases := []struct {
		name  string
		value any
		want  int
		ok    bool
	}{
		{"int", 3, 3, true},
		{"int64", int64(4), 4, true},
		{"integral float", 5.0, 5, true},
		{"fractional float", 5.5, 0, false},
		{"json number", json.Number("6"), 6, true},
		{"numeric string", "7", 7, true},
		{"word", "seven", 0, false},
		{"nil", nil, 0, false},
		{"small uint", uint(8), 8, true},
		{"uint past int range", uint(math.MaxUint), 0, false},
		{"float past int range", 1e19, 0, false},
		{"float at 2^63", float64(1 << 63), 0, false},
		{"negative float past int range", -1e19, 0, false},
		{"json number past int range", json.Number("18446744073709551615"), 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Payload{KeyIndex: tc.value}.Int(KeyIndex)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPayloadFromJSON(t *testing.T) {
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(`{"index": 2, "vpos": 0.75, "tab": "t-1"}`), &p))

	idx, ok := p.Int(KeyIndex)
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	pos, ok := p.Float(KeyVPos)
	require.True(t, ok)
	assert.InDelta(t, 0.75, pos, 1e-9)

	tab, ok := p.String(KeyTab)
	require.True(t, ok)
	assert.Equal(t, "t-1", tab)

	assert.False(t, p.Has(KeyComponent))
}

func TestPayloadStringFromComponent(t *testing.T) {
	p := Payload{KeyComponent: Ref("panel-9")}
	id, ok := p.String(KeyComponent)
	require.True(t, ok)
	assert.Equal(t, "panel-9", id)
}

func TestPayloadClone(t *testing.T) {
	var nilPayload Payload
	assert.NotNil(t, nilPayload.Clone())

	p := Payload{"a": 1}
	c := p.Clone()
	c["b"] = 2
	assert.Len(t, p, 1)
	assert.Equal(t, []string{"a", "b"}, c.Keys())
}
