package ui

import (
	"encoding/json"
	"image"
	"strings"
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/ddtabs/internal/dnd"
)

func stripSlots(ids ...string) []tabSlot {
	var slots []tabSlot
	for i, id := range ids {
		slots = append(slots, tabSlot{ID: id, Rect: image.Rect(0, i*11, 100, (i+1)*11)})
	}
	return slots
}

func TestHitTest(t *testing.T) {
	slots := stripSlots("a", "b", "c")

	tests := []struct {
		name string
		p    image.Point
		idx  int
		pos  float64
	}{
		{"top edge of first", image.Pt(5, 0), 0, 0},
		{"bottom edge of first", image.Pt(5, 10), 0, 1},
		{"middle of second", image.Pt(50, 16), 1, 0.5},
		{"last row", image.Pt(99, 32), 2, 1},
		{"below the strip", image.Pt(5, 40), -1, 0},
		{"right of the strip", image.Pt(100, 5), -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, pos := hitTest(slots, tt.p)
			assert.Equal(t, tt.idx, idx)
			assert.InDelta(t, tt.pos, pos, 1e-9)
		})
	}

	idx, _ := hitTest(nil, image.Pt(0, 0))
	assert.Equal(t, -1, idx)
}

func TestHitTestThinSlot(t *testing.T) {
	idx, pos := hitTest([]tabSlot{{ID: "a", Rect: image.Rect(0, 0, 10, 1)}}, image.Pt(1, 0))
	assert.Equal(t, 0, idx)
	assert.Equal(t, 0.5, pos)
}

func TestHitTestFeedsZones(t *testing.T) {
	slots := stripSlots("a")
	zoneAt := func(y int) dnd.VerticalZone {
		_, pos := hitTest(slots, image.Pt(1, y))
		return dnd.ClassifyVertical(pos, 0.2)
	}
	assert.Equal(t, dnd.ZoneAbove, zoneAt(0))
	assert.Equal(t, dnd.ZoneAbove, zoneAt(2))
	assert.Equal(t, dnd.ZoneMiddle, zoneAt(5))
	assert.Equal(t, dnd.ZoneBelow, zoneAt(9))
	assert.Equal(t, dnd.ZoneBelow, zoneAt(10))
}

func TestZoneMarker(t *testing.T) {
	r := image.Rect(0, 20, 100, 56)
	assert.Equal(t, image.Rect(0, 20, 100, 23), zoneMarker(r, dnd.ZoneAbove, 3))
	assert.Equal(t, image.Rect(0, 53, 100, 56), zoneMarker(r, dnd.ZoneBelow, 3))
	assert.Equal(t, r, zoneMarker(r, dnd.ZoneMiddle, 3))

	// Thicker than the tab stays inside it
	assert.Equal(t, r, zoneMarker(r, dnd.ZoneAbove, 100))
}

func TestAppendMarker(t *testing.T) {
	assert.Equal(t, image.Rect(0, 0, 80, 2), appendMarker(nil, 80, 2))
	assert.Equal(t, image.Rect(0, 22, 100, 24), appendMarker(stripSlots("a", "b"), 100, 2))
}

func TestHoverTarget(t *testing.T) {
	on := hover{Index: 1, TabID: "t2", Pos: 0.75, Zone: dnd.ZoneBelow}
	p := on.target()
	id, ok := p.String(dnd.KeyTab)
	require.True(t, ok)
	assert.Equal(t, "t2", id)
	assert.False(t, p.Has(dnd.KeyIndex))
	v, ok := p.Float(dnd.KeyVPos)
	require.True(t, ok)
	assert.Equal(t, 0.75, v)

	off := hover{Index: 3}
	p = off.target()
	assert.False(t, p.Has(dnd.KeyTab))
	idx, ok := p.Int(dnd.KeyIndex)
	require.True(t, ok)
	assert.Equal(t, 3, idx)
}

func TestPayloadTransfer(t *testing.T) {
	rc := encodePayload(dnd.Payload{dnd.KeySource: "sheet", dnd.KeyIndex: 2})
	p, err := decodePayload(rc)
	require.NoError(t, err)

	src, _ := p.String(dnd.KeySource)
	assert.Equal(t, "sheet", src)
	idx, ok := p.Int(dnd.KeyIndex)
	require.True(t, ok)
	assert.Equal(t, 2, idx)
	assert.IsType(t, json.Number(""), p[dnd.KeyIndex])
}

func TestDecodePayloadErrors(t *testing.T) {
	_, err := decodePayload(strings.NewReader("not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode drag data")

	p, err := decodePayload(strings.NewReader("null"))
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestPointerIn(t *testing.T) {
	assert.Equal(t, image.Pt(13, 52), pointerIn(image.Pt(0, 44), f32.Pt(12.6, 7.8)))
}
