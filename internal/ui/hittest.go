package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"io"

	"github.com/justyntemme/ddtabs/internal/dnd"
)

// tabSlot is where a tab was laid out last frame, in strip coordinates.
type tabSlot struct {
	ID   string
	Rect image.Rectangle
}

// hitTest returns the index of the slot under p and the normalized
// vertical position of p inside it. Points off every slot give -1.
func hitTest(slots []tabSlot, p image.Point) (int, float64) {
	for i, s := range slots {
		if !p.In(s.Rect) {
			continue
		}
		h := s.Rect.Dy()
		if h <= 1 {
			return i, 0.5
		}
		return i, float64(p.Y-s.Rect.Min.Y) / float64(h-1)
	}
	return -1, 0
}

// zoneMarker is the rectangle painted to show a hover in zone z over r:
// a bar along the top or bottom edge for the outer zones, the whole tab
// for the middle.
func zoneMarker(r image.Rectangle, z dnd.VerticalZone, thickness int) image.Rectangle {
	switch z {
	case dnd.ZoneAbove:
		return image.Rect(r.Min.X, r.Min.Y, r.Max.X, min(r.Min.Y+thickness, r.Max.Y))
	case dnd.ZoneBelow:
		return image.Rect(r.Min.X, max(r.Max.Y-thickness, r.Min.Y), r.Max.X, r.Max.Y)
	default:
		return r
	}
}

// appendMarker is the bar painted below the last tab for drops that land
// off every tab.
func appendMarker(slots []tabSlot, width, thickness int) image.Rectangle {
	y := 0
	if n := len(slots); n > 0 {
		y = slots[n-1].Rect.Max.Y
	}
	return image.Rect(0, y, width, y+thickness)
}

// hover is the client-side view of a drag over the strip.
type hover struct {
	Index    int // tab under the pointer, -1 when off every tab
	TabID    string
	Pos      float64
	Zone     dnd.VerticalZone
	Accepted bool
}

// target returns the raw drop data for the hovered spot.
func (h hover) target() dnd.Payload {
	p := dnd.Payload{dnd.KeyVPos: h.Pos}
	if h.TabID != "" {
		p[dnd.KeyTab] = h.TabID
	} else {
		p[dnd.KeyIndex] = h.Index
	}
	return p
}

func encodePayload(p dnd.Payload) io.ReadCloser {
	b, err := json.Marshal(p)
	if err != nil {
		b = []byte("{}")
	}
	return io.NopCloser(bytes.NewReader(b))
}

// decodePayload reads transferred drag data. Numbers stay json.Number so
// indices survive unchanged.
func decodePayload(r io.Reader) (dnd.Payload, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var p dnd.Payload
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode drag data: %w", err)
	}
	if p == nil {
		p = dnd.Payload{}
	}
	return p, nil
}
