package dnd

import (
	"fmt"
	"strings"
)

// VerticalZone is the vertical third of a tab a drop landed in.
type VerticalZone int

const (
	ZoneMiddle VerticalZone = iota
	ZoneAbove
	ZoneBelow
)

func (z VerticalZone) String() string {
	switch z {
	case ZoneAbove:
		return "above"
	case ZoneBelow:
		return "below"
	default:
		return "middle"
	}
}

func (z VerticalZone) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

func (z *VerticalZone) UnmarshalText(b []byte) error {
	v, err := ParseVerticalZone(string(b))
	if err != nil {
		return err
	}
	*z = v
	return nil
}

// ParseVerticalZone parses "above", "middle" or "below" (case-insensitive).
func ParseVerticalZone(s string) (VerticalZone, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "above", "top":
		return ZoneAbove, nil
	case "middle", "center":
		return ZoneMiddle, nil
	case "below", "bottom":
		return ZoneBelow, nil
	}
	return ZoneMiddle, fmt.Errorf("unknown vertical zone %q", s)
}

// Drop ratio bounds and default.
const (
	MinDropRatio     = 0.0
	MaxDropRatio     = 0.5
	DefaultDropRatio = 0.2
)

// ValidateDropRatio returns ErrInvalidDropRatio, wrapped with the offending
// value, when ratio is outside [MinDropRatio, MaxDropRatio].
func ValidateDropRatio(ratio float64) error {
	// written as a negated range check so NaN is rejected too
	if !(ratio >= MinDropRatio && ratio <= MaxDropRatio) {
		return fmt.Errorf("%w: got %v", ErrInvalidDropRatio, ratio)
	}
	return nil
}

// ClassifyVertical maps a normalized vertical position pos within a tab to
// a zone using ratio: ABOVE if pos <= ratio, BELOW if pos >= 1-ratio,
// MIDDLE otherwise. Boundaries belong to the outer zones. A ratio of zero
// collapses the outer zones so everything is MIDDLE. Positions outside
// [0, 1] are clamped.
func ClassifyVertical(pos, ratio float64) VerticalZone {
	if ratio <= 0 {
		return ZoneMiddle
	}
	if pos < 0 {
		pos = 0
	} else if pos > 1 {
		pos = 1
	}
	switch {
	case pos <= ratio:
		return ZoneAbove
	case pos >= 1-ratio:
		return ZoneBelow
	default:
		return ZoneMiddle
	}
}

// Decision is the semantic interpretation of a drop.
type Decision int

const (
	Reject Decision = iota
	InsertBefore
	InsertInto
	InsertAfter
)

func (d Decision) String() string {
	switch d {
	case InsertBefore:
		return "insert-before"
	case InsertInto:
		return "insert-into"
	case InsertAfter:
		return "insert-after"
	default:
		return "reject"
	}
}

// DecisionFor returns the insert decision for an accepted drop in zone z.
func DecisionFor(z VerticalZone) Decision {
	switch z {
	case ZoneAbove:
		return InsertBefore
	case ZoneBelow:
		return InsertAfter
	default:
		return InsertInto
	}
}
