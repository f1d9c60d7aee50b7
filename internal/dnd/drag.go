package dnd

import (
	"fmt"
	"strings"
)

// DragMode is the interaction style used by the rendering surface when a
// child is dragged. The core only forwards it.
type DragMode int

const (
	ModeNone       DragMode = iota // dragging disabled
	ModeClone                      // drag a copy of the whole tab
	ModeCaption                    // drag the caption only
	ModeCloneOther                 // clone, but only for children of other containers
)

func (m DragMode) String() string {
	switch m {
	case ModeClone:
		return "clone"
	case ModeCaption:
		return "caption"
	case ModeCloneOther:
		return "clone_other"
	default:
		return "none"
	}
}

func (m DragMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *DragMode) UnmarshalText(b []byte) error {
	v, err := ParseDragMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseDragMode parses the textual form of a DragMode.
func ParseDragMode(s string) (DragMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ModeNone, nil
	case "clone":
		return ModeClone, nil
	case "caption":
		return ModeCaption, nil
	case "clone_other", "clone-other":
		return ModeCloneOther, nil
	}
	return ModeNone, fmt.Errorf("unknown drag mode %q", s)
}

// DragFilter decides whether a child component may be dragged.
type DragFilter interface {
	IsDraggable(c Component) bool
}

// DragFilterFunc adapts a function to DragFilter.
type DragFilterFunc func(c Component) bool

func (f DragFilterFunc) IsDraggable(c Component) bool { return f(c) }

type constFilter bool

func (f constFilter) IsDraggable(Component) bool { return bool(f) }

var (
	// AllDraggable lets every child be dragged.
	AllDraggable DragFilter = constFilter(true)
	// NoneDraggable pins every child.
	NoneDraggable DragFilter = constFilter(false)
)

// ExcludeCaptions returns a filter that pins children whose caption is in
// captions and lets everything else be dragged.
func ExcludeCaptions(captions ...string) DragFilter {
	pinned := make(map[string]bool, len(captions))
	for _, c := range captions {
		pinned[c] = true
	}
	return captionFilter(pinned)
}

type captionFilter map[string]bool

func (f captionFilter) IsDraggable(c Component) bool {
	return !f[CaptionOf(c)]
}
