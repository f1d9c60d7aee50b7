// Package dnd holds the drag-and-drop vocabulary shared by the tab sheet
// coordinator and the rendering surface: payloads, transferables, target
// details, drag filters, accept criteria and drop handlers.
package dnd

// Component is anything that can be placed in a container or dragged.
type Component interface {
	ComponentID() string
}

// Ref is a bare component reference, identified only by its id.
type Ref string

func (r Ref) ComponentID() string { return string(r) }

// Captioner is implemented by components that carry a display caption.
type Captioner interface {
	Caption() string
}

// CaptionOf returns the caption of c, falling back to its id.
func CaptionOf(c Component) string {
	if c == nil {
		return ""
	}
	if cp, ok := c.(Captioner); ok && cp.Caption() != "" {
		return cp.Caption()
	}
	return c.ComponentID()
}

// SameComponent reports whether a and b refer to the same component id.
func SameComponent(a, b Component) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ComponentID() == b.ComponentID()
}
