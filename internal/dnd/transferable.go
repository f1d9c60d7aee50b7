package dnd

// Transferable describes what is being dragged. It is immutable once built:
// the payload is copied on the way in and on the way out.
type Transferable struct {
	source Component
	item   Component
	index  int
	data   Payload
}

// NewTransferable builds a Transferable. item may be nil when the dragged
// item could not be resolved; index is -1 when the drag was not positional.
func NewTransferable(source, item Component, index int, data Payload) *Transferable {
	return &Transferable{source: source, item: item, index: index, data: data.Clone()}
}

// Source returns the container the drag started in.
func (t *Transferable) Source() Component { return t.source }

// Item returns the resolved dragged item, or nil when unresolved.
func (t *Transferable) Item() Component { return t.item }

// Resolved reports whether a dragged item was resolved.
func (t *Transferable) Resolved() bool { return t.item != nil }

// Dragged returns the item, or the source container when nothing was
// resolved: an unresolved drag carries the whole container.
func (t *Transferable) Dragged() Component {
	if t.item != nil {
		return t.item
	}
	return t.source
}

// WholeContainer reports whether the container itself is the payload.
func (t *Transferable) WholeContainer() bool {
	return t.item == nil || SameComponent(t.item, t.source)
}

// Index returns the positional index the item was resolved from, or -1.
func (t *Transferable) Index() int { return t.index }

// Data returns the value stored under key.
func (t *Transferable) Data(key string) (any, bool) {
	v, ok := t.data[key]
	return v, ok
}

// Keys returns the payload keys in sorted order.
func (t *Transferable) Keys() []string { return t.data.Keys() }

// Payload returns a copy of the raw payload.
func (t *Transferable) Payload() Payload { return t.data.Clone() }
