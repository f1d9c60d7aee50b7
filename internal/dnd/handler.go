package dnd

// DropEvent is what a DropHandler receives when a drop is committed.
type DropEvent struct {
	Transferable *Transferable
	Target       *TargetDetails
}

// Probe returns the id-only view of e that accept criteria evaluate.
func (e DropEvent) Probe() Probe {
	var p Probe
	if t := e.Transferable; t != nil {
		if t.Source() != nil {
			p.SourceID = t.Source().ComponentID()
		}
		if t.Item() != nil {
			p.ItemID = t.Item().ComponentID()
		}
	}
	if d := e.Target; d != nil {
		if d.Target() != nil {
			p.TargetID = d.Target().ComponentID()
		}
		p.TabID = d.TabID()
		p.Zone = d.Zone()
	}
	return p
}

// DropHandler decides which drops a container accepts and performs them.
//
// AcceptCriterion is serialized into the state pushed to the rendering
// surface so the surface can gate drops locally while hovering. Drop is
// called synchronously when a drop is committed; an error it returns is
// passed back to the caller of the commit untouched.
type DropHandler interface {
	AcceptCriterion() AcceptCriterion
	Drop(e DropEvent) error
}

// HandlerFunc pairs a criterion with a drop function.
type HandlerFunc struct {
	Criterion AcceptCriterion
	Fn        func(e DropEvent) error
}

// NewDropHandler returns a DropHandler accepting what c accepts and running
// fn on drop. A nil c accepts everything.
func NewDropHandler(c AcceptCriterion, fn func(e DropEvent) error) *HandlerFunc {
	return &HandlerFunc{Criterion: c, Fn: fn}
}

func (h *HandlerFunc) AcceptCriterion() AcceptCriterion {
	if h.Criterion == nil {
		return AcceptAll()
	}
	return h.Criterion
}

func (h *HandlerFunc) Drop(e DropEvent) error {
	if h.Fn == nil {
		return nil
	}
	return h.Fn(e)
}
