package ddtabs

import (
	"fmt"

	"github.com/justyntemme/ddtabs/internal/debug"
	"github.com/justyntemme/ddtabs/internal/dnd"
	"github.com/justyntemme/ddtabs/internal/tabsheet"
)

// Phase is where a sheet is in the drag lifecycle.
type Phase int

const (
	PhaseIdle      Phase = iota // no handler advertised, or nothing pushed yet
	PhaseArmed                  // criterion sent, waiting for a drag
	PhaseHover                  // a drag started; hovering is surface-local
	PhaseCommitted              // the handler is running
)

func (p Phase) String() string {
	switch p {
	case PhaseArmed:
		return "armed"
	case PhaseHover:
		return "hover"
	case PhaseCommitted:
		return "committed"
	default:
		return "idle"
	}
}

// Phase returns the current lifecycle phase.
func (s *Sheet) Phase() Phase { return s.phase }

// Pending returns the Transferable of the drag in progress, or nil.
func (s *Sheet) Pending() *dnd.Transferable { return s.pending }

// Transferable resolves raw drag data into a Transferable.
//
// A positional "index" picks the child at that index in the current
// order; an out of range index leaves the item unresolved, which means the
// whole container is the payload. An explicit "component" id picks that
// child. With neither key the container itself is the dragged item. The
// child order is read, and the index resolved, under the sheet's lock.
func (s *Sheet) Transferable(raw dnd.Payload) *dnd.Transferable {
	var (
		item  dnd.Component
		index = -1
	)
	idx, hasIndex := raw.Int(dnd.KeyIndex)
	id, hasID := raw.String(dnd.KeyComponent)

	s.View(func(tabs []*tabsheet.Tab) {
		switch {
		case hasIndex:
			if idx >= 0 && idx < len(tabs) {
				item, index = tabs[idx].Content, idx
			}
		case hasID:
			if id == s.ComponentID() {
				item = s.TabSheet
				return
			}
			for i, t := range tabs {
				if t.Content != nil && t.Content.ComponentID() == id {
					item, index = t.Content, i
					break
				}
			}
		default:
			item = s.TabSheet
		}
	})

	if (hasIndex || hasID) && item == nil {
		debug.Log(debug.DND, "sheet %s: drag item unresolved (index=%v id=%q), dragging the container", s.ComponentID(), raw[dnd.KeyIndex], id)
	}
	return dnd.NewTransferable(s.TabSheet, item, index, raw)
}

// TargetDetails resolves raw drop data into TargetDetails. The target tab
// comes from "tab" (an id) or "index"; the vertical zone is classified from
// "vpos" with the current drop ratio. A missing position counts as the
// middle of the tab.
func (s *Sheet) TargetDetails(raw dnd.Payload) *dnd.TargetDetails {
	spec := dnd.TargetSpec{Target: s.TabSheet, TabIndex: -1, Position: 0.5}
	if pos, ok := raw.Float(dnd.KeyVPos); ok {
		spec.Position = pos
	}
	spec.Zone = dnd.ClassifyVertical(spec.Position, s.cfg.DropRatio)

	tabID, hasTab := raw.String(dnd.KeyTab)
	idx, hasIndex := raw.Int(dnd.KeyIndex)
	s.View(func(tabs []*tabsheet.Tab) {
		for i, t := range tabs {
			if (hasTab && t.ID == tabID) || (!hasTab && hasIndex && i == idx) {
				spec.TabID, spec.TabIndex, spec.Content = t.ID, i, t.Content
				return
			}
		}
	})
	return dnd.NewTargetDetails(spec, raw)
}

// Decide interprets a drop of t at d without performing it: Reject when
// the sheet has no handler, is disabled or the criterion says no, else the
// insert decision for the vertical zone.
func (s *Sheet) Decide(t *dnd.Transferable, d *dnd.TargetDetails) dnd.Decision {
	if s.handler == nil || !s.Enabled() {
		return dnd.Reject
	}
	c := s.handler.AcceptCriterion()
	if c != nil && !c.Accepts(dnd.DropEvent{Transferable: t, Target: d}) {
		return dnd.Reject
	}
	return dnd.DecisionFor(d.Zone())
}

// Evaluate resolves raw drag and drop data and decides, with no side
// effects. Surfaces without a local criterion evaluator use it to hover.
func (s *Sheet) Evaluate(rawDrag, rawTarget dnd.Payload) dnd.Decision {
	return s.Decide(s.Transferable(rawDrag), s.TargetDetails(rawTarget))
}

// BeginDrag records the start of a drag out of this sheet. Only one drag
// can be pending at a time.
func (s *Sheet) BeginDrag(raw dnd.Payload) (*dnd.Transferable, error) {
	if s.pending != nil {
		return nil, fmt.Errorf("sheet %s: %w", s.ComponentID(), dnd.ErrDragInProgress)
	}
	if s.cfg.DragMode == dnd.ModeNone {
		debug.Log(debug.DND, "sheet %s: drag started while drag mode is none", s.ComponentID())
	}
	s.pending = s.Transferable(raw)
	s.phase = PhaseHover
	debug.Log(debug.DND, "sheet %s: drag started, item=%v", s.ComponentID(), s.pending.Item())
	return s.pending, nil
}

// Cancel abandons the pending drag. No handler is called.
func (s *Sheet) Cancel() {
	if s.pending == nil && s.phase != PhaseHover {
		return
	}
	s.pending = nil
	s.settle()
	debug.Log(debug.DND, "sheet %s: drag cancelled", s.ComponentID())
}

// Drop commits the pending drag at rawTarget.
func (s *Sheet) Drop(rawTarget dnd.Payload) (dnd.Decision, error) {
	if s.pending == nil {
		return dnd.Reject, fmt.Errorf("sheet %s: %w", s.ComponentID(), dnd.ErrNoPendingDrag)
	}
	t := s.pending
	s.pending = nil
	return s.Receive(t, rawTarget)
}

// HandleDrop resolves rawDrag against this sheet and commits it at
// rawTarget in one step.
func (s *Sheet) HandleDrop(rawDrag, rawTarget dnd.Payload) (dnd.Decision, error) {
	if s.pending != nil {
		return dnd.Reject, fmt.Errorf("sheet %s: %w", s.ComponentID(), dnd.ErrDragInProgress)
	}
	return s.Receive(s.Transferable(rawDrag), rawTarget)
}

// Receive commits a drop of t, which may come from another container, at
// rawTarget. Rejected drops return Reject and a nil error. An error from
// the handler is returned as is.
func (s *Sheet) Receive(t *dnd.Transferable, rawTarget dnd.Payload) (dnd.Decision, error) {
	defer s.settle()

	if !s.Enabled() {
		return dnd.Reject, fmt.Errorf("sheet %s: %w", s.ComponentID(), dnd.ErrDisabled)
	}
	if s.handler == nil {
		return dnd.Reject, fmt.Errorf("sheet %s: %w", s.ComponentID(), dnd.ErrNoDropHandler)
	}

	d := s.TargetDetails(rawTarget)
	decision := s.Decide(t, d)
	if decision == dnd.Reject {
		debug.Log(debug.DND, "sheet %s: drop rejected (tab=%q zone=%s)", s.ComponentID(), d.TabID(), d.Zone())
		return dnd.Reject, nil
	}

	s.phase = PhaseCommitted
	debug.Log(debug.DND, "sheet %s: drop %s tab=%q", s.ComponentID(), decision, d.TabID())
	if err := s.handler.Drop(dnd.DropEvent{Transferable: t, Target: d}); err != nil {
		return decision, err
	}
	s.MarkDirty()
	return decision, nil
}

// settle returns to IDLE after a drag ends; the next Sync arms again.
func (s *Sheet) settle() {
	if s.pending == nil {
		s.phase = PhaseIdle
	}
}
