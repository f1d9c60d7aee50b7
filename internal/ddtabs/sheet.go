// Package ddtabs adds drag-and-drop coordination to a tab sheet.
//
// A Sheet owns the drag configuration of one container (drag mode, drag
// filter, shim flag, drop ratio), turns raw gesture data from the rendering
// surface into Transferables and TargetDetails, consults the registered
// DropHandler and rebuilds the set of draggable children every time state
// is pushed to the surface.
//
// All methods are meant to be called from the single goroutine that owns
// the UI. The embedded TabSheet is the only part guarded by a lock, which
// keeps index resolution consistent with concurrent structural mutation.
package ddtabs

import (
	"fmt"
	"reflect"

	"github.com/justyntemme/ddtabs/internal/debug"
	"github.com/justyntemme/ddtabs/internal/dnd"
	"github.com/justyntemme/ddtabs/internal/surface"
	"github.com/justyntemme/ddtabs/internal/tabsheet"
)

// Config is the drag configuration of one container. A Sheet keeps a
// pointer to it; go through the Sheet setters so changes reach the surface.
type Config struct {
	DragMode    dnd.DragMode
	Filter      dnd.DragFilter
	ShimEnabled bool
	DropRatio   float64
}

// DefaultConfig returns dragging disabled, every child draggable once a
// mode is set, no shims and the default drop ratio.
func DefaultConfig() *Config {
	return &Config{
		DragMode:  dnd.ModeNone,
		Filter:    dnd.AllDraggable,
		DropRatio: dnd.DefaultDropRatio,
	}
}

// Sheet is a TabSheet with drag-and-drop support.
type Sheet struct {
	*tabsheet.TabSheet

	cfg     *Config
	handler dnd.DropHandler

	phase   Phase
	pending *dnd.Transferable

	// draggable is the set computed by the last Sync, kept for inspection
	// only; Sync never reads it back.
	draggable []string
}

// New wraps ts. A nil cfg gets DefaultConfig; an invalid drop ratio in cfg
// is reported as an error.
func New(ts *tabsheet.TabSheet, cfg *Config) (*Sheet, error) {
	if ts == nil {
		ts = tabsheet.New("")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := dnd.ValidateDropRatio(cfg.DropRatio); err != nil {
		return nil, fmt.Errorf("new sheet %s: %w", ts.ComponentID(), err)
	}
	if cfg.Filter == nil {
		cfg.Filter = dnd.AllDraggable
	}
	return &Sheet{TabSheet: ts, cfg: cfg, phase: PhaseIdle}, nil
}

// Config returns the configuration object the sheet works on.
func (s *Sheet) Config() *Config { return s.cfg }

// DragMode returns the current drag mode.
func (s *Sheet) DragMode() dnd.DragMode { return s.cfg.DragMode }

// SetDragMode changes the drag mode; an unchanged value is a no-op.
func (s *Sheet) SetDragMode(m dnd.DragMode) {
	if s.cfg.DragMode == m {
		return
	}
	s.cfg.DragMode = m
	s.MarkDirty()
	debug.Log(debug.DND, "sheet %s: drag mode %s", s.ComponentID(), m)
}

// DragFilter returns the current drag filter.
func (s *Sheet) DragFilter() dnd.DragFilter { return s.cfg.Filter }

// SetDragFilter replaces the drag filter. It is applied at the next Sync;
// nil restores AllDraggable. Setting the same filter again is a no-op,
// except for func filters, which are always applied.
func (s *Sheet) SetDragFilter(f dnd.DragFilter) {
	if f == nil {
		f = dnd.AllDraggable
	}
	if sameValue(s.cfg.Filter, f) {
		return
	}
	s.cfg.Filter = f
	s.MarkDirty()
	debug.Log(debug.DND, "sheet %s: drag filter replaced", s.ComponentID())
}

// ShimEnabled reports whether overlay shims are requested during drags.
func (s *Sheet) ShimEnabled() bool { return s.cfg.ShimEnabled }

// SetShimEnabled toggles the shim flag.
func (s *Sheet) SetShimEnabled(on bool) {
	if s.cfg.ShimEnabled == on {
		return
	}
	s.cfg.ShimEnabled = on
	s.MarkDirty()
}

// DropRatio returns the drop ratio.
func (s *Sheet) DropRatio() float64 { return s.cfg.DropRatio }

// SetDropRatio sets the ratio splitting each tab into ABOVE, MIDDLE and
// BELOW. Values outside [0, 0.5] are rejected and the old value is kept.
func (s *Sheet) SetDropRatio(r float64) error {
	if err := dnd.ValidateDropRatio(r); err != nil {
		return fmt.Errorf("sheet %s: %w", s.ComponentID(), err)
	}
	if s.cfg.DropRatio == r {
		return nil
	}
	s.cfg.DropRatio = r
	s.MarkDirty()
	return nil
}

// DropHandler returns the active drop handler, or nil.
func (s *Sheet) DropHandler() dnd.DropHandler { return s.handler }

// SetDropHandler replaces the drop handler. nil stops the sheet from
// advertising itself as a drop target.
func (s *Sheet) SetDropHandler(h dnd.DropHandler) {
	if h == nil && s.handler == nil {
		return
	}
	if h != nil && s.handler != nil && sameValue(s.handler, h) {
		return
	}
	s.handler = h
	s.MarkDirty()
	debug.Log(debug.DND, "sheet %s: drop handler set=%v", s.ComponentID(), h != nil)
}

// Draggable returns the content ids found draggable by the last Sync.
func (s *Sheet) Draggable() []string {
	out := make([]string, len(s.draggable))
	copy(out, s.draggable)
	return out
}

// Sync builds the state to push to the surface. The draggable set is
// recomputed from the current children and the current filter every time,
// and the acceptance criterion is attached only when a handler is set and
// the sheet is enabled.
func (s *Sheet) Sync() surface.State {
	filter := s.cfg.Filter
	if filter == nil {
		filter = dnd.AllDraggable
	}

	st := surface.State{
		ID:          s.ComponentID(),
		Enabled:     s.Enabled(),
		DragMode:    s.cfg.DragMode,
		ShimEnabled: s.cfg.ShimEnabled,
		DropRatio:   s.cfg.DropRatio,
		Selected:    s.Selected(),
		Draggable:   []string{},
	}

	// The filter runs on a snapshot, outside the lock, so it may query
	// the sheet.
	tabs := s.Tabs()
	st.Tabs = make([]surface.TabState, 0, len(tabs))
	for _, t := range tabs {
		draggable := t.Content != nil && filter.IsDraggable(t.Content)
		if draggable {
			st.Draggable = append(st.Draggable, t.Content.ComponentID())
		}
		st.Tabs = append(st.Tabs, surface.TabState{
			ID:        t.ID,
			Caption:   t.Caption,
			Closable:  t.Closable,
			Enabled:   t.Enabled,
			Draggable: draggable,
		})
	}
	s.draggable = st.Draggable

	if s.handler != nil && st.Enabled {
		if c := s.handler.AcceptCriterion(); c != nil {
			desc := c.Descriptor()
			st.AcceptCriterion = &desc
		}
	}

	switch {
	case st.AcceptCriterion != nil && s.phase == PhaseIdle:
		s.phase = PhaseArmed
	case st.AcceptCriterion == nil && s.phase == PhaseArmed:
		s.phase = PhaseIdle
	}

	s.ClearDirty()
	debug.Log(debug.SYNC, "sheet %s: synced %d tabs, %d draggable, criterion=%v",
		st.ID, len(st.Tabs), len(st.Draggable), st.AcceptCriterion != nil)
	return st
}

// Push syncs and hands the state to surf. Nothing is pushed when the sheet
// is clean unless force is set.
func (s *Sheet) Push(surf surface.Surface, force bool) (bool, error) {
	if !force && !s.Dirty() {
		return false, nil
	}
	if err := surf.Push(s.Sync()); err != nil {
		s.MarkDirty()
		return false, err
	}
	return true, nil
}

// sameValue compares two interface values without panicking on
// uncomparable dynamic types. Maps are the same when they are the same
// instance. Funcs and slices are never the same: closures of one literal
// share a code pointer, and slices sharing a backing array may differ in
// length.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	switch ta.Kind() {
	case reflect.Func, reflect.Slice:
		return false
	case reflect.Map:
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	if !ta.Comparable() {
		return false
	}
	return a == b
}
