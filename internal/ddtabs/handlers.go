package ddtabs

import (
	"context"
	"fmt"
	"time"

	"github.com/justyntemme/ddtabs/internal/debug"
	"github.com/justyntemme/ddtabs/internal/dnd"
	"github.com/justyntemme/ddtabs/internal/tabsheet"
)

// ReorderHandler rearranges tabs on drop. A tab dropped ABOVE or BELOW a
// target lands before or after it; MIDDLE puts it in the target's slot and
// selects it. Components dragged out of another sheet are detached from it
// and adopted. Dropping a whole container is ignored.
type ReorderHandler struct {
	Criterion dnd.AcceptCriterion
}

// NewReorderHandler returns a ReorderHandler gated by c; nil accepts all.
func NewReorderHandler(c dnd.AcceptCriterion) *ReorderHandler {
	return &ReorderHandler{Criterion: c}
}

func (h *ReorderHandler) AcceptCriterion() dnd.AcceptCriterion {
	if h.Criterion == nil {
		return dnd.AcceptAll()
	}
	return h.Criterion
}

func (h *ReorderHandler) Drop(e dnd.DropEvent) error {
	t, d := e.Transferable, e.Target
	if t == nil || d == nil || t.WholeContainer() {
		debug.Log(debug.DND, "reorder: nothing to move")
		return nil
	}
	dst, ok := d.Target().(*tabsheet.TabSheet)
	if !ok {
		return fmt.Errorf("reorder: target %T is not a tab sheet", d.Target())
	}

	item := t.Item()
	if from := dst.IndexOfComponent(item); from >= 0 {
		return moveWithin(dst, from, d)
	}

	tab, _ := detachFrom(t.Source(), item)
	if tab == nil {
		tab = &tabsheet.Tab{
			ID:       "tab-" + item.ComponentID(),
			Caption:  dnd.CaptionOf(item),
			Content:  item,
			Closable: true,
			Enabled:  true,
		}
	}
	at := insertionPoint(dst.Len(), d)
	dst.InsertTab(tab, at)
	debug.Log(debug.DND, "reorder: adopted %q into %s at %d", tab.Caption, dst.ComponentID(), at)
	if d.OnTab() && d.Zone() == dnd.ZoneMiddle {
		return dst.Select(at)
	}
	return nil
}

func moveWithin(s *tabsheet.TabSheet, from int, d *dnd.TargetDetails) error {
	n := s.Len()
	to := insertionPoint(n, d)
	if d.OnTab() && d.Zone() == dnd.ZoneMiddle {
		to = d.TabIndex()
	} else if from < to {
		// the dragged tab leaves a hole before the insertion point
		to--
	}
	if to >= n {
		to = n - 1
	}
	if err := s.MoveTab(from, to); err != nil {
		return fmt.Errorf("reorder: %w", err)
	}
	debug.Log(debug.DND, "reorder: %s moved %d -> %d", s.ComponentID(), from, to)
	if d.OnTab() && d.Zone() == dnd.ZoneMiddle {
		return s.Select(to)
	}
	return nil
}

// insertionPoint is the index in an n-tab sheet that a drop at d inserts
// before. Drops off any tab append.
func insertionPoint(n int, d *dnd.TargetDetails) int {
	if !d.OnTab() {
		return n
	}
	if d.Zone() == dnd.ZoneBelow {
		return d.TabIndex() + 1
	}
	return d.TabIndex()
}

func detachFrom(src dnd.Component, item dnd.Component) (*tabsheet.Tab, bool) {
	switch s := src.(type) {
	case *tabsheet.TabSheet:
		return s.Detach(item)
	case *Sheet:
		return s.Detach(item)
	}
	return nil, false
}

// OrderSaver persists the caption order of a sheet.
type OrderSaver interface {
	SaveOrder(ctx context.Context, sheet string, captions []string) error
}

// saveTimeout bounds one SaveOrder call made after a drop.
const saveTimeout = 5 * time.Second

// PersistingHandler runs Inner and then saves the target sheet's order.
// A failing save is reported as the drop's error.
type PersistingHandler struct {
	Inner dnd.DropHandler
	Saver OrderSaver
	Key   string // sheet key used with the saver; defaults to the target id
}

func (p *PersistingHandler) AcceptCriterion() dnd.AcceptCriterion {
	return p.Inner.AcceptCriterion()
}

func (p *PersistingHandler) Drop(e dnd.DropEvent) error {
	if err := p.Inner.Drop(e); err != nil {
		return err
	}
	dst, ok := e.Target.Target().(*tabsheet.TabSheet)
	if !ok || p.Saver == nil {
		return nil
	}
	key := p.Key
	if key == "" {
		key = dst.ComponentID()
	}
	tabs := dst.Tabs()
	captions := make([]string, len(tabs))
	for i, t := range tabs {
		captions[i] = t.Caption
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := p.Saver.SaveOrder(ctx, key, captions); err != nil {
		return fmt.Errorf("save order of %s: %w", key, err)
	}
	return nil
}
