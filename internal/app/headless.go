package app

import (
	"fmt"

	"github.com/justyntemme/ddtabs/internal/dnd"
	"github.com/justyntemme/ddtabs/internal/ui"
)

// DropAt commits a drop of the tab at index onto the tab captioned target
// at vertical position vpos, as if it had been dragged there. An empty
// target drops past the last tab.
func (s *Session) DropAt(index int, target string, vpos float64) (dnd.Decision, error) {
	drag := dnd.Payload{dnd.KeySource: s.Sheet.ComponentID(), dnd.KeyIndex: index}
	tgt := dnd.Payload{dnd.KeyVPos: vpos}
	if target == "" {
		tgt[dnd.KeyIndex] = s.Sheet.Len()
	} else {
		id := ""
		for _, t := range s.Sheet.Tabs() {
			if t.Caption == target {
				id = t.ID
				break
			}
		}
		if id == "" {
			return dnd.Reject, fmt.Errorf("drop target %q: %w", target, dnd.ErrUnknownTab)
		}
		tgt[dnd.KeyTab] = id
	}

	var dec dnd.Decision
	d := &Dispatcher{Sheet: s.Sheet, OnDrop: func(got dnd.Decision, _ error) { dec = got }}
	err := d.Handle(ui.UIEvent{Action: ui.ActionDrop, Sheet: s.Sheet.ComponentID(), Index: index, Drag: drag, Target: tgt})
	return dec, err
}
