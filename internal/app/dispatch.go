package app

import (
	"github.com/justyntemme/ddtabs/internal/ddtabs"
	"github.com/justyntemme/ddtabs/internal/debug"
	"github.com/justyntemme/ddtabs/internal/dnd"
	"github.com/justyntemme/ddtabs/internal/ui"
)

// Dispatcher applies renderer events to a sheet. It must be used from one
// goroutine, the one that runs the window loop.
type Dispatcher struct {
	Sheet *ddtabs.Sheet

	// OnDrop, if set, is called after every committed or rejected drop.
	OnDrop func(d dnd.Decision, err error)
}

// Handle applies evt. Events addressed to another sheet are ignored.
func (d *Dispatcher) Handle(evt ui.UIEvent) error {
	s := d.Sheet
	if evt.Sheet != "" && evt.Sheet != s.ComponentID() {
		debug.Log(debug.APP, "event %s for unknown sheet %s", evt.Action, evt.Sheet)
		return nil
	}

	switch evt.Action {
	case ui.ActionSwitchTab:
		return switchTab(s, evt.Index)
	case ui.ActionCloseTab:
		return closeTab(s, evt.Index)
	case ui.ActionNextTab:
		cycleTab(s, 1)
	case ui.ActionPrevTab:
		cycleTab(s, -1)
	case ui.ActionBeginDrag:
		_, err := s.BeginDrag(evt.Drag)
		return err
	case ui.ActionCancelDrag:
		s.Cancel()
	case ui.ActionDrop:
		var (
			dec dnd.Decision
			err error
		)
		if s.Pending() != nil {
			dec, err = s.Drop(evt.Target)
		} else {
			dec, err = s.HandleDrop(evt.Drag, evt.Target)
		}
		d.dropped(dec, err)
		return err
	case ui.ActionMoveTab:
		// Keyboard moves never overlap a pointer drag
		if s.Pending() != nil {
			return nil
		}
		dec, err := s.HandleDrop(evt.Drag, evt.Target)
		d.dropped(dec, err)
		return err
	}
	return nil
}

func (d *Dispatcher) dropped(dec dnd.Decision, err error) {
	debug.Log(debug.APP, "drop decided %s (err=%v)", dec, err)
	if d.OnDrop != nil {
		d.OnDrop(dec, err)
	}
}
