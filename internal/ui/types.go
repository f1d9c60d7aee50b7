// Package ui renders a sheet as a vertical tab strip with Gio and turns
// pointer and keyboard input into events for the orchestrator.
package ui

import "github.com/justyntemme/ddtabs/internal/dnd"

// TabDragMIME is the transfer type of a dragged tab.
const TabDragMIME = "application/x-ddtabs-tab"

type UIAction int

const (
	ActionNone UIAction = iota
	ActionSwitchTab
	ActionCloseTab
	ActionBeginDrag
	ActionCancelDrag
	ActionDrop
	ActionNextTab
	ActionPrevTab
	ActionMoveTab
)

func (a UIAction) String() string {
	switch a {
	case ActionSwitchTab:
		return "switch"
	case ActionCloseTab:
		return "close"
	case ActionBeginDrag:
		return "begin-drag"
	case ActionCancelDrag:
		return "cancel-drag"
	case ActionDrop:
		return "drop"
	case ActionNextTab:
		return "next"
	case ActionPrevTab:
		return "prev"
	case ActionMoveTab:
		return "move"
	default:
		return "none"
	}
}

// UIEvent is one user intent produced by a frame.
type UIEvent struct {
	Action UIAction
	Sheet  string      // sheet the event belongs to
	Index  int         // tab the event is about
	Drag   dnd.Payload // raw drag data for ActionBeginDrag, ActionDrop and ActionMoveTab
	Target dnd.Payload // raw drop data for ActionDrop and ActionMoveTab
}
