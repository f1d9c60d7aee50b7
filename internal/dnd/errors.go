package dnd

import "errors"

var (
	// ErrInvalidDropRatio is returned when a drop ratio falls outside [0, 0.5].
	ErrInvalidDropRatio = errors.New("drop ratio must be within [0, 0.5]")
	// ErrNoDropHandler is returned when a drop is committed against a container
	// that has no drop handler registered.
	ErrNoDropHandler = errors.New("no drop handler registered")
	// ErrDisabled is returned when a drop is committed against a disabled container.
	ErrDisabled = errors.New("container is disabled")
	// ErrNoPendingDrag is returned by Drop when no drag was started.
	ErrNoPendingDrag = errors.New("no drag in progress")
	// ErrDragInProgress is returned by BeginDrag while another drag is pending.
	ErrDragInProgress = errors.New("a drag is already in progress")
	// ErrUnknownTab is returned for tab indices or ids that do not exist.
	ErrUnknownTab = errors.New("unknown tab")
)
