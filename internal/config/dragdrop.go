package config

import (
	"github.com/justyntemme/ddtabs/internal/ddtabs"
	"github.com/justyntemme/ddtabs/internal/dnd"
)

// Mode returns the configured drag mode; Load has already validated it.
func (c DragDropConfig) Mode() dnd.DragMode {
	m, _ := dnd.ParseDragMode(c.DragMode)
	return m
}

// Filter returns a drag filter excluding the pinned tabs.
func (c DragDropConfig) Filter() dnd.DragFilter {
	if len(c.PinnedTabs) == 0 {
		return dnd.AllDraggable
	}
	return dnd.ExcludeCaptions(c.PinnedTabs...)
}

// Criterion returns the accept criterion for the configured preset.
func (c DragDropConfig) Criterion() dnd.AcceptCriterion {
	switch c.Accept {
	case AcceptSameSource:
		return dnd.SourceIsTarget()
	case AcceptOuterZones:
		return dnd.VerticalZoneIs(dnd.ZoneAbove, dnd.ZoneBelow)
	default:
		return dnd.AcceptAll()
	}
}

// SheetConfig builds the per-sheet drag configuration.
func (c DragDropConfig) SheetConfig() *ddtabs.Config {
	ratio := c.DropRatio
	if dnd.ValidateDropRatio(ratio) != nil {
		ratio = dnd.DefaultDropRatio
	}
	return &ddtabs.Config{
		DragMode:    c.Mode(),
		Filter:      c.Filter(),
		ShimEnabled: c.ShimEnabled,
		DropRatio:   ratio,
	}
}
