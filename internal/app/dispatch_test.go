package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/ddtabs/internal/config"
	"github.com/justyntemme/ddtabs/internal/ddtabs"
	"github.com/justyntemme/ddtabs/internal/dnd"
	"github.com/justyntemme/ddtabs/internal/tabsheet"
	"github.com/justyntemme/ddtabs/internal/ui"
)

func testSheet(t *testing.T, names ...string) *ddtabs.Sheet {
	t.Helper()
	s, err := Seed(context.Background(), testRoot(t, names...), *config.DefaultConfig(), nil)
	require.NoError(t, err)
	return s
}

func sheetCaptions(s *ddtabs.Sheet) []string {
	var out []string
	for _, t := range s.Tabs() {
		out = append(out, t.Caption)
	}
	return out
}

func TestDispatchSwitchAndClose(t *testing.T) {
	s := testSheet(t, "a", "b", "c")
	d := &Dispatcher{Sheet: s}
	id := s.ComponentID()

	require.NoError(t, d.Handle(ui.UIEvent{Action: ui.ActionSwitchTab, Sheet: id, Index: 2}))
	assert.Equal(t, 2, s.Selected())

	err := d.Handle(ui.UIEvent{Action: ui.ActionSwitchTab, Sheet: id, Index: 7})
	assert.True(t, errors.Is(err, dnd.ErrUnknownTab))

	require.NoError(t, d.Handle(ui.UIEvent{Action: ui.ActionCloseTab, Sheet: id, Index: 2}))
	assert.Equal(t, []string{"a", "b"}, sheetCaptions(s))
	assert.Equal(t, 1, s.Selected(), "selection moves to the neighbour")

	require.Error(t, d.Handle(ui.UIEvent{Action: ui.ActionCloseTab, Sheet: id, Index: 5}))
}

func TestDispatchIgnoresOtherSheets(t *testing.T) {
	s := testSheet(t, "a", "b")
	d := &Dispatcher{Sheet: s}
	require.NoError(t, d.Handle(ui.UIEvent{Action: ui.ActionCloseTab, Sheet: "elsewhere", Index: 0}))
	assert.Equal(t, 2, s.Len())
}

func TestCloseTabNotClosable(t *testing.T) {
	cfg := *config.DefaultConfig()
	cfg.Tabs.Closable = false
	s, err := Seed(context.Background(), testRoot(t, "a", "b"), cfg, nil)
	require.NoError(t, err)

	require.NoError(t, closeTab(s, 0))
	assert.Equal(t, 2, s.Len())
}

func TestCycleTab(t *testing.T) {
	s := testSheet(t, "a", "b", "c")
	d := &Dispatcher{Sheet: s}

	require.NoError(t, d.Handle(ui.UIEvent{Action: ui.ActionNextTab}))
	assert.Equal(t, 1, s.Selected())
	cycleTab(s, 1)
	cycleTab(s, 1)
	assert.Equal(t, 0, s.Selected(), "wraps around")
	require.NoError(t, d.Handle(ui.UIEvent{Action: ui.ActionPrevTab}))
	assert.Equal(t, 2, s.Selected())

	// Disabled tabs are skipped
	s.View(func(tabs []*tabsheet.Tab) { tabs[1].Enabled = false })
	cycleTab(s, -1)
	assert.Equal(t, 0, s.Selected())
	cycleTab(s, 1)
	assert.Equal(t, 2, s.Selected())
}

func TestDispatchDragLifecycle(t *testing.T) {
	s := testSheet(t, "a", "b", "c")
	var decisions []dnd.Decision
	d := &Dispatcher{Sheet: s, OnDrop: func(dec dnd.Decision, err error) {
		assert.NoError(t, err)
		decisions = append(decisions, dec)
	}}
	id := s.ComponentID()
	s.Sync()
	assert.Equal(t, ddtabs.PhaseArmed, s.Phase())

	drag := dnd.Payload{dnd.KeySource: id, dnd.KeyIndex: 0}
	require.NoError(t, d.Handle(ui.UIEvent{Action: ui.ActionBeginDrag, Sheet: id, Drag: drag}))
	assert.Equal(t, ddtabs.PhaseHover, s.Phase())

	second := d.Handle(ui.UIEvent{Action: ui.ActionBeginDrag, Sheet: id, Drag: drag})
	assert.True(t, errors.Is(second, dnd.ErrDragInProgress))

	target, _ := s.TabAt(2)
	require.NoError(t, d.Handle(ui.UIEvent{
		Action: ui.ActionDrop,
		Sheet:  id,
		Target: dnd.Payload{dnd.KeyTab: target.ID, dnd.KeyVPos: 0.5},
	}))
	assert.Equal(t, []string{"b", "c", "a"}, sheetCaptions(s))
	assert.Equal(t, 2, s.Selected(), "a middle drop selects the moved tab")
	assert.Nil(t, s.Pending())
	assert.Equal(t, ddtabs.PhaseIdle, s.Phase())
	assert.Equal(t, []dnd.Decision{dnd.InsertInto}, decisions)
}

func TestDispatchCancel(t *testing.T) {
	s := testSheet(t, "a", "b")
	d := &Dispatcher{Sheet: s}
	id := s.ComponentID()

	require.NoError(t, d.Handle(ui.UIEvent{Action: ui.ActionBeginDrag, Sheet: id, Drag: dnd.Payload{dnd.KeyIndex: 1}}))
	require.NoError(t, d.Handle(ui.UIEvent{Action: ui.ActionCancelDrag, Sheet: id}))
	assert.Nil(t, s.Pending())
	assert.Equal(t, []string{"a", "b"}, sheetCaptions(s))
}

func TestDispatchDropWithoutBegin(t *testing.T) {
	s := testSheet(t, "a", "b", "c")
	d := &Dispatcher{Sheet: s}
	id := s.ComponentID()

	first, _ := s.TabAt(0)
	require.NoError(t, d.Handle(ui.UIEvent{
		Action: ui.ActionDrop,
		Sheet:  id,
		Drag:   dnd.Payload{dnd.KeySource: id, dnd.KeyIndex: 2},
		Target: dnd.Payload{dnd.KeyTab: first.ID, dnd.KeyVPos: 0.0},
	}))
	assert.Equal(t, []string{"c", "a", "b"}, sheetCaptions(s))
}

func TestDispatchMoveTab(t *testing.T) {
	s := testSheet(t, "a", "b", "c")
	d := &Dispatcher{Sheet: s}
	id := s.ComponentID()
	last, _ := s.TabAt(2)

	move := ui.UIEvent{
		Action: ui.ActionMoveTab,
		Sheet:  id,
		Drag:   dnd.Payload{dnd.KeySource: id, dnd.KeyIndex: 1},
		Target: dnd.Payload{dnd.KeyTab: last.ID, dnd.KeyVPos: 1.0},
	}
	require.NoError(t, d.Handle(move))
	assert.Equal(t, []string{"a", "c", "b"}, sheetCaptions(s))

	// Ignored while a pointer drag is pending
	_, err := s.BeginDrag(dnd.Payload{dnd.KeyIndex: 0})
	require.NoError(t, err)
	require.NoError(t, d.Handle(move))
	assert.Equal(t, []string{"a", "c", "b"}, sheetCaptions(s))
}
