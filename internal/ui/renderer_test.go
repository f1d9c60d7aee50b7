package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/ddtabs/internal/config"
	"github.com/justyntemme/ddtabs/internal/dnd"
	"github.com/justyntemme/ddtabs/internal/surface"
)

func stateWith(ids ...string) surface.State {
	st := surface.State{ID: "sheet", Enabled: true, DragMode: dnd.ModeClone, DropRatio: 0.2}
	for _, id := range ids {
		st.Tabs = append(st.Tabs, surface.TabState{ID: id, Caption: id, Enabled: true, Draggable: true})
	}
	return st
}

func TestRendererPushKeepsWidgets(t *testing.T) {
	r := NewRenderer()
	invalidated := 0
	r.SetInvalidate(func() { invalidated++ })

	require.NoError(t, r.Push(stateWith("a", "b", "c")))
	first := map[string]*tabWidget{}
	for _, tw := range r.tabs {
		first[tw.id] = tw
		assert.Equal(t, TabDragMIME, tw.touch.Type)
	}

	require.NoError(t, r.Push(stateWith("c", "a", "d")))
	require.Len(t, r.tabs, 3)
	assert.Same(t, first["c"], r.tabs[0], "moved tab keeps its widget")
	assert.Same(t, first["a"], r.tabs[1])
	assert.NotContains(t, first, r.tabs[2].id)
	assert.Equal(t, "d", r.tabs[2].id)

	assert.Equal(t, 2, invalidated)
	assert.Equal(t, "c", r.State().Tabs[0].ID)
}

func TestRendererIsSurface(t *testing.T) {
	r := NewRenderer()
	var s surface.Surface = r
	require.NoError(t, s.Push(stateWith("x")))
	assert.Len(t, r.State().Tabs, 1)
	assert.Equal(t, -1, r.dragging)
}

func TestMoveEvent(t *testing.T) {
	st := stateWith("a", "b", "c")

	up := moveEvent(st, 1, 0, dnd.ZoneAbove)
	assert.Equal(t, ActionMoveTab, up.Action)
	assert.Equal(t, 1, up.Index)
	tab, _ := up.Target.String(dnd.KeyTab)
	assert.Equal(t, "a", tab)
	pos, _ := up.Target.Float(dnd.KeyVPos)
	assert.Equal(t, 0.0, pos)
	from, _ := up.Drag.Int(dnd.KeyIndex)
	assert.Equal(t, 1, from)

	down := moveEvent(st, 1, 2, dnd.ZoneBelow)
	tab, _ = down.Target.String(dnd.KeyTab)
	assert.Equal(t, "c", tab)
	pos, _ = down.Target.Float(dnd.KeyVPos)
	assert.Equal(t, 1.0, pos)
}

func TestSetHotkeys(t *testing.T) {
	r := NewRenderer()
	r.SetHotkeys(config.DefaultHotkeys())
	require.NotNil(t, r.hotkeys)
	assert.NotEmpty(t, r.hotkeys.All())
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "drop", ActionDrop.String())
	assert.Equal(t, "begin-drag", ActionBeginDrag.String())
	assert.Equal(t, "none", UIAction(99).String())
}
