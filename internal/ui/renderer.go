package ui

import (
	"fmt"
	"image"
	"sync"

	"gioui.org/font"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/transfer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/ddtabs/internal/config"
	"github.com/justyntemme/ddtabs/internal/debug"
	"github.com/justyntemme/ddtabs/internal/dnd"
	"github.com/justyntemme/ddtabs/internal/surface"
)

// tabWidget holds the per-tab widget state, kept across pushes by tab id.
type tabWidget struct {
	id    string
	touch ClickAndDraggable
	close widget.Clickable
}

// Renderer draws the state last pushed to it. It is a surface.Surface:
// pushes may come from any goroutine, Layout runs on the window goroutine.
type Renderer struct {
	Theme     *material.Theme
	TabHeight unit.Dp
	StripW    unit.Dp

	mu         sync.Mutex
	state      surface.State
	invalidate func()
	banner     string

	hotkeys *config.HotkeyMatcher
	focused bool

	// Event tags; addresses must differ, so not zero-sized
	keyTag, dropTag, shimTag bool

	tabs      []*tabWidget
	slots     []tabSlot
	dragging  int // index of the tab being dragged, -1 when idle
	hover     hover
	hovering  bool
	cancelled bool // drag cancelled from the keyboard, ignored until released
}

var _ surface.Surface = (*Renderer)(nil)

func NewRenderer() *Renderer {
	return &Renderer{
		Theme:     material.NewTheme(),
		TabHeight: 36,
		StripW:    200,
		dragging:  -1,
	}
}

// SetInvalidate sets the function called after every push, usually the
// window's Invalidate.
func (r *Renderer) SetInvalidate(fn func()) {
	r.mu.Lock()
	r.invalidate = fn
	r.mu.Unlock()
}

// SetHotkeys configures the keyboard shortcuts from config
func (r *Renderer) SetHotkeys(cfg config.HotkeysConfig) {
	r.hotkeys = config.NewHotkeyMatcher(cfg)
}

// SetBanner shows msg above the strip; empty hides it.
func (r *Renderer) SetBanner(msg string) {
	r.mu.Lock()
	r.banner = msg
	r.mu.Unlock()
}

// Push replaces the displayed state. Widget state survives for tabs whose
// id is unchanged so an in-flight click or drag is not lost.
func (r *Renderer) Push(st surface.State) error {
	r.mu.Lock()
	byID := make(map[string]*tabWidget, len(r.tabs))
	for _, tw := range r.tabs {
		byID[tw.id] = tw
	}
	tabs := make([]*tabWidget, len(st.Tabs))
	for i, t := range st.Tabs {
		tw, ok := byID[t.ID]
		if !ok {
			tw = &tabWidget{id: t.ID}
		}
		tw.touch.Type = TabDragMIME
		tabs[i] = tw
	}
	r.tabs = tabs
	r.state = st
	inv := r.invalidate
	r.mu.Unlock()

	debug.Log(debug.UI, "push: %d tabs, selected=%d, accepts=%v", len(st.Tabs), st.Selected, st.AcceptsDrops())
	if inv != nil {
		inv()
	}
	return nil
}

// State returns the last pushed state.
func (r *Renderer) State() surface.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Layout draws one frame and returns the events it produced.
func (r *Renderer) Layout(gtx layout.Context) []UIEvent {
	r.mu.Lock()
	st := r.state
	tabs := r.tabs
	banner := r.banner
	r.mu.Unlock()

	var events []UIEvent
	events = append(events, r.processKeys(gtx, st)...)
	events = append(events, r.processDrops(gtx, st)...)

	// Answer transfer requests before layout
	for i, tw := range tabs {
		if mime, ok := tw.touch.Requested(gtx); ok {
			debug.Log(debug.UI_EVENT, "transfer request for tab %d (%s)", i, mime)
			tw.touch.Offer(gtx, mime, encodePayload(dnd.Payload{
				dnd.KeySource: st.ID,
				dnd.KeyIndex:  i,
			}))
		}
	}

	paint.Fill(gtx.Ops, colWhite)

	// Whole-window key area
	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	event.Op(gtx.Ops, &r.keyTag)
	area.Pop()
	if !r.focused {
		gtx.Execute(key.FocusCmd{Tag: &r.keyTag})
		r.focused = true
	}

	layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.layoutBanner(gtx, banner)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					dims, evs := r.layoutStrip(gtx, st, tabs)
					events = append(events, evs...)
					return dims
				}),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return r.layoutContent(gtx, st)
				}),
			)
		}),
	)
	return events
}

func (r *Renderer) processKeys(gtx layout.Context, st surface.State) []UIEvent {
	if r.hotkeys == nil {
		return nil
	}
	var filters []event.Filter
	for _, h := range r.hotkeys.All() {
		filters = append(filters, h.Filter(&r.keyTag))
	}
	if len(filters) == 0 {
		return nil
	}

	var events []UIEvent
	for {
		e, ok := gtx.Event(filters...)
		if !ok {
			break
		}
		k, ok := e.(key.Event)
		if !ok || k.State != key.Press {
			continue
		}
		debug.Log(debug.UI_EVENT, "key %q mods=0x%x", k.Name, k.Modifiers)

		sel := st.Selected
		switch {
		case r.hotkeys.CancelDrag.Matches(k):
			if r.dragging >= 0 && !r.cancelled {
				events = append(events, UIEvent{Action: ActionCancelDrag, Sheet: st.ID, Index: r.dragging})
				r.cancelled, r.hovering = true, false
			}
		case r.hotkeys.NextTab.Matches(k):
			events = append(events, UIEvent{Action: ActionNextTab, Sheet: st.ID, Index: sel})
		case r.hotkeys.PrevTab.Matches(k):
			events = append(events, UIEvent{Action: ActionPrevTab, Sheet: st.ID, Index: sel})
		case r.hotkeys.CloseTab.Matches(k):
			if sel >= 0 && sel < len(st.Tabs) && st.Tabs[sel].Closable {
				events = append(events, UIEvent{Action: ActionCloseTab, Sheet: st.ID, Index: sel})
			}
		case r.hotkeys.MoveTabUp.Matches(k):
			if sel > 0 {
				events = append(events, moveEvent(st, sel, sel-1, dnd.ZoneAbove))
			}
		case r.hotkeys.MoveTabDown.Matches(k):
			if sel >= 0 && sel < len(st.Tabs)-1 {
				events = append(events, moveEvent(st, sel, sel+1, dnd.ZoneBelow))
			}
		}
	}
	return events
}

// moveEvent is a keyboard move expressed as a drop on the neighbour's
// outer zone, so it passes through the same handler and criterion as a
// pointer drop.
func moveEvent(st surface.State, from, to int, z dnd.VerticalZone) UIEvent {
	pos := 0.0
	if z == dnd.ZoneBelow {
		pos = 1
	}
	return UIEvent{
		Action: ActionMoveTab,
		Sheet:  st.ID,
		Index:  from,
		Drag:   dnd.Payload{dnd.KeySource: st.ID, dnd.KeyIndex: from},
		Target: dnd.Payload{dnd.KeyTab: st.Tabs[to].ID, dnd.KeyVPos: pos},
	}
}

func (r *Renderer) processDrops(gtx layout.Context, st surface.State) []UIEvent {
	var events []UIEvent
	for {
		ev, ok := gtx.Event(transfer.TargetFilter{Target: &r.dropTag, Type: TabDragMIME})
		if !ok {
			break
		}
		switch e := ev.(type) {
		case transfer.InitiateEvent:
			debug.Log(debug.UI_EVENT, "transfer initiated")
		case transfer.CancelEvent:
			debug.Log(debug.UI_EVENT, "transfer cancelled")
			if r.dragging >= 0 {
				events = append(events, UIEvent{Action: ActionCancelDrag, Sheet: st.ID, Index: r.dragging})
			}
			r.endDrag()
		case transfer.DataEvent:
			rc := e.Open()
			drag, err := decodePayload(rc)
			rc.Close()
			if err != nil {
				debug.Log(debug.UI, "drop ignored: %v", err)
				r.endDrag()
				continue
			}
			h := r.hover
			if !r.hovering || !h.Accepted {
				// The surface gates drops locally; the sheet re-checks on commit
				debug.Log(debug.UI, "drop rejected locally at tab %d zone %s", h.Index, h.Zone)
				events = append(events, UIEvent{Action: ActionCancelDrag, Sheet: st.ID, Index: r.dragging})
				r.endDrag()
				continue
			}
			idx, _ := drag.Int(dnd.KeyIndex)
			events = append(events, UIEvent{
				Action: ActionDrop,
				Sheet:  st.ID,
				Index:  idx,
				Drag:   drag,
				Target: h.target(),
			})
			r.endDrag()
		}
	}
	return events
}

func (r *Renderer) endDrag() {
	r.dragging = -1
	r.hovering = false
	r.hover = hover{}
}

func (r *Renderer) layoutBanner(gtx layout.Context, msg string) layout.Dimensions {
	if msg == "" {
		return layout.Dimensions{}
	}
	macro := op.Record(gtx.Ops)
	dims := layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		lbl := material.Body2(r.Theme, msg)
		lbl.Color = colWhite
		return lbl.Layout(gtx)
	})
	call := macro.Stop()
	paint.FillShape(gtx.Ops, colBanner, clip.Rect{Max: image.Pt(gtx.Constraints.Max.X, dims.Size.Y)}.Op())
	call.Add(gtx.Ops)
	return layout.Dimensions{Size: image.Pt(gtx.Constraints.Max.X, dims.Size.Y)}
}

func (r *Renderer) layoutStrip(gtx layout.Context, st surface.State, tabs []*tabWidget) (layout.Dimensions, []UIEvent) {
	var events []UIEvent
	width := gtx.Dp(r.StripW)
	height := gtx.Constraints.Max.Y
	tabH := gtx.Dp(r.TabHeight)
	gtx.Constraints = layout.Exact(image.Pt(width, height))

	paint.FillShape(gtx.Ops, colStrip, clip.Rect{Max: image.Pt(width, height)}.Op())

	slots := make([]tabSlot, 0, len(st.Tabs))
	dragging := -1
	y := 0
	for i, t := range st.Tabs {
		if i >= len(tabs) {
			break
		}
		tw := tabs[i]
		idx := i
		canDrag := t.Draggable && st.DragMode != dnd.ModeNone

		stack := op.Offset(image.Pt(0, y)).Push(gtx.Ops)
		tgtx := gtx
		tgtx.Constraints = layout.Exact(image.Pt(width, tabH))
		if !t.Enabled || !st.Enabled {
			tgtx = tgtx.Disabled()
		}

		body := func(gtx layout.Context) layout.Dimensions {
			return r.layoutTab(gtx, st, t, tw, idx == st.Selected)
		}
		var shadow layout.Widget
		if canDrag {
			shadow = func(gtx layout.Context) layout.Dimensions {
				return r.layoutShadow(gtx, st, t.Caption, width, tabH)
			}
		}
		_, clicked := tw.touch.Layout(tgtx, body, shadow)
		stack.Pop()

		if clicked && idx != st.Selected {
			events = append(events, UIEvent{Action: ActionSwitchTab, Sheet: st.ID, Index: idx})
		}
		if t.Closable && tw.close.Clicked(gtx) {
			events = append(events, UIEvent{Action: ActionCloseTab, Sheet: st.ID, Index: idx})
		}
		if canDrag && tw.touch.Dragging() {
			dragging = idx
		}

		slots = append(slots, tabSlot{ID: t.ID, Rect: image.Rect(0, y, width, y+tabH)})
		y += tabH
	}
	r.slots = slots

	events = append(events, r.trackDrag(gtx, st, tabs, dragging)...)

	// Drop area covers the whole strip while the sheet accepts drops
	if st.AcceptsDrops() {
		area := clip.Rect{Max: image.Pt(width, height)}.Push(gtx.Ops)
		event.Op(gtx.Ops, &r.dropTag)
		area.Pop()
	}
	r.paintHover(gtx, width)

	return layout.Dimensions{Size: image.Pt(width, height)}, events
}

// trackDrag updates the hover from the dragged tab's pointer. The hover is
// decided on the client with the advertised criterion, without asking
// the sheet.
func (r *Renderer) trackDrag(gtx layout.Context, st surface.State, tabs []*tabWidget, dragging int) []UIEvent {
	var events []UIEvent
	if dragging < 0 {
		r.cancelled = false
		// Without a drop area no transfer event will end the drag
		if r.dragging >= 0 && !st.AcceptsDrops() {
			events = append(events, UIEvent{Action: ActionCancelDrag, Sheet: st.ID, Index: r.dragging})
			r.endDrag()
		}
		return events
	}
	if r.dragging != dragging {
		r.dragging = dragging
		events = append(events, UIEvent{
			Action: ActionBeginDrag,
			Sheet:  st.ID,
			Index:  dragging,
			Drag:   dnd.Payload{dnd.KeySource: st.ID, dnd.KeyIndex: dragging},
		})
	}
	if r.cancelled {
		return events
	}

	origin := r.slots[dragging].Rect.Min
	p := pointerIn(origin, tabs[dragging].touch.Pointer())
	idx, pos := hitTest(r.slots, p)
	h := hover{Index: idx, Pos: pos, Zone: dnd.ZoneMiddle}
	if idx >= 0 {
		h.TabID = r.slots[idx].ID
		h.Zone = dnd.ClassifyVertical(pos, st.DropRatio)
	} else {
		h.Index = len(r.slots)
	}
	h.Accepted = st.Probe(st.ID, "", h.TabID, h.Zone)
	if h != r.hover || !r.hovering {
		debug.Log(debug.UI_EVENT, "hover tab=%d pos=%.2f zone=%s accepted=%v", h.Index, h.Pos, h.Zone, h.Accepted)
	}
	r.hover, r.hovering = h, true

	// Keep tracking the pointer
	gtx.Execute(op.InvalidateCmd{})
	return events
}

func (r *Renderer) paintHover(gtx layout.Context, width int) {
	if !r.hovering {
		return
	}
	col := colDropAccept
	if !r.hover.Accepted {
		col = colDropReject
	}
	thick := gtx.Dp(3)
	var rect image.Rectangle
	if r.hover.TabID != "" && r.hover.Index < len(r.slots) {
		rect = zoneMarker(r.slots[r.hover.Index].Rect, r.hover.Zone, thick)
	} else {
		rect = appendMarker(r.slots, width, thick)
	}
	paint.FillShape(gtx.Ops, col, clip.Rect(rect).Op())
}

func (r *Renderer) layoutTab(gtx layout.Context, st surface.State, t surface.TabState, tw *tabWidget, selected bool) layout.Dimensions {
	size := gtx.Constraints.Max
	bg := colStrip
	switch {
	case selected:
		bg = colSelected
	case tw.touch.Hovered():
		bg = colHover
	}
	paint.FillShape(gtx.Ops, bg, clip.Rect{Max: size}.Op())
	if selected {
		paint.FillShape(gtx.Ops, colAccent, clip.Rect{Max: image.Pt(gtx.Dp(3), size.Y)}.Op())
	}

	layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Left: unit.Dp(12), Right: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body2(r.Theme, t.Caption)
				lbl.MaxLines = 1
				lbl.Color = colBlack
				if !t.Enabled || !st.Enabled {
					lbl.Color = colDisabled
				}
				if selected {
					lbl.Font.Weight = font.SemiBold
				}
				return lbl.Layout(gtx)
			})
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if !t.Closable {
				return layout.Dimensions{}
			}
			return layout.Inset{Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return material.Clickable(gtx, &tw.close, func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body2(r.Theme, "×")
					lbl.Color = colGray
					if tw.close.Hovered() {
						lbl.Color = colDanger
					}
					return layout.UniformInset(unit.Dp(2)).Layout(gtx, lbl.Layout)
				})
			})
		}),
	)
	return layout.Dimensions{Size: size}
}

// layoutShadow draws what follows the pointer, depending on the drag mode.
func (r *Renderer) layoutShadow(gtx layout.Context, st surface.State, caption string, width, height int) layout.Dimensions {
	if st.DragMode == dnd.ModeCaption {
		lbl := material.Body2(r.Theme, caption)
		lbl.Color = colAccent
		return layout.UniformInset(unit.Dp(8)).Layout(gtx, lbl.Layout)
	}
	rr := clip.UniformRRect(image.Rect(0, 0, width, height), gtx.Dp(4))
	paint.FillShape(gtx.Ops, colDragShadow, rr.Op(gtx.Ops))
	gtx.Constraints = layout.Exact(image.Pt(width, height))
	return layout.W.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Left: unit.Dp(12)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			lbl := material.Body2(r.Theme, caption)
			lbl.Color = colBlack
			lbl.MaxLines = 1
			return lbl.Layout(gtx)
		})
	})
}

func (r *Renderer) layoutContent(gtx layout.Context, st surface.State) layout.Dimensions {
	size := gtx.Constraints.Max
	paint.FillShape(gtx.Ops, colLightGray, clip.Rect{Max: image.Pt(1, size.Y)}.Op())

	layout.UniformInset(unit.Dp(24)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		title := "No tabs"
		if st.Selected >= 0 && st.Selected < len(st.Tabs) {
			title = st.Tabs[st.Selected].Caption
		}
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(material.H5(r.Theme, title).Layout),
			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				info := fmt.Sprintf("%d tabs · drag mode %s · drop ratio %.2f", len(st.Tabs), st.DragMode, st.DropRatio)
				if !st.AcceptsDrops() {
					info += " · not accepting drops"
				}
				lbl := material.Caption(r.Theme, info)
				lbl.Color = colGray
				return lbl.Layout(gtx)
			}),
		)
	})

	// Shims cover the content while a drag is in progress so it cannot
	// swallow the pointer
	if st.ShimEnabled && r.dragging >= 0 {
		area := clip.Rect{Max: size}.Push(gtx.Ops)
		paint.ColorOp{Color: colShim}.Add(gtx.Ops)
		paint.PaintOp{}.Add(gtx.Ops)
		event.Op(gtx.Ops, &r.shimTag)
		area.Pop()
	}
	return layout.Dimensions{Size: size}
}
