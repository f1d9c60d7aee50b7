package ui

import (
	"image"
	"io"

	"gioui.org/f32"
	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/io/transfer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
)

// ClickAndDraggable handles both click and drag gestures on one tab.
//
// gesture.Drag only activates after its movement threshold, so clicks are
// processed first and a press that never moves still reports a click.
type ClickAndDraggable struct {
	// Type is the MIME type offered for transfers
	Type string

	click gesture.Click
	drag  gesture.Drag

	pressPos    f32.Point // where the press landed, widget coordinates
	dragOffset  f32.Point // movement since the press
	pid         pointer.ID
	dragStarted bool
}

// Dragging reports whether a drag past the threshold is in progress.
func (c *ClickAndDraggable) Dragging() bool {
	return c.drag.Dragging() && c.dragStarted
}

// Hovered reports whether a pointer is inside the area.
func (c *ClickAndDraggable) Hovered() bool {
	return c.click.Hovered()
}

// Pointer returns the pointer position during a drag, relative to the
// widget's top-left corner.
func (c *ClickAndDraggable) Pointer() f32.Point {
	return c.pressPos.Add(c.dragOffset)
}

// Offset returns the movement since the press.
func (c *ClickAndDraggable) Offset() f32.Point {
	return c.dragOffset
}

// Requested reports whether a drop target asked for the dragged data.
// Call it before Layout.
func (c *ClickAndDraggable) Requested(gtx layout.Context) (mime string, ok bool) {
	for {
		ev, more := gtx.Event(transfer.SourceFilter{Target: c, Type: c.Type})
		if !more {
			break
		}
		if e, isReq := ev.(transfer.RequestEvent); isReq {
			mime, ok = e.Type, true
		}
	}
	return mime, ok
}

// Offer answers a transfer request with data.
func (c *ClickAndDraggable) Offer(gtx layout.Context, mime string, data io.ReadCloser) {
	gtx.Execute(transfer.OfferCmd{Tag: c, Type: mime, Data: data})
}

// Layout draws w and registers the gesture area. While dragging, shadow is
// drawn on top of everything at the pointer. The returned bool reports a
// completed click that did not turn into a drag.
func (c *ClickAndDraggable) Layout(gtx layout.Context, w, shadow layout.Widget) (layout.Dimensions, bool) {
	if !gtx.Enabled() {
		return w(gtx), false
	}

	clicked := false
	for {
		e, ok := c.click.Update(gtx.Source)
		if !ok {
			break
		}
		switch e.Kind {
		case gesture.KindClick:
			if !c.dragStarted {
				clicked = true
			}
		case gesture.KindCancel:
			c.dragStarted = false
		}
	}

	for {
		e, ok := c.drag.Update(gtx.Metric, gtx.Source, gesture.Both)
		if !ok {
			break
		}
		switch e.Kind {
		case pointer.Press:
			c.pressPos = e.Position
			c.dragOffset = f32.Point{}
			c.pid = e.PointerID
			c.dragStarted = false
		case pointer.Drag:
			if e.PointerID == c.pid {
				c.dragStarted = true
				c.dragOffset = e.Position.Sub(c.pressPos)
			}
		case pointer.Release, pointer.Cancel:
			c.dragStarted = false
		}
	}

	dims := w(gtx)

	defer clip.Rect{Max: dims.Size}.Push(gtx.Ops).Pop()
	c.click.Add(gtx.Ops)
	c.drag.Add(gtx.Ops)
	event.Op(gtx.Ops, c)

	if shadow != nil && c.Dragging() {
		rec := op.Record(gtx.Ops)
		op.Offset(c.dragOffset.Round()).Add(gtx.Ops)
		shadow(gtx)
		op.Defer(gtx.Ops, rec.Stop())
	}
	return dims, clicked
}

// pointerIn converts a widget-relative drag pointer into the coordinates of
// the area that laid the widget out at origin.
func pointerIn(origin image.Point, p f32.Point) image.Point {
	return origin.Add(p.Round())
}
