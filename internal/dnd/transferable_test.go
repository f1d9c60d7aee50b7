package dnd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransferableIsImmutable(t *testing.T) {
	data := Payload{"color": "red"}
	tr := NewTransferable(Ref("sheet"), Ref("b"), 1, data)

	data["color"] = "blue"
	v, ok := tr.Data("color")
	assert.True(t, ok)
	assert.Equal(t, "red", v)

	out := tr.Payload()
	out["color"] = "green"
	v, _ = tr.Data("color")
	assert.Equal(t, "red", v)
}

func TestTransferableDragged(t *testing.T) {
	resolved := NewTransferable(Ref("sheet"), Ref("b"), 1, nil)
	assert.True(t, resolved.Resolved())
	assert.False(t, resolved.WholeContainer())
	assert.Equal(t, "b", resolved.Dragged().ComponentID())

	unresolved := NewTransferable(Ref("sheet"), nil, -1, nil)
	assert.False(t, unresolved.Resolved())
	assert.True(t, unresolved.WholeContainer())
	assert.Equal(t, "sheet", unresolved.Dragged().ComponentID())

	self := NewTransferable(Ref("sheet"), Ref("sheet"), -1, nil)
	assert.True(t, self.WholeContainer())
}

type captioned struct{ id, caption string }

func (c captioned) ComponentID() string { return c.id }
func (c captioned) Caption() string     { return c.caption }

func TestExcludeCaptions(t *testing.T) {
	f := ExcludeCaptions("Home")
	assert.False(t, f.IsDraggable(captioned{"1", "Home"}))
	assert.True(t, f.IsDraggable(captioned{"2", "Work"}))
	assert.True(t, f.IsDraggable(Ref("Work")))
	assert.False(t, f.IsDraggable(Ref("Home")))

	assert.True(t, AllDraggable.IsDraggable(Ref("x")))
	assert.False(t, NoneDraggable.IsDraggable(Ref("x")))
}
