//go:build debug

package debug

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplySpec(t *testing.T) {
	base := map[Category]bool{APP: true, DND: true, UI_EVENT: false}

	assert.Equal(t, base, applySpec(base, ""))
	assert.Equal(t, map[Category]bool{APP: true, DND: true, UI_EVENT: true}, applySpec(base, "all"))
	assert.Equal(t, map[Category]bool{APP: false, DND: false, UI_EVENT: false}, applySpec(base, "None"))
	assert.Equal(t, map[Category]bool{APP: false, DND: true, UI_EVENT: true}, applySpec(base, "dnd, ui_event"))

	// the base map is never modified
	assert.True(t, base[APP])
}

func TestLogRespectsCategories(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	Disable(DND)
	Log(DND, "hidden %d", 1)
	assert.Empty(t, buf.String())

	Enable(DND)
	Log(DND, "shown %d", 2)
	assert.Contains(t, buf.String(), "[DND] shown 2")
}
