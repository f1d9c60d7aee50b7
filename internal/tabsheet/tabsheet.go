// Package tabsheet implements the tabbed container that the drag-and-drop
// coordinator augments: an ordered list of tabs with a selection, an
// enabled flag and a dirty marker telling the owner a state push is due.
//
// Structural mutations and snapshots take the sheet's mutex, so a reader
// running under View always sees one consistent child order.
package tabsheet

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/justyntemme/ddtabs/internal/debug"
	"github.com/justyntemme/ddtabs/internal/dnd"
)

// Tab is a single entry of a TabSheet.
type Tab struct {
	ID       string        // Unique identifier, stable across reorders
	Caption  string        // Display label
	Content  dnd.Component // The component shown when the tab is selected
	Closable bool          // Whether the surface shows a close button
	Enabled  bool          // Disabled tabs cannot be selected
}

// Panel is a minimal captioned component, handy as tab content.
type Panel struct {
	id    string
	Title string
}

// NewPanel returns a Panel with a fresh id.
func NewPanel(title string) *Panel {
	return &Panel{id: "panel-" + uuid.NewString(), Title: title}
}

func (p *Panel) ComponentID() string { return p.id }
func (p *Panel) Caption() string     { return p.Title }

// TabSheet is an ordered, selectable set of tabs.
type TabSheet struct {
	mu       sync.Mutex
	id       string
	tabs     []*Tab
	selected *Tab
	enabled  bool
	dirty    bool
}

// New creates an empty, enabled TabSheet. An empty id gets a generated one.
func New(id string) *TabSheet {
	if id == "" {
		id = "sheet-" + uuid.NewString()
	}
	return &TabSheet{id: id, enabled: true, dirty: true}
}

// ComponentID makes the sheet itself a draggable component.
func (s *TabSheet) ComponentID() string { return s.id }

// AddTab appends a tab for content and returns it.
func (s *TabSheet) AddTab(content dnd.Component, caption string) *Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(NewTab(content, caption), len(s.tabs))
}

// AddTabAt inserts a tab for content at index, clamped to [0, Len()].
func (s *TabSheet) AddTabAt(content dnd.Component, caption string, index int) *Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(NewTab(content, caption), index)
}

// InsertTab inserts an existing tab, for instance one detached from another
// sheet, at index clamped to [0, Len()].
func (s *TabSheet) InsertTab(t *Tab, index int) *Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(t, index)
}

// NewTab returns a closable, enabled tab for content with a fresh id. An
// empty caption is taken from the content.
func NewTab(content dnd.Component, caption string) *Tab {
	if caption == "" {
		caption = dnd.CaptionOf(content)
	}
	return &Tab{
		ID:       "tab-" + uuid.NewString(),
		Caption:  caption,
		Content:  content,
		Closable: true,
		Enabled:  true,
	}
}

func (s *TabSheet) insertLocked(t *Tab, index int) *Tab {
	if index < 0 {
		index = 0
	}
	if index > len(s.tabs) {
		index = len(s.tabs)
	}
	s.tabs = append(s.tabs, nil)
	copy(s.tabs[index+1:], s.tabs[index:])
	s.tabs[index] = t
	if s.selected == nil && t.Enabled {
		s.selected = t
	}
	s.dirty = true
	debug.Log(debug.APP, "tabsheet %s: inserted tab %s (%q) at %d", s.id, t.ID, t.Caption, index)
	return t
}

// RemoveTab removes the tab at index. Removing the selected tab selects
// its right neighbour, or the new last tab.
func (s *TabSheet) RemoveTab(index int) (*Tab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.tabs) {
		return nil, fmt.Errorf("remove tab %d of %d: %w", index, len(s.tabs), dnd.ErrUnknownTab)
	}
	return s.removeLocked(index), nil
}

// Detach removes the tab holding c and returns it.
func (s *TabSheet) Detach(c dnd.Component) (*Tab, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOfComponentLocked(c)
	if idx < 0 {
		return nil, false
	}
	return s.removeLocked(idx), true
}

func (s *TabSheet) removeLocked(index int) *Tab {
	t := s.tabs[index]
	s.tabs = append(s.tabs[:index], s.tabs[index+1:]...)
	if s.selected == t {
		s.selected = nil
		if len(s.tabs) > 0 {
			next := index
			if next >= len(s.tabs) {
				next = len(s.tabs) - 1
			}
			s.selected = s.tabs[next]
		}
	}
	s.dirty = true
	debug.Log(debug.APP, "tabsheet %s: removed tab %s (%q) from %d", s.id, t.ID, t.Caption, index)
	return t
}

// MoveTab moves the tab at from so that it ends up at index to. Both
// indices refer to the current order; the selection follows the tab.
func (s *TabSheet) MoveTab(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.tabs)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("move tab %d to %d of %d: %w", from, to, n, dnd.ErrUnknownTab)
	}
	if from == to {
		return nil
	}
	t := s.tabs[from]
	s.tabs = append(s.tabs[:from], s.tabs[from+1:]...)
	s.tabs = append(s.tabs, nil)
	copy(s.tabs[to+1:], s.tabs[to:])
	s.tabs[to] = t
	s.dirty = true
	debug.Log(debug.APP, "tabsheet %s: moved tab %s from %d to %d", s.id, t.ID, from, to)
	return nil
}

// Reorder rearranges tabs to follow order, a list of tab ids. Tabs not
// named keep their relative order after the named ones; unknown ids are
// ignored.
func (s *TabSheet) Reorder(order []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byID := make(map[string]*Tab, len(s.tabs))
	for _, t := range s.tabs {
		byID[t.ID] = t
	}
	out := make([]*Tab, 0, len(s.tabs))
	for _, id := range order {
		if t, ok := byID[id]; ok {
			out = append(out, t)
			delete(byID, id)
		}
	}
	for _, t := range s.tabs {
		if _, left := byID[t.ID]; left {
			out = append(out, t)
		}
	}
	s.tabs = out
	s.dirty = true
}

// View runs fn with the live tab slice while holding the sheet's lock. fn
// must not retain the slice or call back into the sheet.
func (s *TabSheet) View(fn func(tabs []*Tab)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.tabs)
}

// Tabs returns a snapshot of the tabs in order.
func (s *TabSheet) Tabs() []Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Tab, len(s.tabs))
	for i, t := range s.tabs {
		out[i] = *t
	}
	return out
}

// Len returns the number of tabs.
func (s *TabSheet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tabs)
}

// TabAt returns a copy of the tab at index.
func (s *TabSheet) TabAt(index int) (Tab, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.tabs) {
		return Tab{}, false
	}
	return *s.tabs[index], true
}

// IndexOf returns the index of the tab with id, or -1.
func (s *TabSheet) IndexOf(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// IndexOfComponent returns the index of the tab holding c, or -1.
func (s *TabSheet) IndexOfComponent(c dnd.Component) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOfComponentLocked(c)
}

func (s *TabSheet) indexOfComponentLocked(c dnd.Component) int {
	if c == nil {
		return -1
	}
	for i, t := range s.tabs {
		if t.Content != nil && t.Content.ComponentID() == c.ComponentID() {
			return i
		}
	}
	return -1
}

// Select selects the tab at index. Disabled tabs cannot be selected.
func (s *TabSheet) Select(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.tabs) {
		return fmt.Errorf("select tab %d of %d: %w", index, len(s.tabs), dnd.ErrUnknownTab)
	}
	t := s.tabs[index]
	if !t.Enabled {
		return fmt.Errorf("select tab %q: tab is disabled", t.Caption)
	}
	if s.selected != t {
		s.selected = t
		s.dirty = true
	}
	return nil
}

// Selected returns the index of the selected tab, or -1.
func (s *TabSheet) Selected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tabs {
		if t == s.selected {
			return i
		}
	}
	return -1
}

// SetCaption updates the caption of the tab at index.
func (s *TabSheet) SetCaption(index int, caption string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index >= 0 && index < len(s.tabs) && s.tabs[index].Caption != caption {
		s.tabs[index].Caption = caption
		s.dirty = true
	}
}

// SetEnabled enables or disables the whole sheet.
func (s *TabSheet) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enabled != enabled {
		s.enabled = enabled
		s.dirty = true
	}
}

// Enabled reports whether the sheet is enabled.
func (s *TabSheet) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// MarkDirty flags that the next synchronization must push state.
func (s *TabSheet) MarkDirty() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

// Dirty reports whether state changed since the last ClearDirty.
func (s *TabSheet) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// ClearDirty resets the dirty marker after a push.
func (s *TabSheet) ClearDirty() {
	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
}
