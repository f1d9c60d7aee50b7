package app

import (
	"fmt"

	"github.com/justyntemme/ddtabs/internal/ddtabs"
	"github.com/justyntemme/ddtabs/internal/debug"
)

// switchTab selects the tab at index.
func switchTab(s *ddtabs.Sheet, index int) error {
	if err := s.Select(index); err != nil {
		return err
	}
	debug.Log(debug.APP, "switched to tab %d", index)
	return nil
}

// closeTab removes the tab at index if it is closable. The selection moves
// to the neighbour.
func closeTab(s *ddtabs.Sheet, index int) error {
	t, ok := s.TabAt(index)
	if !ok {
		return fmt.Errorf("close tab %d: no such tab", index)
	}
	if !t.Closable {
		debug.Log(debug.APP, "tab %q is not closable", t.Caption)
		return nil
	}
	if _, err := s.RemoveTab(index); err != nil {
		return err
	}
	debug.Log(debug.APP, "closed tab %q", t.Caption)
	return nil
}

// cycleTab selects the next enabled tab in direction dir (+1 or -1),
// wrapping around. Nothing happens when no other tab is enabled.
func cycleTab(s *ddtabs.Sheet, dir int) {
	tabs := s.Tabs()
	n := len(tabs)
	if n == 0 {
		return
	}
	cur := s.Selected()
	if cur < 0 {
		cur = 0
		if dir < 0 {
			cur = n - 1
		}
		if tabs[cur].Enabled {
			s.Select(cur)
			return
		}
	}
	for step := 1; step < n; step++ {
		i := ((cur+dir*step)%n + n) % n
		if tabs[i].Enabled {
			s.Select(i)
			debug.Log(debug.APP, "cycled to tab %d", i)
			return
		}
	}
}
