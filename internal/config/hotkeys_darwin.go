//go:build darwin

package config

// DefaultHotkeys returns the default tab strip shortcuts for macOS
func DefaultHotkeys() HotkeysConfig {
	return HotkeysConfig{
		NextTab:     "Ctrl+Tab",
		PrevTab:     "Ctrl+Shift+Tab",
		CloseTab:    "Cmd+W",
		MoveTabUp:   "Cmd+Shift+Up",
		MoveTabDown: "Cmd+Shift+Down",
		CancelDrag:  "Escape",
	}
}
