//go:build !darwin

package config

// DefaultHotkeys returns the default tab strip shortcuts for Windows/Linux
func DefaultHotkeys() HotkeysConfig {
	return HotkeysConfig{
		NextTab:     "Ctrl+Tab",
		PrevTab:     "Ctrl+Shift+Tab",
		CloseTab:    "Ctrl+W",
		MoveTabUp:   "Ctrl+Shift+Up",
		MoveTabDown: "Ctrl+Shift+Down",
		CancelDrag:  "Escape",
	}
}
