package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tidwall/jsonc"

	"github.com/justyntemme/ddtabs/internal/debug"
	"github.com/justyntemme/ddtabs/internal/dnd"
)

// Config holds all user-configurable settings loaded from config.json
type Config struct {
	DragDrop DragDropConfig `json:"dragDrop"`
	Tabs     TabsConfig     `json:"tabs"`
	UI       UIConfig       `json:"ui"`
	Hotkeys  HotkeysConfig  `json:"hotkeys"`
}

// DragDropConfig holds the drag-and-drop settings of the tab strip
type DragDropConfig struct {
	DragMode    string   `json:"dragMode"`    // "none" | "clone" | "caption" | "clone_other"
	DropRatio   float64  `json:"dropRatio"`   // 0 to 0.5, share of a tab taken by each outer zone
	ShimEnabled bool     `json:"shimEnabled"` // overlay shims over tab content while dragging
	PinnedTabs  []string `json:"pinnedTabs"`  // captions that can never be dragged
	Accept      string   `json:"accept"`      // "all" | "same_source" | "outer_zones"
}

// TabsConfig holds tab-related settings
type TabsConfig struct {
	RestoreOrder  bool `json:"restoreOrder"`  // reapply the saved order on start
	Closable      bool `json:"closable"`      // show close buttons
	HiddenDotDirs bool `json:"hiddenDotDirs"` // seed tabs for dot directories too
}

// UIConfig holds UI-related settings
type UIConfig struct {
	Theme     string `json:"theme"`     // "light" or "dark"
	TabHeight int    `json:"tabHeight"` // in dp
}

// HotkeysConfig holds the keyboard shortcuts of the tab strip
type HotkeysConfig struct {
	NextTab     string `json:"nextTab"`
	PrevTab     string `json:"prevTab"`
	CloseTab    string `json:"closeTab"`
	MoveTabUp   string `json:"moveTabUp"`
	MoveTabDown string `json:"moveTabDown"`
	CancelDrag  string `json:"cancelDrag"`
}

// Accept presets
const (
	AcceptAll        = "all"
	AcceptSameSource = "same_source"
	AcceptOuterZones = "outer_zones"
)

// Manager handles loading, saving, and accessing configuration
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	parseErr error // Stores parsing or validation error, defaults are used instead
}

// NewManager creates a configuration manager for the default path
func NewManager() *Manager {
	return NewManagerAt(ConfigPath())
}

// NewManagerAt creates a configuration manager for the file at path
func NewManagerAt(path string) *Manager {
	return &Manager{
		config: DefaultConfig(),
		path:   path,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DragDrop: DragDropConfig{
			DragMode:  dnd.ModeClone.String(),
			DropRatio: dnd.DefaultDropRatio,
			Accept:    AcceptAll,
		},
		Tabs: TabsConfig{
			RestoreOrder: true,
			Closable:     true,
		},
		UI: UIConfig{
			Theme:     "light",
			TabHeight: 36,
		},
		Hotkeys: DefaultHotkeys(),
	}
}

// ConfigPath returns the config file path: ~/.config/ddtabs/config.json
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ddtabs", "config.json")
}

// Path returns the file the manager reads and writes
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// Load reads the configuration from the config file.
// If the file doesn't exist, creates it with defaults.
// If parsing or validation fails, stores the error and keeps defaults for
// the broken values.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.parseErr = nil

	configDir := filepath.Dir(m.path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		debug.Log(debug.CONFIG, "failed to create directory %s: %v", configDir, err)
		return err
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		debug.Log(debug.CONFIG, "creating default config at %s", m.path)
		m.config = DefaultConfig()
		if saveErr := m.saveUnlocked(); saveErr != nil {
			debug.Log(debug.CONFIG, "failed to save default config: %v", saveErr)
			return saveErr
		}
		return nil
	}
	if err != nil {
		debug.Log(debug.CONFIG, "failed to read %s: %v", m.path, err)
		return err
	}

	// Start from defaults so keys missing from the file keep their default
	cfg := DefaultConfig()
	if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
		debug.Log(debug.CONFIG, "JSON parse error: %v", err)
		m.parseErr = err
		m.config = DefaultConfig()
		return nil // Don't return error - we're using defaults
	}

	if err := validate(cfg); err != nil {
		debug.Log(debug.CONFIG, "invalid config: %v", err)
		m.parseErr = err
	}

	debug.Log(debug.CONFIG, "loaded from %s", m.path)
	m.config = cfg
	return nil
}

// validate resets invalid values to their defaults and reports what it reset.
func validate(cfg *Config) error {
	var problems []error
	if err := dnd.ValidateDropRatio(cfg.DragDrop.DropRatio); err != nil {
		problems = append(problems, fmt.Errorf("dragDrop.dropRatio: %w", err))
		cfg.DragDrop.DropRatio = dnd.DefaultDropRatio
	}
	if _, err := dnd.ParseDragMode(cfg.DragDrop.DragMode); err != nil {
		problems = append(problems, fmt.Errorf("dragDrop.dragMode: %w", err))
		cfg.DragDrop.DragMode = dnd.ModeClone.String()
	}
	switch cfg.DragDrop.Accept {
	case "", AcceptAll, AcceptSameSource, AcceptOuterZones:
	default:
		problems = append(problems, fmt.Errorf("dragDrop.accept: unknown preset %q", cfg.DragDrop.Accept))
		cfg.DragDrop.Accept = AcceptAll
	}
	if cfg.UI.TabHeight <= 0 {
		cfg.UI.TabHeight = 36
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("config: %w", errors.Join(problems...))
}

// saveUnlocked saves config without acquiring lock (caller must hold lock)
func (m *Manager) saveUnlocked() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUnlocked()
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return *DefaultConfig()
	}
	return *m.config
}

// ParseError returns the parsing error if config failed to load
func (m *Manager) ParseError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parseErr
}

// SetTheme updates the theme setting
func (m *Manager) SetTheme(theme string) {
	m.mu.Lock()
	m.config.UI.Theme = theme
	m.mu.Unlock()
	m.Save()
}

// IsDarkMode returns true if dark mode is enabled
func (m *Manager) IsDarkMode() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.UI.Theme == "dark"
}

// SetDropRatio validates and stores the drop ratio
func (m *Manager) SetDropRatio(r float64) error {
	if err := dnd.ValidateDropRatio(r); err != nil {
		return err
	}
	m.mu.Lock()
	m.config.DragDrop.DropRatio = r
	m.mu.Unlock()
	return m.Save()
}

// SetDragMode stores the drag mode
func (m *Manager) SetDragMode(mode dnd.DragMode) {
	m.mu.Lock()
	m.config.DragDrop.DragMode = mode.String()
	m.mu.Unlock()
	m.Save()
}

// SetShimEnabled stores the shim flag
func (m *Manager) SetShimEnabled(on bool) {
	m.mu.Lock()
	m.config.DragDrop.ShimEnabled = on
	m.mu.Unlock()
	m.Save()
}

// SetHiddenDotDirs updates whether dot directories get tabs
func (m *Manager) SetHiddenDotDirs(show bool) {
	m.mu.Lock()
	m.config.Tabs.HiddenDotDirs = show
	m.mu.Unlock()
	m.Save()
}

// PinTab makes caption undraggable
func (m *Manager) PinTab(caption string) {
	m.mu.Lock()
	for _, c := range m.config.DragDrop.PinnedTabs {
		if c == caption {
			m.mu.Unlock()
			return
		}
	}
	m.config.DragDrop.PinnedTabs = append(m.config.DragDrop.PinnedTabs, caption)
	m.mu.Unlock()
	m.Save()
}

// UnpinTab makes caption draggable again
func (m *Manager) UnpinTab(caption string) {
	m.mu.Lock()
	pinned := m.config.DragDrop.PinnedTabs
	for i, c := range pinned {
		if c == caption {
			m.config.DragDrop.PinnedTabs = append(pinned[:i], pinned[i+1:]...)
			break
		}
	}
	m.mu.Unlock()
	m.Save()
}

// GenerateConfig backs up the config at path, if any, and writes fresh
// defaults. Returns the backup path, or empty string if no config existed.
func GenerateConfig(path string) (backupPath string, err error) {
	if path == "" {
		path = ConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		timestamp := time.Now().Format("20060102-150405")
		backupPath = filepath.Join(filepath.Dir(path), "config.backup."+timestamp+".json")

		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read existing config: %w", err)
		}
		if err := os.WriteFile(backupPath, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write backup: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return backupPath, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return backupPath, fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return backupPath, fmt.Errorf("failed to write config: %w", err)
	}
	return backupPath, nil
}
