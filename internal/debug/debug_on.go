//go:build debug

// Package debug provides a centralized, categorized debug logging system.
// Build with -tags debug to enable logging.
package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Enabled indicates whether debug logging is active
const Enabled = true

// Category represents a debug logging category
type Category string

const (
	// Core categories
	APP    Category = "APP"    // Orchestration, tab bookkeeping
	DND    Category = "DND"    // Drag lifecycle, transferable and target resolution
	SYNC   Category = "SYNC"   // State pushes to the rendering surface
	STORE  Category = "STORE"  // Database operations, saved tab order, settings
	CONFIG Category = "CONFIG" // Config file loading and validation
	FS     Category = "FS"     // Directory listing used to seed tabs
	UI     Category = "UI"     // UI events, layout, rendering

	// Verbose, off unless asked for
	UI_EVENT Category = "UI_EVENT" // Pointer and transfer events
)

// defaults lists every category with its initial state.
var defaults = map[Category]bool{
	APP:      true,
	DND:      true,
	SYNC:     true,
	STORE:    true,
	CONFIG:   true,
	FS:       true,
	UI:       true,
	UI_EVENT: false,
}

var (
	mu      sync.RWMutex
	enabled = applySpec(defaults, os.Getenv("DDTABS_DEBUG"))
	logger  = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
)

// applySpec returns a copy of base adjusted by spec, the value of
// DDTABS_DEBUG: "all", "none" or a comma separated category list which
// enables exactly those categories.
func applySpec(base map[Category]bool, spec string) map[Category]bool {
	out := make(map[Category]bool, len(base))
	for cat, on := range base {
		out[cat] = on
	}
	spec = strings.ToUpper(strings.TrimSpace(spec))
	switch spec {
	case "":
		return out
	case "ALL", "NONE":
		for cat := range out {
			out[cat] = spec == "ALL"
		}
		return out
	}
	for cat := range out {
		out[cat] = false
	}
	for _, name := range strings.Split(spec, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out[Category(name)] = true
		}
	}
	return out
}

// Log logs a debug message for the specified category
func Log(cat Category, format string, args ...any) {
	mu.RLock()
	on := enabled[cat]
	mu.RUnlock()
	if !on {
		return
	}
	logger.Printf("[%s] %s", cat, fmt.Sprintf(format, args...))
}

// SetOutput redirects debug output, mostly for tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Enable enables a debug category
func Enable(cat Category) { set(cat, true) }

// Disable disables a debug category
func Disable(cat Category) { set(cat, false) }

func set(cat Category, on bool) {
	mu.Lock()
	enabled[cat] = on
	mu.Unlock()
}

// IsEnabled returns whether a category is enabled
func IsEnabled(cat Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled[cat]
}

// EnableAll enables all debug categories including verbose ones
func EnableAll() { setAll(true) }

// DisableAll disables all debug categories
func DisableAll() { setAll(false) }

func setAll(on bool) {
	mu.Lock()
	for cat := range enabled {
		enabled[cat] = on
	}
	mu.Unlock()
}

// SetCategories sets the enabled state for multiple categories
func SetCategories(cats map[Category]bool) {
	mu.Lock()
	for cat, on := range cats {
		enabled[cat] = on
	}
	mu.Unlock()
}

// ListEnabled returns a slice of currently enabled categories
func ListEnabled() []Category {
	mu.RLock()
	defer mu.RUnlock()
	var out []Category
	for cat, on := range enabled {
		if on {
			out = append(out, cat)
		}
	}
	return out
}
