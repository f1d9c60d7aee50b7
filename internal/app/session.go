// Package app wires the tab sheet to its config, its store and the Gio
// window, and dispatches the renderer's events to the sheet.
package app

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/justyntemme/ddtabs/internal/config"
	"github.com/justyntemme/ddtabs/internal/ddtabs"
	"github.com/justyntemme/ddtabs/internal/debug"
	"github.com/justyntemme/ddtabs/internal/dnd"
	"github.com/justyntemme/ddtabs/internal/fs"
	"github.com/justyntemme/ddtabs/internal/store"
	"github.com/justyntemme/ddtabs/internal/tabsheet"
)

// Options selects what a session opens.
type Options struct {
	Root       string // directory whose subdirectories become tabs
	ConfigPath string // empty means config.ConfigPath()
	DBPath     string // empty means store.DefaultPath(); "-" disables persistence
}

// OrderStore loads and saves the caption order of a sheet.
type OrderStore interface {
	ddtabs.OrderSaver
	LoadOrder(ctx context.Context, sheet string) ([]string, error)
}

// Session is a seeded sheet with its config and store, without a window.
type Session struct {
	Config *config.Manager
	Store  *store.DB // nil when persistence is off or the database failed to open
	Sheet  *ddtabs.Sheet
	Key    string // store key of the sheet, the absolute root

	known map[string]bool // directories seen by the last listing
}

// OpenSession loads the config, opens the store and seeds a sheet from
// opts.Root. A store that fails to open is logged and left out; a root
// that cannot be listed is an error.
func OpenSession(ctx context.Context, opts Options) (*Session, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", opts.Root, err)
	}

	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = config.ConfigPath()
	}
	mgr := config.NewManagerAt(cfgPath)
	if err := mgr.Load(); err != nil {
		log.Printf("Config Error: %v", err)
	}
	if perr := mgr.ParseError(); perr != nil {
		log.Printf("Config Error: %v (using defaults)", perr)
	}

	s := &Session{Config: mgr, Key: root}

	if opts.DBPath != "-" {
		dbPath := opts.DBPath
		if dbPath == "" {
			dbPath = store.DefaultPath()
		}
		db := store.NewDB()
		if err := db.Open(dbPath); err != nil {
			log.Printf("Failed to open DB: %v", err)
		} else {
			s.Store = db
		}
	}

	var orders OrderStore
	if s.Store != nil {
		orders = s.Store
	}
	sheet, err := Seed(ctx, root, mgr.Get(), orders)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Sheet = sheet
	s.known = make(map[string]bool)
	for _, t := range sheet.Tabs() {
		s.known[t.Caption] = true
	}
	return s, nil
}

// Refresh lists the root again. Tabs are appended for new directories and
// closed for vanished ones; tabs the user closed stay closed. It reports
// whether the tabs changed.
func (s *Session) Refresh(ctx context.Context) (bool, error) {
	cfg := s.Config.Get()
	entries, err := fs.ListDirs(ctx, s.Key, cfg.Tabs.HiddenDotDirs)
	if err != nil {
		return false, fmt.Errorf("refresh %s: %w", s.Key, err)
	}

	now := make(map[string]bool, len(entries))
	for _, e := range entries {
		now[e.Name] = true
	}

	changed := false
	tabs := s.Sheet.Tabs()
	for i := len(tabs) - 1; i >= 0; i-- {
		c := tabs[i].Caption
		if s.known[c] && !now[c] {
			if _, err := s.Sheet.RemoveTab(i); err == nil {
				changed = true
			}
		}
	}
	for _, e := range entries {
		if !s.known[e.Name] {
			s.Sheet.InsertTab(dirTab(e.Name, cfg.Tabs.Closable), s.Sheet.Len())
			changed = true
		}
	}
	s.known = now
	if changed {
		debug.Log(debug.APP, "refreshed %s: %d tabs", s.Key, s.Sheet.Len())
	}
	return changed, nil
}

// Close releases the store.
func (s *Session) Close() {
	if s.Store != nil {
		s.Store.Close()
	}
}

// UseSaver replaces the saver the sheet's drop handler persists through.
// A nil saver turns persistence off.
func (s *Session) UseSaver(sv ddtabs.OrderSaver) {
	s.Sheet.SetDropHandler(dropHandler(s.Config.Get().DragDrop, sv, s.Key))
}

// Seed builds a sheet with one tab per subdirectory of root, restores the
// saved order when configured to, and installs the reordering handler.
// orders may be nil.
func Seed(ctx context.Context, root string, cfg config.Config, orders OrderStore) (*ddtabs.Sheet, error) {
	entries, err := fs.ListDirs(ctx, root, cfg.Tabs.HiddenDotDirs)
	if err != nil {
		return nil, fmt.Errorf("seed tabs from %s: %w", root, err)
	}

	ts := tabsheet.New("")
	for _, e := range entries {
		ts.InsertTab(dirTab(e.Name, cfg.Tabs.Closable), ts.Len())
	}
	debug.Log(debug.APP, "seeded %d tabs from %s", len(entries), root)

	if cfg.Tabs.RestoreOrder && orders != nil {
		captions, err := orders.LoadOrder(ctx, root)
		if err != nil {
			log.Printf("Store Error: %v", err)
		} else if len(captions) > 0 {
			restoreOrder(ts, captions)
			debug.Log(debug.APP, "restored order of %d tabs", len(captions))
		}
	}
	if ts.Len() > 0 {
		ts.Select(0)
	}

	sheet, err := ddtabs.New(ts, cfg.DragDrop.SheetConfig())
	if err != nil {
		return nil, err
	}
	var saver ddtabs.OrderSaver
	if orders != nil {
		saver = orders
	}
	sheet.SetDropHandler(dropHandler(cfg.DragDrop, saver, root))
	return sheet, nil
}

func dirTab(name string, closable bool) *tabsheet.Tab {
	t := tabsheet.NewTab(tabsheet.NewPanel(name), name)
	t.Closable = closable
	return t
}

func dropHandler(cfg config.DragDropConfig, saver ddtabs.OrderSaver, key string) dnd.DropHandler {
	h := ddtabs.NewReorderHandler(cfg.Criterion())
	if saver == nil {
		return h
	}
	return &ddtabs.PersistingHandler{Inner: h, Saver: saver, Key: key}
}

// restoreOrder applies a saved caption order. Captions are matched in
// order, so duplicates map to successive tabs.
func restoreOrder(ts *tabsheet.TabSheet, captions []string) {
	ids := make(map[string][]string)
	for _, t := range ts.Tabs() {
		ids[t.Caption] = append(ids[t.Caption], t.ID)
	}
	order := make([]string, 0, len(captions))
	for _, c := range captions {
		if q := ids[c]; len(q) > 0 {
			order = append(order, q[0])
			ids[c] = q[1:]
		}
	}
	ts.Reorder(order)
}
