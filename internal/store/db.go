// Package store persists tab order and settings in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/justyntemme/ddtabs/internal/debug"
)

type EventType int

const (
	FetchOrder EventType = iota
	SaveOrder
	FetchSettings
	SaveSetting
)

type Request struct {
	Op       EventType
	Sheet    string
	Captions []string
	Key      string
	Value    string
}

type Response struct {
	Op       EventType
	Sheet    string
	Captions []string          // Saved order, first tab first
	Settings map[string]string // Key-value settings
	Err      error
}

type DB struct {
	conn         *sql.DB
	RequestChan  chan Request
	ResponseChan chan Response
}

func NewDB() *DB {
	return &DB{
		RequestChan:  make(chan Request, 10),
		ResponseChan: make(chan Response, 10),
	}
}

// DefaultPath returns ~/.config/ddtabs/ddtabs.db
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ddtabs", "ddtabs.db")
}

// Open initializes the database connection and schema
func (d *DB) Open(dbPath string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", dbPath, err)
	}

	// WAL mode allows simultaneous readers and writers
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return err
	}
	// Synchronous NORMAL is safe against app crashes, faster than FULL
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS tab_order (
		sheet    TEXT NOT NULL,
		position INTEGER NOT NULL,
		caption  TEXT NOT NULL,
		PRIMARY KEY (sheet, position)
	);
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("create schema: %w", err)
	}

	d.conn = db
	debug.Log(debug.STORE, "opened %s", dbPath)
	return nil
}

// Start serves RequestChan until it is closed. Every request is answered
// on ResponseChan; saves answer with the data as stored.
func (d *DB) Start() {
	ctx := context.Background()
	for req := range d.RequestChan {
		switch req.Op {
		case FetchOrder:
			captions, err := d.LoadOrder(ctx, req.Sheet)
			d.ResponseChan <- Response{Op: FetchOrder, Sheet: req.Sheet, Captions: captions, Err: err}
		case SaveOrder:
			if err := d.SaveOrder(ctx, req.Sheet, req.Captions); err != nil {
				debug.Log(debug.STORE, "save order of %s: %v", req.Sheet, err)
				d.ResponseChan <- Response{Op: SaveOrder, Sheet: req.Sheet, Err: err}
				continue
			}
			captions, err := d.LoadOrder(ctx, req.Sheet)
			d.ResponseChan <- Response{Op: SaveOrder, Sheet: req.Sheet, Captions: captions, Err: err}
		case FetchSettings:
			settings, err := d.Settings(ctx)
			d.ResponseChan <- Response{Op: FetchSettings, Settings: settings, Err: err}
		case SaveSetting:
			if err := d.SaveSetting(ctx, req.Key, req.Value); err != nil {
				debug.Log(debug.STORE, "save setting %s: %v", req.Key, err)
			}
			// Always answer with a fresh fetch to sync the caller
			settings, err := d.Settings(ctx)
			d.ResponseChan <- Response{Op: SaveSetting, Settings: settings, Err: err}
		}
	}
}

// SaveOrder replaces the stored order of sheet with captions.
func (d *DB) SaveOrder(ctx context.Context, sheet string, captions []string) error {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tab_order WHERE sheet = ?", sheet); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO tab_order (sheet, position, caption) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, c := range captions {
		if _, err := stmt.ExecContext(ctx, sheet, i, c); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	debug.Log(debug.STORE, "saved order of %s (%d tabs)", sheet, len(captions))
	return nil
}

// LoadOrder returns the stored order of sheet, or nil if none was saved.
func (d *DB) LoadOrder(ctx context.Context, sheet string) ([]string, error) {
	rows, err := d.conn.QueryContext(ctx, "SELECT caption FROM tab_order WHERE sheet = ? ORDER BY position ASC", sheet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var captions []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		captions = append(captions, c)
	}
	return captions, rows.Err()
}

// SaveSetting upserts one setting.
func (d *DB) SaveSetting(ctx context.Context, key, value string) error {
	_, err := d.conn.ExecContext(ctx, "INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value)
	return err
}

// Settings returns all stored settings.
func (d *DB) Settings(ctx context.Context) (map[string]string, error) {
	rows, err := d.conn.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

func (d *DB) Close() {
	if d.conn != nil {
		d.conn.Close()
	}
}
