// Package fs lists the directories the tab strip is seeded from.
package fs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"

	"github.com/justyntemme/ddtabs/internal/debug"
)

// Entry is one directory found under a root.
type Entry struct {
	Name string
	Path string
}

// ListDirs returns the direct subdirectories of root sorted by name.
// Symlinks to directories count as directories. Dot directories are left
// out unless showHidden is set. Cancelling ctx stops the walk.
func ListDirs(ctx context.Context, root string, showHidden bool) ([]Entry, error) {
	root = filepath.Clean(root)
	debug.Log(debug.FS, "ListDirs: reading %q hidden=%v", root, showHidden)

	var (
		result []Entry
		mu     sync.Mutex
	)
	conf := &fastwalk.Config{Follow: true}

	err := fastwalk.Walk(conf, root, func(fullPath string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if fullPath == root {
				return err
			}
			return nil // Skip unreadable entries, continue walking
		}
		if fullPath == root {
			return nil
		}

		// Only direct children; never recurse
		rel := strings.TrimLeft(fullPath[len(root):], `/\`)
		if strings.ContainsAny(rel, `/\`) {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		name := d.Name()
		if !showHidden && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		info, err := fastwalk.StatDirEntry(fullPath, d)
		if err != nil {
			// Broken symlink
			if info, err = os.Lstat(fullPath); err != nil {
				return nil
			}
		}
		if info.IsDir() {
			mu.Lock()
			result = append(result, Entry{Name: name, Path: fullPath})
			mu.Unlock()
		}
		if d.IsDir() {
			return fastwalk.SkipDir
		}
		return nil
	})
	if err != nil {
		debug.Log(debug.FS, "ListDirs: walk error: %v", err)
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
	})
	debug.Log(debug.FS, "ListDirs: %d directories under %q", len(result), root)
	return result, nil
}
