package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"px/internal/logging"
)

// Options controls a directory walk.
type Options struct {
	// MaxDepth bounds how many levels below the root are visited. The root
	// itself is depth 0. Zero means use DefaultMaxDepth.
	MaxDepth int

	// FollowSymlinks descends into symlinked directories when set.
	FollowSymlinks bool

	// RespectIgnore prunes directories matched by .gitignore files found
	// along the way, so build output and vendored trees are not visited.
	RespectIgnore bool
}

// DefaultMaxDepth is deep enough to find repositories nested a few levels
// below a scan root without turning the scan into a full tree walk.
const DefaultMaxDepth = 3

// Entry is one directory produced by a walk.
type Entry struct {
	Path  string
	Depth int
}

// Walk enumerates directories under root, depth-first, up to the configured
// depth. Hidden directories are skipped. Unreadable directories below the
// root are logged and skipped; only a missing or unreadable root is an error.
func Walk(root string, opts Options) ([]Entry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access scan root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	w := &walk{opts: opts, maxDepth: maxDepth}
	w.descend(root, 0, nil)
	return w.out, nil
}

type walk struct {
	opts     Options
	maxDepth int
	out      []Entry
}

// descend visits dir at the given depth, appending it and recursing into its
// subdirectories. ignores holds the .gitignore matchers of dir's ancestors,
// innermost last, each paired with the directory it was found in.
func (w *walk) descend(dir string, depth int, ignores []scopedIgnore) {
	w.out = append(w.out, Entry{Path: dir, Depth: depth})
	if depth >= w.maxDepth {
		return
	}

	if w.opts.RespectIgnore {
		if gi := loadIgnoreFile(dir); gi != nil {
			ignores = append(ignores, scopedIgnore{base: dir, matcher: gi})
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.Warn().Str("dir", dir).Err(err).Msg("cannot read directory, skipping")
		return
	}

	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		isDir := e.IsDir()
		if !isDir && e.Type()&os.ModeSymlink != 0 && w.opts.FollowSymlinks {
			target, err := os.Stat(filepath.Join(dir, name))
			isDir = err == nil && target.IsDir()
		}
		if !isDir {
			continue
		}

		child := filepath.Join(dir, name)
		if w.opts.RespectIgnore && ignored(ignores, child) {
			continue
		}
		w.descend(child, depth+1, ignores)
	}
}

// scopedIgnore is a compiled .gitignore together with the directory its
// patterns are relative to.
type scopedIgnore struct {
	base    string
	matcher *ignore.GitIgnore
}

func loadIgnoreFile(dir string) *ignore.GitIgnore {
	path := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		logging.Debug().Str("path", path).Err(err).Msg("cannot parse .gitignore")
		return nil
	}
	return gi
}

func ignored(ignores []scopedIgnore, path string) bool {
	for _, si := range ignores {
		rel, err := filepath.Rel(si.base, path)
		if err != nil {
			continue
		}
		// Directory patterns like "vendor/" only match with a trailing slash.
		if si.matcher.MatchesPath(rel) || si.matcher.MatchesPath(rel+"/") {
			return true
		}
	}
	return false
}
