package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"px/internal/gitstatus"
	"px/internal/logging"
	"px/internal/walker"
)

// SchemaVersion is bumped when the on-disk index shape changes.
const SchemaVersion = 1

// probeWorkers bounds how many repositories are probed concurrently during a
// sync. The merge into the new map stays sequential and single-writer.
const probeWorkers = 4

// lockTimeout bounds how long a mutating operation waits for the advisory
// lock held by another px process.
const lockTimeout = 5 * time.Second

// Index is the persisted collection of projects, keyed by absolute path.
type Index struct {
	Projects map[string]*Project `json:"projects"`
	LastSync int64               `json:"last_sync"`
	Version  int                 `json:"version"`
}

func newIndex() *Index {
	return &Index{
		Projects: make(map[string]*Project),
		LastSync: time.Now().Unix(),
		Version:  SchemaVersion,
	}
}

// Store owns the persisted project index. It is constructed explicitly and
// injected into callers; there is no ambient singleton. Every mutating
// operation takes an advisory file lock around its write, so two concurrent
// px invocations cannot corrupt the index file.
type Store struct {
	path string
	git  gitstatus.Provider
	idx  *Index
}

// NewStore returns a store persisting to path and probing repositories
// through git. Call Load before anything else.
func NewStore(path string, git gitstatus.Provider) *Store {
	return &Store{path: path, git: git}
}

// DefaultCachePath returns the per-user index location,
// e.g. ~/.cache/px/projects.json on Linux.
func DefaultCachePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine cache directory: %w", err)
	}
	return filepath.Join(dir, "px", "projects.json"), nil
}

// Load reads the index file. A missing file is not an error: it yields a
// fresh empty index so the first run works without setup. An unparseable
// file is a FormatError; the data is never silently discarded.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.idx = newIndex()
			return nil
		}
		return fmt.Errorf("cannot read index file %s: %w", s.path, err)
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return &FormatError{Path: s.path, Err: err}
	}
	if idx.Projects == nil {
		idx.Projects = make(map[string]*Project)
	}
	s.idx = &idx
	return nil
}

// Save serializes the index to disk under the advisory lock, creating parent
// directories as needed. The write goes through a temp file and rename so a
// crash mid-write never leaves a truncated index behind.
func (s *Store) Save() error {
	// The lock file lives next to the index, so the cache directory must
	// exist before the lock can be taken. First run has neither.
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create cache directory %s: %w", dir, err)
	}

	unlock, err := s.acquireLock()
	if err != nil {
		return err
	}
	defer unlock()
	return s.writeLocked(dir)
}

func (s *Store) writeLocked(dir string) error {
	data, err := json.MarshalIndent(s.idx, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize index: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "projects-*.json.tmp")
	if err != nil {
		return fmt.Errorf("cannot create temp index file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cannot write index file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cannot write index file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cannot replace index file %s: %w", s.path, err)
	}
	return nil
}

// acquireLock takes the advisory lock guarding the index file, waiting up to
// lockTimeout for a concurrent px process to release it.
func (s *Store) acquireLock() (func(), error) {
	l := flock.New(s.path + ".lock")
	deadline := time.Now().Add(lockTimeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return nil, fmt.Errorf("cannot acquire index lock: %w", err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("another px process holds the index lock (%s.lock)", s.path)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// SyncOptions tunes repository discovery during Sync.
type SyncOptions struct {
	// MaxDepth bounds the walk below each scan root. Zero means
	// walker.DefaultMaxDepth.
	MaxDepth int

	// RespectIgnore prunes gitignored directories during the walk.
	RespectIgnore bool
}

// Sync rebuilds the index by scanning the given roots for repositories.
// Missing roots and failed repository probes are logged and skipped; they do
// not abort the sync. Frecency fields of projects that survive the rescan
// are carried forward unchanged, everything else is freshly probed. Entries
// for paths no longer discovered are dropped. Returns the number of indexed
// projects.
func (s *Store) Sync(roots []string, opts SyncOptions) (int, error) {
	candidates := s.discover(roots, opts)
	built := s.probeAll(candidates)

	// Single-writer merge: carry the access history forward by path, then
	// replace the whole map so vanished projects disappear.
	newProjects := make(map[string]*Project, len(built))
	for _, p := range built {
		if prev, ok := s.idx.Projects[p.Path]; ok {
			p.AccessCount = prev.AccessCount
			p.LastAccessed = prev.LastAccessed
			p.FrecencyScore = prev.FrecencyScore
		}
		newProjects[p.Path] = p
	}

	s.idx.Projects = newProjects
	s.idx.LastSync = time.Now().Unix()

	if err := s.Save(); err != nil {
		return 0, err
	}
	return len(newProjects), nil
}

// discover walks every scan root and returns the de-duplicated repository
// roots found beneath them.
func (s *Store) discover(roots []string, opts SyncOptions) []string {
	seen := make(map[string]bool)
	var candidates []string

	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			logging.Warn().Str("root", root).Err(err).Msg("scan root does not exist, skipping")
			continue
		}

		entries, err := walker.Walk(root, walker.Options{
			MaxDepth:      opts.MaxDepth,
			RespectIgnore: opts.RespectIgnore,
		})
		if err != nil {
			logging.Warn().Str("root", root).Err(err).Msg("cannot scan root, skipping")
			continue
		}

		for _, e := range entries {
			if seen[e.Path] || !s.git.IsRepo(e.Path) {
				continue
			}
			seen[e.Path] = true
			candidates = append(candidates, e.Path)
		}
	}
	return candidates
}

// probeAll builds fresh Projects for the candidate repository roots, a few
// in parallel. A failed probe drops that one candidate.
func (s *Store) probeAll(candidates []string) []*Project {
	var (
		mu    sync.Mutex
		built []*Project
	)

	var g errgroup.Group
	g.SetLimit(probeWorkers)
	for _, path := range candidates {
		path := path
		g.Go(func() error {
			p, err := BuildProject(path, s.git)
			if err != nil {
				logging.Warn().Str("path", path).Err(err).Msg("cannot index repository, skipping")
				return nil
			}
			mu.Lock()
			built = append(built, p)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return built
}

// RecordAccess bumps the access history for path and persists immediately
// (write-through, no batching). An unknown path is a no-op: it may have been
// dropped by a prior resync.
func (s *Store) RecordAccess(path string) error {
	p, ok := s.idx.Projects[path]
	if !ok {
		return nil
	}
	p.AccessCount++
	p.LastAccessed = time.Now().Unix()
	p.updateFrecency()
	return s.Save()
}

// Get returns the project at path, or ErrNotFound.
func (s *Store) Get(path string) (*Project, error) {
	p, ok := s.idx.Projects[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return p, nil
}

// Projects returns all indexed projects in unspecified order.
func (s *Store) Projects() []*Project {
	out := make([]*Project, 0, len(s.idx.Projects))
	for _, p := range s.idx.Projects {
		out = append(out, p)
	}
	return out
}

// SortedProjects returns all projects ordered by frecency score descending.
// Ties break on path so the order is deterministic.
func (s *Store) SortedProjects() []*Project {
	out := s.Projects()
	sortByFrecency(out)
	return out
}

// LastSync returns the time of the most recent full resync.
func (s *Store) LastSync() time.Time {
	return time.Unix(s.idx.LastSync, 0)
}

func sortByFrecency(projects []*Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].FrecencyScore != projects[j].FrecencyScore {
			return projects[i].FrecencyScore > projects[j].FrecencyScore
		}
		return projects[i].Path < projects[j].Path
	})
}
