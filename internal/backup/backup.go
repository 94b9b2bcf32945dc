package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/always-further/claude-extensions/internal/component"
	"github.com/always-further/claude-extensions/internal/fsutil"
	"github.com/always-further/claude-extensions/internal/target"
	"go.uber.org/zap"
)

const (
	// DefaultRetain is how many snapshots are kept per target.
	DefaultRetain = 5

	prefix     = "backup-"
	timeLayout = "20060102-150405"
)

// Snapshot is one backup directory.
type Snapshot struct {
	ID      string
	Path    string
	Created time.Time
}

// Manager creates, lists, prunes, and restores snapshots.
type Manager struct {
	retain int
	now    func() time.Time
	log    *zap.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithRetain sets how many snapshots survive pruning.
func WithRetain(n int) Option {
	return func(m *Manager) { m.retain = n }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// New returns a Manager.
func New(opts ...Option) *Manager {
	m := &Manager{retain: DefaultRetain, now: time.Now, log: zap.NewNop()}
	for _, o := range opts {
		o(m)
	}
	if m.retain < 1 {
		m.retain = 1
	}
	return m
}

// Create snapshots t. It returns nil when t holds nothing worth saving: no
// non-empty component directory and no shared config file.
func (m *Manager) Create(t target.Target) (*Snapshot, error) {
	var dirs []string
	for _, name := range component.BackupDirs {
		if fsutil.HasEntries(filepath.Join(t.Root, name)) {
			dirs = append(dirs, name)
		}
	}
	var files []target.SharedFile
	for _, f := range t.SharedFiles() {
		if info, err := os.Stat(f.Path); err == nil && info.Mode().IsRegular() {
			files = append(files, f)
		}
	}
	if len(dirs) == 0 && len(files) == 0 {
		m.log.Debug("nothing to back up", zap.String("target", t.Root))
		return nil, nil
	}

	snap, err := m.allocate(t)
	if err != nil {
		return nil, err
	}
	for _, name := range dirs {
		src := filepath.Join(t.Root, name)
		if err := fsutil.CopyTree(src, filepath.Join(snap.Path, name), nil); err != nil {
			return nil, component.IOError("backing up", src, err)
		}
	}
	for _, f := range files {
		if err := fsutil.CopyFile(f.Path, filepath.Join(snap.Path, f.Name)); err != nil {
			return nil, component.IOError("backing up", f.Path, err)
		}
	}
	m.log.Debug("snapshot created",
		zap.String("id", snap.ID),
		zap.Strings("dirs", dirs),
		zap.Int("files", len(files)))

	if err := m.prune(t); err != nil {
		return snap, err
	}
	return snap, nil
}

// allocate creates the snapshot directory. Two snapshots taken within the
// same second get a numeric suffix.
func (m *Manager) allocate(t target.Target) (*Snapshot, error) {
	created := m.now()
	base := prefix + created.Format(timeLayout)
	if err := os.MkdirAll(t.BackupsPath(), 0755); err != nil {
		return nil, component.IOError("creating", t.BackupsPath(), err)
	}

	id := base
	for n := 2; ; n++ {
		path := filepath.Join(t.BackupsPath(), id)
		err := os.Mkdir(path, 0755)
		if err == nil {
			return &Snapshot{ID: id, Path: path, Created: created}, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, component.IOError("creating", path, err)
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}

func (m *Manager) prune(t target.Target) error {
	snaps, err := m.List(t)
	if err != nil {
		return err
	}
	if len(snaps) <= m.retain {
		return nil
	}
	for _, s := range snaps[m.retain:] {
		if err := os.RemoveAll(s.Path); err != nil {
			return component.IOError("pruning", s.Path, err)
		}
		m.log.Debug("snapshot pruned", zap.String("id", s.ID))
	}
	return nil
}

// List returns t's snapshots, newest first.
func (m *Manager) List(t target.Target) ([]Snapshot, error) {
	entries, err := os.ReadDir(t.BackupsPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, component.IOError("listing", t.BackupsPath(), err)
	}

	var snaps []Snapshot
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		snaps = append(snaps, snapshotAt(t.BackupsPath(), e.Name()))
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].ID > snaps[j].ID })
	return snaps, nil
}

func snapshotAt(dir, id string) Snapshot {
	s := Snapshot{ID: id, Path: filepath.Join(dir, id)}
	stamp := strings.TrimPrefix(id, prefix)
	if len(stamp) >= len(timeLayout) {
		if ts, err := time.ParseInLocation(timeLayout, stamp[:len(timeLayout)], time.Local); err == nil {
			s.Created = ts
		}
	}
	return s
}

// Find returns the snapshot of t with the given id.
func (m *Manager) Find(t target.Target, id string) (Snapshot, error) {
	snaps, err := m.List(t)
	if err != nil {
		return Snapshot{}, err
	}
	for _, s := range snaps {
		if s.ID == id {
			return s, nil
		}
	}
	return Snapshot{}, fmt.Errorf("%w: backup %q not found in %s", component.ErrInvalidSelection, id, t.BackupsPath())
}

// Latest returns t's newest snapshot, or ErrInvalidSelection when it has none.
func (m *Manager) Latest(t target.Target) (Snapshot, error) {
	snaps, err := m.List(t)
	if err != nil {
		return Snapshot{}, err
	}
	if len(snaps) == 0 {
		return Snapshot{}, fmt.Errorf("%w: no backups in %s", component.ErrInvalidSelection, t.BackupsPath())
	}
	return snaps[0], nil
}
