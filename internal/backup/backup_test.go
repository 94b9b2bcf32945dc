package backup

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/always-further/claude-extensions/internal/component"
	"github.com/always-further/claude-extensions/internal/target"
	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// newTarget returns a code target rooted at <tmp>/.claude, so .mcp.json
// lands inside the temp dir.
func newTarget(t *testing.T) target.Target {
	t.Helper()
	tgt, err := target.New(target.FlavorCode, filepath.Join(t.TempDir(), ".claude"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(tgt.Root, 0755); err != nil {
		t.Fatal(err)
	}
	return tgt
}

// clock returns a clock that advances one second per call.
func clock() func() time.Time {
	ts := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	return func() time.Time {
		ts = ts.Add(time.Second)
		return ts
	}
}

// tree maps every regular file under root (relative, slash-separated) to its
// content, skipping the backups directory.
func tree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == target.BackupsDir {
			return filepath.SkipDir
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestCreateEmptyTargetMakesNothing(t *testing.T) {
	tgt := newTarget(t)
	if err := os.Mkdir(filepath.Join(tgt.Root, "skills"), 0755); err != nil {
		t.Fatal(err)
	}

	snap, err := New().Create(tgt)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if snap != nil {
		t.Errorf("Create() = %+v, want nil", snap)
	}
	if _, err := os.Stat(tgt.BackupsPath()); !os.IsNotExist(err) {
		t.Errorf("backups dir should not exist, stat err = %v", err)
	}
}

func TestCreateCopiesDirsAndSharedFiles(t *testing.T) {
	tgt := newTarget(t)
	writeFile(t, filepath.Join(tgt.Root, "skills", "pdf", "SKILL.md"), "pdf")
	writeFile(t, filepath.Join(tgt.Root, "agents", "reviewer.md"), "reviewer")
	writeFile(t, tgt.SettingsPath(), `{"hooks": {}}`)
	writeFile(t, tgt.MCPPath(), `{"mcpServers": {}}`)

	snap, err := New(WithClock(clock())).Create(tgt)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if snap == nil {
		t.Fatal("Create() = nil, want snapshot")
	}
	if snap.ID != "backup-20260301-090001" {
		t.Errorf("ID = %s", snap.ID)
	}

	want := map[string]string{
		"skills/pdf/SKILL.md": "pdf",
		"agents/reviewer.md":  "reviewer",
		"settings.json":       `{"hooks": {}}`,
		".mcp.json":           `{"mcpServers": {}}`,
	}
	if diff := cmp.Diff(want, tree(t, snap.Path)); diff != "" {
		t.Errorf("snapshot contents mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateDereferencesLinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("directory symlinks need privileges on Windows")
	}
	tgt := newTarget(t)
	src := filepath.Join(t.TempDir(), "repo", "skills", "pdf")
	writeFile(t, filepath.Join(src, "SKILL.md"), "v1")
	if err := os.MkdirAll(filepath.Join(tgt.Root, "skills"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(src, filepath.Join(tgt.Root, "skills", "pdf")); err != nil {
		t.Fatal(err)
	}

	snap, err := New().Create(tgt)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	saved := filepath.Join(snap.Path, "skills", "pdf")
	info, err := os.Lstat(saved)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		t.Error("snapshot should hold a copy, not a link")
	}

	writeFile(t, filepath.Join(src, "SKILL.md"), "v2")
	if data, _ := os.ReadFile(filepath.Join(saved, "SKILL.md")); string(data) != "v1" {
		t.Errorf("snapshot changed with source: %q", data)
	}
}

func TestRetention(t *testing.T) {
	tgt := newTarget(t)
	writeFile(t, tgt.SettingsPath(), "{}")
	m := New(WithClock(clock()))

	var ids []string
	for i := 0; i < 6; i++ {
		snap, err := m.Create(tgt)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids = append(ids, snap.ID)
	}

	snaps, err := m.List(tgt)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, s := range snaps {
		got = append(got, s.ID)
	}
	want := []string{ids[5], ids[4], ids[3], ids[2], ids[1]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("retained snapshots mismatch (-want +got):\n%s", diff)
	}
}

func TestSameSecondSnapshotsDoNotCollide(t *testing.T) {
	tgt := newTarget(t)
	writeFile(t, tgt.SettingsPath(), "{}")
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	m := New(WithClock(func() time.Time { return fixed }))

	a, err := m.Create(tgt)
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.Create(tgt)
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Fatalf("snapshots share id %s", a.ID)
	}
	latest, err := m.Latest(tgt)
	if err != nil {
		t.Fatal(err)
	}
	if latest.ID != b.ID {
		t.Errorf("Latest() = %s, want %s", latest.ID, b.ID)
	}
}

func TestRestoreReplacesDirectory(t *testing.T) {
	tgt := newTarget(t)
	skill := filepath.Join(tgt.Root, "skills", "pdf")
	writeFile(t, filepath.Join(skill, "B.md"), "b")
	m := New(WithClock(clock()))

	snap, err := m.Create(tgt)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.Remove(filepath.Join(skill, "B.md")); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(skill, "A.md"), "a")

	report, err := m.Restore(tgt, *snap)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if diff := cmp.Diff([]string{"skills"}, report.Dirs); diff != "" {
		t.Errorf("restored dirs mismatch (-want +got):\n%s", diff)
	}
	want := map[string]string{"skills/pdf/B.md": "b"}
	if diff := cmp.Diff(want, tree(t, tgt.Root)); diff != "" {
		t.Errorf("target mismatch (-want +got):\n%s", diff)
	}
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	tgt := newTarget(t)
	writeFile(t, filepath.Join(tgt.Root, "skills", "pdf", "SKILL.md"), "---\nname: pdf\n---\n")
	writeFile(t, filepath.Join(tgt.Root, "skills", "pdf", "scripts", "run.sh"), "#!/bin/sh\n")
	writeFile(t, filepath.Join(tgt.Root, "commands", "commit.md"), "commit")
	writeFile(t, filepath.Join(tgt.Root, "hooks", "gofmt", "settings.json"), "{}")
	writeFile(t, tgt.SettingsPath(), `{"hooks": {"PostToolUse": [1, 2.50]}}`)
	writeFile(t, tgt.MCPPath(), `{"mcpServers": {"fs": {"command": "npx"}}}`)
	m := New(WithClock(clock()))

	before := tree(t, tgt.Root)
	mcpBefore, _ := os.ReadFile(tgt.MCPPath())

	snap, err := m.Create(tgt)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Restore(tgt, *snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if diff := cmp.Diff(before, tree(t, tgt.Root)); diff != "" {
		t.Errorf("round trip mismatch (-before +after):\n%s", diff)
	}
	mcpAfter, _ := os.ReadFile(tgt.MCPPath())
	if string(mcpBefore) != string(mcpAfter) {
		t.Errorf(".mcp.json = %q, want %q", mcpAfter, mcpBefore)
	}
}

func TestRestoreLeavesDirsMissingFromSnapshot(t *testing.T) {
	tgt := newTarget(t)
	writeFile(t, tgt.SettingsPath(), `{"a": 1}`)
	m := New(WithClock(clock()))
	snap, err := m.Create(tgt)
	if err != nil {
		t.Fatal(err)
	}

	writeFile(t, filepath.Join(tgt.Root, "agents", "new.md"), "new")
	writeFile(t, tgt.SettingsPath(), `{"a": 2}`)

	report, err := m.Restore(tgt, *snap)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Dirs) != 0 {
		t.Errorf("Dirs = %v, want none", report.Dirs)
	}
	if diff := cmp.Diff([]string{"settings.json"}, report.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(tgt.Root, "agents", "new.md")); err != nil {
		t.Errorf("agents/new.md should survive restore: %v", err)
	}
	if data, _ := os.ReadFile(tgt.SettingsPath()); string(data) != `{"a": 1}` {
		t.Errorf("settings.json = %q", data)
	}
}

func TestFindUnknown(t *testing.T) {
	tgt := newTarget(t)
	_, err := New().Find(tgt, "backup-19990101-000000")
	if !errors.Is(err, component.ErrInvalidSelection) {
		t.Errorf("Find() err = %v, want ErrInvalidSelection", err)
	}
	_, err = New().Latest(tgt)
	if !errors.Is(err, component.ErrInvalidSelection) {
		t.Errorf("Latest() err = %v, want ErrInvalidSelection", err)
	}
}

func TestListParsesCreated(t *testing.T) {
	tgt := newTarget(t)
	writeFile(t, tgt.SettingsPath(), "{}")
	m := New(WithClock(clock()))
	snap, err := m.Create(tgt)
	if err != nil {
		t.Fatal(err)
	}
	got, err := m.Find(tgt, snap.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Created.Equal(snap.Created) {
		t.Errorf("Created = %v, want %v", got.Created, snap.Created)
	}
}
