package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCreateSymlinkFile(t *testing.T) {
	tmp := t.TempDir()

	targetPath := filepath.Join(tmp, "agent.md")
	if err := os.WriteFile(targetPath, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	linkPath := filepath.Join(tmp, "link.md")
	if err := CreateSymlink(targetPath, linkPath); err != nil {
		t.Fatalf("CreateSymlink failed: %v", err)
	}

	data, err := os.ReadFile(linkPath)
	if err != nil {
		t.Fatalf("reading link: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("link content = %q, want %q", string(data), "hello")
	}
}

func TestCreateSymlinkDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("directory links need developer mode on Windows")
	}
	tmp := t.TempDir()

	skillDir := filepath.Join(tmp, "skills", "git-workflow")
	if err := os.MkdirAll(skillDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	linkPath := filepath.Join(tmp, "link")
	if err := CreateSymlink(skillDir, linkPath); err != nil {
		t.Fatalf("CreateSymlink failed: %v", err)
	}
	if !IsSymlink(linkPath) {
		t.Fatal("IsSymlink = false for a fresh link")
	}
	if _, err := os.Stat(filepath.Join(linkPath, "SKILL.md")); err != nil {
		t.Errorf("file not reachable through link: %v", err)
	}
}

func TestRemoveSymlinkKeepsTarget(t *testing.T) {
	tmp := t.TempDir()

	targetPath := filepath.Join(tmp, "target.txt")
	if err := os.WriteFile(targetPath, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	linkPath := filepath.Join(tmp, "link.txt")
	if err := CreateSymlink(targetPath, linkPath); err != nil {
		t.Fatal(err)
	}

	if err := RemoveSymlink(linkPath); err != nil {
		t.Fatalf("RemoveSymlink failed: %v", err)
	}
	if _, err := os.Lstat(linkPath); !os.IsNotExist(err) {
		t.Error("link still exists after RemoveSymlink")
	}
	if _, err := os.Stat(targetPath); err != nil {
		t.Errorf("target removed along with link: %v", err)
	}
}

func TestReadSymlinkTarget(t *testing.T) {
	tmp := t.TempDir()

	targetPath := filepath.Join(tmp, "target.txt")
	if err := os.WriteFile(targetPath, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	linkPath := filepath.Join(tmp, "link.txt")
	if err := CreateSymlink(targetPath, linkPath); err != nil {
		t.Fatal(err)
	}

	got, err := ReadSymlinkTarget(linkPath)
	if err != nil {
		t.Fatalf("ReadSymlinkTarget failed: %v", err)
	}
	if got != targetPath {
		t.Errorf("ReadSymlinkTarget = %q, want %q", got, targetPath)
	}
}

func TestIsSymlinkOnRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if IsSymlink(path) {
		t.Error("IsSymlink = true for a regular file")
	}
	if IsSymlink(filepath.Join(t.TempDir(), "missing")) {
		t.Error("IsSymlink = true for a missing path")
	}
}

func TestIsSymlinkSupported(t *testing.T) {
	if runtime.GOOS != "windows" && !IsSymlinkSupported() {
		t.Error("IsSymlinkSupported returned false on Unix")
	}
}

func TestDesktopConfigDir(t *testing.T) {
	tests := []struct {
		goos   string
		want   string
		wantOK bool
	}{
		{"darwin", filepath.Join("/home/u", "Library", "Application Support", "Claude"), true},
		{"linux", filepath.Join("/home/u", ".config", "Claude"), true},
		{"windows", "", false},
	}
	for _, tt := range tests {
		got, ok := DesktopConfigDir(tt.goos, "/home/u")
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("DesktopConfigDir(%q) = (%q, %v), want (%q, %v)", tt.goos, got, ok, tt.want, tt.wantOK)
		}
	}
}
