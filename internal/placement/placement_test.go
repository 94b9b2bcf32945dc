package placement

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/always-further/claude-extensions/internal/component"
	"github.com/always-further/claude-extensions/internal/platform"
)

func setupSkill(t *testing.T) (src, dstDir string) {
	t.Helper()
	tmp := t.TempDir()
	src = filepath.Join(tmp, "repo", "skills", "pdf")
	if err := os.MkdirAll(filepath.Join(src, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "SKILL.md"), []byte("v1"), 0644); err != nil {
		t.Fatal(err)
	}
	dstDir = filepath.Join(tmp, "target", "skills")
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		t.Fatal(err)
	}
	return src, dstDir
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"symlink", ModeLinked},
		{"linked", ModeLinked},
		{"COPY", ModeCopied},
		{"copied", ModeCopied},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseMode(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseMode("hardlink"); !errors.Is(err, component.ErrInvalidSelection) {
		t.Errorf("ParseMode(hardlink) error = %v", err)
	}
}

func TestForReturnsMatchingStrategy(t *testing.T) {
	for _, m := range []Mode{ModeLinked, ModeCopied} {
		s, err := For(m)
		if err != nil {
			t.Fatalf("For(%q): %v", m, err)
		}
		if s.Mode() != m {
			t.Errorf("For(%q).Mode() = %q", m, s.Mode())
		}
	}
}

func TestLinkedFollowsSource(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("directory links need developer mode on Windows")
	}
	src, dstDir := setupSkill(t)
	dst := filepath.Join(dstDir, "pdf")

	if err := (Linked{}).Place(src, dst); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if !platform.IsSymlink(dst) {
		t.Fatal("destination is not a link")
	}

	if err := os.WriteFile(filepath.Join(src, "SKILL.md"), []byte("v2"), 0644); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dst, "SKILL.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "v2" {
		t.Errorf("linked content = %q, want source update v2", data)
	}
}

func TestCopiedIsIndependent(t *testing.T) {
	src, dstDir := setupSkill(t)
	dst := filepath.Join(dstDir, "pdf")

	if err := (Copied{}).Place(src, dst); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if platform.IsSymlink(dst) {
		t.Fatal("copied destination is a link")
	}
	if _, err := os.Stat(filepath.Join(dst, ".git")); err == nil {
		t.Error(".git should not be copied")
	}

	if err := os.WriteFile(filepath.Join(src, "SKILL.md"), []byte("v2"), 0644); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dst, "SKILL.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "v1" {
		t.Errorf("copied content = %q, want v1", data)
	}
}

func TestCopiedSingleFile(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "agents", "reviewer.md")
	if err := os.MkdirAll(filepath.Dir(src), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, []byte("agent"), 0644); err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(tmp, "out.md")

	if err := (Copied{}).Place(src, dst); err != nil {
		t.Fatalf("Place: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "agent" {
		t.Errorf("copied file = %q, %v", data, err)
	}
}
