package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/always-further/claude-extensions/internal/backup"
	"github.com/always-further/claude-extensions/internal/placement"
	"github.com/always-further/claude-extensions/internal/target"
	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

func newPrompter(t *testing.T, input string) (*Prompter, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var out bytes.Buffer
	return New(strings.NewReader(input), &out), &out
}

var skills = []Item{
	{ID: "pdf-tools", Title: "PDF Tools", Description: "PDF work"},
	{ID: "xlsx", Title: "Spreadsheets", Description: "Excel files"},
	{ID: "docx", Title: "Documents", Description: "Word files"},
}

func TestToggle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		selected []string
		want     []string
	}{
		{"toggle two", "1\n3\nd\n", nil, []string{"pdf-tools", "docx"}},
		{"toggle off preselected", "2\nd\n", []string{"xlsx"}, nil},
		{"all", "a\nd\n", nil, []string{"pdf-tools", "xlsx", "docx"}},
		{"none", "n\nd\n", []string{"xlsx", "docx"}, nil},
		{"invalid ignored", "9\nfoo\n\n2\nd\n", nil, []string{"xlsx"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newPrompter(t, tt.input)
			got, err := p.Toggle("Select Skills", skills, tt.selected)
			if err != nil {
				t.Fatalf("Toggle: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("selection mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToggleQuitAndEOF(t *testing.T) {
	for _, input := range []string{"1\nq\n", "1\n"} {
		p, _ := newPrompter(t, input)
		if _, err := p.Toggle("Select Skills", skills, nil); !errors.Is(err, ErrAborted) {
			t.Errorf("input %q: err = %v, want ErrAborted", input, err)
		}
	}
}

func TestToggleRendersChecklist(t *testing.T) {
	p, out := newPrompter(t, "d\n")
	if _, err := p.Toggle("Select Skills", skills, []string{"xlsx"}); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"[ ] 1. PDF Tools - PDF work", "[x] 2. Spreadsheets - Excel files"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

const hookReadme = "# Auto format\n\n## Security\n\nCommands executed:\n\n```bash\ngofmt -w \"$FILE\"\ngoimports -w \"$FILE\"\n```\n"

func TestCommandsExcerpt(t *testing.T) {
	tests := []struct {
		name   string
		readme string
		want   []string
	}{
		{"bash block", hookReadme, []string{`gofmt -w "$FILE"`, `goimports -w "$FILE"`}},
		{"plain block", "Commands executed:\n```\nmake lint\n```", []string{"make lint"}},
		{"no marker", "```\nrm -rf /\n```", nil},
		{"unterminated", "Commands executed:\n```\nmake", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, CommandsExcerpt(tt.readme)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReviewHook(t *testing.T) {
	h := HookReview{
		Item:          Item{ID: "fmt", Title: "Auto format", Description: "Formats on save"},
		SecurityLevel: "MEDIUM",
		Readme:        hookReadme,
	}

	p, out := newPrompter(t, "y\n")
	ok, err := p.ReviewHook(h)
	if err != nil || !ok {
		t.Fatalf("ReviewHook() = %v, %v; want true", ok, err)
	}
	for _, want := range []string{"Security Level: MEDIUM", "Commands that will be executed:", "goimports"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}

	p, _ = newPrompter(t, "\n")
	if ok, err := p.ReviewHook(h); ok || err != nil {
		t.Errorf("default answer: got %v, %v; want false, nil", ok, err)
	}

	p, _ = newPrompter(t, "q\n")
	if _, err := p.ReviewHook(h); !errors.Is(err, ErrAborted) {
		t.Errorf("quit: err = %v, want ErrAborted", err)
	}
}

func TestSelectTargetAndMode(t *testing.T) {
	p, _ := newPrompter(t, "3\n2\n")
	choice, err := p.SelectTarget()
	if err != nil {
		t.Fatal(err)
	}
	if choice != target.ChoiceBoth {
		t.Errorf("choice = %s, want both", choice)
	}
	mode, err := p.SelectMode()
	if err != nil {
		t.Fatal(err)
	}
	if mode != placement.ModeCopied {
		t.Errorf("mode = %s, want copy", mode)
	}

	p, _ = newPrompter(t, "\n\n")
	if choice, _ := p.SelectTarget(); choice != target.ChoiceCode {
		t.Errorf("default choice = %s, want claude-code", choice)
	}
	if mode, _ := p.SelectMode(); mode != placement.ModeLinked {
		t.Errorf("default mode = %s, want symlink", mode)
	}

	p, _ = newPrompter(t, "7\n")
	if _, err := p.SelectTarget(); err == nil {
		t.Error("expected error for out-of-range target")
	}
}

func TestSelectBackup(t *testing.T) {
	snaps := []backup.Snapshot{{ID: "backup-20260302-100000"}, {ID: "backup-20260301-100000"}}

	p, _ := newPrompter(t, "2\n")
	got, err := p.SelectBackup(snaps)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "backup-20260301-100000" {
		t.Errorf("SelectBackup() = %s", got.ID)
	}

	p, _ = newPrompter(t, "\n")
	if _, err := p.SelectBackup(snaps); err == nil {
		t.Error("empty answer should be rejected")
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"\n", true, true},
		{"\n", false, false},
		{"y\n", false, true},
		{"n\n", true, false},
		{"YES\n", false, true},
	}
	for _, tt := range tests {
		p, _ := newPrompter(t, tt.input)
		got, err := p.Confirm("Proceed?", tt.def)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q, %v) = %v, want %v", tt.input, tt.def, got, tt.want)
		}
	}
}
