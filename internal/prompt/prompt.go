// Package prompt drives the interactive installer with numbered menus read
// line by line from an input stream.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/always-further/claude-extensions/internal/backup"
	"github.com/always-further/claude-extensions/internal/branding"
	"github.com/always-further/claude-extensions/internal/placement"
	"github.com/always-further/claude-extensions/internal/target"
	"github.com/fatih/color"
)

// ErrAborted is returned when the user quits a menu.
var ErrAborted = errors.New("aborted by user")

var (
	heading = color.New(color.FgBlue, color.Bold)
	name    = color.New(color.FgCyan)
	dim     = color.New(color.Faint)
	key     = color.New(color.FgYellow)
	checked = color.New(color.FgGreen)
	danger  = color.New(color.FgRed)
	banner  = color.New(color.FgCyan, color.Bold)
)

// Item is one menu entry.
type Item struct {
	ID          string
	Title       string
	Description string
}

// Prompter reads answers from r and writes menus to w.
type Prompter struct {
	r *bufio.Reader
	w io.Writer
}

// New returns a Prompter.
func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{r: bufio.NewReader(r), w: w}
}

// Banner prints the product banner.
func (p *Prompter) Banner() {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(p.w)
	name.Fprintln(p.w, rule)
	banner.Fprintf(p.w, "   %s Installer\n", branding.DisplayName())
	name.Fprintln(p.w, rule)
}

// readLine returns the next trimmed line. End of input counts as quitting.
func (p *Prompter) readLine(question string) (string, error) {
	fmt.Fprintf(p.w, "\n%s: ", question)
	line, err := p.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if line == "" {
			return "", ErrAborted
		}
	}
	return strings.TrimSpace(line), nil
}

// Toggle shows items as a checklist until the user is done. Numbers toggle
// an item; "a" selects all, "n" clears, "d" finishes, "q" aborts.
func (p *Prompter) Toggle(title string, items []Item, selected []string) ([]string, error) {
	chosen := make(map[string]bool, len(selected))
	for _, id := range selected {
		chosen[id] = true
	}

	for {
		heading.Fprintf(p.w, "\n%s\n", title)
		fmt.Fprintln(p.w, strings.Repeat("-", 40))
		for i, it := range items {
			box := dim.Sprint("[ ]")
			if chosen[it.ID] {
				box = checked.Sprint("[x]")
			}
			fmt.Fprintf(p.w, "  %s %d. %s - %s\n", box, i+1, name.Sprint(it.Title), it.Description)
		}
		fmt.Fprintf(p.w, "\n  %s = select all | %s = select none | %s = done | %s = quit\n",
			key.Sprint("a"), key.Sprint("n"), key.Sprint("d"), key.Sprint("q"))

		choice, err := p.readLine("Toggle selection (number/a/n/d/q)")
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(choice) {
		case "q":
			return nil, ErrAborted
		case "d":
			var ids []string
			for _, it := range items {
				if chosen[it.ID] {
					ids = append(ids, it.ID)
				}
			}
			return ids, nil
		case "a":
			for _, it := range items {
				chosen[it.ID] = true
			}
		case "n":
			clear(chosen)
		case "":
		default:
			n, err := strconv.Atoi(choice)
			if err != nil || n < 1 || n > len(items) {
				danger.Fprintf(p.w, "Invalid choice %q\n", choice)
				continue
			}
			id := items[n-1].ID
			chosen[id] = !chosen[id]
		}
	}
}

// HookReview is what the user sees before accepting a hook.
type HookReview struct {
	Item
	SecurityLevel string
	// Readme is the hook's README content, if any.
	Readme string
}

// ReviewHook shows a hook's security level and the commands it runs, then
// asks whether to install it.
func (p *Prompter) ReviewHook(h HookReview) (bool, error) {
	heading.Fprintf(p.w, "\nHook: %s\n", h.Title)
	fmt.Fprintln(p.w, strings.Repeat("-", 40))
	fmt.Fprintf(p.w, "Description: %s\n", h.Description)

	level := checked
	if !strings.EqualFold(h.SecurityLevel, "LOW") {
		level = danger
	}
	fmt.Fprintf(p.w, "Security Level: %s\n", level.Sprint(h.SecurityLevel))

	if lines := CommandsExcerpt(h.Readme); len(lines) > 0 {
		key.Fprintln(p.w, "\nCommands that will be executed:")
		for _, l := range lines {
			fmt.Fprintf(p.w, "  %s\n", dim.Sprint(l))
		}
	}

	answer, err := p.readLine(fmt.Sprintf("Install %s? (y/N/q to quit)", h.Title))
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "q":
		return false, ErrAborted
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// CommandsExcerpt returns the lines of the first code block following a
// "Commands executed:" marker in a hook README.
func CommandsExcerpt(readme string) []string {
	start := strings.Index(readme, "Commands executed:")
	if start < 0 {
		return nil
	}
	rest := readme[start:]
	open := strings.Index(rest, "```")
	if open < 0 {
		return nil
	}
	rest = rest[open+3:]
	end := strings.Index(rest, "```")
	if end < 0 {
		return nil
	}
	block := rest[:end]
	// Drop the info string (```bash).
	if nl := strings.IndexByte(block, '\n'); nl >= 0 && !strings.ContainsAny(block[:nl], " \t") {
		block = block[nl+1:]
	}
	block = strings.TrimSpace(block)
	if block == "" {
		return nil
	}
	return strings.Split(block, "\n")
}

// SelectTarget asks where to install.
func (p *Prompter) SelectTarget() (target.Choice, error) {
	labels := map[target.Choice][2]string{
		target.ChoiceCode:    {"Claude Code (Global)", "~/.claude/"},
		target.ChoiceDesktop: {"Claude Desktop", "Application config"},
		target.ChoiceBoth:    {"Both", "Install to both"},
		target.ChoiceProject: {"Project", "Current directory .claude/"},
	}
	heading.Fprintln(p.w, "\nInstallation Target")
	fmt.Fprintln(p.w, strings.Repeat("-", 40))
	for i, c := range target.Choices {
		fmt.Fprintf(p.w, "  %d. %s - %s\n", i+1, name.Sprint(labels[c][0]), labels[c][1])
	}

	n, err := p.pick(fmt.Sprintf("Select target (1-%d)", len(target.Choices)), len(target.Choices), 1)
	if err != nil {
		return "", err
	}
	return target.Choices[n-1], nil
}

// SelectMode asks how to place file-based components.
func (p *Prompter) SelectMode() (placement.Mode, error) {
	heading.Fprintln(p.w, "\nInstallation Mode")
	fmt.Fprintln(p.w, strings.Repeat("-", 40))
	fmt.Fprintf(p.w, "  1. %s - Link to repository (updates with git pull)\n", name.Sprint("Symlink"))
	fmt.Fprintf(p.w, "  2. %s - Independent copy\n", name.Sprint("Copy"))

	n, err := p.pick("Select mode (1-2)", 2, 1)
	if err != nil {
		return "", err
	}
	if n == 2 {
		return placement.ModeCopied, nil
	}
	return placement.ModeLinked, nil
}

// SelectBackup asks which snapshot to restore. snaps must be newest first.
func (p *Prompter) SelectBackup(snaps []backup.Snapshot) (backup.Snapshot, error) {
	if len(snaps) == 0 {
		return backup.Snapshot{}, errors.New("no backups to choose from")
	}
	heading.Fprintln(p.w, "\nAvailable backups:")
	for i, s := range snaps {
		fmt.Fprintf(p.w, "  %d. %s\n", i+1, s.ID)
	}
	n, err := p.pick(fmt.Sprintf("Select backup to restore (1-%d)", len(snaps)), len(snaps), 0)
	if err != nil {
		return backup.Snapshot{}, err
	}
	return snaps[n-1], nil
}

// Confirm asks a yes/no question. An empty answer takes def.
func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	hint := "(y/N)"
	if def {
		hint = "(Y/n)"
	}
	answer, err := p.readLine(question + " " + hint)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "q":
		return false, ErrAborted
	}
	return false, nil
}

// pick reads a number in [1, limit]. def is used for an empty answer; zero
// means an answer is required. Any other invalid answer is an error.
func (p *Prompter) pick(question string, limit, def int) (int, error) {
	line, err := p.readLine(question)
	if err != nil {
		return 0, err
	}
	if line == "" && def > 0 {
		return def, nil
	}
	if strings.EqualFold(line, "q") {
		return 0, ErrAborted
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > limit {
		return 0, fmt.Errorf("invalid selection %q: choose 1-%d", line, limit)
	}
	return n, nil
}
