package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/always-further/claude-extensions/internal/backup"
	"github.com/always-further/claude-extensions/internal/catalog"
	"github.com/always-further/claude-extensions/internal/component"
	"github.com/always-further/claude-extensions/internal/config"
	"github.com/always-further/claude-extensions/internal/installer"
	"github.com/always-further/claude-extensions/internal/orchestrator"
	"github.com/always-further/claude-extensions/internal/placement"
	"github.com/always-further/claude-extensions/internal/prompt"
	"github.com/always-further/claude-extensions/internal/target"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	installPreset      string
	installTarget      string
	installMode        string
	installNoBackup    bool
	installForce       bool
	installYes         bool
	installInteractive bool
)

var installCmd = &cobra.Command{
	Use:   "install [kind:id ...]",
	Short: "Install skills, agents, commands, hooks, and MCP presets",
	Long: `Install components from the extensions repository into a target.

Components are named kind:id, for example skill:pdf-tools, agent:code-reviewer,
hook:auto-format, command:commit, or mcp:github. A catalog preset adds its
whole selection. With neither, an interactive menu is shown.

Targets: claude-code (~/.claude), claude-desktop (MCP presets only), both,
or project (./.claude). Skills, agents, and commands are symlinked to the
repository by default; use --mode copy for independent copies.

A backup of the target is taken first and the five most recent are kept.`,
	Example: `  claude-ext install --preset web-dev
  claude-ext install skill:pdf-tools hook:auto-format --target project
  claude-ext install mcp:github --target both --mode copy`,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVarP(&installPreset, "preset", "p", "", "Install a catalog preset")
	installCmd.Flags().StringVarP(&installTarget, "target", "t", "", "Installation target: claude-code, claude-desktop, both, project")
	installCmd.Flags().StringVarP(&installMode, "mode", "m", "", "Placement mode: symlink or copy")
	installCmd.Flags().BoolVar(&installNoBackup, "no-backup", false, "Skip backing up the target first")
	installCmd.Flags().BoolVar(&installForce, "force", false, "Install even if the backup fails")
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "Skip the confirmation prompt")
	installCmd.Flags().BoolVarP(&installInteractive, "interactive", "i", false, "Choose components from menus")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	repo, err := requireRepo()
	if err != nil {
		return err
	}
	cat, err := catalog.Load(repo)
	if err != nil {
		return err
	}

	interactive := installInteractive || (len(args) == 0 && installPreset == "" && isTerminal(os.Stdin))
	var p *prompt.Prompter
	if interactive {
		p = prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
		p.Banner()
	}

	sel, err := buildSelection(cat, args)
	if err != nil {
		return err
	}
	if interactive {
		if sel, err = chooseComponents(p, cat, repo, sel); err != nil {
			return err
		}
	}
	if sel.IsEmpty() {
		return fmt.Errorf("%w: nothing selected; name components as kind:id, pass --preset, or use --interactive",
			component.ErrInvalidSelection)
	}

	targetValue, modeValue := installTarget, installMode
	if interactive && !cmd.Flags().Changed("target") {
		choice, err := p.SelectTarget()
		if err != nil {
			return err
		}
		targetValue = string(choice)
	}
	if interactive && !cmd.Flags().Changed("mode") {
		m, err := p.SelectMode()
		if err != nil {
			return err
		}
		modeValue = string(m)
	}

	targets, err := resolveTargets(cmd, targetValue)
	if err != nil {
		return err
	}
	if modeValue == "" {
		modeValue = config.Get(config.KeyMode)
	}
	mode, err := placement.ParseMode(modeValue)
	if err != nil {
		return err
	}
	strategy, err := placement.For(mode)
	if err != nil {
		return err
	}

	if !installYes && interactive {
		printSummary(cmd.OutOrStdout(), sel, targets, mode)
		ok, err := p.Confirm("Proceed with installation?", true)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Installation cancelled.")
			return nil
		}
	}

	opts := orchestrator.Options{
		NoBackup:              installNoBackup || !config.GetBool(config.KeyBackup),
		ContinueOnBackupError: installForce,
	}
	orch := orchestrator.New(
		backup.New(backup.WithLogger(logger)),
		installer.New(repo, strategy, installer.WithLogger(logger)),
		&progress{w: cmd.OutOrStdout()},
		opts,
		logger,
	)
	logger.Debug("starting install",
		zap.Int("components", sel.Len()),
		zap.String("mode", string(mode)),
		zap.Bool("backup", !opts.NoBackup))

	report := orch.Run(sel, targets)
	printReport(cmd.OutOrStdout(), report, repo, mode)
	if !report.OK() {
		return errors.New("installation finished with errors")
	}
	return nil
}

// buildSelection combines the preset and the kind:id arguments.
func buildSelection(cat *catalog.Catalog, args []string) (component.Selection, error) {
	var b component.Builder
	if installPreset != "" {
		preset, err := cat.Preset(installPreset)
		if err != nil {
			return component.Selection{}, err
		}
		ps := preset.Selection()
		for _, kind := range component.AllKinds {
			b.Add(kind, ps.IDs(kind)...)
		}
	}
	for _, arg := range args {
		kind, id, err := parseComponentArg(arg)
		if err != nil {
			return component.Selection{}, err
		}
		b.Add(kind, id)
	}
	return b.Build(), nil
}

// parseComponentArg splits "kind:id" (or "kind/id").
func parseComponentArg(arg string) (component.Kind, string, error) {
	sep := strings.IndexAny(arg, ":/")
	if sep <= 0 || sep == len(arg)-1 {
		return 0, "", fmt.Errorf("%w: %q is not kind:id (e.g. skill:pdf-tools)", component.ErrInvalidSelection, arg)
	}
	kind, err := component.ParseKind(arg[:sep])
	if err != nil {
		return 0, "", err
	}
	return kind, arg[sep+1:], nil
}

// chooseComponents walks the catalog menus, starting from sel.
func chooseComponents(p *prompt.Prompter, cat *catalog.Catalog, repo string, sel component.Selection) (component.Selection, error) {
	var b component.Builder
	menus := []struct {
		kind  component.Kind
		title string
	}{
		{component.KindSkill, "Select Skills"},
		{component.KindAgent, "Select Agents"},
		{component.KindHook, ""},
		{component.KindCommand, "Select Commands"},
		{component.KindMCP, "Select MCP Presets"},
	}
	for _, m := range menus {
		if m.kind == component.KindHook {
			ids, err := reviewHooks(p, cat, repo, sel.IDs(component.KindHook))
			if err != nil {
				return component.Selection{}, err
			}
			b.Set(m.kind, ids)
			continue
		}
		entries := cat.Entries(m.kind, target.FlavorCode.MCPFlavor())
		if len(entries) == 0 {
			b.Set(m.kind, sel.IDs(m.kind))
			continue
		}
		ids, err := p.Toggle(m.title, items(entries), sel.IDs(m.kind))
		if err != nil {
			return component.Selection{}, err
		}
		b.Set(m.kind, ids)
	}
	return b.Build(), nil
}

// reviewHooks shows each catalog hook's security details and asks whether
// to install it. Hooks already selected are kept without asking.
func reviewHooks(p *prompt.Prompter, cat *catalog.Catalog, repo string, preselected []string) ([]string, error) {
	ids := append([]string(nil), preselected...)
	for _, h := range cat.Components.Hooks {
		if slices.Contains(preselected, h.ID) {
			continue
		}
		dir := h.Path
		if dir == "" {
			dir = filepath.Join(component.KindHook.Dir(), h.ID)
		}
		readme, _ := os.ReadFile(filepath.Join(repo, dir, "README.md"))

		ok, err := p.ReviewHook(prompt.HookReview{
			Item:          prompt.Item{ID: h.ID, Title: h.Title(), Description: h.Description},
			SecurityLevel: h.SecurityLevel,
			Readme:        string(readme),
		})
		if err != nil {
			return nil, err
		}
		if ok {
			ids = append(ids, h.ID)
		}
	}
	return ids, nil
}

func items(entries []catalog.Entry) []prompt.Item {
	out := make([]prompt.Item, len(entries))
	for i, e := range entries {
		out[i] = prompt.Item{ID: e.ID, Title: e.Title(), Description: e.Description}
	}
	return out
}

func printSummary(w io.Writer, sel component.Selection, targets []target.Target, mode placement.Mode) {
	headColor.Fprintln(w, "\nInstallation Summary")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	for _, kind := range component.AllKinds {
		ids := strings.Join(sel.IDs(kind), ", ")
		if ids == "" {
			ids = "none"
		}
		fmt.Fprintf(w, "%-9s %s\n", kind.Dir()+":", ids)
	}
	for _, t := range targets {
		fmt.Fprintf(w, "%-9s %s\n", "target:", t)
	}
	fmt.Fprintf(w, "%-9s %s\n", "mode:", mode)
}

// progress prints orchestrator events as they happen.
type progress struct {
	w io.Writer
}

func (p *progress) TargetStarted(t target.Target) {
	headColor.Fprintf(p.w, "\nInstalling to %s\n", t)
}

func (p *progress) BackupDone(t target.Target, snap *backup.Snapshot, err error) {
	switch {
	case err != nil:
		fmt.Fprintf(p.w, "  %s backup failed: %v\n", failMark(), err)
	case snap != nil:
		fmt.Fprintf(p.w, "  %s backup created at %s\n", okMark(), dimColor.Sprint(snap.Path))
	}
}

func (p *progress) Installed(o installer.Outcome) {
	label := fmt.Sprintf("%s %s", o.Kind, idColor.Sprint(o.ID))
	switch o.Status {
	case installer.StatusInstalled:
		detail := ""
		if len(o.Servers) > 0 {
			detail = " (" + strings.Join(o.Servers, ", ") + ")"
		}
		fmt.Fprintf(p.w, "  %s %s%s\n", okMark(), label, detail)
	case installer.StatusSkipped:
		fmt.Fprintf(p.w, "  %s %s: %v\n", skipMark(), label, o.Err)
	default:
		fmt.Fprintf(p.w, "  %s %s: %v\n", failMark(), label, o.Err)
	}
}

func printReport(w io.Writer, report orchestrator.Report, repo string, mode placement.Mode) {
	counts := report.Counts()
	fmt.Fprintf(w, "\n%d installed, %d skipped, %d failed\n",
		counts[installer.StatusInstalled], counts[installer.StatusSkipped], counts[installer.StatusFailed])
	for _, tr := range report.Targets {
		if tr.BackupErr != nil {
			fmt.Fprintf(w, "%s %v (rerun with --force to install anyway)\n", failMark(), tr.BackupErr)
		}
	}
	if !report.OK() || counts[installer.StatusInstalled] == 0 {
		return
	}
	if mode == placement.ModeLinked {
		fmt.Fprintf(w, "\nTo update: cd %s && git pull\n", repo)
	} else {
		fmt.Fprintf(w, "\nTo update: cd %s && git pull, then reinstall\n", repo)
	}
}

// isTerminal reports whether f is an interactive terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
