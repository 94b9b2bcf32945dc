package cli

import (
	"errors"
	"fmt"

	"github.com/always-further/claude-extensions/internal/backup"
	"github.com/always-further/claude-extensions/internal/component"
	"github.com/always-further/claude-extensions/internal/prompt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	restoreTarget string
	restoreBackup string
	restoreLatest bool
	restoreYes    bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore a target from a backup",
	Long: `Replace a target's skills, agents, commands, and hooks directories and its
shared config files with the copies held in a backup. Directories missing
from the backup are left alone. The current state is not backed up first.

Without --backup or --latest the available backups are listed to choose from.`,
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().StringVarP(&restoreTarget, "target", "t", "", "Target: claude-code, claude-desktop, project")
	restoreCmd.Flags().StringVarP(&restoreBackup, "backup", "b", "", "Backup id to restore (see 'backups')")
	restoreCmd.Flags().BoolVar(&restoreLatest, "latest", false, "Restore the most recent backup")
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	targets, err := resolveTargets(cmd, restoreTarget)
	if err != nil {
		return err
	}
	if len(targets) != 1 {
		return fmt.Errorf("%w: restore works on one target at a time; pass --target", component.ErrInvalidSelection)
	}
	t := targets[0]
	m := backup.New(backup.WithLogger(logger))
	out := cmd.OutOrStdout()
	p := prompt.New(cmd.InOrStdin(), out)

	var snap backup.Snapshot
	switch {
	case restoreBackup != "":
		snap, err = m.Find(t, restoreBackup)
	case restoreLatest:
		snap, err = m.Latest(t)
	default:
		var snaps []backup.Snapshot
		if snaps, err = m.List(t); err == nil {
			if len(snaps) == 0 {
				fmt.Fprintln(out, warnMark(), "No backups found for", t.String())
				return errors.New("nothing to restore")
			}
			snap, err = p.SelectBackup(snaps)
		}
	}
	if err != nil {
		return err
	}

	if !restoreYes && restoreBackup == "" {
		ok, err := p.Confirm(fmt.Sprintf("Restore %s from %s?", t, snap.ID), false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Restore cancelled.")
			return nil
		}
	}

	headColor.Fprintf(out, "\nRestoring from: %s\n", snap.Path)
	logger.Debug("restoring", zap.String("target", t.Root), zap.String("backup", snap.ID))
	report, err := m.Restore(t, snap)
	for _, d := range report.Dirs {
		fmt.Fprintf(out, "  %s Restored %s/\n", okMark(), d)
	}
	for _, f := range report.Files {
		fmt.Fprintf(out, "  %s Restored %s\n", okMark(), f)
	}
	if err != nil {
		return fmt.Errorf("restore incomplete: %w", err)
	}
	fmt.Fprintln(out, okMark(), "Restore complete!")
	return nil
}
