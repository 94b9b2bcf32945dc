package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/always-further/claude-extensions/internal/backup"
	"github.com/always-further/claude-extensions/internal/component"
	"github.com/always-further/claude-extensions/internal/target"
	"github.com/spf13/cobra"
)

var backupsTarget string

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List backups of a target",
	RunE:  runBackups,
}

func init() {
	backupsCmd.Flags().StringVarP(&backupsTarget, "target", "t", "", "Target: claude-code, claude-desktop, both, project")
	rootCmd.AddCommand(backupsCmd)
}

func runBackups(cmd *cobra.Command, args []string) error {
	targets, err := resolveTargets(cmd, backupsTarget)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	m := backup.New(backup.WithLogger(logger))
	for _, t := range targets {
		snaps, err := m.List(t)
		if err != nil {
			return err
		}
		headColor.Fprintf(out, "%s\n", t)
		if len(snaps) == 0 {
			fmt.Fprintln(out, dimColor.Sprint("  No backups found"))
			continue
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  ID\tCREATED\tCONTENTS")
		for _, s := range snaps {
			created := "-"
			if !s.Created.IsZero() {
				created = s.Created.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", s.ID, created, snapshotContents(t, s))
		}
		tw.Flush()
	}
	return nil
}

func snapshotContents(t target.Target, s backup.Snapshot) string {
	var parts []string
	for _, name := range component.BackupDirs {
		if _, err := os.Stat(filepath.Join(s.Path, name)); err == nil {
			parts = append(parts, name+"/")
		}
	}
	for _, f := range t.SharedFiles() {
		if _, err := os.Stat(filepath.Join(s.Path, f.Name)); err == nil {
			parts = append(parts, f.Name)
		}
	}
	return strings.Join(parts, ", ")
}
