package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/always-further/claude-extensions/internal/branding"
	"github.com/always-further/claude-extensions/internal/catalog"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	catalogCmd.AddCommand(catalogUpdateCmd)
	catalogCmd.AddCommand(catalogStatusCmd)
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the local extensions repository",
	Long: fmt.Sprintf(`Manage the local checkout of the extensions repository.

By default the repository is a shallow clone stored at ~/%s/repo/. Point at
another checkout with --repo, the %s environment variable, or the "repo"
config key.`, branding.HomeDir(), branding.EnvVar("REPO")),
}

var catalogUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Clone or pull the extensions repository",
	Long: `Pull the latest extensions from the remote repository, cloning it first
if it has not been cloned yet. Linked installs pick up the changes
immediately; copied installs need to be reinstalled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := repoRoot()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updating extensions repository at %s...\n", root)
		logger.Debug("updating repository", zap.String("root", root), zap.String("url", catalog.RepoURL()))

		if err := catalog.Update(root); err != nil {
			return fmt.Errorf("updating extensions repository: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), okMark(), "Extensions repository updated.")
		return nil
	},
}

var catalogStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show repository location and freshness",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		root, err := repoRoot()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Repository:   %s\n", root)
		fmt.Fprintf(out, "Remote:       %s\n", catalog.RepoURL())

		if !catalog.IsRepo(root) {
			fmt.Fprintf(out, "Status:       not cloned (run '%s catalog update')\n", branding.CLIName())
			return nil
		}
		if _, err := os.Stat(filepath.Join(root, ".git")); err != nil {
			fmt.Fprintln(out, "Status:       local directory (not a git checkout)")
		} else if last := catalog.ReadFreshnessMarker(root); last.IsZero() {
			fmt.Fprintln(out, "Last update:  never")
		} else {
			fmt.Fprintf(out, "Last update:  %s (%s ago)\n", last.Format(time.RFC3339), time.Since(last).Round(time.Minute))
		}

		cat, err := catalog.Load(root)
		if err != nil {
			return err
		}
		version := cat.Version
		if version == "" {
			version = "unversioned"
		}
		fmt.Fprintf(out, "Catalog:      %s, %d presets\n", version, len(cat.Presets))
		return nil
	},
}
