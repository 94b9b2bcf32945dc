package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/always-further/claude-extensions/internal/branding"
	"github.com/always-further/claude-extensions/internal/catalog"
	"github.com/always-further/claude-extensions/internal/config"
	"github.com/always-further/claude-extensions/internal/logging"
	"github.com/always-further/claude-extensions/internal/target"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	repoFlag    string
	verboseFlag bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` installs community extensions for Claude: skills, agents,
slash commands, hooks, and MCP server presets. Components are linked or
copied from a local checkout of the extensions repository into Claude Code,
Claude Desktop, or a project's .claude directory, with a backup taken first.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		logger = logging.New(cmd.ErrOrStderr(), verboseFlag)

		// Commands that manage the repository themselves skip the notice.
		switch cmd.Name() {
		case "update", "version", "config", "get", "set":
			return nil
		}
		if root, err := repoRoot(); err == nil && isGitCheckout(root) && catalog.IsStale(root, catalog.DefaultMaxAge) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Extensions repository is more than %d days old. Run '%s catalog update'.\n",
				int(catalog.DefaultMaxAge/(24*time.Hour)), branding.CLIName())
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", "", "Path to the extensions repository checkout")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), failMark(), err)
	}
	return err
}

func repoRoot() (string, error) {
	root, err := catalog.ResolveRoot(repoFlag)
	if err != nil {
		return "", fmt.Errorf("resolving extensions repository: %w", err)
	}
	return root, nil
}

// requireRepo resolves the repository and checks that it exists.
func requireRepo() (string, error) {
	root, err := repoRoot()
	if err != nil {
		return "", err
	}
	if !catalog.IsRepo(root) {
		return "", fmt.Errorf("no extensions repository at %s; run '%s catalog update' or pass --repo",
			root, branding.CLIName())
	}
	return root, nil
}

func isGitCheckout(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// resolveTargets turns a --target value (or the configured default) into
// targets, printing resolver warnings to stderr.
func resolveTargets(cmd *cobra.Command, value string) ([]target.Target, error) {
	if value == "" {
		value = config.Get(config.KeyTarget)
	}
	choice, err := target.ParseChoice(value)
	if err != nil {
		return nil, err
	}
	targets, warnings, err := target.Resolver{}.Resolve(choice)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), warnMark(), w)
	}
	return targets, nil
}
