package cli

import (
	"fmt"
	"path/filepath"

	"github.com/always-further/claude-extensions/internal/validate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var validateChangedOnly bool

var validateCmd = &cobra.Command{
	Use:   "validate [path ...]",
	Short: "Validate components in the extensions repository",
	Long: `Check skills, agents, commands, hooks, and MCP presets against the
repository's publishing rules. With paths, only the components containing
them are checked; with --changed-only, the components touched by the last
commit. Exits non-zero when any error is found.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateChangedOnly, "changed-only", false, "Only validate components changed in the last commit")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	repo, err := requireRepo()
	if err != nil {
		return err
	}

	var issues []validate.Issue
	switch {
	case validateChangedOnly:
		files, err := validate.ChangedFiles(repo)
		if err != nil {
			return err
		}
		logger.Debug("changed files", zap.Strings("files", files))
		issues = validate.Paths(repo, files)
	case len(args) > 0:
		for _, a := range args {
			abs, err := filepath.Abs(a)
			if err != nil {
				return err
			}
			issues = append(issues, validate.Path(repo, abs)...)
		}
	default:
		issues = validate.All(repo)
	}

	out := cmd.OutOrStdout()
	for _, i := range issues {
		label := warnColor.Sprint("[WARNING]")
		if i.Severity == validate.SeverityError {
			label = failColor.Sprint("[ERROR]")
		}
		fmt.Fprintf(out, "%s %s: %s\n", label, i.Path, i.Message)
	}
	if len(issues) > 0 {
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, validate.Summary(issues))

	if errs, _ := validate.Counts(issues); errs > 0 {
		return fmt.Errorf("validation failed with %d error(s)", errs)
	}
	return nil
}
