package cli

import (
	"errors"
	"fmt"

	"github.com/always-further/claude-extensions/internal/doctor"
	"github.com/always-further/claude-extensions/internal/target"
	"github.com/spf13/cobra"
)

var (
	doctorTarget string
	doctorFix    bool
)

func init() {
	doctorCmd.Flags().StringVarP(&doctorTarget, "target", "t", "", "Target to check (default: every target on this platform)")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Remove dangling component links")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the repository and installation targets",
	Long: `Run diagnostic checks: the extensions repository and its catalog, broken
component links in each target, unparsable shared config files, and backups.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := repoRoot()
		if err != nil {
			return err
		}

		var targets []target.Target
		if doctorTarget != "" {
			if targets, err = resolveTargets(cmd, doctorTarget); err != nil {
				return err
			}
		} else {
			for _, c := range []target.Choice{target.ChoiceBoth, target.ChoiceProject} {
				ts, _, err := target.Resolver{}.Resolve(c)
				if err != nil {
					return err
				}
				targets = append(targets, ts...)
			}
		}

		res := doctor.Run(cmd.OutOrStdout(), repo, targets, doctorFix)
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d warning(s), %d failure(s)", res.Warnings, res.Failures)
		if res.Fixed > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), ", %d fixed", res.Fixed)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		if !res.OK() {
			return errors.New("doctor found problems")
		}
		return nil
	},
}
