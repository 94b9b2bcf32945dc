package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/always-further/claude-extensions/internal/catalog"
	"github.com/always-further/claude-extensions/internal/component"
	"github.com/always-further/claude-extensions/internal/target"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available components and presets",
	Long:  `List every component and preset in the extensions repository catalog.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	repo, err := requireRepo()
	if err != nil {
		return err
	}
	cat, err := catalog.Load(repo)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if listJSON {
		data, err := json.MarshalIndent(cat, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling catalog: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	sections := []struct {
		title   string
		entries []catalog.Entry
	}{
		{"Skills", cat.Entries(component.KindSkill, "")},
		{"Agents", cat.Entries(component.KindAgent, "")},
		{"Hooks", cat.Entries(component.KindHook, "")},
		{"Commands", cat.Entries(component.KindCommand, "")},
		{"MCP Presets (Claude Code)", cat.Entries(component.KindMCP, target.FlavorCode.MCPFlavor())},
		{"MCP Presets (Claude Desktop)", cat.Entries(component.KindMCP, target.FlavorDesktop.MCPFlavor())},
	}
	for _, s := range sections {
		printEntries(out, s.title, s.entries)
	}

	headColor.Fprintln(out, "\nPresets:")
	if len(cat.Presets) == 0 {
		fmt.Fprintln(out, dimColor.Sprint("  (none)"))
	}
	for _, p := range cat.Presets {
		fmt.Fprintf(out, "  - %s: %s\n", idColor.Sprint(p.ID), p.Description)
	}
	return nil
}

func printEntries(w io.Writer, title string, entries []catalog.Entry) {
	headColor.Fprintf(w, "\n%s:\n", title)
	if len(entries) == 0 {
		fmt.Fprintln(w, dimColor.Sprint("  (none)"))
		return
	}
	for _, e := range entries {
		level := ""
		if e.SecurityLevel != "" {
			c := okColor
			if e.SecurityLevel != "LOW" {
				c = warnColor
			}
			level = " [" + c.Sprint(e.SecurityLevel) + "]"
		}
		fmt.Fprintf(w, "  - %s%s: %s\n", idColor.Sprint(e.ID), level, e.Description)
	}
}
