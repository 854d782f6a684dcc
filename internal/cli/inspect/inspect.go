// Package inspect runs the named structural scenarios headlessly and prints
// the document before and after each one.
package inspect

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/pilar/internal/cli"
	"github.com/thenoetrevino/pilar/internal/document"
	"github.com/thenoetrevino/pilar/internal/scenario"
)

// InspectCmd returns the inspect command
func InspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Replay structural scenarios and print the resulting documents",
		Long: `Replay structural column edits against fresh documents and print the
document outline before and after each edit.

Examples:
  # Every scenario, rendered for the terminal
  pilar inspect

  # One scenario
  pilar inspect --scenario=dnd

  # JSON output for scripts
  pilar inspect --scenario=a --json

  # Names of the available scenarios
  pilar inspect --list
`,
		Args: cobra.NoArgs,
		RunE: runInspect,
	}

	cmd.Flags().StringSlice("scenario", nil, "Scenario names to run (default: all)")
	cmd.Flags().Bool("list", false, "List the scenario names and exit")

	// Output flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (scenario names only)")
	cmd.Flags().Bool("plain", false, "Print raw markdown")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	names, _ := cmd.Flags().GetStringSlice("scenario")
	list, _ := cmd.Flags().GetBool("list")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	plain, _ := cmd.Flags().GetBool("plain")

	formatter := &cli.OutputFormatter{
		JSON:   jsonOutput,
		Quiet:  quietMode,
		Plain:  plain,
		Out:    cmd.OutOrStdout(),
		ErrOut: cmd.ErrOrStderr(),
	}
	if jsonOutput && plain {
		return fmt.Errorf("%w: --json and --plain cannot be combined", cli.ErrUsage)
	}

	if list {
		return formatter.Success(catalog(scenario.All()))
	}

	cliInstance, err := cli.NewCLI(cmd.Context())
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			cliInstance.Logger.Error("error closing CLI", "error", err)
		}
	}()

	selected, err := resolve(names)
	if err != nil {
		_ = formatter.ErrorWithSuggestion("UNKNOWN_SCENARIO", err.Error(),
			"available scenarios: "+strings.Join(scenario.Names(), ", "))
		return err
	}

	out := make(reports, 0, len(selected))
	for _, s := range selected {
		res, err := s.Run(cliInstance.Logger)
		if err != nil {
			_ = formatter.Error("SCENARIO_FAILED", err.Error())
			return err
		}
		cliInstance.Logger.Info("scenario replayed", "scenario", s.Name)
		out = append(out, newReport(res))
	}
	return formatter.Success(out)
}

func resolve(names []string) ([]scenario.Scenario, error) {
	if len(names) == 0 {
		return scenario.All(), nil
	}
	out := make([]scenario.Scenario, 0, len(names))
	for _, name := range names {
		s, err := scenario.Find(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// report is one replayed scenario as printed by inspect.
type report struct {
	Name    string         `json:"name"`
	Title   string         `json:"title"`
	Before  *document.Spec `json:"before"`
	After   *document.Spec `json:"after"`
	Cursor  int            `json:"cursor"`
	CanUndo bool           `json:"can_undo"`

	markdown string
}

func newReport(res scenario.Result) report {
	return report{
		Name:     res.Scenario.Name,
		Title:    res.Scenario.Title,
		Before:   res.Before,
		After:    res.After,
		Cursor:   res.Selection.Head,
		CanUndo:  res.CanUndo,
		markdown: res.Markdown(),
	}
}

type reports []report

func (r reports) GetID() string {
	names := make([]string, len(r))
	for i, rep := range r {
		names[i] = rep.Name
	}
	return strings.Join(names, "\n")
}

func (r reports) Markdown() string {
	parts := make([]string, len(r))
	for i, rep := range r {
		parts[i] = rep.markdown
	}
	return strings.Join(parts, "\n---\n\n")
}

type entry struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// catalog lists the scenarios without running them.
type catalog []scenario.Scenario

func (c catalog) MarshalJSON() ([]byte, error) {
	entries := make([]entry, len(c))
	for i, s := range c {
		entries[i] = entry{Name: s.Name, Title: s.Title, Summary: s.Summary}
	}
	return json.Marshal(entries)
}

func (c catalog) GetID() string {
	names := make([]string, len(c))
	for i, s := range c {
		names[i] = s.Name
	}
	return strings.Join(names, "\n")
}

func (c catalog) Markdown() string {
	var b strings.Builder
	b.WriteString("# Scenarios\n\n")
	for _, s := range c {
		fmt.Fprintf(&b, "- `%s` **%s**: %s\n", s.Name, s.Title, s.Summary)
	}
	return b.String()
}
