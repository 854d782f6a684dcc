// Package edit launches the interactive column editor.
package edit

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/pilar/internal/cli"
	"github.com/thenoetrevino/pilar/internal/launcher"
)

// EditCmd returns the edit command
func EditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the column editor",
		Long: `Open the interactive column editor on the welcome document.

Examples:
  # Edit with structural commands enabled
  pilar edit

  # Structural column commands disabled
  pilar edit --locked

  # A second peer edits the same document every two seconds
  pilar edit --remote-demo --demo-interval=2s
`,
		Args: cobra.NoArgs,
		RunE: runEdit,
	}

	cmd.Flags().Bool("locked", false, "Disable structural column commands")
	cmd.Flags().Bool("remote-demo", false, "Attach a scripted remote peer")
	cmd.Flags().Duration("demo-interval", launcher.DefaultDemoInterval, "How often the remote peer edits")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	locked, _ := cmd.Flags().GetBool("locked")
	remoteDemo, _ := cmd.Flags().GetBool("remote-demo")
	interval, _ := cmd.Flags().GetDuration("demo-interval")

	cliInstance, err := cli.NewCLI(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			cliInstance.Logger.Error("error closing CLI", "error", err)
		}
	}()

	return launcher.Launch(cliInstance, launcher.Options{
		Locked:       locked,
		RemoteDemo:   remoteDemo,
		DemoInterval: interval,
	})
}
