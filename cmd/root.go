package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/pilar/internal/cli/edit"
	"github.com/thenoetrevino/pilar/internal/cli/inspect"
)

// Version is set at build time with -ldflags "-X github.com/thenoetrevino/pilar/cmd.Version=..."
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "pilar",
	Short: "pilar - structural column layouts for a block editor",
	Long: `pilar edits a block document whose blocks can sit side by side in
resizable, reorderable columns.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pilar version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "pilar %s\n", Version)
		return err
	},
}

func init() {
	rootCmd.AddCommand(edit.EditCmd())
	rootCmd.AddCommand(inspect.InspectCmd())
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command under ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
