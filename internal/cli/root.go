package cli

import (
	"github.com/spf13/cobra"

	"github.com/kobzarvs/tmxalign/internal/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the tmxalign CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tmxalign",
		Short: "TMX alignment tool",
		Long:  "Inspect and rework the segment alignment of TMX translation memories.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(opts.Verbose)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewNormalizeCommand(opts))
	cmd.AddCommand(NewApplyCommand(opts))

	return cmd
}
