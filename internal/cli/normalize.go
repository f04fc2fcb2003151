package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kobzarvs/tmxalign/internal/app"
	"github.com/kobzarvs/tmxalign/internal/config"
)

// NewNormalizeCommand creates the normalize command.
func NewNormalizeCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		out       string
		noBackup  bool
		dropEmpty bool
	)

	cmd := &cobra.Command{
		Use:   "normalize <file.tmx>",
		Short: "Rewrite a TMX file in canonical form",
		Long: `Parse a TMX file and write it back in the writer's canonical layout.

Cell text survives verbatim, inline markup included. With --drop-empty,
rows whose source and target cells are both empty are removed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd, args[0], out, noBackup, dropEmpty)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this path instead of in place")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "do not refresh the .bak file")
	cmd.Flags().BoolVar(&dropEmpty, "drop-empty", false, "delete rows with both cells empty")

	return cmd
}

func runNormalize(cmd *cobra.Command, path, out string, noBackup, dropEmpty bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if noBackup {
		cfg.Editor.BackupOnSave = false
	}
	a := app.New(cfg)
	defer a.Close()

	if err := a.Open(path); err != nil {
		return err
	}
	removed := 0
	if dropEmpty {
		for _, row := range a.Document().Rows() {
			if row.Source == "" && row.Target == "" {
				if err := a.DeleteEmptyRow(row.ID); err != nil {
					return err
				}
				removed++
			}
		}
	}

	dest := path
	if out != "" {
		dest = out
	}
	if err := a.SaveAs(dest); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "wrote %s (%d rows", dest, a.Document().RowCount())
	if dropEmpty {
		fmt.Fprintf(w, ", %d empty removed", removed)
	}
	fmt.Fprintln(w, ")")
	return nil
}
