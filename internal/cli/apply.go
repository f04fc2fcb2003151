package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kobzarvs/tmxalign/internal/align"
	"github.com/kobzarvs/tmxalign/internal/app"
	"github.com/kobzarvs/tmxalign/internal/config"
)

// scriptStep is one operation of an apply script. Rows are addressed by
// their index at the moment the step runs, so later steps see the
// structure earlier steps produced.
type scriptStep struct {
	Op     string `yaml:"op"`
	Row    int    `yaml:"row"`
	Column string `yaml:"column,omitempty"`
	Offset int    `yaml:"offset,omitempty"`
	Text   string `yaml:"text,omitempty"`

	// replace_all only
	Query         string `yaml:"query,omitempty"`
	Replacement   string `yaml:"replacement,omitempty"`
	CaseSensitive bool   `yaml:"case_sensitive,omitempty"`
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		script string
		out    string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "apply <file.tmx>",
		Short: "Apply a script of alignment operations",
		Long: `Run a YAML script of split/merge/move/set_text/delete_empty_row/
replace_all steps against a TMX file and save the result.

The script is all or nothing: if any step fails, the steps already
applied are undone and the file is left untouched.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args[0], script, out, dryRun)
		},
	}

	cmd.Flags().StringVar(&script, "script", "", "YAML file listing the operations")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this path instead of in place")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "run the script but do not save")
	_ = cmd.MarkFlagRequired("script")

	return cmd
}

func runApply(cmd *cobra.Command, path, script, out string, dryRun bool) error {
	data, err := os.ReadFile(script)
	if err != nil {
		return err
	}
	var steps []scriptStep
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return fmt.Errorf("parse script: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a := app.New(cfg)
	defer a.Close()

	if err := a.Open(path); err != nil {
		return err
	}
	for i, st := range steps {
		if err := applyStep(a, st); err != nil {
			for a.CanUndo() {
				_ = a.Undo()
			}
			return fmt.Errorf("script step %d (%s): %w", i+1, st.Op, err)
		}
	}

	if dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "dry run: %d step(s) ok, %d rows\n",
			len(steps), a.Document().RowCount())
		return nil
	}
	dest := path
	if out != "" {
		dest = out
	}
	if err := a.SaveAs(dest); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "applied %d step(s), wrote %s\n", len(steps), dest)
	return nil
}

func applyStep(a *app.App, st scriptStep) error {
	if st.Op == "replace_all" {
		_, err := a.ReplaceAll(st.Query, st.Replacement, st.CaseSensitive)
		return err
	}

	doc := a.Document()
	if st.Row < 0 || st.Row >= doc.RowCount() {
		return fmt.Errorf("row index %d out of range 0..%d", st.Row, doc.RowCount()-1)
	}
	id := doc.RowAt(st.Row).ID

	switch st.Op {
	case "split":
		col, err := parseColumn(st.Column)
		if err != nil {
			return err
		}
		return a.Split(id, col, st.Offset)
	case "merge":
		return a.Merge(id)
	case "move_up":
		return a.MoveUp(id)
	case "move_down":
		return a.MoveDown(id)
	case "set_text":
		col, err := parseColumn(st.Column)
		if err != nil {
			return err
		}
		return a.SetText(id, col, st.Text)
	case "delete_empty_row":
		return a.DeleteEmptyRow(id)
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
}

func parseColumn(name string) (align.Column, error) {
	switch name {
	case "source":
		return align.Source, nil
	case "target":
		return align.Target, nil
	default:
		return 0, fmt.Errorf("unknown column %q", name)
	}
}
