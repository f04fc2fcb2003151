package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kobzarvs/tmxalign/internal/align"
	"github.com/kobzarvs/tmxalign/internal/tmx"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// previewRows caps how many leading rows the text report prints.
const previewRows = 3

// InspectReport summarizes one TMX file.
type InspectReport struct {
	Path        string `json:"path"`
	SourceLang  string `json:"source_lang"`
	TargetLang  string `json:"target_lang"`
	Rows        int    `json:"rows"`
	EmptySource int    `json:"empty_source"`
	EmptyTarget int    `json:"empty_target"`
	EmptyRows   int    `json:"empty_rows"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect <file.tmx>",
		Short: "Summarize a TMX file's alignment",
		Long: `Parse a TMX file and report its language pair, row count, and how
many cells are still empty on each side.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(format) {
				return fmt.Errorf("invalid format %q: must be one of %v", format, ValidFormats)
			}
			return runInspect(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format (json|text)")

	return cmd
}

func runInspect(cmd *cobra.Command, path, format string) error {
	doc, err := tmx.ParseFile(path)
	if err != nil {
		return err
	}
	report := buildReport(path, doc)

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", report.Path)
	fmt.Fprintf(out, "  languages: %s -> %s\n", report.SourceLang, report.TargetLang)
	fmt.Fprintf(out, "  rows: %d\n", report.Rows)
	fmt.Fprintf(out, "  empty source cells: %d\n", report.EmptySource)
	fmt.Fprintf(out, "  empty target cells: %d\n", report.EmptyTarget)
	fmt.Fprintf(out, "  empty rows: %d\n", report.EmptyRows)
	if doc.RowCount() > 0 {
		fmt.Fprintf(out, "  preview:\n")
		for i := 0; i < doc.RowCount() && i < previewRows; i++ {
			row := doc.RowAt(i)
			fmt.Fprintf(out, "    row %d: %q -> %q\n", i, clipCell(row.Source), clipCell(row.Target))
		}
	}
	return nil
}

// clipCell shortens long cell text so preview lines stay readable.
func clipCell(text string) string {
	const limit = 48
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

func buildReport(path string, doc *align.Document) InspectReport {
	r := InspectReport{
		Path:       path,
		SourceLang: doc.SourceLang,
		TargetLang: doc.TargetLang,
		Rows:       doc.RowCount(),
	}
	for _, row := range doc.Rows() {
		if row.Source == "" {
			r.EmptySource++
		}
		if row.Target == "" {
			r.EmptyTarget++
		}
		if row.Source == "" && row.Target == "" {
			r.EmptyRows++
		}
	}
	return r
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
