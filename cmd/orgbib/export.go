// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/orgbib/internal/csl"
	"github.com/pdiddy/orgbib/internal/heading"
	"github.com/pdiddy/orgbib/internal/outline"
)

var exportCmd = &cobra.Command{
	Use:   "export [file.org]",
	Short: "Export outline headings as BibTeX, CSL-YAML, or JSON",
	Long: `Export reads an outline document (or stdin) and writes every heading
carrying bibliography metadata as a record. BibTeX export halts at the
first heading that fails to translate, preserving the partial output and
reporting the failing heading's position.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	mcfg, err := mapperConfig(cmd)
	if err != nil {
		return err
	}

	in := os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening outline document: %w", err)
		}
		defer f.Close()
		in = f
	}

	doc, err := outline.Parse(in)
	if err != nil {
		return err
	}

	mapper := heading.NewMapper(mcfg)
	format, _ := cmd.Flags().GetString("format")

	switch format {
	case "bibtex", "":
		n, err := outline.ExportBibTeX(doc, mapper, os.Stdout)
		if err != nil {
			return fmt.Errorf("export halted after %d record(s): %w", n, err)
		}
		fmt.Fprintf(os.Stderr, "%d record(s) exported\n", n)
	case "csl":
		return csl.WriteYAML(os.Stdout, outline.Entries(doc, mapper))
	case "json":
		entries := outline.Entries(doc, mapper)
		rows := make([]map[string]string, len(entries))
		for i, e := range entries {
			row := make(map[string]string, e.Len())
			for _, f := range e.Fields() {
				row[f.Name] = f.Value
			}
			rows[i] = row
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	default:
		return fmt.Errorf("unsupported format %q: use bibtex, csl, or json", format)
	}
	return nil
}

func init() {
	exportCmd.Flags().String("format", "bibtex", "output format: bibtex, csl, or json")
	exportCmd.Flags().String("prefix", "", "property-name prefix for stored fields")
	exportCmd.Flags().String("key-property", "", "property holding the citation key")
	exportCmd.Flags().Bool("tags-are-keywords", false, "fold heading tags into the keywords field")
	exportCmd.Flags().Bool("arbitrary-fields", false, "include non-schema prefixed properties in output")

	rootCmd.AddCommand(exportCmd)
}
