// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/orgbib/internal/bibtex"
	"github.com/pdiddy/orgbib/internal/heading"
	"github.com/pdiddy/orgbib/internal/outline"
)

var importCmd = &cobra.Command{
	Use:   "import [file.bib]",
	Short: "Import BibTeX records as outline headings",
	Long: `Import parses bibliography records from a .bib file (or stdin), stages
them on the entry queue, and writes each as an outline heading with a
property drawer. Headings are appended to the document named by --org;
without --org the outline text goes to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	mcfg, err := mapperConfig(cmd)
	if err != nil {
		return err
	}

	in := os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening bibliography: %w", err)
		}
		defer f.Close()
		in = f
	}

	var queue bibtex.Queue
	staged, err := bibtex.ParseInto(in, &queue)
	if err != nil {
		return err
	}
	if staged == 0 {
		return errors.New("no bibliography records found in input")
	}

	orgPath, _ := cmd.Flags().GetString("org")
	doc := &outline.Document{}
	if orgPath != "" {
		if f, err := os.Open(orgPath); err == nil {
			doc, err = outline.Parse(f)
			f.Close()
			if err != nil {
				return err
			}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("opening outline document: %w", err)
		}
	}

	// Pop most-recent-first, then reverse so headings keep document order.
	mapper := heading.NewMapper(mcfg)
	start := len(doc.Headings)
	for queue.Len() > 0 {
		entry, err := queue.Pop()
		if err != nil {
			return err
		}
		doc.Append(mapper.ToHeading(entry))
	}
	reverseHeadings(doc, start)

	if orgPath == "" {
		return outline.Write(os.Stdout, doc)
	}
	f, err := os.Create(orgPath)
	if err != nil {
		return fmt.Errorf("writing outline document: %w", err)
	}
	defer f.Close()
	if err := outline.Write(f, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Imported %d entr%s into %s\n", staged, pluralY(staged), orgPath)
	return nil
}

// reverseHeadings restores document order for the headings appended from
// the LIFO staging queue.
func reverseHeadings(doc *outline.Document, start int) {
	for i, j := start, len(doc.Headings)-1; i < j; i, j = i+1, j-1 {
		doc.Headings[i], doc.Headings[j] = doc.Headings[j], doc.Headings[i]
	}
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

func init() {
	importCmd.Flags().String("org", "", "outline document to append headings to (default: stdout)")
	importCmd.Flags().String("prefix", "", "property-name prefix for stored fields")
	importCmd.Flags().String("key-property", "", "property holding the citation key")
	importCmd.Flags().Bool("tags-are-keywords", false, "convert the keywords field to heading tags")

	rootCmd.AddCommand(importCmd)
}
