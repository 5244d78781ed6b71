// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/orgbib/internal/heading"
	"github.com/pdiddy/orgbib/internal/keyindex"
	"github.com/pdiddy/orgbib/internal/outline"
)

var checkCmd = &cobra.Command{
	Use:   "check [file.org]",
	Short: "Fill in missing required fields and citation keys",
	Long: `Check walks the bibliography headings of an outline document and, for
each one missing required fields or a citation key, prompts for the
missing values and writes the completed heading back. Alternatives such
as {editor, author} are satisfied by either member; only unsatisfied
groups prompt. The document is rewritten in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	mcfg, err := mapperConfig(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening outline document: %w", err)
	}
	doc, err := outline.Parse(f)
	f.Close()
	if err != nil {
		return err
	}

	var keys heading.KeyChecker
	if mcfg.AutoKey {
		idx, err := keyindex.Open(cfg.KeyIndex.Path)
		if err != nil {
			return err
		}
		defer idx.Close()
		keys = idx
	}

	typeOverride, _ := cmd.Flags().GetString("type")
	withOptional, _ := cmd.Flags().GetBool("optional")
	only, _ := cmd.Flags().GetInt("heading")

	mapper := heading.NewMapper(mcfg)
	prompter := &terminalPrompter{in: bufio.NewReader(os.Stdin), out: os.Stdout}
	ctx := context.Background()

	changed := 0
	for i := range doc.Headings {
		if only > 0 && i+1 != only {
			continue
		}
		if !outline.IsEntry(doc.Headings[i], mcfg) {
			continue
		}

		entry := mapper.FromHeading(doc.Headings[i])
		typeName := entry.Type()
		if typeOverride != "" {
			typeName = typeOverride
		}

		state, err := heading.Status(entry, mcfg)
		if err != nil {
			return fmt.Errorf("heading %d (%q): %w", i+1, doc.Headings[i].Title, err)
		}
		if state == heading.StateComplete && !withOptional {
			continue
		}

		fmt.Fprintf(os.Stdout, "heading %d: %s (%s)\n", i+1, doc.Headings[i].Title, state)
		completed, err := heading.Fleshout(ctx, entry, typeName, mcfg, prompter, keys, withOptional, os.Stderr)
		if err != nil {
			return fmt.Errorf("heading %d (%q): %w", i+1, doc.Headings[i].Title, err)
		}
		if completed.Equal(entry) {
			continue
		}

		doc.Headings[i] = mapper.UpdateHeading(doc.Headings[i], completed)
		changed++
	}

	if changed == 0 {
		fmt.Fprintln(os.Stdout, "All bibliography headings are complete.")
		return nil
	}

	out, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("rewriting outline document: %w", err)
	}
	defer out.Close()
	if err := outline.Write(out, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%d heading(s) updated\n", changed)
	return nil
}

// terminalPrompter reads field values from the interactive terminal.
type terminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func (t *terminalPrompter) Value(field, description string) (string, error) {
	fmt.Fprintf(t.out, "%s (%s): ", field, description)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", heading.ErrAborted
	}
	return strings.TrimSpace(line), nil
}

func (t *terminalPrompter) Choose(prompt string, options []string) (string, error) {
	fmt.Fprintf(t.out, "%s [%s]: ", prompt, strings.Join(options, "/"))
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", heading.ErrAborted
	}
	choice := strings.TrimSpace(line)
	for _, o := range options {
		if strings.EqualFold(choice, o) {
			return o, nil
		}
	}
	if choice == "" {
		return options[0], nil
	}
	return "", fmt.Errorf("invalid choice %q: expected one of %s", choice, strings.Join(options, ", "))
}

func init() {
	checkCmd.Flags().String("type", "", "entry type to check against (default: the heading's type property)")
	checkCmd.Flags().Bool("optional", false, "also prompt for optional fields")
	checkCmd.Flags().Int("heading", 0, "check only the heading at this position (1-based)")
	checkCmd.Flags().String("prefix", "", "property-name prefix for stored fields")
	checkCmd.Flags().String("key-property", "", "property holding the citation key")
	checkCmd.Flags().Bool("auto-key", false, "derive missing keys instead of prompting")

	rootCmd.AddCommand(checkCmd)
}
