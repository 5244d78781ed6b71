// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/orgbib/internal/schema"
	"github.com/pdiddy/orgbib/pkg/types"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [type]",
	Short: "Show entry types and their field requirements",
	Long: `Schema lists the known BibTeX entry types, or the required and
optional fields of one type with their catalog descriptions. Alternative
field groups are shown as "editor|author": any one member satisfies the
requirement.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if len(args) == 0 {
		return listTypes(jsonOutput)
	}
	return describeType(args[0], jsonOutput)
}

func listTypes(jsonOutput bool) error {
	entryTypes := schema.Types()

	if jsonOutput {
		rows := make([]map[string]string, len(entryTypes))
		for i, t := range entryTypes {
			rows[i] = map[string]string{"name": t.Name, "description": t.Description}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Fprintf(os.Stdout, "%-15s  %s\n", "Type", "Description")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 70))
	for _, t := range entryTypes {
		fmt.Fprintf(os.Stdout, "%-15s  %s\n", t.Name, t.Description)
	}
	return nil
}

func describeType(name string, jsonOutput bool) error {
	t, err := schema.Lookup(name)
	if err != nil {
		return err
	}

	if jsonOutput {
		out := struct {
			Name        string   `json:"name"`
			Description string   `json:"description"`
			Required    []string `json:"required"`
			Optional    []string `json:"optional"`
		}{Name: t.Name, Description: t.Description}
		for _, s := range t.Required {
			out.Required = append(out.Required, s.String())
		}
		for _, s := range t.Optional {
			out.Optional = append(out.Optional, s.String())
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(os.Stdout, "%s — %s\n\nRequired fields:\n", t.Name, t.Description)
	printSpecs(t.Required)
	fmt.Fprintln(os.Stdout, "\nOptional fields:")
	printSpecs(t.Optional)
	return nil
}

func printSpecs(specs []types.FieldSpec) {
	if len(specs) == 0 {
		fmt.Fprintln(os.Stdout, "  (none)")
		return
	}
	for _, s := range specs {
		if s.IsAlternative() {
			fmt.Fprintf(os.Stdout, "  %-22s  one of these must be present\n", s)
			for _, n := range s.Names() {
				desc, _ := schema.FieldDescription(n)
				fmt.Fprintf(os.Stdout, "    %-20s  %s\n", n, desc)
			}
			continue
		}
		desc, _ := schema.FieldDescription(s.Names()[0])
		fmt.Fprintf(os.Stdout, "  %-22s  %s\n", s, desc)
	}
}

func init() {
	schemaCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(schemaCmd)
}
