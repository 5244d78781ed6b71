// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/orgbib/internal/keyindex"
	"github.com/pdiddy/orgbib/internal/outline"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage the citation key index",
	Long: `Keys manages the SQLite index of citation keys used for uniqueness
warnings during auto-key generation. Rebuild scans a document's headings;
list shows registered keys; check tests a single key.`,
}

var keysRebuildCmd = &cobra.Command{
	Use:   "rebuild [file.org]",
	Short: "Rebuild the key index from a document's headings",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeysRebuild,
}

func runKeysRebuild(cmd *cobra.Command, args []string) error {
	mcfg, err := mapperConfig(cmd)
	if err != nil {
		return err
	}
	idx, err := openKeyIndex()
	if err != nil {
		return err
	}
	defer idx.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening outline document: %w", err)
	}
	doc, err := outline.Parse(f)
	f.Close()
	if err != nil {
		return err
	}

	count, dups, err := idx.Rebuild(context.Background(), doc, mcfg.KeyPropertyName(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%d key(s) registered from %s\n", count, args[0])
	if len(dups) > 0 {
		fmt.Fprintf(os.Stderr, "warning: duplicate keys in document: %s\n", strings.Join(dups, ", "))
	}
	return nil
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered citation keys",
	RunE:  runKeysList,
}

func runKeysList(cmd *cobra.Command, args []string) error {
	idx, err := openKeyIndex()
	if err != nil {
		return err
	}
	defer idx.Close()

	entries, err := idx.List(context.Background())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, "No keys registered.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(os.Stdout, "%-24s  %s\n", e.Key, e.Title)
	}
	fmt.Fprintf(os.Stdout, "\n%d key(s)\n", len(entries))
	return nil
}

var keysCheckCmd = &cobra.Command{
	Use:   "check [key]",
	Short: "Test whether a citation key is already taken",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeysCheck,
}

func runKeysCheck(cmd *cobra.Command, args []string) error {
	idx, err := openKeyIndex()
	if err != nil {
		return err
	}
	defer idx.Close()

	taken, err := idx.Exists(context.Background(), args[0])
	if err != nil {
		return err
	}
	if taken {
		fmt.Fprintf(os.Stdout, "%s: taken\n", args[0])
	} else {
		fmt.Fprintf(os.Stdout, "%s: available\n", args[0])
	}
	return nil
}

func openKeyIndex() (*keyindex.Index, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return keyindex.Open(cfg.KeyIndex.Path)
}

func init() {
	keysRebuildCmd.Flags().String("key-property", "", "property holding the citation key")
	keysListCmd.Flags().Bool("json", false, "output as JSON")

	keysCmd.AddCommand(keysRebuildCmd)
	keysCmd.AddCommand(keysListCmd)
	keysCmd.AddCommand(keysCheckCmd)

	rootCmd.AddCommand(keysCmd)
}
