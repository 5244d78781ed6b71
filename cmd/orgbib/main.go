// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the orgbib CLI: a bidirectional
// translator between BibTeX bibliography records and outline headings
// with keyed metadata.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/orgbib/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the orgbib CLI.
var rootCmd = &cobra.Command{
	Use:   "orgbib",
	Short: "Translate between BibTeX records and outline headings",
	Long: `orgbib maps BibTeX bibliography records to outline headings with keyed
metadata and back. Import stages parsed records and writes them as headings
with property drawers; export reads headings back into well-formed BibTeX,
CSL-YAML, or JSON; check fills in missing required fields and citation keys.

Options such as the property-name prefix, tag/keyword conversion, and the
auto-key policy are read from orgbib.yaml or flags.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./orgbib.yaml or ~/.config/orgbib/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("orgbib")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "orgbib"))
		}
	}

	viper.SetEnvPrefix("ORGBIB")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig merges the config file into the typed configuration.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("parsing configuration: %w", err)
	}
	return cfg, nil
}

// mapperConfig returns the mapper options with per-command flag overrides
// applied on top of the config file.
func mapperConfig(cmd *cobra.Command) (types.MapperConfig, error) {
	cfg, err := loadConfig()
	if err != nil {
		return types.MapperConfig{}, err
	}
	m := cfg.Mapper

	if f := cmd.Flags().Lookup("prefix"); f != nil && f.Changed {
		m.PropertyPrefix, _ = cmd.Flags().GetString("prefix")
	}
	if f := cmd.Flags().Lookup("key-property"); f != nil && f.Changed {
		m.KeyProperty, _ = cmd.Flags().GetString("key-property")
	}
	if f := cmd.Flags().Lookup("tags-are-keywords"); f != nil && f.Changed {
		m.TagsAsKeywords, _ = cmd.Flags().GetBool("tags-are-keywords")
	}
	if f := cmd.Flags().Lookup("arbitrary-fields"); f != nil && f.Changed {
		m.ExportArbitraryFields, _ = cmd.Flags().GetBool("arbitrary-fields")
	}
	if f := cmd.Flags().Lookup("auto-key"); f != nil && f.Changed {
		m.AutoKey, _ = cmd.Flags().GetBool("auto-key")
	}
	return m, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
