// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-scout CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-scout/internal/arxiv"
	"github.com/pdiddy/arxiv-scout/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the arxiv-scout CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-scout",
	Short: "Search, fetch, and track arXiv papers from the terminal",
	Long: `arxiv-scout queries the arXiv search API with polite pacing, response
caching, and automatic retries. Results can be rendered for the terminal,
exported as JSON, CSV, or BibTeX, and saved to a local SQLite library.

Each operation is a subcommand: search, recent, get, and library.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-scout.yaml or ~/.config/arxiv-scout/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-scout")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-scout"))
		}
	}

	viper.SetEnvPrefix("ARXIV_SCOUT")
	viper.AutomaticEnv()

	viper.SetDefault("arxiv.base_url", "")
	viper.SetDefault("client.delay", "3s")
	viper.SetDefault("client.max_retries", 3)
	viper.SetDefault("http.timeout", "30s")
	viper.SetDefault("http.user_agent", "")
	viper.SetDefault("cache.dir", "")
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("library.path", "library.db")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// clientFromConfig builds an API client from the resolved configuration.
func clientFromConfig() (*arxiv.Client, error) {
	cfg := types.ClientConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("http.timeout"),
			UserAgent: viper.GetString("http.user_agent"),
		},
		BaseURL:    viper.GetString("arxiv.base_url"),
		Delay:      viper.GetDuration("client.delay"),
		MaxRetries: viper.GetInt("client.max_retries"),
		CacheDir:   viper.GetString("cache.dir"),
		CacheTTL:   viper.GetDuration("cache.ttl"),
	}
	return arxiv.NewClient(cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
