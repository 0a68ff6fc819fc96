// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the advisormatch CLI: corpus
// management and advisor ranking from the command line. The ranking engine
// itself lives in internal/rank and is transport-agnostic.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sanjit30/AdvisorMatch/internal/secrets"
	"github.com/sanjit30/AdvisorMatch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if non-empty, otherwise the named secret.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return loadedSecrets[key]
}

// rootCmd is the base command for the advisormatch CLI.
var rootCmd = &cobra.Command{
	Use:   "advisormatch",
	Short: "Rank faculty advisors against research-interest queries",
	Long: `advisormatch ranks faculty advisors against a free-text research-interest
query by combining publication similarity with recency, activity, and
citation signals.

The corpus (professors, publications, author links) lives in a SQLite
database; semantic ranking additionally needs a prebuilt embedding index.
Use 'corpus import' to load a prepared corpus dump and 'rank' to query.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./advisormatch.yaml or ~/.config/advisormatch/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("advisormatch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "advisormatch"))
		}
	}

	viper.SetEnvPrefix("ADVISORMATCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// engineConfig merges the config file and environment over the design
// defaults.
func engineConfig() types.EngineConfig {
	cfg := types.DefaultEngineConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: invalid config, using defaults: %v\n", err)
		return types.DefaultEngineConfig()
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
