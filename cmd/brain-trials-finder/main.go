// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the brain-trials-finder CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/prazg/brain-trials-finder/internal/cache"
	"github.com/prazg/brain-trials-finder/internal/pipeline"
	"github.com/prazg/brain-trials-finder/internal/registry"
	"github.com/prazg/brain-trials-finder/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the brain-trials-finder CLI.
var rootCmd = &cobra.Command{
	Use:   "brain-trials-finder",
	Short: "Find clinical trials relevant to a brain/CNS tumor diagnosis",
	Long: `brain-trials-finder queries ClinicalTrials.gov for actively recruiting
brain and CNS tumor trials, scores each trial against patient-specific
eligibility heuristics, and ranks the results for review.

The search subcommand runs one scored search; uk restricts results to
trials with a United Kingdom site and prints UK portal shortcuts; serve
exposes the same pipeline as a JSON HTTP API.

The scores are keyword heuristics over registry text, not medical advice.
Always review the full eligibility criteria with a clinician.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./brain-trials-finder.yaml or ~/.config/brain-trials-finder/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("brain-trials-finder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "brain-trials-finder"))
		}
	}

	viper.SetEnvPrefix("BRAIN_TRIALS")
	viper.AutomaticEnv()

	viper.SetDefault("registry.page_size", 100)
	viper.SetDefault("registry.max_pages", 5)
	viper.SetDefault("registry.timeout", 30*time.Second)
	viper.SetDefault("cache.ttl", time.Hour)
	viper.SetDefault("server.addr", ":8080")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the process logger; --verbose switches to debug level.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.InfoLevel
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// loadConfig assembles the full configuration from viper state.
func loadConfig() types.Config {
	return types.Config{
		Registry: types.RegistryConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("registry.timeout"),
				UserAgent: viper.GetString("registry.user_agent"),
			},
			Statuses: viper.GetStringSlice("registry.statuses"),
			PageSize: viper.GetInt("registry.page_size"),
			MaxPages: viper.GetInt("registry.max_pages"),
		},
		Cache: types.CacheConfig{
			Path: viper.GetString("cache.path"),
			TTL:  viper.GetDuration("cache.ttl"),
		},
		Server: types.ServerConfig{
			Addr: viper.GetString("server.addr"),
		},
	}
}

// registryConfig assembles the registry settings from the config file and
// the command's flags, with flags taking precedence.
func registryConfig(cmd *cobra.Command) types.RegistryConfig {
	cfg := loadConfig().Registry
	if cmd.Flags().Changed("page-size") {
		cfg.PageSize, _ = cmd.Flags().GetInt("page-size")
	}
	if cmd.Flags().Changed("pages") {
		cfg.MaxPages, _ = cmd.Flags().GetInt("pages")
	}
	if len(cfg.Statuses) == 0 {
		cfg.Statuses = types.DefaultStatuses
	}
	return cfg
}

// newFetcher builds the registry client and, when a cache path is
// configured, wraps it in the TTL cache. The returned closer is a no-op
// without a cache.
func newFetcher(cmd *cobra.Command, cfg types.RegistryConfig, log zerolog.Logger) (pipeline.Fetcher, func(), error) {
	client := registry.NewClient(cfg, log)

	cacheCfg := loadConfig().Cache
	if cmd.Flags().Lookup("cache") != nil && cmd.Flags().Changed("cache") {
		cacheCfg.Path, _ = cmd.Flags().GetString("cache")
	}
	if cacheCfg.Path == "" {
		return client, func() {}, nil
	}

	store, err := cache.Open(cacheCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("opening cache: %w", err)
	}

	f := &cache.Fetcher{Live: client, Store: store, Cfg: cfg, Log: log}
	return f, func() { store.Close() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
