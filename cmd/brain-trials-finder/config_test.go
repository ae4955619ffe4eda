// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prazg/brain-trials-finder/pkg/types"
)

func TestLoadConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("registry.timeout", 15*time.Second)
	viper.Set("registry.user_agent", "test-agent/1.0")
	viper.Set("registry.statuses", []string{"RECRUITING"})
	viper.Set("registry.page_size", 25)
	viper.Set("registry.max_pages", 2)
	viper.Set("cache.path", "/tmp/trials.db")
	viper.Set("cache.ttl", 30*time.Minute)
	viper.Set("server.addr", ":9090")

	cfg := loadConfig()

	assert.Equal(t, 15*time.Second, cfg.Registry.Timeout)
	assert.Equal(t, "test-agent/1.0", cfg.Registry.UserAgent)
	assert.Equal(t, []string{"RECRUITING"}, cfg.Registry.Statuses)
	assert.Equal(t, 25, cfg.Registry.PageSize)
	assert.Equal(t, 2, cfg.Registry.MaxPages)
	assert.Equal(t, "/tmp/trials.db", cfg.Cache.Path)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestRegistryConfigFlagOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("registry.page_size", 100)
	viper.Set("registry.max_pages", 5)

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Int("page-size", 100, "")
	cmd.Flags().Int("pages", 5, "")
	require.NoError(t, cmd.Flags().Set("page-size", "10"))

	cfg := registryConfig(cmd)

	assert.Equal(t, 10, cfg.PageSize, "changed flag overrides config")
	assert.Equal(t, 5, cfg.MaxPages, "unchanged flag keeps config value")
	assert.Equal(t, types.DefaultStatuses, cfg.Statuses, "empty statuses fall back to the default filter")
}
