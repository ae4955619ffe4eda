// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/prazg/brain-trials-finder/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search pipeline as a JSON HTTP API",
	Long: `Serve starts an HTTP server exposing the search pipeline: GET
/api/search and /api/search/uk return scored rows for the query
parameters, /api/portals returns UK portal shortcut URLs, and /healthz
reports liveness. Web front ends render the rows; they do not score.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger(cmd)
		cfg := registryConfig(cmd)

		fetcher, closeFetcher, err := newFetcher(cmd, cfg, log)
		if err != nil {
			return err
		}
		defer closeFetcher()

		srvCfg := loadConfig().Server
		if cmd.Flags().Changed("addr") {
			srvCfg.Addr, _ = cmd.Flags().GetString("addr")
		}

		return server.New(fetcher, log).Start(srvCfg.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Int("page-size", 100, "results per page per term (max 1000)")
	serveCmd.Flags().Int("pages", 5, "max pages to fetch per term")
	serveCmd.Flags().String("cache", "", "SQLite cache file for fetch results")

	rootCmd.AddCommand(serveCmd)
}
