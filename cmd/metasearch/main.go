// Package main is the entry point for the metasearch MCP server and CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "metasearch",
	Short: "Meta-search MCP server backed by SearXNG",
	Long: `metasearch fans search queries out to a SearXNG instance, optionally
reorders oversized result lists with a reranking model, and exposes the
aggregated results as MCP tools over streamable HTTP.

Configuration is read from config/<ENV>.yaml (ENV defaults to local) or the
file passed with --config. Without a config file, SEARXNG_URL, MCP_BIND,
SILICONFLOW_API_KEY and MCP_AUTH_TOKEN are read from the environment.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: config/<ENV>.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
