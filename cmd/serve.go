package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/themegen/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing tools to generate designs and fetch saved markup and prompts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}

		database, store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		// Without a working provider the read-only tools still serve.
		var gen mcpserver.Generator
		if g, err := newGenerator(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			fmt.Fprintf(os.Stderr, "generate_designs will be unavailable. Run `themegen auth set %s` first.\n", cfg.Provider)
		} else {
			gen = g
		}

		mcpserver.Version = Version
		fmt.Fprintf(os.Stderr, "themegen MCP server started on stdio (db=%s)\n", database.Path())

		srv := mcpserver.NewServer(gen, store, string(cfg.Provider), log)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
