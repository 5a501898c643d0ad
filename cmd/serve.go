package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/DonMrMango/matriz-legal-ISO27001/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing legal corpus search tools to MCP-capable AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := openDatabase(cfg)
		if err != nil {
			// Canonical overrides are optional for MCP; continue without them.
			fmt.Fprintf(os.Stderr, "Warning: %v\ncontinuing without canonical metadata\n", err)
			database = nil
		}
		if database != nil {
			defer database.Close()
		}

		lib := buildLibrary(cfg, database)
		scorer := buildScorer(cfg, lib)

		docs, err := lib.Documents(context.Background())
		if err != nil {
			return fmt.Errorf("scanning corpus: %w", err)
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "matrizlegal MCP server started on stdio (corpus=%s, documents=%d)\n", cfg.CorpusDir, len(docs))

		srv := mcpserver.NewServer(lib, scorer)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
