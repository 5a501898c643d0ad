package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/DonMrMango/matriz-legal-ISO27001/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "matrizlegal",
	Short: "Legal corpus indexing, search, and question answering",
	Long: `Matriz Legal indexes a corpus of Colombian legal texts on data
protection (Ley 1581 de 2012, Decreto 1377 de 2013, CONPES 3995 and
related norms), extracts document metadata, and answers questions
grounded in the corpus over a REST API, WebSocket, or MCP.`,
}

func Execute() error {
	// API keys live in .env during local development.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
