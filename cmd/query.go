package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DonMrMango/matriz-legal-ISO27001/internal/chat"
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask a question grounded in the legal corpus",
	Long:  `Ranks corpus documents against the question, assembles the most relevant excerpts, and answers using the configured generation backend. With provider "none", prints the ranked sources without generation.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().Int("sources", 0, "maximum number of source documents (overrides config)")
	queryCmd.Flags().Bool("json", false, "output the answer and sources as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	question := args[0]

	maxSources, _ := cmd.Flags().GetInt("sources")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, err := openDatabase(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\ncontinuing without canonical metadata\n", err)
		database = nil
	}
	if database != nil {
		defer database.Close()
	}

	lib := buildLibrary(cfg, database)
	scorer := buildScorer(cfg, lib)

	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	svc := chat.NewService(lib, scorer, provider)
	svc.SetLimits(cfg.Chat.MinQueryLength, maxSources)
	svc.Assembler().SetBudgets(cfg.Chat.GeneralBudget, cfg.Chat.FullDocBudget)

	resp, err := svc.Query(ctx, question)
	if err != nil {
		if errors.Is(err, chat.ErrNoRelevantDocuments) {
			fmt.Println("No relevant documents found for this question.")
			return nil
		}
		return fmt.Errorf("query failed: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Println(resp.Answer)
	if len(resp.Sources) > 0 {
		fmt.Println("\nFuentes:")
		for i, src := range resp.Sources {
			fmt.Printf("  %d. %s (%s, relevancia %d)\n", i+1, src.Title, src.ID, src.Score)
		}
	}
	if verbose && resp.Model != "" {
		fmt.Fprintf(os.Stderr, "\nModel: %s\n", resp.Model)
	}
	return nil
}
