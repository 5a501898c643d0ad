package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DonMrMango/matriz-legal-ISO27001/internal/progress"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the corpus and rebuild the metadata index",
	Long:  `Walks the corpus folders, extracts metadata from every document, applies canonical title overrides, and prints the indexed documents.`,
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().Bool("clear", false, "discard the metadata cache before scanning")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

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

	clearCache, _ := cmd.Flags().GetBool("clear")
	if clearCache {
		lib.ClearCache()
	}

	total := lib.CountFiles()
	if total == 0 {
		fmt.Printf("No corpus files found under %s.\n", cfg.CorpusDir)
		fmt.Println("Expected folders: leyes, decretos, circulares, resoluciones, conpes, otros.")
		return nil
	}

	reporter := progress.NewReporter()
	reporter.Start(total)
	processed := 0
	lib.SetFileHook(func(path string) {
		processed++
		reporter.Update(processed, path)
	})

	docs, err := lib.Scan(ctx)
	reporter.Finish()
	if err != nil {
		return fmt.Errorf("scanning corpus: %w", err)
	}

	failed := 0
	for _, doc := range docs {
		if doc.ExtractError != "" {
			failed++
		}
	}

	fmt.Printf("Indexed %d documents (%d with extraction errors)\n\n", len(docs), failed)
	for _, doc := range docs {
		marker := " "
		if doc.ExtractError != "" {
			marker = "!"
		}
		fmt.Printf("%s %-28s %-10s %s\n", marker, doc.ID, doc.Type, doc.Title)
		if verbose && doc.ExtractError != "" {
			fmt.Printf("    %s\n", doc.ExtractError)
		}
	}
	return nil
}
