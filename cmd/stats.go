package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/DonMrMango/matriz-legal-ISO27001/internal/library"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print corpus statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		lib := buildLibrary(cfg, nil)
		stats, err := lib.Stats(context.Background())
		if err != nil {
			return fmt.Errorf("scanning corpus: %w", err)
		}

		fmt.Printf("Corpus: %d documents\n\n", stats.Total)

		fmt.Println("By type:")
		for _, t := range library.Types() {
			if n := stats.ByType[t]; n > 0 {
				fmt.Printf("  %-12s %d\n", t, n)
			}
		}

		years := make([]int, 0, len(stats.ByYear))
		for y := range stats.ByYear {
			years = append(years, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(years)))
		if len(years) > 0 {
			fmt.Println("\nBy year:")
			for _, y := range years {
				fmt.Printf("  %d  %d\n", y, stats.ByYear[y])
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
