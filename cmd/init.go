package cmd

import (
	"github.com/spf13/cobra"

	"github.com/DonMrMango/matriz-legal-ISO27001/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize matrizlegal configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to locate the corpus, pick a generation backend, and generate a .matrizlegal.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
