package main

import (
	"os"

	"github.com/DonMrMango/matriz-legal-ISO27001/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
