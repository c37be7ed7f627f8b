package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	rootCmd    = &cobra.Command{
		Use:   "benchscore",
		Short: "Manual scoring tool for the eReefs AI benchmark",
		Long: `benchscore records human evaluations of model answers against a fixed
benchmark rubric. Scores are saved one JSON file per run so they can be
resumed, then flattened into CSV/XLSX/SQLite reports for analysis.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
