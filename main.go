// Command loan-qualifier matches an applicant with the lenders on a rate sheet
// whose terms they meet.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "loan-qualifier",
	Short:         "Match applicants with qualifying loans from a rate sheet",
	Long:          "loan-qualifier filters a lender rate sheet by maximum loan size, minimum credit score, debt-to-income and loan-to-value limits to find the loans an applicant qualifies for.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath string
	rateSheet  string
	logLevel   string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file (default ./loanq.yaml if present)")
	rootCmd.PersistentFlags().StringVarP(&rateSheet, "rate-sheet", "r", "", "Path to the rate sheet CSV (overrides LOANQ_RATE_SHEET)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
