package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"loan-qualifier/repository"
)

var offersCmd = &cobra.Command{
	Use:   "offers",
	Short: "Print the offers on the rate sheet",
	RunE:  runOffers,
}

var offersJSON bool

func init() {
	offersCmd.Flags().BoolVar(&offersJSON, "json", false, "Print offers as JSON instead of CSV")
	rootCmd.AddCommand(offersCmd)
}

func runOffers(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	offers, err := a.service.Offers(cmd.Context())
	if err != nil {
		return err
	}

	if offersJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(offers)
	}
	return repository.WriteOffers(cmd.OutOrStdout(), offers)
}
