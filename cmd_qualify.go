package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"loan-qualifier/config"
	"loan-qualifier/domain"
	"loan-qualifier/repository"
)

var qualifyCmd = &cobra.Command{
	Use:   "qualify",
	Short: "Find the loans an applicant qualifies for",
	Long:  "Loads the rate sheet, asks for any applicant figures not given as flags, prints the applicant's ratios and the number of qualifying loans, and optionally saves them to a CSV file.",
	RunE:  runQualify,
}

var (
	qualifyCreditScore int
	qualifyDebt        float64
	qualifyIncome      float64
	qualifyLoan        float64
	qualifyHomeValue   float64
	qualifyOut         string
	qualifyNoSave      bool
)

func init() {
	qualifyCmd.Flags().IntVar(&qualifyCreditScore, "credit-score", 0, "Applicant credit score")
	qualifyCmd.Flags().Float64Var(&qualifyDebt, "debt", 0, "Total monthly debt payments")
	qualifyCmd.Flags().Float64Var(&qualifyIncome, "income", 0, "Total monthly income")
	qualifyCmd.Flags().Float64Var(&qualifyLoan, "loan", 0, "Desired loan amount")
	qualifyCmd.Flags().Float64Var(&qualifyHomeValue, "home-value", 0, "Home value")
	qualifyCmd.Flags().StringVarP(&qualifyOut, "out", "o", "", "Save qualifying loans to this CSV path without asking")
	qualifyCmd.Flags().BoolVar(&qualifyNoSave, "no-save", false, "Do not offer to save the qualifying loans")

	rootCmd.AddCommand(qualifyCmd)
}

// qualifyOptions holds the applicant figures given on the command line; nil
// fields are prompted for.
type qualifyOptions struct {
	creditScore *int
	debt        *float64
	income      *float64
	loan        *float64
	homeValue   *float64
	out         string
	noSave      bool
}

func runQualify(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	opts := qualifyOptions{out: qualifyOut, noSave: qualifyNoSave}
	if flags.Changed("credit-score") {
		opts.creditScore = &qualifyCreditScore
	}
	if flags.Changed("debt") {
		opts.debt = &qualifyDebt
	}
	if flags.Changed("income") {
		opts.income = &qualifyIncome
	}
	if flags.Changed("loan") {
		opts.loan = &qualifyLoan
	}
	if flags.Changed("home-value") {
		opts.homeValue = &qualifyHomeValue
	}

	return opts.run(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
}

func (o qualifyOptions) run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	p := newPrompter(in, out)

	if cfg.RateSheet == "" {
		path, err := p.text("Enter a file path to a rate-sheet (.csv):")
		if err != nil {
			return err
		}
		cfg.RateSheet = path
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	applicant, err := o.applicant(p)
	if err != nil {
		return err
	}

	result, err := a.service.Qualify(ctx, applicant)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "The monthly debt to income ratio is %.2f\n", result.Ratios.DebtToIncome)
	fmt.Fprintf(out, "The loan to value ratio is %.2f.\n", result.Ratios.LoanToValue)
	fmt.Fprintf(out, "Found %d qualifying loans\n", result.Count())

	if result.Count() == 0 {
		fmt.Fprintln(out, "Sorry, there are no qualifying loans for this applicant.")
		return nil
	}

	return o.save(p, out, result.Offers)
}

// applicant collects the five figures in the order credit score, debt, income,
// loan amount, home value.
func (o qualifyOptions) applicant(p *prompter) (domain.Applicant, error) {
	var (
		applicant domain.Applicant
		err       error
	)

	if o.creditScore != nil {
		applicant.CreditScore = *o.creditScore
	} else if applicant.CreditScore, err = p.integer("What's your credit score?"); err != nil {
		return domain.Applicant{}, err
	}

	floats := []struct {
		given    *float64
		dst      *float64
		question string
	}{
		{o.debt, &applicant.MonthlyDebt, "What's your current amount of monthly debt?"},
		{o.income, &applicant.MonthlyIncome, "What's your total monthly income?"},
		{o.loan, &applicant.LoanAmount, "What's your desired loan amount?"},
		{o.homeValue, &applicant.HomeValue, "What's your home value?"},
	}
	for _, f := range floats {
		if f.given != nil {
			*f.dst = *f.given
			continue
		}
		if *f.dst, err = p.float(f.question); err != nil {
			return domain.Applicant{}, err
		}
	}

	return applicant, nil
}

func (o qualifyOptions) save(p *prompter, out io.Writer, offers []domain.Offer) error {
	path := o.out
	if path == "" {
		if o.noSave {
			return nil
		}
		ok, err := p.confirm("Save list of your qualifying loans?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "List not saved. Have a nice day!")
			return nil
		}
		if path, err = p.text("Enter save location:"); err != nil {
			return err
		}
	}

	if err := repository.SaveCSV(path, offers); err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved to '%s'!\n", path)
	return nil
}
