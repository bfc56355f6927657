package service

import (
	"fmt"
	"math"
)

// MonthlyDebtRatio returns the applicant's monthly debt-to-income ratio.
func MonthlyDebtRatio(debt, income float64) (float64, error) {
	if income == 0 {
		return 0, ErrZeroIncome
	}
	return debt / income, nil
}

// LoanToValueRatio returns the requested loan amount relative to the home value.
func LoanToValueRatio(loanAmount, homeValue float64) (float64, error) {
	if homeValue == 0 {
		return 0, ErrZeroHomeValue
	}
	return loanAmount / homeValue, nil
}

// checkFinite rejects ratios that overflowed, e.g. a tiny positive income.
func checkFinite(name string, ratio float64) error {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return fmt.Errorf("%w: %s", ErrNonFiniteRatio, name)
	}
	return nil
}
