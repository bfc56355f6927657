package service

const (
	MaxLoanAmount = 1_000_000_000.0 // 1 billion
	MaxHomeValue  = 1_000_000_000.0
	MaxRateSheet  = 10_000 // offers evaluated per run

	// Filter names, in the order they are applied.
	StepMaxLoanSize  = "max_loan_size"
	StepCreditScore  = "credit_score"
	StepDebtToIncome = "debt_to_income"
	StepLoanToValue  = "loan_to_value"
)
