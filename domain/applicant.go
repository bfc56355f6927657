package domain

// Applicant holds the financial figures supplied for a qualification run.
type Applicant struct {
	CreditScore   int     `json:"credit_score" validate:"gte=0"`
	MonthlyDebt   float64 `json:"monthly_debt" validate:"gte=0"`
	MonthlyIncome float64 `json:"monthly_income" validate:"gt=0"`
	LoanAmount    float64 `json:"loan_amount" validate:"gt=0"`
	HomeValue     float64 `json:"home_value" validate:"gt=0"`
}

// Ratios are derived once per run from the applicant.
type Ratios struct {
	DebtToIncome float64 `json:"debt_to_income"`
	LoanToValue  float64 `json:"loan_to_value"`
}
