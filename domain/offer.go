package domain

// Offer is one lender's terms from a rate sheet.
type Offer struct {
	Lender          string  `json:"lender"`
	MaxLoanAmount   float64 `json:"max_loan_amount"`
	MinCreditScore  int     `json:"min_credit_score"`
	MaxDebtToIncome float64 `json:"max_debt_to_income"`
	MaxLoanToValue  float64 `json:"max_loan_to_value"`
}

// OfferFieldCount is the number of columns in a rate sheet row.
const OfferFieldCount = 5
