package service

import "loan-qualifier/domain"

type offerPredicate func(offer domain.Offer) bool

// filterOffers returns a new slice with the offers that satisfy keep, in their
// original order. The input slice is never modified.
func filterOffers(offers []domain.Offer, keep offerPredicate) []domain.Offer {
	filtered := make([]domain.Offer, 0, len(offers))
	for _, offer := range offers {
		if keep(offer) {
			filtered = append(filtered, offer)
		}
	}
	return filtered
}

// FilterMaxLoanSize keeps offers whose maximum loan size covers the requested amount.
func FilterMaxLoanSize(loanAmount float64, offers []domain.Offer) []domain.Offer {
	return filterOffers(offers, func(offer domain.Offer) bool {
		return loanAmount <= offer.MaxLoanAmount
	})
}

// FilterCreditScore keeps offers whose minimum credit score the applicant meets.
func FilterCreditScore(creditScore int, offers []domain.Offer) []domain.Offer {
	return filterOffers(offers, func(offer domain.Offer) bool {
		return creditScore >= offer.MinCreditScore
	})
}

// FilterDebtToIncome keeps offers that allow the applicant's debt-to-income ratio.
func FilterDebtToIncome(debtRatio float64, offers []domain.Offer) []domain.Offer {
	return filterOffers(offers, func(offer domain.Offer) bool {
		return debtRatio <= offer.MaxDebtToIncome
	})
}

// FilterLoanToValue keeps offers that allow the applicant's loan-to-value ratio.
func FilterLoanToValue(ltvRatio float64, offers []domain.Offer) []domain.Offer {
	return filterOffers(offers, func(offer domain.Offer) bool {
		return ltvRatio <= offer.MaxLoanToValue
	})
}
