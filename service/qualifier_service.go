package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"loan-qualifier/domain"
	"loan-qualifier/repository"
)

type qualificationFilter struct {
	name  string
	apply func([]domain.Offer) []domain.Offer
}

// FindQualifyingLoans computes the applicant's ratios and narrows the offers
// through the four qualification filters. Offer order is preserved and the
// input slice is left untouched. An empty result is not an error.
func FindQualifyingLoans(
	offers []domain.Offer,
	applicant domain.Applicant,
) (domain.QualificationResult, error) {

	debtRatio, err := MonthlyDebtRatio(applicant.MonthlyDebt, applicant.MonthlyIncome)
	if err != nil {
		return domain.QualificationResult{}, err
	}
	ltvRatio, err := LoanToValueRatio(applicant.LoanAmount, applicant.HomeValue)
	if err != nil {
		return domain.QualificationResult{}, err
	}
	if err := checkFinite("debt_to_income", debtRatio); err != nil {
		return domain.QualificationResult{}, err
	}
	if err := checkFinite("loan_to_value", ltvRatio); err != nil {
		return domain.QualificationResult{}, err
	}

	chain := []qualificationFilter{
		{StepMaxLoanSize, func(o []domain.Offer) []domain.Offer { return FilterMaxLoanSize(applicant.LoanAmount, o) }},
		{StepCreditScore, func(o []domain.Offer) []domain.Offer { return FilterCreditScore(applicant.CreditScore, o) }},
		{StepDebtToIncome, func(o []domain.Offer) []domain.Offer { return FilterDebtToIncome(debtRatio, o) }},
		{StepLoanToValue, func(o []domain.Offer) []domain.Offer { return FilterLoanToValue(ltvRatio, o) }},
	}

	filtered := offers
	steps := make([]domain.FilterStep, 0, len(chain))
	for _, f := range chain {
		filtered = f.apply(filtered)
		steps = append(steps, domain.FilterStep{Filter: f.name, Remaining: len(filtered)})
	}

	return domain.QualificationResult{
		Ratios: domain.Ratios{
			DebtToIncome: debtRatio,
			LoanToValue:  ltvRatio,
		},
		Steps:     steps,
		Offers:    filtered,
		Evaluated: len(offers),
	}, nil
}

type QualifierService struct {
	offers   repository.OfferRepository
	runs     repository.QualificationRepository
	cache    repository.CacheRepository
	validate *validator.Validate
	log      zerolog.Logger
}

// NewQualifierService creates a QualifierService reading offers from the given repository.
func NewQualifierService(
	offers repository.OfferRepository,
	runs repository.QualificationRepository,
	cache repository.CacheRepository,
	log zerolog.Logger,
) *QualifierService {
	return &QualifierService{
		offers:   offers,
		runs:     runs,
		cache:    cache,
		validate: NewValidator(),
		log:      log.With().Str("service", "qualifier").Logger(),
	}
}

// Validate checks an applicant without running the filters.
func (s *QualifierService) Validate(applicant domain.Applicant) error {
	return ValidateApplicant(s.validate, applicant)
}

// Offers returns the current rate sheet.
func (s *QualifierService) Offers(ctx context.Context) ([]domain.Offer, error) {
	offers, err := s.offers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate sheet: %w", err)
	}
	return offers, nil
}

// Qualify finds the offers from the rate sheet the applicant qualifies for.
func (s *QualifierService) Qualify(
	ctx context.Context,
	applicant domain.Applicant,
) (domain.QualificationResult, error) {

	if err := s.Validate(applicant); err != nil {
		return domain.QualificationResult{}, err
	}

	offers, err := s.Offers(ctx)
	if err != nil {
		return domain.QualificationResult{}, err
	}
	if len(offers) > MaxRateSheet {
		return domain.QualificationResult{}, fmt.Errorf("%w: %d > %d", ErrRateSheetTooBig, len(offers), MaxRateSheet)
	}

	key := cacheKey(offers, applicant)
	result, hit := s.cached(ctx, key)
	if !hit {
		result, err = FindQualifyingLoans(offers, applicant)
		if err != nil {
			return domain.QualificationResult{}, err
		}
		s.store(ctx, key, result)
	}

	s.report(result, hit)

	// Not critical if it fails
	if err := s.runs.Save(applicant, result); err != nil {
		s.log.Warn().Err(err).Msg("failed to save qualification run")
	}

	return result, nil
}

func (s *QualifierService) cached(ctx context.Context, key string) (domain.QualificationResult, bool) {
	payload, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.QualificationResult{}, false
	}
	var result domain.QualificationResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("discarding unreadable cached result")
		return domain.QualificationResult{}, false
	}
	return result, true
}

func (s *QualifierService) store(ctx context.Context, key string, result domain.QualificationResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to encode qualification result")
		return
	}
	if err := s.cache.Set(ctx, key, string(payload)); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to cache qualification result")
	}
}

func (s *QualifierService) report(result domain.QualificationResult, cached bool) {
	s.log.Debug().
		Str("debt_to_income", fmt.Sprintf("%.2f", result.Ratios.DebtToIncome)).
		Str("loan_to_value", fmt.Sprintf("%.2f", result.Ratios.LoanToValue)).
		Msg("computed applicant ratios")

	for _, step := range result.Steps {
		s.log.Debug().Str("filter", step.Filter).Int("remaining", step.Remaining).Msg("filter applied")
	}

	s.log.Info().
		Int("evaluated", result.Evaluated).
		Int("qualifying", result.Count()).
		Bool("cached", cached).
		Msgf("Found %d qualifying loans", result.Count())
}

// cacheKey fingerprints the rate sheet together with the applicant so a cached
// result is never served for a different sheet. Lender names are length
// prefixed since they may contain any separator.
func cacheKey(offers []domain.Offer, applicant domain.Applicant) string {
	d := xxhash.New()
	fmt.Fprintf(d, "offers|%d\n", len(offers))
	for _, o := range offers {
		fmt.Fprintf(d, "%d:%s|%g|%d|%g|%g\n", len(o.Lender), o.Lender, o.MaxLoanAmount, o.MinCreditScore, o.MaxDebtToIncome, o.MaxLoanToValue)
	}
	fmt.Fprintf(d, "applicant|%d|%g|%g|%g|%g",
		applicant.CreditScore, applicant.MonthlyDebt, applicant.MonthlyIncome, applicant.LoanAmount, applicant.HomeValue)
	return fmt.Sprintf("qualify:%016x", d.Sum64())
}
