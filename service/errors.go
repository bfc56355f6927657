package service

import "errors"

var (
	ErrZeroIncome       = errors.New("monthly income must be greater than zero")
	ErrZeroHomeValue    = errors.New("home value must be greater than zero")
	ErrNonFiniteRatio   = errors.New("ratio is not a finite number")
	ErrInvalidApplicant = errors.New("invalid applicant")
	ErrRateSheetTooBig  = errors.New("rate sheet exceeds the maximum number of offers")
)
