package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"loan-qualifier/domain"
)

var comparisonTags = map[string]string{
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
}

// NewValidator reports field errors by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// ValidateApplicant checks the applicant figures before any ratio is computed.
func ValidateApplicant(v *validator.Validate, applicant domain.Applicant) error {
	if err := v.Struct(applicant); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %v", ErrInvalidApplicant, err)
		}
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, describeFieldError(fe))
		}
		return fmt.Errorf("%w: %s", ErrInvalidApplicant, strings.Join(msgs, "; "))
	}

	if applicant.LoanAmount > MaxLoanAmount {
		return fmt.Errorf("%w: loan_amount exceeds the maximum of $%.2f", ErrInvalidApplicant, MaxLoanAmount)
	}
	if applicant.HomeValue > MaxHomeValue {
		return fmt.Errorf("%w: home_value exceeds the maximum of $%.2f", ErrInvalidApplicant, MaxHomeValue)
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	if op, ok := comparisonTags[fe.Tag()]; ok {
		return fmt.Sprintf("%s must be %s %s", fe.Field(), op, fe.Param())
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}
