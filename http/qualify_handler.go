package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"loan-qualifier/domain"
	"loan-qualifier/service"
)

const maxRequestBytes = 1 << 16

// qualifyRequest uses pointers so a missing figure is told apart from zero.
type qualifyRequest struct {
	CreditScore   *int     `json:"credit_score" validate:"required"`
	MonthlyDebt   *float64 `json:"monthly_debt" validate:"required"`
	MonthlyIncome *float64 `json:"monthly_income" validate:"required"`
	LoanAmount    *float64 `json:"loan_amount" validate:"required"`
	HomeValue     *float64 `json:"home_value" validate:"required"`
}

func (r qualifyRequest) applicant() domain.Applicant {
	return domain.Applicant{
		CreditScore:   *r.CreditScore,
		MonthlyDebt:   *r.MonthlyDebt,
		MonthlyIncome: *r.MonthlyIncome,
		LoanAmount:    *r.LoanAmount,
		HomeValue:     *r.HomeValue,
	}
}

type qualifyResponse struct {
	domain.QualificationResult
	Qualifying int `json:"qualifying"`
}

type QualifyHandler struct {
	service   *service.QualifierService
	validator *validator.Validate
	log       zerolog.Logger
}

func NewQualifyHandler(svc *service.QualifierService, log zerolog.Logger) *QualifyHandler {
	return &QualifyHandler{
		service:   svc,
		validator: service.NewValidator(),
		log:       log,
	}
}

func (h *QualifyHandler) Qualify(w http.ResponseWriter, r *http.Request) {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req qualifyRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	result, err := h.service.Qualify(r.Context(), req.applicant())
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("qualification failed")
			writeError(w, status, "qualification failed")
			return
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, qualifyResponse{
		QualificationResult: result,
		Qualifying:          result.Count(),
	})
}

func (h *QualifyHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.service.Offers(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list offers")
		writeError(w, http.StatusInternalServerError, "failed to load rate sheet")
		return
	}
	writeJSON(w, http.StatusOK, offers)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidApplicant):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrZeroIncome),
		errors.Is(err, service.ErrZeroHomeValue),
		errors.Is(err, service.ErrNonFiniteRatio):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// extractValidationErrors reports the first missing field.
func extractValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
