package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"loan-qualifier/domain"
)

// ErrMalformedRow is returned when a rate sheet row cannot be turned into an offer.
var ErrMalformedRow = errors.New("malformed rate sheet row")

// RateSheetHeader is written as the first row of every saved rate sheet.
var RateSheetHeader = []string{
	"Lender",
	"Max Loan Amount",
	"Min Credit Score",
	"Max DTI",
	"Max LTV",
}

// CSVOfferRepository reads the rate sheet from a CSV file on every List call.
type CSVOfferRepository struct {
	path string
}

func NewCSVOfferRepository(path string) *CSVOfferRepository {
	return &CSVOfferRepository{path: path}
}

// Path returns the rate sheet location.
func (r *CSVOfferRepository) Path() string {
	return r.path
}

func (r *CSVOfferRepository) List(_ context.Context) ([]domain.Offer, error) {
	return LoadCSV(r.path)
}

// LoadCSV reads a rate sheet. The first row is treated as a header and skipped.
func LoadCSV(path string) ([]domain.Offer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rate sheet %s: %w", path, err)
	}
	defer f.Close()

	return ReadOffers(f)
}

// ReadOffers decodes rate sheet rows from r, skipping the header row.
func ReadOffers(r io.Reader) ([]domain.Offer, error) {
	reader := csv.NewReader(r)
	// Row width is checked by parseOffer so the error carries the line number.
	// Numeric fields are trimmed in parseOffer; lender names are kept verbatim.
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.Offer{}, nil
		}
		return nil, fmt.Errorf("failed to read rate sheet header: %w", err)
	}

	offers := []domain.Offer{}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read rate sheet line %d: %w", line, err)
		}

		offer, err := parseOffer(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		offers = append(offers, offer)
	}

	return offers, nil
}

func parseOffer(record []string) (domain.Offer, error) {
	if len(record) != domain.OfferFieldCount {
		return domain.Offer{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRow, domain.OfferFieldCount, len(record))
	}

	maxLoan, err := parseAmount("max loan amount", record[1])
	if err != nil {
		return domain.Offer{}, err
	}
	minCredit, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil || minCredit < 0 {
		return domain.Offer{}, fmt.Errorf("%w: min credit score %q", ErrMalformedRow, record[2])
	}
	maxDTI, err := parseAmount("max debt-to-income", record[3])
	if err != nil {
		return domain.Offer{}, err
	}
	maxLTV, err := parseAmount("max loan-to-value", record[4])
	if err != nil {
		return domain.Offer{}, err
	}

	return domain.Offer{
		Lender:          record[0],
		MaxLoanAmount:   maxLoan,
		MinCreditScore:  minCredit,
		MaxDebtToIncome: maxDTI,
		MaxLoanToValue:  maxLTV,
	}, nil
}

func parseAmount(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformedRow, field, raw)
	}
	return v, nil
}

// SaveCSV writes offers to path with the rate sheet header, creating parent
// directories as needed.
func SaveCSV(path string, offers []domain.Offer) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := WriteOffers(f, offers); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// WriteOffers encodes offers as CSV, header first, in the given order.
func WriteOffers(w io.Writer, offers []domain.Offer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(RateSheetHeader); err != nil {
		return fmt.Errorf("failed to write rate sheet header: %w", err)
	}
	for _, o := range offers {
		record := []string{
			o.Lender,
			strconv.FormatFloat(o.MaxLoanAmount, 'f', -1, 64),
			strconv.Itoa(o.MinCreditScore),
			strconv.FormatFloat(o.MaxDebtToIncome, 'f', -1, 64),
			strconv.FormatFloat(o.MaxLoanToValue, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write offer %s: %w", o.Lender, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
