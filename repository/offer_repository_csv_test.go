package repository

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-qualifier/domain"
)

const rateSheet = `Lender,Max Loan Amount,Min Credit Score,Max DTI,Max LTV
Bank of Big - Premier Option,300000,790,0.37,0.9
West Central Credit Union - Starter Plus,300000,704,0.43,0.8
"Developer's Almost Perfect Credit Score Loan, Inc",200000,600,0.6,0.99
`

func writeRateSheet(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "daily_rate_sheet.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	offers, err := LoadCSV(writeRateSheet(t, rateSheet))
	require.NoError(t, err)

	require.Len(t, offers, 3)
	assert.Equal(t, domain.Offer{
		Lender:          "Bank of Big - Premier Option",
		MaxLoanAmount:   300000,
		MinCreditScore:  790,
		MaxDebtToIncome: 0.37,
		MaxLoanToValue:  0.9,
	}, offers[0])
	assert.Equal(t, "Developer's Almost Perfect Credit Score Loan, Inc", offers[2].Lender)
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadOffers_HeaderOnlyAndEmpty(t *testing.T) {
	offers, err := ReadOffers(strings.NewReader("Lender,Max Loan Amount,Min Credit Score,Max DTI,Max LTV\n"))
	require.NoError(t, err)
	assert.Empty(t, offers)

	offers, err = ReadOffers(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestReadOffers_MalformedRows(t *testing.T) {
	header := "Lender,Max Loan Amount,Min Credit Score,Max DTI,Max LTV\n"

	tests := []struct {
		name    string
		row     string
		wantMsg string
	}{
		{"too few fields", "Bank,300000,700,0.4\n", "expected 5 fields, got 4"},
		{"too many fields", "Bank,300000,700,0.4,0.9,extra\n", "expected 5 fields, got 6"},
		{"non numeric loan", "Bank,lots,700,0.4,0.9\n", "max loan amount"},
		{"fractional credit score", "Bank,300000,700.5,0.4,0.9\n", "min credit score"},
		{"negative dti", "Bank,300000,700,-0.4,0.9\n", "max debt-to-income"},
		{"non numeric ltv", "Bank,300000,700,0.4,high\n", "max loan-to-value"},
		{"nan loan", "Bank,NaN,700,0.4,0.9\n", "max loan amount"},
		{"infinite dti", "Bank,300000,700,Inf,0.9\n", "max debt-to-income"},
		{"signed infinite ltv", "Bank,300000,700,0.4,+Inf\n", "max loan-to-value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadOffers(strings.NewReader(header + tt.row))
			require.ErrorIs(t, err, ErrMalformedRow)
			assert.Contains(t, err.Error(), "line 2")
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestSaveCSV_RoundTrip(t *testing.T) {
	original, err := LoadCSV(writeRateSheet(t, rateSheet))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "results", "qualifying_loans.csv")
	require.NoError(t, SaveCSV(out, original))

	reloaded, err := LoadCSV(out)
	require.NoError(t, err)
	assert.Equal(t, original, reloaded)
}

func TestSaveCSV_RoundTripKeepsLenderVerbatim(t *testing.T) {
	offers := []domain.Offer{
		{Lender: "  Padded Lender  ", MaxLoanAmount: 300000, MinCreditScore: 700, MaxDebtToIncome: 0.4, MaxLoanToValue: 0.9},
		{Lender: "Pipe | Lender\nSecond line", MaxLoanAmount: 100000, MinCreditScore: 650, MaxDebtToIncome: 0.45, MaxLoanToValue: 0.95},
	}

	out := filepath.Join(t.TempDir(), "qualifying_loans.csv")
	require.NoError(t, SaveCSV(out, offers))

	reloaded, err := LoadCSV(out)
	require.NoError(t, err)
	assert.Equal(t, offers, reloaded)
}

func TestReadOffers_TrimsNumericFields(t *testing.T) {
	offers, err := ReadOffers(strings.NewReader("Lender,Max Loan Amount,Min Credit Score,Max DTI,Max LTV\nBank, 300000, 700 , 0.4,0.9\n"))
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, 700, offers[0].MinCreditScore)
	assert.Equal(t, 300000.0, offers[0].MaxLoanAmount)
}

func TestWriteOffers_HeaderAndOrder(t *testing.T) {
	var buf bytes.Buffer
	err := WriteOffers(&buf, []domain.Offer{
		{Lender: "B", MaxLoanAmount: 100000, MinCreditScore: 650, MaxDebtToIncome: 0.4, MaxLoanToValue: 0.85},
		{Lender: "A", MaxLoanAmount: 250000.5, MinCreditScore: 700, MaxDebtToIncome: 0.45, MaxLoanToValue: 0.9},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"Lender,Max Loan Amount,Min Credit Score,Max DTI,Max LTV\n"+
			"B,100000,650,0.4,0.85\n"+
			"A,250000.5,700,0.45,0.9\n",
		buf.String())
}

func TestCSVOfferRepository_List(t *testing.T) {
	repo := NewCSVOfferRepository(writeRateSheet(t, rateSheet))

	offers, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, offers, 3)
}
