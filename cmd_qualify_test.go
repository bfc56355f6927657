package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-qualifier/config"
	"loan-qualifier/repository"
)

const testRateSheet = `Lender,Max Loan Amount,Min Credit Score,Max DTI,Max LTV
A,500000,600,0.45,0.95
B,150000,580,0.5,0.97
C,300000,700,0.4,0.9
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rate_sheet.csv")
	require.NoError(t, os.WriteFile(path, []byte(testRateSheet), 0o644))

	return &config.Config{
		RateSheet: path,
		Server:    config.ServerConfig{RateLimit: 5, RateWindow: time.Minute},
		Cache:     config.CacheConfig{Driver: "memory"},
		Logging:   config.LoggingConfig{Level: "error"},
	}
}

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestQualify_FlagsAndOut(t *testing.T) {
	cfg := testConfig(t)
	outPath := filepath.Join(t.TempDir(), "qualifying_loans.csv")

	opts := qualifyOptions{
		creditScore: intPtr(650),
		debt:        floatPtr(1000),
		income:      floatPtr(5000),
		loan:        floatPtr(200000),
		homeValue:   floatPtr(250000),
		out:         outPath,
	}

	var out bytes.Buffer
	require.NoError(t, opts.run(context.Background(), cfg, strings.NewReader(""), &out))

	assert.Contains(t, out.String(), "The monthly debt to income ratio is 0.20\n")
	assert.Contains(t, out.String(), "The loan to value ratio is 0.80.\n")
	assert.Contains(t, out.String(), "Found 1 qualifying loans\n")
	assert.Contains(t, out.String(), "Saved to '"+outPath+"'!")

	saved, err := repository.LoadCSV(outPath)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "A", saved[0].Lender)
}

func TestQualify_PromptsInOrder(t *testing.T) {
	cfg := testConfig(t)
	outPath := filepath.Join(t.TempDir(), "saved.csv")

	answers := strings.Join([]string{
		"720",    // credit score
		"500",    // debt
		"5000",   // income
		"100000", // loan
		"250000", // home value
		"y",
		outPath,
	}, "\n") + "\n"

	var out bytes.Buffer
	require.NoError(t, qualifyOptions{}.run(context.Background(), cfg, strings.NewReader(answers), &out))

	assert.Contains(t, out.String(), "Found 3 qualifying loans")

	saved, err := repository.LoadCSV(outPath)
	require.NoError(t, err)
	var names []string
	for _, o := range saved {
		names = append(names, o.Lender)
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
}

func TestQualify_DeclineSave(t *testing.T) {
	cfg := testConfig(t)
	opts := qualifyOptions{
		creditScore: intPtr(650),
		debt:        floatPtr(1000),
		income:      floatPtr(5000),
		loan:        floatPtr(200000),
		homeValue:   floatPtr(250000),
	}

	var out bytes.Buffer
	require.NoError(t, opts.run(context.Background(), cfg, strings.NewReader("n\n"), &out))
	assert.Contains(t, out.String(), "List not saved. Have a nice day!")
}

func TestQualify_NoQualifyingLoans(t *testing.T) {
	cfg := testConfig(t)
	opts := qualifyOptions{
		creditScore: intPtr(550),
		debt:        floatPtr(1000),
		income:      floatPtr(5000),
		loan:        floatPtr(200000),
		homeValue:   floatPtr(250000),
	}

	var out bytes.Buffer
	require.NoError(t, opts.run(context.Background(), cfg, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "Found 0 qualifying loans")
	assert.NotContains(t, out.String(), "Save list")
}

func TestQualify_InvalidApplicantFails(t *testing.T) {
	cfg := testConfig(t)
	opts := qualifyOptions{
		creditScore: intPtr(650),
		debt:        floatPtr(1000),
		income:      floatPtr(0),
		loan:        floatPtr(200000),
		homeValue:   floatPtr(250000),
		noSave:      true,
	}

	err := opts.run(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorContains(t, err, "monthly_income must be > 0")
}

func TestQualify_MissingRateSheet(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateSheet = ""
	missing := filepath.Join(t.TempDir(), "nope.csv")

	err := qualifyOptions{}.run(context.Background(), cfg, strings.NewReader(missing+"\n"), &bytes.Buffer{})
	assert.ErrorContains(t, err, "can't find rate sheet")
}
