package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-qualifier/repository"
)

func TestNewApp_RequiresRateSheet(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateSheet = ""

	_, err := newApp(context.Background(), cfg)
	assert.ErrorIs(t, err, errNoRateSheet)

	cfg.RateSheet = filepath.Join(t.TempDir(), "missing.csv")
	_, err = newApp(context.Background(), cfg)
	assert.ErrorContains(t, err, "can't find rate sheet")
}

func TestNewApp_MemoryCache(t *testing.T) {
	a, err := newApp(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &repository.MemoryCache{}, a.cache)

	offers, err := a.service.Offers(context.Background())
	require.NoError(t, err)
	assert.Len(t, offers, 3)
}

func TestNewApp_RedisUnavailableFallsBack(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Driver = "redis"
	cfg.Cache.RedisAddr = "127.0.0.1:1"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a, err := newApp(ctx, cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &repository.MemoryCache{}, a.cache)
	assert.Empty(t, a.closers)
}
