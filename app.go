package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"loan-qualifier/config"
	"loan-qualifier/logger"
	"loan-qualifier/repository"
	"loan-qualifier/service"
)

var errNoRateSheet = errors.New("rate sheet path is required (--rate-sheet or LOANQ_RATE_SHEET)")

// app holds the dependencies shared by every command.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	offers  *repository.CSVOfferRepository
	runs    *repository.QualificationRepositoryMemory
	cache   repository.CacheRepository
	service *service.QualifierService
	closers []func() error
}

// loadConfig reads the config file and applies the persistent flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if rateSheet != "" {
		cfg.RateSheet = rateSheet
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg, nil
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	if cfg.RateSheet == "" {
		return nil, errNoRateSheet
	}
	if _, err := os.Stat(cfg.RateSheet); err != nil {
		return nil, fmt.Errorf("can't find rate sheet %s: %w", cfg.RateSheet, err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
	})

	a := &app{
		cfg:    cfg,
		log:    log,
		offers: repository.NewCSVOfferRepository(cfg.RateSheet),
		runs:   repository.NewQualificationRepositoryMemory(),
	}

	switch cfg.Cache.Driver {
	case "redis":
		redisCache := repository.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.TTL)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("redis unavailable, using in-memory cache")
			_ = redisCache.Close()
			a.cache = repository.NewMemoryCache(cfg.Cache.TTL)
		} else {
			a.cache = redisCache
			a.closers = append(a.closers, redisCache.Close)
		}
	default:
		a.cache = repository.NewMemoryCache(cfg.Cache.TTL)
	}

	a.service = service.NewQualifierService(a.offers, a.runs, a.cache, log)
	return a, nil
}

func (a *app) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close resource")
		}
	}
}
