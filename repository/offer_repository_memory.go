package repository

import (
	"context"
	"sync"

	"loan-qualifier/domain"
)

// OfferRepositoryMemory is an in-memory rate sheet.
type OfferRepositoryMemory struct {
	mu     sync.RWMutex
	offers []domain.Offer
}

// NewOfferRepositoryMemory creates a rate sheet holding a copy of offers.
func NewOfferRepositoryMemory(offers []domain.Offer) *OfferRepositoryMemory {
	r := &OfferRepositoryMemory{}
	r.Replace(offers)
	return r
}

// List returns a copy of the rate sheet.
func (r *OfferRepositoryMemory) List(_ context.Context) ([]domain.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Offer, len(r.offers))
	copy(out, r.offers)
	return out, nil
}

// Replace swaps the whole rate sheet.
func (r *OfferRepositoryMemory) Replace(offers []domain.Offer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.offers = make([]domain.Offer, len(offers))
	copy(r.offers, offers)
}
