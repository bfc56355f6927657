package repository

import (
	"context"

	"loan-qualifier/domain"
)

// OfferRepository provides the rate sheet offers are qualified against.
type OfferRepository interface {
	List(ctx context.Context) ([]domain.Offer, error)
}
