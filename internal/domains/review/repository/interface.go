package repository

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/review/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error)

	// ListByProduct returns a page of reviews, newest first
	ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*model.Review, error)

	// Summary returns the average rating (one decimal) and review count
	Summary(ctx context.Context, productID uuid.UUID) (model.Summary, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
