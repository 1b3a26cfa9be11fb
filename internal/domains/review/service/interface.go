package service

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/review/model"
)

type ServiceInterface interface {
	Create(ctx context.Context, productID, userID uuid.UUID, req model.CreateReviewRequest) (*model.ReviewResponse, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, page, limit int) (*model.ListReviewsResponse, error)

	// Delete removes the review when requester wrote it or isAdmin is set
	Delete(ctx context.Context, id, requester uuid.UUID, isAdmin bool) error
}
