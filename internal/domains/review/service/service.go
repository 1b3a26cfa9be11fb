package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/review/model"
	"storefront-backend/internal/domains/review/repository"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

type reviewService struct {
	repo repository.ReviewRepository
}

func NewReviewService(repo repository.ReviewRepository) ServiceInterface {
	return &reviewService{repo: repo}
}

func (s *reviewService) Create(ctx context.Context, productID, userID uuid.UUID, req model.CreateReviewRequest) (*model.ReviewResponse, error) {
	review := &model.Review{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    userID,
		Rating:    req.RatingOrDefault(),
		Comment:   strings.TrimSpace(req.Comment),
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	logger.Info("review created", map[string]interface{}{
		"review_id":  review.ID,
		"product_id": productID,
		"rating":     review.Rating,
	})

	resp := model.ToReviewResponse(review)
	return &resp, nil
}

func (s *reviewService) ListByProduct(ctx context.Context, productID uuid.UUID, page, limit int) (*model.ListReviewsResponse, error) {
	summary, err := s.repo.Summary(ctx, productID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.ListByProduct(ctx, productID, limit, utils.Offset(page, limit))
	if err != nil {
		return nil, err
	}

	resp := &model.ListReviewsResponse{
		Reviews:    make([]model.ReviewResponse, 0, len(reviews)),
		Summary:    summary,
		Page:       page,
		Limit:      limit,
		TotalPages: utils.TotalPages(summary.Count, limit),
	}
	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, model.ToReviewResponse(r))
	}
	return resp, nil
}

func (s *reviewService) Delete(ctx context.Context, id, requester uuid.UUID, isAdmin bool) error {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && !review.IsOwnedBy(requester) {
		return model.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("review deleted", map[string]interface{}{
		"review_id": id,
		"by_admin":  isAdmin && !review.IsOwnedBy(requester),
	})
	return nil
}
