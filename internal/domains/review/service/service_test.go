package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/review/model"
)

type fakeRepo struct {
	reviews  []*model.Review
	products map[uuid.UUID]bool
}

func (r *fakeRepo) Create(_ context.Context, review *model.Review) error {
	if !r.products[review.ProductID] {
		return model.ErrProductNotFound
	}
	for _, existing := range r.reviews {
		if existing.ProductID == review.ProductID && existing.UserID == review.UserID {
			return model.ErrAlreadyReviewed
		}
	}
	review.CreatedAt = time.Now().Add(time.Duration(len(r.reviews)) * time.Second)
	r.reviews = append(r.reviews, review)
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Review, error) {
	for _, review := range r.reviews {
		if review.ID == id {
			return review, nil
		}
	}
	return nil, model.ErrReviewNotFound
}

func (r *fakeRepo) byProduct(productID uuid.UUID) []*model.Review {
	var out []*model.Review
	for _, review := range r.reviews {
		if review.ProductID == productID {
			out = append(out, review)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeRepo) ListByProduct(_ context.Context, productID uuid.UUID, limit, offset int) ([]*model.Review, error) {
	all := r.byProduct(productID)
	if offset >= len(all) {
		return []*model.Review{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeRepo) Summary(_ context.Context, productID uuid.UUID) (model.Summary, error) {
	all := r.byProduct(productID)
	if len(all) == 0 {
		return model.Summary{AverageRating: decimal.Zero}, nil
	}
	sum := 0
	for _, review := range all {
		sum += review.Rating
	}
	avg := decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(len(all)))).Round(1)
	return model.Summary{AverageRating: avg, Count: len(all)}, nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, review := range r.reviews {
		if review.ID == id {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return nil
		}
	}
	return model.ErrReviewNotFound
}

func rating(n int) *int { return &n }

func TestCreate(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	repo := &fakeRepo{products: map[uuid.UUID]bool{productID: true}}
	svc := NewReviewService(repo)
	userID := uuid.New()

	resp, err := svc.Create(ctx, productID, userID, model.CreateReviewRequest{Comment: "  Crisp apples  "})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultRating, resp.Rating)
	assert.Equal(t, "Crisp apples", resp.Comment)

	_, err = svc.Create(ctx, productID, userID, model.CreateReviewRequest{Rating: rating(1), Comment: "changed my mind"})
	assert.ErrorIs(t, err, model.ErrAlreadyReviewed)

	_, err = svc.Create(ctx, uuid.New(), userID, model.CreateReviewRequest{Comment: "where is it"})
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestListByProduct(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	repo := &fakeRepo{products: map[uuid.UUID]bool{productID: true}}
	svc := NewReviewService(repo)

	for _, r := range []int{5, 4, 4} {
		_, err := svc.Create(ctx, productID, uuid.New(), model.CreateReviewRequest{Rating: rating(r), Comment: "ok"})
		require.NoError(t, err)
	}

	resp, err := svc.ListByProduct(ctx, productID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Summary.Count)
	assert.True(t, decimal.RequireFromString("4.3").Equal(resp.Summary.AverageRating), resp.Summary.AverageRating.String())
	assert.Equal(t, 2, resp.TotalPages)
	require.Len(t, resp.Reviews, 2)
	assert.False(t, resp.Reviews[0].CreatedAt.Before(resp.Reviews[1].CreatedAt))

	empty, err := svc.ListByProduct(ctx, uuid.New(), 1, 20)
	require.NoError(t, err)
	assert.Zero(t, empty.Summary.Count)
	assert.Empty(t, empty.Reviews)
}

func TestDelete_OwnerOrAdmin(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	repo := &fakeRepo{products: map[uuid.UUID]bool{productID: true}}
	svc := NewReviewService(repo)
	author, stranger := uuid.New(), uuid.New()

	first, err := svc.Create(ctx, productID, author, model.CreateReviewRequest{Comment: "good"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, first.ID, stranger, false), model.ErrForbidden)
	assert.NoError(t, svc.Delete(ctx, first.ID, author, false))
	assert.ErrorIs(t, svc.Delete(ctx, first.ID, author, false), model.ErrReviewNotFound)

	second, err := svc.Create(ctx, productID, author, model.CreateReviewRequest{Comment: "good again"})
	require.NoError(t, err)
	assert.NoError(t, svc.Delete(ctx, second.ID, stranger, true))
}
