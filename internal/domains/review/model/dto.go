package model

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateReviewRequest struct {
	Rating  *int   `json:"rating"`
	Comment string `json:"comment"`
}

// ratingRule checks the bounds itself since Min/Max skip zero values
var ratingRule = validation.By(func(value interface{}) error {
	var rating int
	switch v := value.(type) {
	case *int:
		if v == nil {
			return nil
		}
		rating = *v
	case int:
		rating = v
	default:
		return nil
	}
	if rating < MinRating || rating > MaxRating {
		return errors.New("must be between 1 and 5")
	}
	return nil
})

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating, ratingRule),
		validation.Field(&r.Comment, validation.By(func(value interface{}) error {
			if s, _ := value.(string); strings.TrimSpace(s) == "" {
				return errors.New("cannot be blank")
			}
			return nil
		})),
	)
}

func (r CreateReviewRequest) RatingOrDefault() int {
	if r.Rating == nil {
		return DefaultRating
	}
	return *r.Rating
}

type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func ToReviewResponse(r *Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Username:  r.Username,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

// Summary aggregates all reviews of a product
type Summary struct {
	AverageRating decimal.Decimal `json:"average_rating"`
	Count         int             `json:"count"`
}

type ListReviewsResponse struct {
	Reviews    []ReviewResponse `json:"reviews"`
	Summary    Summary          `json:"summary"`
	Page       int              `json:"-"`
	Limit      int              `json:"-"`
	TotalPages int              `json:"-"`
}
