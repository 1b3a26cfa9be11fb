package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

// Review is a user's rating of a product. A user reviews a product at most once.
type Review struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	// Author username, loaded by join
	Username string `json:"username,omitempty"`
}

func (r *Review) IsOwnedBy(userID uuid.UUID) bool {
	return r.UserID == userID
}
