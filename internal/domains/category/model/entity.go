package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	NameMaxLength = 100
	SlugMaxLength = 110

	// used when the name produces no slug
	FallbackSlugPrefix = "category"
	FallbackSlugHexLen = 6

	ImageFolder = "categories"
)

// Category groups products. Listed by name.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) String() string {
	return c.Name
}
