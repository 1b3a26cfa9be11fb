package repository

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/product/model"
)

// ListFilter narrows List. Zero values disable a filter.
type ListFilter struct {
	CategorySlug string
	PopularOnly  bool
	Search       string
	Limit        int
	Offset       int
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	// GetByIDs loads every existing product among ids in one query; missing ids are skipped
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Product, error)
	// List returns a page ordered by created_at DESC and the total match count
	List(ctx context.Context, filter ListFilter) ([]*model.Product, int, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
	// SlugsByCategory returns the slugs of every product in the category
	SlugsByCategory(ctx context.Context, categoryID uuid.UUID) ([]string, error)
}
