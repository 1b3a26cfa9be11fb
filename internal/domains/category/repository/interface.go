package repository

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/category/model"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	// List returns all categories ordered by name
	List(ctx context.Context) ([]*model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	// Delete removes the category and, by cascade, its products
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsBySlug ignores the row with excludeID when it is set
	ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
}
