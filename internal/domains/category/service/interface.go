package service

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/category/model"
)

type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateCategoryRequest) (*model.CategoryResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.CategoryResponse, error)
	GetBySlug(ctx context.Context, slug string) (*model.CategoryResponse, error)
	List(ctx context.Context) ([]*model.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateCategoryRequest) (*model.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadImage(ctx context.Context, id uuid.UUID, data []byte) (*model.CategoryResponse, error)
}

// ImageUploader is satisfied by *storage.ImageUploader
type ImageUploader interface {
	UploadImage(ctx context.Context, folder string, ownerID uuid.UUID, data []byte) (string, error)
}

// ProductCache clears cached product details; satisfied by the product service
type ProductCache interface {
	CategorySlugs(ctx context.Context, categoryID uuid.UUID) ([]string, error)
	InvalidateCache(ctx context.Context, slugs ...string)
}
