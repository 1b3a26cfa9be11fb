package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"storefront-backend/internal/domains/product/model"
)

type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateProductRequest) (*model.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.ProductResponse, error)
	// GetBySlug is served from cache when possible
	GetBySlug(ctx context.Context, slug string) (*model.ProductResponse, error)
	List(ctx context.Context, req model.ListProductsRequest) (*model.ListProductsResponse, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateProductRequest) (*model.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadImage(ctx context.Context, id uuid.UUID, data []byte) (*model.ProductResponse, error)

	// ExportExcel writes every product matching the filters into a workbook.
	// Page and Limit are ignored.
	ExportExcel(ctx context.Context, req model.ListProductsRequest) (*excelize.File, error)

	// GetByIDs returns the existing products among ids, keyed by id
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.Product, error)

	// InvalidateCache drops cached details for slugs changed outside this service
	InvalidateCache(ctx context.Context, slugs ...string)
	// CategorySlugs lists the product slugs in a category, read before a cascading delete
	CategorySlugs(ctx context.Context, categoryID uuid.UUID) ([]string, error)
}

// ImageUploader is satisfied by *storage.ImageUploader
type ImageUploader interface {
	UploadImage(ctx context.Context, folder string, ownerID uuid.UUID, data []byte) (string, error)
}
