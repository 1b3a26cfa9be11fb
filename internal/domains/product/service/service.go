package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/product/model"
	"storefront-backend/internal/domains/product/repository"
	"storefront-backend/internal/infrastructure/storage"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/logger"
)

const slugCachePrefix = "product:slug:"

type productService struct {
	repo     repository.ProductRepository
	cache    cache.Cache
	cacheTTL time.Duration
	images   ImageUploader
}

func NewProductService(
	repo repository.ProductRepository,
	cache cache.Cache,
	cacheTTL time.Duration,
	images ImageUploader,
) ServiceInterface {
	return &productService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		images:   images,
	}
}

func slugCacheKey(slug string) string {
	return slugCachePrefix + slug
}

func (s *productService) Create(ctx context.Context, req model.CreateProductRequest) (*model.ProductResponse, error) {
	now := time.Now()
	entity := &model.Product{
		ID:              uuid.New(),
		CategoryID:      req.CategoryID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Price:           req.Price,
		WeightUnit:      req.WeightUnit,
		ImageURL:        req.ImageURL,
		DiscountPercent: req.DiscountPercent,
		IsPopular:       req.IsPopular,
		Stock:           model.DefaultStock,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if entity.WeightUnit == "" {
		entity.WeightUnit = model.WeightUnitPiece
	}
	if req.Stock != nil {
		entity.Stock = *req.Stock
	}

	if err := s.assignSlug(ctx, entity, req.Slug); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	logger.Info("product created", map[string]interface{}{
		"product_id": entity.ID,
		"slug":       entity.Slug,
	})
	return model.ToProductResponse(entity), nil
}

// assignSlug keeps a free explicit slug or derives a unique one from the name
func (s *productService) assignSlug(ctx context.Context, entity *model.Product, requested string) error {
	exists := func(ctx context.Context, candidate string) (bool, error) {
		return s.repo.ExistsBySlug(ctx, candidate, &entity.ID)
	}

	if requested != "" {
		taken, err := exists(ctx, requested)
		if err != nil {
			return fmt.Errorf("check slug: %w", err)
		}
		if taken {
			return model.ErrDuplicateSlug
		}
		entity.Slug = requested
		return nil
	}

	base := utils.BaseSlug(entity.Name, model.FallbackSlugPrefix, model.FallbackSlugHexLen)
	slug, err := utils.UniqueSlug(ctx, base, model.SlugMaxLength, exists)
	if err != nil {
		return fmt.Errorf("generate slug: %w", err)
	}
	entity.Slug = slug
	return nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.ProductResponse, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.ToProductResponse(entity), nil
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (*model.ProductResponse, error) {
	key := slugCacheKey(slug)

	var cached model.ProductResponse
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("product cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
	} else if found {
		return &cached, nil
	}

	entity, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	resp := model.ToProductResponse(entity)
	if err := s.cache.Set(ctx, key, resp, s.cacheTTL); err != nil {
		logger.Warn("product cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	return resp, nil
}

func (s *productService) List(ctx context.Context, req model.ListProductsRequest) (*model.ListProductsResponse, error) {
	if req.Page < 1 {
		req.Page = utils.DefaultPage
	}
	if req.Limit < 1 || req.Limit > utils.MaxLimit {
		req.Limit = utils.DefaultLimit
	}

	entities, total, err := s.repo.List(ctx, repository.ListFilter{
		CategorySlug: req.CategorySlug,
		PopularOnly:  req.PopularOnly,
		Search:       req.Search,
		Limit:        req.Limit,
		Offset:       utils.Offset(req.Page, req.Limit),
	})
	if err != nil {
		return nil, err
	}

	products := make([]*model.ProductResponse, 0, len(entities))
	for _, e := range entities {
		products = append(products, model.ToProductResponse(e))
	}

	return &model.ListProductsResponse{
		Products:   products,
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: utils.TotalPages(total, req.Limit),
	}, nil
}

func (s *productService) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.Product, error) {
	entities, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*model.Product, len(entities))
	for _, e := range entities {
		byID[e.ID] = e
	}
	return byID, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req model.UpdateProductRequest) (*model.ProductResponse, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldSlug := entity.Slug

	applyUpdate(entity, req)

	if req.Slug != nil && *req.Slug != entity.Slug {
		if err := s.assignSlug(ctx, entity, *req.Slug); err != nil {
			return nil, err
		}
	}

	entity.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.invalidate(ctx, oldSlug, entity.Slug)
	return model.ToProductResponse(entity), nil
}

func applyUpdate(entity *model.Product, req model.UpdateProductRequest) {
	if req.CategoryID != nil {
		entity.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		entity.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		entity.Description = req.Description
	}
	if req.Price != nil {
		entity.Price = *req.Price
	}
	if req.WeightUnit != nil {
		entity.WeightUnit = *req.WeightUnit
	}
	if req.ImageURL != nil {
		if *req.ImageURL == "" {
			entity.ImageURL = nil
		} else {
			entity.ImageURL = req.ImageURL
		}
	}
	if req.DiscountPercent != nil {
		entity.DiscountPercent = *req.DiscountPercent
	}
	if req.IsPopular != nil {
		entity.IsPopular = *req.IsPopular
	}
	if req.Stock != nil {
		entity.Stock = *req.Stock
	}
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, entity.Slug)
	logger.Info("product deleted", map[string]interface{}{"product_id": id})
	return nil
}

func (s *productService) UploadImage(ctx context.Context, id uuid.UUID, data []byte) (*model.ProductResponse, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.images.UploadImage(ctx, model.ImageFolder, id, data)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidImage) {
			return nil, fmt.Errorf("%w: %v", model.ErrInvalidImage, err)
		}
		return nil, fmt.Errorf("upload product image: %w", err)
	}

	entity.ImageURL = &url
	entity.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("update product image: %w", err)
	}

	s.invalidate(ctx, entity.Slug)
	return model.ToProductResponse(entity), nil
}

func (s *productService) InvalidateCache(ctx context.Context, slugs ...string) {
	s.invalidate(ctx, slugs...)
}

func (s *productService) CategorySlugs(ctx context.Context, categoryID uuid.UUID) ([]string, error) {
	return s.repo.SlugsByCategory(ctx, categoryID)
}

func (s *productService) invalidate(ctx context.Context, slugs ...string) {
	if len(slugs) == 0 {
		return
	}
	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		keys = append(keys, slugCacheKey(slug))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Warn("product cache invalidation failed", map[string]interface{}{"keys": keys, "error": err.Error()})
	}
}
