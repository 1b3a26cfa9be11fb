package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/category/model"
	"storefront-backend/internal/domains/category/repository"
	"storefront-backend/internal/infrastructure/storage"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

type categoryService struct {
	repo     repository.CategoryRepository
	images   ImageUploader
	products ProductCache
}

func NewCategoryService(repo repository.CategoryRepository, images ImageUploader, products ProductCache) ServiceInterface {
	return &categoryService{
		repo:     repo,
		images:   images,
		products: products,
	}
}

func (s *categoryService) Create(ctx context.Context, req model.CreateCategoryRequest) (*model.CategoryResponse, error) {
	now := time.Now()
	entity := &model.Category{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		ImageURL:  req.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.assignSlug(ctx, entity, req.Slug); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	logger.Info("category created", map[string]interface{}{
		"category_id": entity.ID,
		"slug":        entity.Slug,
	})
	return model.ToCategoryResponse(entity), nil
}

// assignSlug sets an explicit slug when it is free, otherwise derives one
// from the name and retries base, base-1, base-2, ... until a free one is found.
func (s *categoryService) assignSlug(ctx context.Context, entity *model.Category, requested string) error {
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

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.CategoryResponse, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.ToCategoryResponse(entity), nil
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*model.CategoryResponse, error) {
	entity, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return model.ToCategoryResponse(entity), nil
}

func (s *categoryService) List(ctx context.Context) ([]*model.CategoryResponse, error) {
	entities, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]*model.CategoryResponse, 0, len(entities))
	for _, e := range entities {
		resp = append(resp, model.ToCategoryResponse(e))
	}
	return resp, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req model.UpdateCategoryRequest) (*model.CategoryResponse, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		entity.Name = strings.TrimSpace(*req.Name)
	}
	if req.ImageURL != nil {
		if *req.ImageURL == "" {
			entity.ImageURL = nil
		} else {
			entity.ImageURL = req.ImageURL
		}
	}
	if req.Slug != nil && *req.Slug != entity.Slug {
		if err := s.assignSlug(ctx, entity, *req.Slug); err != nil {
			return nil, err
		}
	}

	entity.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return model.ToCategoryResponse(entity), nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	// products go with the category through ON DELETE CASCADE
	slugs, err := s.products.CategorySlugs(ctx, id)
	if err != nil {
		return fmt.Errorf("list category products: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.products.InvalidateCache(ctx, slugs...)
	logger.Info("category deleted", map[string]interface{}{
		"category_id": id,
		"products":    len(slugs),
	})
	return nil
}

func (s *categoryService) UploadImage(ctx context.Context, id uuid.UUID, data []byte) (*model.CategoryResponse, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.images.UploadImage(ctx, model.ImageFolder, id, data)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidImage) {
			return nil, fmt.Errorf("%w: %v", model.ErrInvalidImage, err)
		}
		return nil, fmt.Errorf("upload category image: %w", err)
	}

	entity.ImageURL = &url
	entity.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("update category image: %w", err)
	}
	return model.ToCategoryResponse(entity), nil
}
