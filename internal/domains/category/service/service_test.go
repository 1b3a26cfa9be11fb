package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/category/model"
	"storefront-backend/internal/infrastructure/storage"
)

type fakeRepo struct {
	byID map[uuid.UUID]*model.Category
}

func newFakeRepo(existing ...*model.Category) *fakeRepo {
	r := &fakeRepo{byID: map[uuid.UUID]*model.Category{}}
	for _, c := range existing {
		r.byID[c.ID] = c
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, c *model.Category) error {
	for _, other := range r.byID {
		if other.Slug == c.Slug {
			return model.ErrDuplicateSlug
		}
	}
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, model.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) GetBySlug(_ context.Context, slug string) (*model.Category, error) {
	for _, c := range r.byID {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, model.ErrCategoryNotFound
}

func (r *fakeRepo) List(_ context.Context) ([]*model.Category, error) {
	out := make([]*model.Category, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, c *model.Category) error {
	if _, ok := r.byID[c.ID]; !ok {
		return model.ErrCategoryNotFound
	}
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return model.ErrCategoryNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeRepo) ExistsBySlug(_ context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	for id, c := range r.byID {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

type fakeProducts struct {
	slugs       map[uuid.UUID][]string
	invalidated []string
}

func (p *fakeProducts) CategorySlugs(_ context.Context, categoryID uuid.UUID) ([]string, error) {
	return p.slugs[categoryID], nil
}

func (p *fakeProducts) InvalidateCache(_ context.Context, slugs ...string) {
	p.invalidated = append(p.invalidated, slugs...)
}

type fakeUploader struct {
	err error
}

func (u *fakeUploader) UploadImage(_ context.Context, folder string, ownerID uuid.UUID, _ []byte) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	return fmt.Sprintf("http://cdn.test/%s/%s/img.jpg", folder, ownerID), nil
}

func existing(name, slug string) *model.Category {
	return &model.Category{ID: uuid.New(), Name: name, Slug: slug}
}

func TestCreate_SlugGeneration(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		existing []*model.Category
		req      model.CreateCategoryRequest
		check    func(t *testing.T, slug string)
	}{
		{
			name: "derived from name",
			req:  model.CreateCategoryRequest{Name: "Fresh Fruit"},
			check: func(t *testing.T, slug string) {
				assert.Equal(t, "fresh-fruit", slug)
			},
		},
		{
			name:     "collision retries with counter",
			existing: []*model.Category{existing("Fresh Fruit", "fresh-fruit"), existing("Fresh Fruit", "fresh-fruit-1")},
			req:      model.CreateCategoryRequest{Name: "Fresh  Fruit"},
			check: func(t *testing.T, slug string) {
				assert.Equal(t, "fresh-fruit-2", slug)
			},
		},
		{
			name: "unsluggable name falls back to random",
			req:  model.CreateCategoryRequest{Name: "???"},
			check: func(t *testing.T, slug string) {
				assert.True(t, strings.HasPrefix(slug, "category-"))
				assert.Len(t, slug, len("category-")+6)
			},
		},
		{
			name: "explicit slug kept",
			req:  model.CreateCategoryRequest{Name: "Fresh Fruit", Slug: "fruit"},
			check: func(t *testing.T, slug string) {
				assert.Equal(t, "fruit", slug)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCategoryService(newFakeRepo(tt.existing...), &fakeUploader{}, &fakeProducts{})

			resp, err := svc.Create(ctx, tt.req)
			require.NoError(t, err)
			tt.check(t, resp.Slug)
		})
	}
}

func TestCreate_ExplicitSlugTaken(t *testing.T) {
	svc := NewCategoryService(newFakeRepo(existing("Fruit", "fruit")), &fakeUploader{}, &fakeProducts{})

	_, err := svc.Create(context.Background(), model.CreateCategoryRequest{Name: "Other", Slug: "fruit"})
	assert.ErrorIs(t, err, model.ErrDuplicateSlug)
}

func TestUpdate_KeepsOwnSlug(t *testing.T) {
	ctx := context.Background()
	cat := existing("Fruit", "fruit")
	repo := newFakeRepo(cat)
	svc := NewCategoryService(repo, &fakeUploader{}, &fakeProducts{})

	name := "Fruits"
	slug := "fruit"
	resp, err := svc.Update(ctx, cat.ID, model.UpdateCategoryRequest{Name: &name, Slug: &slug})
	require.NoError(t, err)
	assert.Equal(t, "Fruits", resp.Name)
	assert.Equal(t, "fruit", resp.Slug, "renaming does not regenerate the slug")
}

func TestUpdate_SlugConflict(t *testing.T) {
	ctx := context.Background()
	a := existing("A", "a")
	b := existing("B", "b")
	svc := NewCategoryService(newFakeRepo(a, b), &fakeUploader{}, &fakeProducts{})

	slug := "a"
	_, err := svc.Update(ctx, b.ID, model.UpdateCategoryRequest{Slug: &slug})
	assert.ErrorIs(t, err, model.ErrDuplicateSlug)
}

func TestList_OrderedByName(t *testing.T) {
	svc := NewCategoryService(newFakeRepo(existing("Vegetables", "vegetables"), existing("Bakery", "bakery")), &fakeUploader{}, &fakeProducts{})

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bakery", list[0].Name)
	assert.Equal(t, "Vegetables", list[1].Name)
}

func TestDelete_InvalidatesProductCache(t *testing.T) {
	ctx := context.Background()
	cat := existing("Fruit", "fruit")
	products := &fakeProducts{slugs: map[uuid.UUID][]string{cat.ID: {"apples", "pears"}}}
	repo := newFakeRepo(cat)
	svc := NewCategoryService(repo, &fakeUploader{}, products)

	require.NoError(t, svc.Delete(ctx, cat.ID))
	assert.Empty(t, repo.byID)
	assert.Equal(t, []string{"apples", "pears"}, products.invalidated)
}

func TestDelete_NotFoundKeepsCache(t *testing.T) {
	products := &fakeProducts{}
	svc := NewCategoryService(newFakeRepo(), &fakeUploader{}, products)

	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.New()), model.ErrCategoryNotFound)
	assert.Empty(t, products.invalidated)
}

func TestUploadImage(t *testing.T) {
	ctx := context.Background()
	cat := existing("Bakery", "bakery")

	t.Run("stores url", func(t *testing.T) {
		svc := NewCategoryService(newFakeRepo(cat), &fakeUploader{}, &fakeProducts{})
		resp, err := svc.UploadImage(ctx, cat.ID, []byte("img"))
		require.NoError(t, err)
		require.NotNil(t, resp.ImageURL)
		assert.Contains(t, *resp.ImageURL, "categories/"+cat.ID.String())
	})

	t.Run("invalid image", func(t *testing.T) {
		svc := NewCategoryService(newFakeRepo(cat), &fakeUploader{err: fmt.Errorf("%w: empty", storage.ErrInvalidImage)}, &fakeProducts{})
		_, err := svc.UploadImage(ctx, cat.ID, nil)
		assert.ErrorIs(t, err, model.ErrInvalidImage)
	})

	t.Run("storage failure", func(t *testing.T) {
		boom := errors.New("minio down")
		svc := NewCategoryService(newFakeRepo(cat), &fakeUploader{err: boom}, &fakeProducts{})
		_, err := svc.UploadImage(ctx, cat.ID, []byte("img"))
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, model.ErrInvalidImage)
	})
}
