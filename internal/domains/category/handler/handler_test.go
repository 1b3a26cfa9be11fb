package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/category/model"
)

type stubService struct {
	err     error
	deleted uuid.UUID
}

func (s *stubService) respond(name, slug string) (*model.CategoryResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.CategoryResponse{ID: uuid.New(), Name: name, Slug: slug}, nil
}

func (s *stubService) Create(_ context.Context, req model.CreateCategoryRequest) (*model.CategoryResponse, error) {
	return s.respond(req.Name, "fruit")
}

func (s *stubService) GetByID(_ context.Context, _ uuid.UUID) (*model.CategoryResponse, error) {
	return s.respond("Fruit", "fruit")
}

func (s *stubService) GetBySlug(_ context.Context, slug string) (*model.CategoryResponse, error) {
	return s.respond("Fruit", slug)
}

func (s *stubService) List(_ context.Context) ([]*model.CategoryResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*model.CategoryResponse{{Name: "Bakery"}, {Name: "Fruit"}}, nil
}

func (s *stubService) Update(_ context.Context, _ uuid.UUID, _ model.UpdateCategoryRequest) (*model.CategoryResponse, error) {
	return s.respond("Fruit", "fruit")
}

func (s *stubService) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = id
	return s.err
}

func (s *stubService) UploadImage(_ context.Context, _ uuid.UUID, _ []byte) (*model.CategoryResponse, error) {
	return s.respond("Fruit", "fruit")
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCategoryHandler(svc)

	r := gin.New()
	r.GET("/categories", h.List)
	r.GET("/categories/:id", h.GetByID)
	r.GET("/categories/by-slug/:slug", h.GetBySlug)
	r.POST("/admin/categories", h.Create)
	r.PUT("/admin/categories/:id", h.Update)
	r.DELETE("/admin/categories/:id", h.Delete)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestList(t *testing.T) {
	rec, env := do(t, newRouter(&stubService{}), http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []model.CategoryResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Bakery", list[0].Name)
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name   string
		svc    *stubService
		body   string
		status int
		code   string
	}{
		{"created", &stubService{}, `{"name":"Fruit"}`, http.StatusCreated, ""},
		{"missing name", &stubService{}, `{"slug":"fruit"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"invalid slug", &stubService{}, `{"name":"Fruit","slug":"Not A Slug"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"slug taken", &stubService{err: model.ErrDuplicateSlug}, `{"name":"Fruit","slug":"fruit"}`, http.StatusConflict, model.ErrCodeDuplicateSlug},
		{"malformed json", &stubService{}, `{"name":`, http.StatusBadRequest, "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, newRouter(tt.svc), http.MethodPost, "/admin/categories", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				require.NotNil(t, env.Error)
				assert.Equal(t, tt.code, env.Error.Code)
			}
		})
	}
}

func TestGetBySlug_NotFound(t *testing.T) {
	rec, env := do(t, newRouter(&stubService{err: model.ErrCategoryNotFound}), http.MethodGet, "/categories/by-slug/none", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, model.ErrCodeCategoryNotFound, env.Error.Code)
}

func TestDelete(t *testing.T) {
	id := uuid.New()

	svc := &stubService{}
	rec, _ := do(t, newRouter(svc), http.MethodDelete, "/admin/categories/"+id.String(), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, svc.deleted)

	rec, env := do(t, newRouter(&stubService{err: model.ErrCategoryInUse}), http.MethodDelete, "/admin/categories/"+id.String(), "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, model.ErrCodeCategoryInUse, env.Error.Code)

	rec, _ = do(t, newRouter(&stubService{}), http.MethodDelete, "/admin/categories/x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdate(t *testing.T) {
	path := "/admin/categories/" + uuid.NewString()

	rec, _ := do(t, newRouter(&stubService{}), http.MethodPut, path, `{"name":"Fresh fruit"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, newRouter(&stubService{err: model.ErrCategoryNotFound}), http.MethodPut, path, `{"name":"Fresh fruit"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
