package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/category/model"
	"storefront-backend/internal/domains/category/service"
	"storefront-backend/internal/shared/response"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

const maxImageUpload = 5 << 20

type CategoryHandler struct {
	service service.ServiceInterface
}

func NewCategoryHandler(svc service.ServiceInterface) *CategoryHandler {
	return &CategoryHandler{service: svc}
}

func handleError(c *gin.Context, err error) {
	status, code := model.GetHTTPStatusCode(err)
	if status == http.StatusInternalServerError {
		logger.Error("category handler", err)
		response.ErrorResponse(c, status, code, "Internal server error")
		return
	}
	response.ErrorResponse(c, status, code, err.Error())
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return uuid.Nil, false
	}
	return id, true
}

// ========== POST /api/v1/admin/categories ==========
func (h *CategoryHandler) Create(c *gin.Context) {
	var req model.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Category created", resp)
}

// ========== GET /api/v1/categories ==========
func (h *CategoryHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Success", resp)
}

// ========== GET /api/v1/categories/:id ==========
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Success", resp)
}

// ========== GET /api/v1/categories/by-slug/:slug ==========
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	resp, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Success", resp)
}

// ========== PUT /api/v1/admin/categories/:id ==========
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category updated", resp)
}

// ========== DELETE /api/v1/admin/categories/:id ==========
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category deleted", nil)
}

// ========== POST /api/v1/admin/categories/:id/image ==========
// multipart field "image"
func (h *CategoryHandler) UploadImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	data, err := utils.ReadFormFile(c, "image", maxImageUpload)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.UploadImage(c.Request.Context(), id, data)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category image uploaded", resp)
}
