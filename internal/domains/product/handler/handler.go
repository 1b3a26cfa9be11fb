package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/product/model"
	"storefront-backend/internal/domains/product/service"
	"storefront-backend/internal/shared/response"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

const maxImageUpload = 5 << 20

type ProductHandler struct {
	service service.ServiceInterface
}

func NewProductHandler(svc service.ServiceInterface) *ProductHandler {
	return &ProductHandler{service: svc}
}

func handleError(c *gin.Context, err error) {
	status, code := model.GetHTTPStatusCode(err)
	if status == http.StatusInternalServerError {
		logger.Error("product handler", err)
		response.ErrorResponse(c, status, code, "Internal server error")
		return
	}
	response.ErrorResponse(c, status, code, err.Error())
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return uuid.Nil, false
	}
	return id, true
}

// ========== GET /api/v1/products?category=&popular=&q=&page=&limit= ==========
func (h *ProductHandler) List(c *gin.Context) {
	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"))
	popular, _ := strconv.ParseBool(c.Query("popular"))

	resp, err := h.service.List(c.Request.Context(), model.ListProductsRequest{
		CategorySlug: c.Query("category"),
		PopularOnly:  popular,
		Search:       c.Query("q"),
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Success", resp.Products, &response.Meta{
		Page:       resp.Page,
		Limit:      resp.Limit,
		Total:      resp.Total,
		TotalPages: resp.TotalPages,
	})
}

// ========== GET /api/v1/products/:id ==========
func (h *ProductHandler) GetByID(c *gin.Context) {
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

// ========== GET /api/v1/products/by-slug/:slug ==========
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	resp, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Success", resp)
}

// ========== POST /api/v1/admin/products ==========
func (h *ProductHandler) Create(c *gin.Context) {
	var req model.CreateProductRequest
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

	response.Success(c, http.StatusCreated, "Product created", resp)
}

// ========== PUT /api/v1/admin/products/:id ==========
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateProductRequest
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

	response.Success(c, http.StatusOK, "Product updated", resp)
}

// ========== DELETE /api/v1/admin/products/:id ==========
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Product deleted", nil)
}

// ========== POST /api/v1/admin/products/:id/image ==========
func (h *ProductHandler) UploadImage(c *gin.Context) {
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

	response.Success(c, http.StatusOK, "Product image uploaded", resp)
}

// ========== GET /api/v1/admin/products/export?category=&popular=&q= ==========
func (h *ProductHandler) ExportExcel(c *gin.Context) {
	popular, _ := strconv.ParseBool(c.Query("popular"))

	f, err := h.service.ExportExcel(c.Request.Context(), model.ListProductsRequest{
		CategorySlug: c.Query("category"),
		PopularOnly:  popular,
		Search:       c.Query("q"),
	})
	if err != nil {
		handleError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("products_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		logger.Error("write product export", err)
	}
}
