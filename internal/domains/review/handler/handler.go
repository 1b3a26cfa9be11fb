package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/review/model"
	"storefront-backend/internal/domains/review/service"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

type ReviewHandler struct {
	service service.ServiceInterface
}

func NewReviewHandler(svc service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{service: svc}
}

func handleError(c *gin.Context, err error) {
	status, code := model.GetHTTPStatusCode(err)
	if status == http.StatusInternalServerError {
		logger.Error("review handler", err)
		response.ErrorResponse(c, status, code, "Internal server error")
		return
	}
	response.ErrorResponse(c, status, code, err.Error())
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// ========== POST /api/v1/products/:id/reviews ==========
func (h *ReviewHandler) Create(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), productID, userID, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Review created", resp)
}

// ========== GET /api/v1/products/:id/reviews?page=&limit= ==========
func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"))

	resp, err := h.service.ListByProduct(c.Request.Context(), productID, page, limit)
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Success", resp, &response.Meta{
		Page:       resp.Page,
		Limit:      resp.Limit,
		Total:      resp.Summary.Count,
		TotalPages: resp.TotalPages,
	})
}

// ========== DELETE /api/v1/reviews/:id ==========
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID, middleware.IsAdmin(c)); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Review deleted", nil)
}
