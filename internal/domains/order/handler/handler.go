package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/service"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

// =====================================================
// ORDER HANDLER
// =====================================================
type OrderHandler struct {
	service service.ServiceInterface
}

func NewOrderHandler(svc service.ServiceInterface) *OrderHandler {
	return &OrderHandler{service: svc}
}

func handleError(c *gin.Context, err error) {
	status, code := model.GetHTTPStatusCode(err)
	if status == http.StatusInternalServerError {
		logger.Error("order handler", err)
		response.ErrorResponse(c, status, code, "Internal server error")
		return
	}
	response.ErrorResponse(c, status, code, err.Error())
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return uuid.Nil, false
	}
	return id, true
}

func respondList(c *gin.Context, resp *model.ListOrdersResponse) {
	response.SuccessWithMeta(c, http.StatusOK, "Success", resp.Orders, &response.Meta{
		Page:       resp.Page,
		Limit:      resp.Limit,
		Total:      resp.Total,
		TotalPages: resp.TotalPages,
	})
}

// ========== POST /api/v1/orders ==========
// Guests and signed-in users; the order is built from the session cart.
func (h *OrderHandler) Checkout(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		handleError(c, err)
		return
	}

	var req model.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	var userID *uuid.UUID
	if id, ok := middleware.GetAuthenticatedUserID(c); ok {
		userID = &id
	}

	resp, err := h.service.Checkout(c.Request.Context(), sess, userID, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Order placed", resp)
}

// ========== GET /api/v1/orders ==========
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"))
	resp, err := h.service.List(c.Request.Context(), model.ListOrdersRequest{
		UserID: &userID,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	respondList(c, resp)
}

// ========== GET /api/v1/orders/:id ==========
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id, userID, middleware.IsAdmin(c))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Success", resp)
}

// ========== GET /api/v1/admin/orders?status= ==========
func (h *OrderHandler) ListAll(c *gin.Context) {
	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"))
	req := model.ListOrdersRequest{Page: page, Limit: limit}
	if s := c.Query("status"); s != "" {
		status := model.Status(s)
		req.Status = &status
	}

	resp, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	respondList(c, resp)
}

// ========== PATCH /api/v1/admin/orders/:id/status ==========
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Order status updated", resp)
}
