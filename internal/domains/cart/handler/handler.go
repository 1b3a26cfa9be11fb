package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/cart/service"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

type CartHandler struct {
	service service.ServiceInterface
}

func NewCartHandler(svc service.ServiceInterface) *CartHandler {
	return &CartHandler{service: svc}
}

func handleError(c *gin.Context, err error) {
	status, code := model.GetHTTPStatusCode(err)
	if status == http.StatusInternalServerError {
		logger.Error("cart handler", err)
		response.ErrorResponse(c, status, code, "Internal server error")
		return
	}
	response.ErrorResponse(c, status, code, err.Error())
}

// requestSession returns the request session, answering 500 when the middleware is missing
func requestSession(c *gin.Context) (model.Session, bool) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		handleError(c, model.ErrSessionMissing)
		return nil, false
	}
	return sess, true
}

// ========== GET /api/v1/cart ==========
func (h *CartHandler) GetCart(c *gin.Context) {
	sess, ok := requestSession(c)
	if !ok {
		return
	}

	resp, err := h.service.GetCart(c.Request.Context(), sess)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Success", resp)
}

// ========== POST /api/v1/cart/items ==========
// Body: {"product_id": "...", "quantity": 2, "override": false}
func (h *CartHandler) AddItem(c *gin.Context) {
	sess, ok := requestSession(c)
	if !ok {
		return
	}

	var req model.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.service.AddItem(c.Request.Context(), sess, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Cart updated", resp)
}

// ========== DELETE /api/v1/cart/items/:product_id ==========
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sess, ok := requestSession(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	resp, err := h.service.RemoveItem(c.Request.Context(), sess, productID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Item removed", resp)
}

// ========== DELETE /api/v1/cart ==========
func (h *CartHandler) Clear(c *gin.Context) {
	sess, ok := requestSession(c)
	if !ok {
		return
	}

	if err := h.service.Clear(c.Request.Context(), sess); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Cart cleared", nil)
}
