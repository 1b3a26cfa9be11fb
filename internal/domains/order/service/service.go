package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	cartmodel "storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/repository"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

type orderService struct {
	repo     repository.OrderRepository
	carts    CartLoader
	products ProductCatalog
}

func NewOrderService(repo repository.OrderRepository, carts CartLoader, products ProductCatalog) ServiceInterface {
	return &orderService{
		repo:     repo,
		carts:    carts,
		products: products,
	}
}

// =====================================================
// CHECKOUT
// =====================================================

func (s *orderService) Checkout(ctx context.Context, sess cartmodel.Session, userID *uuid.UUID, req model.CheckoutRequest) (*model.OrderResponse, error) {
	cart, err := s.carts.Load(sess)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, model.ErrCartEmpty
	}

	items, err := cart.Items(ctx, s.products)
	if err != nil {
		return nil, fmt.Errorf("load cart items: %w", err)
	}

	req.Normalize()
	order := &model.Order{
		ID:              uuid.New(),
		UserID:          userID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		GuestPhone:      req.GuestPhone,
		ShippingAddress: req.ShippingAddress,
		TotalAmount:     cart.TotalPrice(),
		Status:          model.StatusPending,
	}

	slugs := make([]string, 0, len(items))
	for _, item := range items {
		if item.Product == nil {
			return nil, fmt.Errorf("%w: %s", model.ErrProductUnavailable, item.ProductID)
		}
		if item.Quantity > item.Product.Stock {
			return nil, fmt.Errorf("%w: %s has %d left", model.ErrInsufficientStock, item.Product.Name, item.Product.Stock)
		}
		order.Items = append(order.Items, model.OrderItem{
			ID:           uuid.New(),
			OrderID:      order.ID,
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			PriceAtOrder: item.Price,
			Position:     len(order.Items),
		})
		slugs = append(slugs, item.Product.Slug)
	}

	if err := s.repo.CreateWithItems(ctx, order); err != nil {
		return nil, err
	}

	// stock changed, cached product details are stale
	s.products.InvalidateCache(ctx, slugs...)

	// order is committed, a failed clear is only logged
	if err := cart.Clear(ctx); err != nil {
		logger.Warn("failed to clear cart after checkout", map[string]interface{}{
			"order_id": order.ID,
			"error":    err.Error(),
		})
	}

	logger.Info("order placed", map[string]interface{}{
		"order_id": order.ID,
		"items":    len(order.Items),
		"total":    order.TotalAmount.StringFixed(2),
		"guest":    userID == nil,
	})

	return model.ToOrderResponse(order), nil
}

// =====================================================
// QUERIES
// =====================================================

func (s *orderService) GetByID(ctx context.Context, id, requester uuid.UUID, isAdmin bool) (*model.OrderResponse, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !order.BelongsTo(requester) {
		return nil, model.ErrForbidden
	}
	return model.ToOrderResponse(order), nil
}

func (s *orderService) List(ctx context.Context, req model.ListOrdersRequest) (*model.ListOrdersResponse, error) {
	if req.Status != nil && !req.Status.IsValid() {
		return nil, model.ErrInvalidStatus
	}

	orders, total, err := s.repo.List(ctx, repository.ListFilter{
		UserID: req.UserID,
		Status: req.Status,
		Limit:  req.Limit,
		Offset: utils.Offset(req.Page, req.Limit),
	})
	if err != nil {
		return nil, err
	}

	resp := &model.ListOrdersResponse{
		Orders:     make([]model.OrderResponse, 0, len(orders)),
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: utils.TotalPages(total, req.Limit),
	}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, *model.ToOrderResponse(o))
	}
	return resp, nil
}

// =====================================================
// ADMIN
// =====================================================

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, req model.UpdateStatusRequest) (*model.OrderResponse, error) {
	if !req.Status.IsValid() {
		return nil, model.ErrInvalidStatus
	}

	order, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}

	logger.Info("order status updated", map[string]interface{}{
		"order_id": id,
		"status":   req.Status,
	})
	return model.ToOrderResponse(order), nil
}
