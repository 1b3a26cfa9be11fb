package service

import (
	"context"

	"github.com/google/uuid"

	cartmodel "storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/order/model"
)

type ServiceInterface interface {
	// Checkout turns the session cart into an order and clears the cart.
	// userID is nil for guest checkouts.
	Checkout(ctx context.Context, sess cartmodel.Session, userID *uuid.UUID, req model.CheckoutRequest) (*model.OrderResponse, error)

	// GetByID returns the order when requester owns it or isAdmin is set
	GetByID(ctx context.Context, id, requester uuid.UUID, isAdmin bool) (*model.OrderResponse, error)

	List(ctx context.Context, req model.ListOrdersRequest) (*model.ListOrdersResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req model.UpdateStatusRequest) (*model.OrderResponse, error)
}

// CartLoader opens the cart held in a session
type CartLoader interface {
	Load(sess cartmodel.Session) (*cartmodel.Cart, error)
}

// ProductCatalog reads cart products and drops their cached details once stock changes
type ProductCatalog interface {
	cartmodel.ProductReader
	InvalidateCache(ctx context.Context, slugs ...string)
}
