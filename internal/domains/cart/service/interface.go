package service

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/cart/model"
)

type ServiceInterface interface {
	// Load opens the cart stored in the session
	Load(sess model.Session) (*model.Cart, error)

	GetCart(ctx context.Context, sess model.Session) (*model.CartResponse, error)
	AddItem(ctx context.Context, sess model.Session, req model.AddItemRequest) (*model.CartResponse, error)
	RemoveItem(ctx context.Context, sess model.Session, productID uuid.UUID) (*model.CartResponse, error)
	Clear(ctx context.Context, sess model.Session) error
}
