package repository

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/order/model"
)

// ListFilter narrows order listings. Nil fields are not applied.
type ListFilter struct {
	UserID *uuid.UUID
	Status *model.Status
	Limit  int
	Offset int
}

type OrderRepository interface {
	// CreateWithItems inserts the order and its items and decrements
	// product stock in a single transaction
	CreateWithItems(ctx context.Context, order *model.Order) error

	// GetByID returns the order with its items
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// List returns orders without items, newest first, plus the total count
	List(ctx context.Context, filter ListFilter) ([]*model.Order, int, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) (*model.Order, error)
}
