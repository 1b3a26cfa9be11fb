package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

const (
	NameMaxLength  = 100
	PhoneMaxLength = 20
)

// =====================================================
// ENTITY: Order
// =====================================================
type Order struct {
	ID              uuid.UUID       `json:"id"`
	UserID          *uuid.UUID      `json:"user_id,omitempty"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	GuestPhone      string          `json:"guest_phone"`
	ShippingAddress string          `json:"shipping_address"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Username of the owning user, loaded by join
	Username *string `json:"-"`

	Items []OrderItem `json:"items,omitempty"`
}

// CustomerName falls back from the full name to the username, then the phone
func (o *Order) CustomerName() string {
	if name := strings.TrimSpace(o.FirstName + " " + o.LastName); name != "" {
		return name
	}
	if o.Username != nil && *o.Username != "" {
		return *o.Username
	}
	if o.GuestPhone != "" {
		return o.GuestPhone
	}
	return "Guest"
}

func (o *Order) DisplayName() string {
	return fmt.Sprintf("Order #%s - %s", o.ID, o.CustomerName())
}

// BelongsTo reports whether the order was placed by userID
func (o *Order) BelongsTo(userID uuid.UUID) bool {
	return o.UserID != nil && *o.UserID == userID
}

// =====================================================
// ENTITY: OrderItem
// =====================================================
type OrderItem struct {
	ID           uuid.UUID       `json:"id"`
	OrderID      uuid.UUID       `json:"order_id"`
	ProductID    uuid.UUID       `json:"product_id"`
	Quantity     int             `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
	// Position is the line's place in the cart; items are read back in this order
	Position int `json:"-"`
}

func (i OrderItem) TotalPrice() decimal.Decimal {
	return i.PriceAtOrder.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
