package model

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// REQUEST DTOs
// =====================================================

type CheckoutRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	GuestPhone      string `json:"guest_phone"`
	ShippingAddress string `json:"shipping_address"`
}

func (r CheckoutRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, NameMaxLength)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, NameMaxLength)),
		validation.Field(&r.GuestPhone, validation.Required, validation.Length(1, PhoneMaxLength)),
		validation.Field(&r.ShippingAddress, validation.Required),
	)
}

// Normalize trims surrounding whitespace from every field
func (r *CheckoutRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.GuestPhone = strings.TrimSpace(r.GuestPhone)
	r.ShippingAddress = strings.TrimSpace(r.ShippingAddress)
}

type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.By(func(value interface{}) error {
			if s, ok := value.(Status); ok && !s.IsValid() {
				return errors.New("must be one of pending, processing, shipped, delivered, cancelled")
			}
			return nil
		})),
	)
}

type ListOrdersRequest struct {
	UserID *uuid.UUID
	Status *Status
	Page   int
	Limit  int
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type OrderItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	Quantity     int             `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	DisplayName     string              `json:"display_name"`
	UserID          *uuid.UUID          `json:"user_id,omitempty"`
	FirstName       string              `json:"first_name"`
	LastName        string              `json:"last_name"`
	GuestPhone      string              `json:"guest_phone"`
	ShippingAddress string              `json:"shipping_address"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Status          Status              `json:"status"`
	Items           []OrderItemResponse `json:"items,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type ListOrdersResponse struct {
	Orders     []OrderResponse
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

func ToOrderResponse(o *Order) *OrderResponse {
	resp := &OrderResponse{
		ID:              o.ID,
		DisplayName:     o.DisplayName(),
		UserID:          o.UserID,
		FirstName:       o.FirstName,
		LastName:        o.LastName,
		GuestPhone:      o.GuestPhone,
		ShippingAddress: o.ShippingAddress,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:           it.ID,
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			PriceAtOrder: it.PriceAtOrder,
			TotalPrice:   it.TotalPrice(),
		})
	}
	return resp
}
