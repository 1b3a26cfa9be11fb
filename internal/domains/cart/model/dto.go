package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  *int      `json:"quantity"` // defaults to 1
	Override  bool      `json:"override"`
}

func (r AddItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.By(func(value interface{}) error {
			if id, _ := value.(uuid.UUID); id == uuid.Nil {
				return validation.ErrRequired
			}
			return nil
		})),
		validation.Field(&r.Quantity, validation.By(func(value interface{}) error {
			// Min skips zero values, so the bounds are checked by hand
			if q, _ := value.(*int); q != nil && (*q < MinQuantity || *q > MaxQuantity) {
				return ErrInvalidQuantity
			}
			return nil
		})),
	)
}

func (r AddItemRequest) QuantityOrDefault() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

type ItemResponse struct {
	ProductID  uuid.UUID       `json:"product_id"`
	Name       string          `json:"name,omitempty"`
	Slug       string          `json:"slug,omitempty"`
	ImageURL   *string         `json:"image_url,omitempty"`
	Available  bool            `json:"available"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type CartResponse struct {
	Items      []ItemResponse  `json:"items"`
	Len        int             `json:"len"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func ToCartResponse(c *Cart, items []Item) *CartResponse {
	resp := &CartResponse{
		Items:      make([]ItemResponse, 0, len(items)),
		Len:        c.Len(),
		TotalPrice: c.TotalPrice(),
	}

	for _, it := range items {
		ir := ItemResponse{
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			Price:      it.Price,
			TotalPrice: it.TotalPrice,
		}
		if it.Product != nil {
			ir.Name = it.Product.Name
			ir.Slug = it.Product.Slug
			ir.ImageURL = it.Product.ImageURL
			ir.Available = true
		}
		resp.Items = append(resp.Items, ir)
	}
	return resp
}
