package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/shared/utils"
)

var maxPrice = decimal.RequireFromString("99999999.99")

type CreateProductRequest struct {
	CategoryID      uuid.UUID       `json:"category_id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Description     *string         `json:"description"`
	Price           decimal.Decimal `json:"price"`
	WeightUnit      WeightUnit      `json:"weight_unit"`
	ImageURL        *string         `json:"image_url"`
	DiscountPercent int             `json:"discount_percent"`
	IsPopular       bool            `json:"is_popular"`
	Stock           *int            `json:"stock"`
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CategoryID, validation.By(requiredUUID)),
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, NameMaxLength)),
		validation.Field(&r.Slug, validation.Length(0, SlugMaxLength), validation.By(slugRule)),
		validation.Field(&r.Price, validation.By(priceRule)),
		validation.Field(&r.WeightUnit, validation.By(weightUnitRule)),
		validation.Field(&r.ImageURL, validation.NilOrNotEmpty, is.URL),
		validation.Field(&r.DiscountPercent, validation.Min(0), validation.Max(100)),
		validation.Field(&r.Stock, validation.Min(0)),
	)
}

// UpdateProductRequest is a partial update, nil fields are left unchanged
type UpdateProductRequest struct {
	CategoryID      *uuid.UUID       `json:"category_id"`
	Name            *string          `json:"name"`
	Slug            *string          `json:"slug"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	WeightUnit      *WeightUnit      `json:"weight_unit"`
	ImageURL        *string          `json:"image_url"`
	DiscountPercent *int             `json:"discount_percent"`
	IsPopular       *bool            `json:"is_popular"`
	Stock           *int             `json:"stock"`
}

func (r UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(1, NameMaxLength)),
		validation.Field(&r.Slug, validation.NilOrNotEmpty, validation.Length(1, SlugMaxLength), validation.By(slugRule)),
		validation.Field(&r.Price, validation.By(priceRule)),
		validation.Field(&r.WeightUnit, validation.By(weightUnitRule)),
		validation.Field(&r.ImageURL, is.URL),
		validation.Field(&r.DiscountPercent, validation.Min(0), validation.Max(100)),
		validation.Field(&r.Stock, validation.Min(0)),
	)
}

func requiredUUID(value interface{}) error {
	if id, ok := value.(uuid.UUID); ok && id == uuid.Nil {
		return validation.ErrRequired
	}
	return nil
}

func slugRule(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	}
	if s != "" && !utils.IsValidSlug(s) {
		return ErrInvalidSlug
	}
	return nil
}

func priceRule(value interface{}) error {
	var d decimal.Decimal
	switch v := value.(type) {
	case decimal.Decimal:
		d = v
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		d = *v
	}
	if d.IsNegative() || d.GreaterThan(maxPrice) || !d.Equal(d.Round(2)) {
		return ErrInvalidPrice
	}
	return nil
}

func weightUnitRule(value interface{}) error {
	var u WeightUnit
	switch v := value.(type) {
	case WeightUnit:
		u = v
	case *WeightUnit:
		if v == nil {
			return nil
		}
		u = *v
	}
	if u != "" && !u.IsValid() {
		return ErrInvalidWeightUnit
	}
	return nil
}

// ListProductsRequest carries the catalog filters from the query string
type ListProductsRequest struct {
	CategorySlug string
	PopularOnly  bool
	Search       string
	Page         int
	Limit        int
}

type ProductResponse struct {
	ID              uuid.UUID       `json:"id"`
	CategoryID      uuid.UUID       `json:"category_id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Description     *string         `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	DiscountPercent int             `json:"discount_percent"`
	WeightUnit      WeightUnit      `json:"weight_unit"`
	ImageURL        *string         `json:"image_url,omitempty"`
	IsPopular       bool            `json:"is_popular"`
	Stock           int             `json:"stock"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func ToProductResponse(p *Product) *ProductResponse {
	return &ProductResponse{
		ID:              p.ID,
		CategoryID:      p.CategoryID,
		Name:            p.Name,
		Slug:            p.Slug,
		Description:     p.Description,
		Price:           p.Price,
		DiscountedPrice: p.DiscountedPrice(),
		DiscountPercent: p.DiscountPercent,
		WeightUnit:      p.WeightUnit,
		ImageURL:        p.ImageURL,
		IsPopular:       p.IsPopular,
		Stock:           p.Stock,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

type ListProductsResponse struct {
	Products   []*ProductResponse `json:"products"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}
