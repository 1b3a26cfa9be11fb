package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	NameMaxLength = 200
	SlugMaxLength = 220

	FallbackSlugPrefix = "product"
	FallbackSlugHexLen = 8

	DefaultStock = 1
	ImageFolder  = "products"
)

type WeightUnit string

const (
	WeightUnitKilogram   WeightUnit = "kg"
	WeightUnitGram       WeightUnit = "g"
	WeightUnitLiter      WeightUnit = "l"
	WeightUnitMilliliter WeightUnit = "ml"
	WeightUnitPiece      WeightUnit = "pcs"
)

func (u WeightUnit) IsValid() bool {
	switch u {
	case WeightUnitKilogram, WeightUnitGram, WeightUnitLiter, WeightUnitMilliliter, WeightUnitPiece:
		return true
	}
	return false
}

var hundred = decimal.NewFromInt(100)

// Product belongs to one category. Listed newest first.
type Product struct {
	ID              uuid.UUID       `json:"id"`
	CategoryID      uuid.UUID       `json:"category_id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Description     *string         `json:"description"`
	Price           decimal.Decimal `json:"price"`
	WeightUnit      WeightUnit      `json:"weight_unit"`
	ImageURL        *string         `json:"image_url"`
	DiscountPercent int             `json:"discount_percent"`
	IsPopular       bool            `json:"is_popular"`
	Stock           int             `json:"stock"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// DiscountedPrice applies DiscountPercent when it is in (0, 100],
// rounding half to even at two decimal places.
func (p *Product) DiscountedPrice() decimal.Decimal {
	if p.DiscountPercent <= 0 || p.DiscountPercent > 100 {
		return p.Price
	}

	discount := p.Price.Mul(decimal.NewFromInt(int64(p.DiscountPercent))).Div(hundred)
	return p.Price.Sub(discount).RoundBank(2)
}

func (p *Product) HasDiscount() bool {
	return p.DiscountPercent > 0 && p.DiscountPercent <= 100
}

func (p *Product) String() string {
	return p.Name
}
