package model

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	productmodel "storefront-backend/internal/domains/product/model"
)

// Session is the key-value store the cart lives in.
// Satisfied by *session.Session.
type Session interface {
	Get(key string, dest interface{}) (bool, error)
	Set(key string, value interface{}) error
	Delete(key string)
	Save(ctx context.Context) error
}

// ProductReader loads products for the cart lines in one call
type ProductReader interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*productmodel.Product, error)
}

// Line is one stored cart entry. Price is the discounted price
// captured when the product was first added.
type Line struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Item is a line joined with its product. Product is nil when the
// product has been deleted since it was added.
type Item struct {
	ProductID  uuid.UUID
	Product    *productmodel.Product
	Quantity   int
	Price      decimal.Decimal
	TotalPrice decimal.Decimal
}

// Cart is a session-backed shopping cart. Lines keep insertion order.
type Cart struct {
	session Session
	key     string
	lines   []Line
}

// New loads the cart stored under key, creating an empty one if the session has none
func New(sess Session, key string) (*Cart, error) {
	c := &Cart{session: sess, key: key}

	found, err := sess.Get(key, &c.lines)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if !found || c.lines == nil {
		c.lines = []Line{}
		if err := sess.Set(key, c.lines); err != nil {
			return nil, fmt.Errorf("init cart: %w", err)
		}
	}
	return c, nil
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add puts quantity of product into the cart. A new line starts at zero with the
// product's current discounted price. With override the quantity is replaced,
// otherwise it is added to the existing one.
func (c *Cart) Add(ctx context.Context, product *productmodel.Product, quantity int, override bool) error {
	i := c.indexOf(product.ID)
	if i < 0 {
		c.lines = append(c.lines, Line{
			ProductID: product.ID,
			Quantity:  0,
			Price:     product.DiscountedPrice(),
		})
		i = len(c.lines) - 1
	}

	if override {
		c.lines[i].Quantity = quantity
	} else {
		c.lines[i].Quantity += quantity
	}

	return c.save(ctx)
}

// Remove drops the product's line. Removing an absent product is a no-op.
func (c *Cart) Remove(ctx context.Context, productID uuid.UUID) error {
	i := c.indexOf(productID)
	if i < 0 {
		return nil
	}

	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return c.save(ctx)
}

// Items loads all referenced products in one query and computes each line's total
func (c *Cart) Items(ctx context.Context, products ProductReader) ([]Item, error) {
	if len(c.lines) == 0 {
		return []Item{}, nil
	}

	ids := make([]uuid.UUID, 0, len(c.lines))
	for _, l := range c.lines {
		ids = append(ids, l.ProductID)
	}

	byID, err := products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load cart products: %w", err)
	}

	items := make([]Item, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, Item{
			ProductID:  l.ProductID,
			Product:    byID[l.ProductID],
			Quantity:   l.Quantity,
			Price:      l.Price,
			TotalPrice: l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))),
		})
	}
	return items, nil
}

// Len is the total number of units across all lines
func (c *Cart) Len() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Quantity returns the quantity held for productID, zero if absent
func (c *Cart) Quantity(productID uuid.UUID) int {
	if i := c.indexOf(productID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// Lines returns a copy of the stored lines
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Clear removes the cart from the session
func (c *Cart) Clear(ctx context.Context) error {
	c.lines = []Line{}
	c.session.Delete(c.key)
	if err := c.session.Save(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (c *Cart) save(ctx context.Context) error {
	if err := c.session.Set(c.key, c.lines); err != nil {
		return fmt.Errorf("store cart: %w", err)
	}
	if err := c.session.Save(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
