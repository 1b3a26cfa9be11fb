package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/pkg/logger"
)

type cartService struct {
	products model.ProductReader
	key      string
}

// NewCartService stores carts in the session under key (CART_SESSION_ID)
func NewCartService(products model.ProductReader, key string) ServiceInterface {
	return &cartService{products: products, key: key}
}

func (s *cartService) Load(sess model.Session) (*model.Cart, error) {
	if sess == nil {
		return nil, model.ErrSessionMissing
	}
	return model.New(sess, s.key)
}

func (s *cartService) GetCart(ctx context.Context, sess model.Session) (*model.CartResponse, error) {
	cart, err := s.Load(sess)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, cart)
}

func (s *cartService) AddItem(ctx context.Context, sess model.Session, req model.AddItemRequest) (*model.CartResponse, error) {
	cart, err := s.Load(sess)
	if err != nil {
		return nil, err
	}

	quantity := req.QuantityOrDefault()
	if quantity < model.MinQuantity || quantity > model.MaxQuantity {
		return nil, model.ErrInvalidQuantity
	}

	products, err := s.products.GetByIDs(ctx, []uuid.UUID{req.ProductID})
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	product, ok := products[req.ProductID]
	if !ok {
		return nil, model.ErrProductNotFound
	}

	resulting := quantity
	if !req.Override {
		resulting += cart.Quantity(product.ID)
	}
	if resulting > product.Stock {
		return nil, fmt.Errorf("%w: requested %d, in stock %d", model.ErrInsufficientStock, resulting, product.Stock)
	}

	if err := cart.Add(ctx, product, quantity, req.Override); err != nil {
		return nil, err
	}

	logger.Debug(fmt.Sprintf("cart: product %s quantity now %d", product.ID, cart.Quantity(product.ID)))
	return s.toResponse(ctx, cart)
}

func (s *cartService) RemoveItem(ctx context.Context, sess model.Session, productID uuid.UUID) (*model.CartResponse, error) {
	cart, err := s.Load(sess)
	if err != nil {
		return nil, err
	}

	if err := cart.Remove(ctx, productID); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, cart)
}

func (s *cartService) Clear(ctx context.Context, sess model.Session) error {
	cart, err := s.Load(sess)
	if err != nil {
		return err
	}
	return cart.Clear(ctx)
}

func (s *cartService) toResponse(ctx context.Context, cart *model.Cart) (*model.CartResponse, error) {
	items, err := cart.Items(ctx, s.products)
	if err != nil {
		return nil, err
	}
	return model.ToCartResponse(cart, items), nil
}
