package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/cart/model"
	productmodel "storefront-backend/internal/domains/product/model"
	"storefront-backend/internal/infrastructure/session"
)

type stubProducts map[uuid.UUID]*productmodel.Product

func (s stubProducts) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*productmodel.Product, error) {
	out := map[uuid.UUID]*productmodel.Product{}
	for _, id := range ids {
		if p, ok := s[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func newStore(t *testing.T) *session.RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewRedisStore(client)
}

func qty(n int) *int { return &n }

func TestAddItem_Validation(t *testing.T) {
	ctx := context.Background()
	apple := &productmodel.Product{ID: uuid.New(), Name: "Apple", Price: decimal.RequireFromString("0.80"), Stock: 5}
	svc := NewCartService(stubProducts{apple.ID: apple}, "cart")

	tests := []struct {
		name    string
		req     model.AddItemRequest
		wantErr error
	}{
		{"unknown product", model.AddItemRequest{ProductID: uuid.New()}, model.ErrProductNotFound},
		{"zero quantity", model.AddItemRequest{ProductID: apple.ID, Quantity: qty(0)}, model.ErrInvalidQuantity},
		{"above max", model.AddItemRequest{ProductID: apple.ID, Quantity: qty(101)}, model.ErrInvalidQuantity},
		{"above stock", model.AddItemRequest{ProductID: apple.ID, Quantity: qty(6)}, model.ErrInsufficientStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := session.New(newStore(t), time.Hour)
			_, err := svc.AddItem(ctx, sess, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAddItem_StockCountsExistingQuantity(t *testing.T) {
	ctx := context.Background()
	apple := &productmodel.Product{ID: uuid.New(), Name: "Apple", Price: decimal.RequireFromString("0.80"), Stock: 5}
	svc := NewCartService(stubProducts{apple.ID: apple}, "cart")
	sess := session.New(newStore(t), time.Hour)

	_, err := svc.AddItem(ctx, sess, model.AddItemRequest{ProductID: apple.ID, Quantity: qty(4)})
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, sess, model.AddItemRequest{ProductID: apple.ID, Quantity: qty(2)})
	assert.ErrorIs(t, err, model.ErrInsufficientStock)

	resp, err := svc.AddItem(ctx, sess, model.AddItemRequest{ProductID: apple.ID, Quantity: qty(5), Override: true})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Len)
	assert.True(t, resp.TotalPrice.Equal(decimal.RequireFromString("4.00")))
}

func TestCartFlow_PersistsInSession(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	milk := &productmodel.Product{ID: uuid.New(), Name: "Milk", Slug: "milk", Price: decimal.RequireFromString("1.20"), Stock: 10}
	bread := &productmodel.Product{ID: uuid.New(), Name: "Bread", Slug: "bread", Price: decimal.RequireFromString("2.00"), DiscountPercent: 10, Stock: 10}
	products := stubProducts{milk.ID: milk, bread.ID: bread}
	svc := NewCartService(products, "cart")

	sess := session.New(store, time.Hour)
	_, err := svc.AddItem(ctx, sess, model.AddItemRequest{ProductID: milk.ID, Quantity: qty(2)})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, sess, model.AddItemRequest{ProductID: bread.ID})
	require.NoError(t, err)

	// a later request sees the same cart
	reloaded, err := session.Load(ctx, store, sess.ID(), time.Hour)
	require.NoError(t, err)

	resp, err := svc.GetCart(ctx, reloaded)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Len)
	assert.True(t, resp.TotalPrice.Equal(decimal.RequireFromString("4.20")))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "milk", resp.Items[0].Slug)
	assert.True(t, resp.Items[1].Price.Equal(decimal.RequireFromString("1.80")))

	// product deleted after being added
	delete(products, milk.ID)
	resp, err = svc.GetCart(ctx, reloaded)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.False(t, resp.Items[0].Available)
	assert.True(t, resp.Items[0].TotalPrice.Equal(decimal.RequireFromString("2.40")))

	resp, err = svc.RemoveItem(ctx, reloaded, milk.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Len)

	require.NoError(t, svc.Clear(ctx, reloaded))
	final, err := session.Load(ctx, store, sess.ID(), time.Hour)
	require.NoError(t, err)
	assert.False(t, final.Has("cart"))
}
