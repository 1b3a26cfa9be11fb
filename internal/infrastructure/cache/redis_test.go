package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9/maintnotifications"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOptions_DisablesMaintNotifications(t *testing.T) {
	opts := newOptions("localhost:6379", "secret", 2)

	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	require.NotNil(t, opts.MaintNotificationsConfig)
	assert.Equal(t, maintnotifications.ModeDisabled, opts.MaintNotificationsConfig.Mode)
}

func TestRedisClientAndCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	rc := NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rc.Close() })
	require.NoError(t, rc.Connect(ctx))
	require.NoError(t, rc.HealthCheck(ctx))

	c := NewRedisCache(rc.Client)

	type item struct {
		Name  string `json:"name"`
		Stock int    `json:"stock"`
	}

	var got item
	found, err := c.Get(ctx, "product:slug:tea", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "product:slug:tea", item{Name: "Tea", Stock: 3}, time.Minute))
	found, err = c.Get(ctx, "product:slug:tea", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, item{Name: "Tea", Stock: 3}, got)

	mr.FastForward(2 * time.Minute)
	found, err = c.Get(ctx, "product:slug:tea", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Minute))
	require.NoError(t, c.Delete(ctx, "a", "b"))
	require.NoError(t, c.Delete(ctx))
	assert.False(t, mr.Exists("a"))
	assert.False(t, mr.Exists("b"))
}
