package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luanmenezes0/lift2/internal/application/dto"
	"github.com/luanmenezes0/lift2/internal/application/ledger"
)

func newTestCache(t *testing.T) (*LedgerCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLedgerCache(client, time.Minute), mr
}

func TestLedgerCache_SetGet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	key := ledger.CacheKey{BuildingSiteID: 3, Version: 2, Catalogue: "9f3a", Period: "2024-03-10"}

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	in := &dto.SiteLedgerResponse{
		BuildingSiteID: 3,
		LedgerVersion:  2,
		GrandTotal:     decimal.NewNullDecimal(decimal.RequireFromString("650.00")),
		Equipment: []dto.EquipmentLedgerResponse{
			{EquipmentID: 1, Name: "Andaime", Balance: 10, PriceUnavailable: false},
			{EquipmentID: 2, Name: "Escora", PriceUnavailable: true},
		},
	}
	require.NoError(t, c.Set(ctx, key, in))
	assert.True(t, mr.Exists("ledger:3:v2:c9f3a:2024-03-10"))
	assert.Equal(t, time.Minute, mr.TTL("ledger:3:v2:c9f3a:2024-03-10"))

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.GrandTotal.Valid)
	assert.True(t, got.GrandTotal.Decimal.Equal(decimal.RequireFromString("650")))
	require.Len(t, got.Equipment, 2)
	assert.True(t, got.Equipment[1].PriceUnavailable)
	assert.False(t, got.Equipment[1].Total.Valid)
}

func TestLedgerCache_VersionNuevaNoReusa(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, ledger.CacheKey{BuildingSiteID: 1, Version: 1, Period: "2024-03-10"}, &dto.SiteLedgerResponse{}))

	_, ok, err := c.Get(ctx, ledger.CacheKey{BuildingSiteID: 1, Version: 2, Period: "2024-03-10"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLedgerCache_CatalogoNuevoNoReusa(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	key := ledger.CacheKey{BuildingSiteID: 1, Version: 1, Catalogue: "a1", Period: "2024-03-10"}
	require.NoError(t, c.Set(ctx, key, &dto.SiteLedgerResponse{}))

	key.Catalogue = "b2"
	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLedgerCache_Expira(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	key := ledger.CacheKey{BuildingSiteID: 1, Version: 1, Period: "2024-03-10"}
	require.NoError(t, c.Set(ctx, key, &dto.SiteLedgerResponse{}))

	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLedgerCache_ErrorDeRedis(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	_, ok, err := c.Get(context.Background(), ledger.CacheKey{BuildingSiteID: 1})
	assert.Error(t, err)
	assert.False(t, ok)
}
