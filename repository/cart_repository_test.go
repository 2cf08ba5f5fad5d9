package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nube-alta-cafe/models"
)

func setupCartTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func sampleLines() []models.CartLineItem {
	price := int64(6500)
	return []models.CartLineItem{
		{
			Key:       "6:prod-1|none|none",
			Product:   models.Product{ID: "prod-1", Name: "Cappuccino", BasePrice: &price, Available: true},
			Quantity:  2,
			UnitPrice: 6500,
		},
		{
			Key:       "6:prod-2|5:var-3|5:top-2",
			Product:   models.Product{ID: "prod-2", Name: "Latte", HasVariants: true, AcceptsToppings: true},
			Variant:   &models.Variant{ID: "var-3", Name: "Grande", Price: 8000, Available: true},
			Toppings:  []models.Topping{{ID: "top-2", Name: "Nutella", Active: true}},
			Quantity:  1,
			UnitPrice: 8000,
		},
	}
}

func TestCartRedisRepository_RoundTrip(t *testing.T) {
	mr, client := setupCartTestRedis(t)
	repo := NewCartRedisRepository(client, time.Hour)
	ctx := context.Background()

	empty, err := repo.Load(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.Save(ctx, "sess-1", sampleLines()))
	assert.True(t, mr.Exists("nube-alta:cart:sess-1"))
	assert.Equal(t, time.Hour, mr.TTL("nube-alta:cart:sess-1"))

	loaded, err := repo.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sampleLines(), loaded)

	require.NoError(t, repo.Delete(ctx, "sess-1"))
	assert.False(t, mr.Exists("nube-alta:cart:sess-1"))
}

func TestCartRedisRepository_Expires(t *testing.T) {
	mr, client := setupCartTestRedis(t)
	repo := NewCartRedisRepository(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "sess-2", sampleLines()))
	mr.FastForward(2 * time.Minute)

	loaded, err := repo.Load(ctx, "sess-2")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestCartRedisRepository_CorruptPayload(t *testing.T) {
	mr, client := setupCartTestRedis(t)
	repo := NewCartRedisRepository(client, 0)

	require.NoError(t, mr.Set("nube-alta:cart:bad", "{not json"))
	_, err := repo.Load(context.Background(), "bad")
	assert.Error(t, err)
}

func TestCartMemoryRepository(t *testing.T) {
	repo := NewCartMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "a", sampleLines()))
	loaded, err := repo.Load(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, loaded, 2)

	loaded[0].Quantity = 99
	again, _ := repo.Load(ctx, "a")
	assert.Equal(t, 2, again[0].Quantity)

	require.NoError(t, repo.Delete(ctx, "a"))
	gone, _ := repo.Load(ctx, "a")
	assert.Empty(t, gone)
}

func TestReadOnlyAdminRepository(t *testing.T) {
	repo := ReadOnlyAdminRepository{}
	ctx := context.Background()

	_, err := repo.CreateProduct(ctx, models.ProductWrite{})
	assert.ErrorIs(t, err, ErrReadOnly)
	assert.ErrorIs(t, repo.DeleteBanner(ctx, "ban-1"), ErrReadOnly)
	_, err = repo.UpsertStoreConfig(ctx, models.StoreConfig{})
	assert.ErrorIs(t, err, ErrReadOnly)
}
