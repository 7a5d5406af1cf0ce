// Package cache guarda libros de locación calculados en Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/luanmenezes0/lift2/internal/application/dto"
	"github.com/luanmenezes0/lift2/internal/application/ledger"
	"github.com/luanmenezes0/lift2/pkg/config"
)

var _ ledger.Cache = (*LedgerCache)(nil)

// NewClient crea el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping: %w", err)
	}
	return client, nil
}

// LedgerCache implementa ledger.Cache. La versión de la obra y la huella del catálogo forman
// parte de la clave, así una remesa nueva o un cambio de precio dejan las entradas viejas
// sin uso hasta que expiren.
type LedgerCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLedgerCache construye la caché con el TTL de cada entrada.
func NewLedgerCache(client *redis.Client, ttl time.Duration) *LedgerCache {
	return &LedgerCache{client: client, ttl: ttl}
}

// Get devuelve (nil, false, nil) si la clave no existe.
func (c *LedgerCache) Get(ctx context.Context, key ledger.CacheKey) (*dto.SiteLedgerResponse, bool, error) {
	payload, err := c.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var out dto.SiteLedgerResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, false, fmt.Errorf("cache: decode %s: %w", redisKey(key), err)
	}
	return &out, true, nil
}

// Set guarda el libro serializado en JSON.
func (c *LedgerCache) Set(ctx context.Context, key ledger.CacheKey, v *dto.SiteLedgerResponse) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, redisKey(key), raw, c.ttl).Err()
}

func redisKey(k ledger.CacheKey) string {
	return strings.Join([]string{
		"ledger",
		strconv.FormatInt(k.BuildingSiteID, 10),
		"v" + strconv.FormatInt(k.Version, 10),
		"c" + k.Catalogue,
		k.Period,
	}, ":")
}
