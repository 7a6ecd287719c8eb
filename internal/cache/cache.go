package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/libsys/backend/internal/model"
)

type Config struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"REDIS_CATALOG_TTL" default:"60s"`
}

func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "redis ping")
	}
	return client, nil
}

const catalogPrefix = "books:list:"

// CatalogCache holds rendered catalog listings keyed by pagination + filter
// parameters. Invalidation is whole-namespace: any inventory mutation clears
// every listing variant at once.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewCatalogCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *CatalogCache {
	return &CatalogCache{
		client: client,
		ttl:    ttl,
		log:    log.Named("cache"),
	}
}

func listKey(q model.BookQuery) string {
	title, author := "all", "all"
	if q.Title != "" {
		title = strings.ToLower(q.Title)
	}
	if q.Author != "" {
		author = strings.ToLower(q.Author)
	}
	skip := 0
	if q.Page > 0 && q.Size > 0 {
		skip = (q.Page - 1) * q.Size
	}
	return fmt.Sprintf("%s%d:%d:%s:%s", catalogPrefix, skip, q.Size, title, author)
}

// GetListing is best effort: any redis error counts as a miss.
func (c *CatalogCache) GetListing(ctx context.Context, q model.BookQuery) (model.ListBooks, bool) {
	data, err := c.client.Get(ctx, listKey(q)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("catalog get", zap.Error(err))
		}
		return model.ListBooks{}, false
	}
	var list model.ListBooks
	if err := json.Unmarshal(data, &list); err != nil {
		c.log.Warn("catalog unmarshal", zap.Error(err))
		return model.ListBooks{}, false
	}
	return list, true
}

func (c *CatalogCache) SetListing(ctx context.Context, q model.BookQuery, list model.ListBooks) {
	data, err := json.Marshal(list)
	if err != nil {
		c.log.Warn("catalog marshal", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, listKey(q), data, c.ttl).Err(); err != nil {
		c.log.Warn("catalog set", zap.Error(err))
	}
}

// InvalidateCatalog purges the whole listing namespace. Runs only after the
// underlying mutation is committed; a purge before commit would let a
// concurrent reader repopulate the cache with stale rows.
func (c *CatalogCache) InvalidateCatalog(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, catalogPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return errors.Wrap(err, "catalog del")
		}
	}
	return errors.Wrap(iter.Err(), "catalog scan")
}
