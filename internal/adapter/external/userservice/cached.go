package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"loan-service/internal/domain/user"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

var _ user.Directory = (*Cached)(nil)

// Cached is a Redis read-through cache in front of another Directory.
// Misses and NotFound answers are not cached. Redis errors fall back to the inner directory.
type Cached struct {
	inner user.Directory
	rdb   *redis.Client
	ttl   time.Duration
	group singleflight.Group
}

func NewCached(inner user.Directory, rdb *redis.Client, ttl time.Duration) *Cached {
	return &Cached{inner: inner, rdb: rdb, ttl: ttl}
}

func (c *Cached) GetUser(ctx context.Context, userID string) (*user.User, error) {
	return cachedLookup(ctx, c, "usersvc:user:"+userID, func() (*user.User, error) {
		return c.inner.GetUser(ctx, userID)
	})
}

func (c *Cached) GetProfile(ctx context.Context, userID string) (*user.Profile, error) {
	return cachedLookup(ctx, c, "usersvc:profile:"+userID, func() (*user.Profile, error) {
		return c.inner.GetProfile(ctx, userID)
	})
}

func (c *Cached) GetProfileByDocument(ctx context.Context, documentNumber string) (*user.Profile, error) {
	return cachedLookup(ctx, c, "usersvc:profile:doc:"+documentNumber, func() (*user.Profile, error) {
		return c.inner.GetProfileByDocument(ctx, documentNumber)
	})
}

func cachedLookup[T any](ctx context.Context, c *Cached, key string, load func() (*T, error)) (*T, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var v T
		if jerr := json.Unmarshal(raw, &v); jerr == nil {
			return &v, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("usersvc cache: get %s: %v", key, err)
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		return load()
	})
	if err != nil {
		return nil, err
	}
	out := v.(*T)

	if b, jerr := json.Marshal(out); jerr == nil {
		if serr := c.rdb.Set(ctx, key, b, c.ttl).Err(); serr != nil {
			log.Printf("usersvc cache: set %s: %v", key, serr)
		}
	}
	return out, nil
}
