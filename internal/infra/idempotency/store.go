package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrStore = errors.New("idempotency: redis operation failed")

// Store отмечает обработанные внешние события (webhook) в Redis
type Store struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewStore(client redis.Cmdable, prefix string, ttl time.Duration) *Store {
	return &Store{client: client, prefix: prefix, ttl: ttl}
}

// Claim атомарно помечает ключ. Возвращает true, если ключ помечен впервые
func (s *Store) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.prefix+key, time.Now().Unix(), s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: claim %s: %v", ErrStore, key, err)
	}
	return ok, nil
}

// Release снимает отметку, чтобы повторная доставка события была обработана
func (s *Store) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("%w: release %s: %v", ErrStore, key, err)
	}
	return nil
}
