package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores each cart as a JSON-encoded value under cart:<token>,
// refreshing the key TTL on every write. Expiry is delegated to redis.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, token string) ([]Line, error) {
	raw, err := r.client.Get(ctx, cartKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart store: get %s: %w", token, err)
	}
	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("cart store: decode %s: %w", token, err)
	}
	return lines, nil
}

func (r *Redis) Put(ctx context.Context, token string, lines []Line) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("cart store: encode %s: %w", token, err)
	}
	if err := r.client.Set(ctx, cartKey(token), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("cart store: put %s: %w", token, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, cartKey(token)).Err(); err != nil {
		return fmt.Errorf("cart store: delete %s: %w", token, err)
	}
	return nil
}

func cartKey(token string) string {
	return "cart:" + token
}
