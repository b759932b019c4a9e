package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore maps (user, placement key) to the order the key produced.
// Key format: order:idem:<user_id>:<key>. Entries expire after 24 hours,
// the same window as the client-facing retry guidance.
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Lookup returns the order id previously recorded for the key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, userID, key string) (string, bool, error) {
	orderID, err := s.client.Get(ctx, s.key(userID, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return orderID, true, nil
}

// Record stores the order id the key produced (expires after idempotencyTTL).
func (s *IdempotencyStore) Record(ctx context.Context, userID, key, orderID string) error {
	return s.client.Set(ctx, s.key(userID, key), orderID, idempotencyTTL).Err()
}

func (s *IdempotencyStore) key(userID, key string) string {
	return fmt.Sprintf("order:idem:%s:%s", userID, key)
}
