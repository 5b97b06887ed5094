package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

const keyPrefix = "marketplace:carrier-event"

var _ ports.DedupeStore = &DedupeStore{}

// DedupeStore is a Redis-backed first-seen tracker for carrier webhook
// deliveries. SETNX with a TTL gives an atomic check-and-record, so two
// concurrent deliveries of the same event agree on which one was first.
type DedupeStore struct {
	client *redis.Client
}

func NewDedupeStore(client *redis.Client) (*DedupeStore, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	return &DedupeStore{client: client}, nil
}

func (s *DedupeStore) FirstSeen(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if key == "" {
		return false, errs.NewValueIsRequiredError("key")
	}
	if ttl <= 0 {
		return false, errs.NewValueIsInvalidError("ttl")
	}

	first, err := s.client.SetNX(ctx, fmt.Sprintf("%s:%s", keyPrefix, key), 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("record carrier event key: %w", err)
	}
	return first, nil
}
