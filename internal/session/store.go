// Package session holds ephemeral session records in a key-value store
// with a fixed time-to-live. Expiry is enforced by the store itself; an
// expired session is indistinguishable from one that never existed.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adaa/backoffice-go/internal/model"
)

const keyPrefix = "sessions:"

// ErrNotFound is returned when a session id resolves to no record, whether
// it expired or never existed.
var ErrNotFound = errors.New("session not found")

// Store manages session persistence. All operations are single-key atomic.
type Store interface {
	// Get retrieves the payload for a session id, or ErrNotFound.
	Get(ctx context.Context, sessionID string) (model.SessionPayload, error)

	// Set writes the payload under the session id with the full configured
	// lifetime, replacing any existing record and restarting the TTL.
	Set(ctx context.Context, sessionID string, payload model.SessionPayload) error

	// Delete removes the session record. Deleting an absent session is not
	// an error.
	Delete(ctx context.Context, sessionID string) error
}

// RedisStore implements Store on Redis, keyed sessions:<sessionId> with the
// payload serialized as JSON.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore with the given session lifetime.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (model.SessionPayload, error) {
	raw, err := s.client.Get(ctx, keyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.SessionPayload{}, ErrNotFound
		}
		return model.SessionPayload{}, err
	}

	var payload model.SessionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil || payload.ID == "" {
		// A malformed payload is treated the same as an absent session
		// rather than surfacing a parse fault.
		return model.SessionPayload{}, ErrNotFound
	}

	return payload, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID string, payload model.SessionPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+sessionID, data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, keyPrefix+sessionID).Err()
}
