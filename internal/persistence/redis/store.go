// Package redis implements the snapshot store on a Redis server.
package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"example.com/fitlog/internal/persistence"
)

// Store keeps values as plain Redis strings.
type Store struct {
	client *goredis.Client
}

// NewStore wraps an existing client.
func NewStore(client *goredis.Client) *Store {
	return &Store{client: client}
}

// Dial connects to addr and verifies the connection.
func Dial(ctx context.Context, addr string, db int) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewStore(client), nil
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, persistence.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

// Set stores value under key with no expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}
