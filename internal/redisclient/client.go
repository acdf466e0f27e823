package redisclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const recordKeyPrefix = "storefront:record:"

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client and verifies the connection
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetRecord returns the stored value; ok is false when the key is absent
func (c *Client) GetRecord(ctx context.Context, name string) (string, bool, error) {
	value, err := c.rdb.Get(ctx, recordKey(name)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read record %s: %w", name, err)
	}
	return value, true, nil
}

// PutRecord overwrites a record. Records never expire.
func (c *Client) PutRecord(ctx context.Context, name, value string) error {
	if err := c.rdb.Set(ctx, recordKey(name), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write record %s: %w", name, err)
	}
	return nil
}

func recordKey(name string) string {
	return recordKeyPrefix + name
}
