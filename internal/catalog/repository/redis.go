package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-storefront/internal/catalog"
	"github.com/redis/go-redis/v9"
)

const snapshotKey = "catalog:snapshot"

type RedisSnapshotRepository struct {
	Client *redis.Client
	prefix string
}

var _ catalog.SnapshotRepository = (*RedisSnapshotRepository)(nil)

func NewRedisSnapshotRepository(client *redis.Client, prefix string) *RedisSnapshotRepository {
	return &RedisSnapshotRepository{Client: client, prefix: prefix}
}

func (r *RedisSnapshotRepository) key() string {
	if r.prefix == "" {
		return snapshotKey
	}
	return r.prefix + ":" + snapshotKey
}

func (r *RedisSnapshotRepository) Load(ctx context.Context) (*catalog.Snapshot, error) {
	data, err := r.Client.Get(ctx, r.key()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var s catalog.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode catalog snapshot: %w", err)
	}
	return &s, nil
}

// Save stores without expiry: the cache itself has no TTL.
func (r *RedisSnapshotRepository) Save(ctx context.Context, s *catalog.Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, r.key(), data, 0).Err()
}

type Option func(*redis.Options)

func WithPassword(password string) Option {
	return func(o *redis.Options) {
		o.Password = password
	}
}

func WithDB(db int) Option {
	return func(o *redis.Options) {
		o.DB = db
	}
}

// NewRedisClient connects and pings so a misconfigured address fails at start-up.
func NewRedisClient(ctx context.Context, addr string, options ...Option) (*redis.Client, error) {
	opts := &redis.Options{Addr: addr}
	for _, option := range options {
		option(opts)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}
