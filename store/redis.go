package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fepslab/feps/types"
)

// RedisConfig configures the Redis snapshot backend.
type RedisConfig struct {
	// Redis address
	Addr string `yaml:"addr" json:"addr"`

	// Password, empty for none
	Password string `yaml:"password" json:"password"`

	// Database number
	DB int `yaml:"db" json:"db"`

	// Key prefix for snapshot data and index
	KeyPrefix string `yaml:"key_prefix" json:"key_prefix"`
}

// DefaultRedisConfig returns the default Redis backend configuration.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:      "localhost:6379",
		KeyPrefix: "feps:snapshot",
	}
}

// RedisStore persists snapshots as JSON values with a sorted-set index
// keyed by creation time, so Latest and List stay O(log n) lookups.
type RedisStore struct {
	client *redis.Client
	config RedisConfig
	logger *zap.Logger
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(config RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = "feps:snapshot"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "failed to connect to redis").WithCause(err)
	}

	return &RedisStore{
		client: client,
		config: config,
		logger: logger.With(zap.String("component", "snapshot_store_redis")),
	}, nil
}

func (s *RedisStore) dataKey(id string) string {
	return s.config.KeyPrefix + ":" + id
}

func (s *RedisStore) indexKey() string {
	return s.config.KeyPrefix + ":index"
}

// Save serializes the snapshot to JSON and indexes it by creation time.
func (s *RedisStore) Save(ctx context.Context, snap *types.MemorySnapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now()
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.dataKey(snap.ID), payload, 0)
	pipe.ZAdd(ctx, s.indexKey(), redis.Z{
		Score:  float64(snap.CreatedAt.UnixNano()),
		Member: snap.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return types.NewError(types.ErrStoreUnavailable, "failed to save snapshot").WithCause(err)
	}

	s.logger.Debug("snapshot saved",
		zap.String("id", snap.ID),
		zap.Int("bytes", len(payload)))
	return nil
}

// Load fetches and decodes one snapshot.
func (s *RedisStore) Load(ctx context.Context, id string) (*types.MemorySnapshot, error) {
	payload, err := s.client.Get(ctx, s.dataKey(id)).Bytes()
	if err == redis.Nil {
		return nil, errNotFound(id)
	}
	if err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "failed to load snapshot").WithCause(err)
	}

	var snap types.MemorySnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Latest returns the snapshot with the highest creation-time score.
func (s *RedisStore) Latest(ctx context.Context) (*types.MemorySnapshot, error) {
	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, 0).Result()
	if err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "failed to query snapshot index").WithCause(err)
	}
	if len(ids) == 0 {
		return nil, errNotFound("latest")
	}
	return s.Load(ctx, ids[0])
}

// List returns snapshot IDs newest first.
func (s *RedisStore) List(ctx context.Context, limit int) ([]string, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, stop).Result()
	if err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "failed to query snapshot index").WithCause(err)
	}
	return ids, nil
}

// Delete removes the snapshot value and its index entry.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.dataKey(id))
	pipe.ZRem(ctx, s.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return types.NewError(types.ErrStoreUnavailable, "failed to delete snapshot").WithCause(err)
	}
	return nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
