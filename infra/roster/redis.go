package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kilianp07/solarsim/core/model"
	coreroster "github.com/kilianp07/solarsim/core/roster"
)

// DefaultRedisKey is the list holding the active roster.
const DefaultRedisKey = "solarsim:roster"

// RedisConfig configures the redis roster store.
type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	Key      string `json:"key"`
}

type redisEntry struct {
	Name    string `json:"name"`
	SetupOn int64  `json:"setup_on"`
}

// RedisStore keeps the roster as a list of JSON entries under one key.
type RedisStore struct {
	client *redis.Client
	key    string
	now    coreroster.Clock
}

// NewRedisStore connects to redis and checks the connection. A nil clock
// defaults to time.Now.
func NewRedisStore(ctx context.Context, cfg RedisConfig, clock coreroster.Clock) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis store: addr is required")
	}
	if cfg.Key == "" {
		cfg.Key = DefaultRedisKey
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if clock == nil {
		clock = time.Now
	}
	return &RedisStore{client: client, key: cfg.Key, now: clock}, nil
}

// Replace writes the roster under a fresh key and renames it over the
// active one inside MULTI/EXEC.
func (s *RedisStore) Replace(ctx context.Context, plants []model.PowerPlant) error {
	if err := coreroster.CheckAges(plants); err != nil {
		return err
	}
	now := s.now()
	values := make([]any, len(plants))
	for i, p := range plants {
		b, err := json.Marshal(redisEntry{Name: p.Name, SetupOn: coreroster.SetupDate(now, p.Age).Unix()})
		if err != nil {
			return err
		}
		values[i] = b
	}
	staging := s.key + ":staging:" + uuid.NewString()
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(values) == 0 {
			pipe.Del(ctx, s.key)
			return nil
		}
		pipe.RPush(ctx, staging, values...)
		pipe.Rename(ctx, staging, s.key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace roster: %w", err)
	}
	return nil
}

// List returns the active roster in load order.
func (s *RedisStore) List(ctx context.Context) ([]model.PowerPlant, error) {
	raw, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	now := s.now()
	res := make([]model.PowerPlant, len(raw))
	for i, r := range raw {
		var e redisEntry
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			return nil, fmt.Errorf("decode roster entry %d: %w", i, err)
		}
		res[i] = model.PowerPlant{Name: e.Name, Age: coreroster.AgeOn(now, time.Unix(e.SetupOn, 0))}
	}
	return res, nil
}

// Close closes the redis client.
func (s *RedisStore) Close() error { return s.client.Close() }
