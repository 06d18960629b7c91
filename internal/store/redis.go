package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avdeev99/travelbot/config"
	"github.com/avdeev99/travelbot/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisStore persists booking state as JSON values, one key per slot.
// Init relies on SETNX so seeding never overwrites existing state.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg config.RedisConfig) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
	}
}

func (s *RedisStore) Get(ctx context.Context, slot string) (*domain.State, error) {
	data, err := s.client.Get(ctx, stateKey(slot)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *RedisStore) Set(ctx context.Context, slot string, state *domain.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, stateKey(slot), payload, 0).Err()
}

func (s *RedisStore) Init(ctx context.Context, slot string, state *domain.State) (bool, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return false, err
	}
	return s.client.SetNX(ctx, stateKey(slot), payload, 0).Result()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func stateKey(slot string) string {
	return fmt.Sprintf("travelbot:state:%s", slot)
}

var _ Store = (*RedisStore)(nil)
