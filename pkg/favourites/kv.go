package favourites

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// KV is the persistence slot the stores write through: a get/set pair keyed
// by fixed strings, values are JSON payloads. Get returns nil (not an error)
// for an absent key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// RedisKV persists through a redis connection. Values have no expiry - the
// collections live until the user changes them.
type RedisKV struct {
	Client *redis.Client
}

func (kv *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := kv.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (kv *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	return kv.Client.Set(ctx, key, value, 0).Err()
}

// MemoryKV is an in-process KV for tests and single-shot CLI use.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		values: map[string][]byte{},
	}
}

func (kv *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	value, ok := kv.values[key]
	if !ok {
		return nil, nil
	}

	return value, nil
}

func (kv *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	kv.values[key] = value

	return nil
}
