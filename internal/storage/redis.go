package storage

import (
	"context"
	"errors"

	"github.com/dkeye/Relay/internal/core"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type RedisStore struct {
	rdb  *redis.Client
	keys core.KeyedMutex[string]
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// OpenRedis connects to addr and checks the server answers.
func OpenRedis(ctx context.Context, addr string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	log.Info().Str("module", "storage.redis").Str("addr", addr).Msg("connected")
	return NewRedisStore(rdb), nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	unlock := s.keys.Lock(key)
	defer unlock()
	return s.rdb.Set(ctx, key, value, 0).Err()
}

// Push serialises appends per key in this process and uses WATCH/MULTI
// against other clients of the same server.
func (s *RedisStore) Push(ctx context.Context, key string, value []byte) error {
	unlock := s.keys.Lock(key)
	defer unlock()
	txf := func(tx *redis.Tx) error {
		doc, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		next, err := appendJSON(doc, value)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		return err
	}
	for range maxTxRetries {
		err := s.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrTooManyRetry
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	unlock := s.keys.Lock(key)
	defer unlock()
	return s.rdb.Del(ctx, key).Err()
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
