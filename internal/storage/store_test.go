package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dkeye/Relay/internal/config"
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newBadger(t *testing.T) core.Store {
	t.Helper()
	s, err := OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newRedis(t *testing.T) core.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	s := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

var drivers = map[string]func(t *testing.T) core.Store{
	"badger": newBadger,
	"redis":  newRedis,
}

func TestStore_GetAbsent(t *testing.T) {
	for name, open := range drivers {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			s := open(t)

			v, ok, err := s.Get(context.Background(), "missing")
			req.NoError(err)
			req.False(ok)
			req.Nil(v)
		})
	}
}

func TestStore_SetGetDelete(t *testing.T) {
	for name, open := range drivers {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			ctx := context.Background()
			s := open(t)

			req.NoError(s.Set(ctx, "k", []byte(`{"a":1}`)))
			v, ok, err := s.Get(ctx, "k")
			req.NoError(err)
			req.True(ok)
			req.JSONEq(`{"a":1}`, string(v))

			req.NoError(s.Delete(ctx, "k"))
			_, ok, err = s.Get(ctx, "k")
			req.NoError(err)
			req.False(ok)
		})
	}
}

func TestStore_PushCreatesAndAppends(t *testing.T) {
	for name, open := range drivers {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			ctx := context.Background()
			s := open(t)
			key := MessagesKey("lobby")

			// Given no log exists for the room
			// When two entries are pushed
			req.NoError(PushJSON(ctx, s, key, domain.LogEntry{Username: "alice", Message: "hi"}))
			req.NoError(PushJSON(ctx, s, key, domain.LogEntry{Username: "bob", Message: "yo"}))

			// Then the log holds both in order
			entries, err := GetList[domain.LogEntry](ctx, s, key)
			req.NoError(err)
			req.Equal([]domain.LogEntry{
				{Username: "alice", Message: "hi"},
				{Username: "bob", Message: "yo"},
			}, entries)
		})
	}
}

func TestStore_PushOntoNonArrayFails(t *testing.T) {
	for name, open := range drivers {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			ctx := context.Background()
			s := open(t)

			req.NoError(s.Set(ctx, "k", []byte(`{"not":"array"}`)))
			err := s.Push(ctx, "k", []byte(`1`))
			req.ErrorIs(err, ErrNotArray)
		})
	}
}

func TestStore_ConcurrentPushKeepsEveryElement(t *testing.T) {
	for name, open := range drivers {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			ctx := context.Background()
			s := open(t)
			const n = 300

			var wg sync.WaitGroup
			errs := make(chan error, n)
			for i := range n {
				wg.Add(1)
				go func() {
					defer wg.Done()
					errs <- PushJSON(ctx, s, "list", fmt.Sprintf("m%d", i))
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				req.NoError(err)
			}

			got, err := GetList[string](ctx, s, "list")
			req.NoError(err)
			req.Len(got, n)
		})
	}
}

func TestGetList_AbsentIsEmpty(t *testing.T) {
	req := require.New(t)
	got, err := GetList[domain.Room](context.Background(), newBadger(t), RoomsKey)
	req.NoError(err)
	req.NotNil(got)
	req.Empty(got)
}

func TestOpen_Drivers(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	s, err := Open(ctx, config.StoreConfig{Driver: "badger"})
	req.NoError(err)
	req.NoError(s.Close())

	mr := miniredis.RunT(t)
	s, err = Open(ctx, config.StoreConfig{Driver: "redis", RedisAddr: mr.Addr()})
	req.NoError(err)
	req.NoError(s.Close())

	_, err = Open(ctx, config.StoreConfig{Driver: "etcd"})
	req.ErrorIs(err, ErrUnknownDriver)
}
