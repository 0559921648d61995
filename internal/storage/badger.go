package storage

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/dkeye/Relay/internal/core"
	"github.com/rs/zerolog/log"
)

type BadgerStore struct {
	db   *badger.DB
	keys core.KeyedMutex[string]
}

// OpenBadger opens a badger database at path. An empty path keeps
// everything in memory.
func OpenBadger(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLoggingLevel(badger.ERROR)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	log.Info().Str("module", "storage.badger").Str("path", path).Bool("in_memory", path == "").Msg("opened")
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *BadgerStore) Set(_ context.Context, key string, value []byte) error {
	unlock := s.keys.Lock(key)
	defer unlock()
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// Push is a read-modify-write inside one transaction. Writers in this
// process are serialised per key; the conflict retry covers anyone else
// sharing the database.
func (s *BadgerStore) Push(ctx context.Context, key string, value []byte) error {
	unlock := s.keys.Lock(key)
	defer unlock()
	for range maxTxRetries {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.db.Update(func(txn *badger.Txn) error {
			var doc []byte
			item, err := txn.Get([]byte(key))
			switch {
			case err == nil:
				if doc, err = item.ValueCopy(nil); err != nil {
					return err
				}
			case !errors.Is(err, badger.ErrKeyNotFound):
				return err
			}
			next, err := appendJSON(doc, value)
			if err != nil {
				return err
			}
			return txn.Set([]byte(key), next)
		})
		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		return err
	}
	return ErrTooManyRetry
}

func (s *BadgerStore) Delete(_ context.Context, key string) error {
	unlock := s.keys.Lock(key)
	defer unlock()
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
