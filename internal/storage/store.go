// Package storage implements core.Store over badger and redis, plus typed
// JSON helpers for the keys the relay uses.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
)

// RoomsKey holds the room catalog.
const RoomsKey = "rooms"

// maxTxRetries bounds optimistic read-modify-write retries.
const maxTxRetries = 16

var (
	ErrNotArray      = errors.New("value is not a JSON array")
	ErrTooManyRetry  = errors.New("transaction retries exhausted")
	ErrUnknownDriver = errors.New("unknown store driver")
)

// MessagesKey is the key of a room's message log.
func MessagesKey(room domain.RoomName) string {
	return "messages." + string(room)
}

// GetList decodes the array at key. An absent key yields an empty list.
func GetList[T any](ctx context.Context, s core.Store, key string) ([]T, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func SetJSON(ctx context.Context, s core.Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, b)
}

func PushJSON(ctx context.Context, s core.Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Push(ctx, key, b)
}

// appendJSON appends elem to the JSON array doc. A nil doc starts a new array.
func appendJSON(doc, elem []byte) ([]byte, error) {
	if !json.Valid(elem) {
		return nil, fmt.Errorf("push: invalid JSON element")
	}
	var arr []json.RawMessage
	if len(doc) > 0 {
		if err := json.Unmarshal(doc, &arr); err != nil {
			return nil, ErrNotArray
		}
	}
	arr = append(arr, json.RawMessage(elem))
	return json.Marshal(arr)
}
