package app

import (
	"context"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/dkeye/Relay/internal/storage"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Catalog keeps the list of created rooms and reads room message logs.
// It is used by the HTTP layer only; the chat core never touches "rooms".
type Catalog struct {
	store core.Store
}

func NewCatalog(store core.Store) *Catalog {
	return &Catalog{store: store}
}

func (c *Catalog) List(ctx context.Context) ([]domain.Room, error) {
	return storage.GetList[domain.Room](ctx, c.store, storage.RoomsKey)
}

// Create appends a room. Duplicate names are not rejected.
func (c *Catalog) Create(ctx context.Context, name domain.RoomName, owner string) (domain.Room, error) {
	if err := domain.ValidateRoomName(name); err != nil {
		return domain.Room{}, err
	}
	if err := domain.ValidateUsername(owner); err != nil {
		return domain.Room{}, err
	}
	room := domain.Room{Name: name, Owner: owner}
	if err := storage.PushJSON(ctx, c.store, storage.RoomsKey, room); err != nil {
		return domain.Room{}, err
	}
	log.Info().Str("module", "app.catalog").Str("room", string(name)).Str("owner", owner).Msg("room created")
	return room, nil
}

// Delete removes every catalog entry named name. The message log is kept.
func (c *Catalog) Delete(ctx context.Context, name domain.RoomName) (bool, error) {
	rooms, err := c.List(ctx)
	if err != nil {
		return false, err
	}
	kept := lo.Reject(rooms, func(r domain.Room, _ int) bool { return r.Name == name })
	if len(kept) == len(rooms) {
		return false, nil
	}
	if err := storage.SetJSON(ctx, c.store, storage.RoomsKey, kept); err != nil {
		return false, err
	}
	log.Info().Str("module", "app.catalog").Str("room", string(name)).Msg("room deleted")
	return true, nil
}

// Find returns the first catalog entry named name.
func (c *Catalog) Find(ctx context.Context, name domain.RoomName) (domain.Room, bool, error) {
	rooms, err := c.List(ctx)
	if err != nil {
		return domain.Room{}, false, err
	}
	room, ok := lo.Find(rooms, func(r domain.Room) bool { return r.Name == name })
	return room, ok, nil
}

func (c *Catalog) History(ctx context.Context, name domain.RoomName) ([]domain.LogEntry, error) {
	return storage.GetList[domain.LogEntry](ctx, c.store, storage.MessagesKey(name))
}
