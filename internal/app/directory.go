package app

import (
	"slices"
	"sync"

	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Directory is the single source of truth for who is in which room.
type Directory struct {
	mu      sync.RWMutex
	byID    map[domain.SessionID]domain.Identity
	ordered []domain.SessionID
}

func NewDirectory() *Directory {
	return &Directory{
		byID: make(map[domain.SessionID]domain.Identity),
	}
}

// Join stores the identity of sid, replacing any previous one. A replaced
// record loses its roster position and is appended as a new insertion.
// Callers must Leave before joining another room; Join doesn't check.
func (d *Directory) Join(sid domain.SessionID, username string, room domain.RoomName) (domain.Identity, error) {
	if err := domain.ValidateUsername(username); err != nil {
		return domain.Identity{}, err
	}
	if err := domain.ValidateRoomName(room); err != nil {
		return domain.Identity{}, err
	}
	id := domain.Identity{SessionID: sid, Username: username, Room: room}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.byID[sid]; ok {
		d.ordered = slices.DeleteFunc(d.ordered, func(s domain.SessionID) bool { return s == sid })
	}
	d.byID[sid] = id
	d.ordered = append(d.ordered, sid)
	log.Info().Str("module", "app.directory").Str("sid", string(sid)).Str("username", username).Str("room", string(room)).Msg("identity joined")
	return id, nil
}

func (d *Directory) Get(sid domain.SessionID) (domain.Identity, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	id, ok := d.byID[sid]
	return id, ok
}

// Leave removes and returns the identity of sid.
func (d *Directory) Leave(sid domain.SessionID) (domain.Identity, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id, ok := d.byID[sid]
	if !ok {
		return domain.Identity{}, false
	}
	delete(d.byID, sid)
	d.ordered = slices.DeleteFunc(d.ordered, func(s domain.SessionID) bool { return s == sid })
	log.Info().Str("module", "app.directory").Str("sid", string(sid)).Str("room", string(id.Room)).Msg("identity left")
	return id, true
}

// ListByRoom returns the roster of room in join order. Duplicate names are kept.
func (d *Directory) ListByRoom(room domain.RoomName) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return lo.FilterMap(d.ordered, func(sid domain.SessionID, _ int) (string, bool) {
		id := d.byID[sid]
		return id.Username, id.Room == room
	})
}

func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byID)
}
