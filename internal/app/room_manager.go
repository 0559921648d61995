package app

import (
	"encoding/json"
	"sync"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Fanout is the transport-level group primitive: live connections, each
// optionally tagged with one room label, and per-room broadcast groups.
type Fanout struct {
	mu    sync.RWMutex
	conns map[domain.SessionID]core.SignalConnection
	rooms map[domain.RoomName]core.RoomGroup
}

func NewFanout() *Fanout {
	return &Fanout{
		conns: make(map[domain.SessionID]core.SignalConnection),
		rooms: make(map[domain.RoomName]core.RoomGroup),
	}
}

func (f *Fanout) Attach(sid domain.SessionID, conn core.SignalConnection) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conns[sid] = conn
	log.Debug().Str("module", "app.fanout").Str("sid", string(sid)).Msg("connection attached")
}

// Detach forgets sid and drops it from every group.
func (f *Fanout) Detach(sid domain.SessionID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.conns, sid)
	for name, room := range f.rooms {
		room.Remove(sid)
		if room.MemberCount() == 0 {
			delete(f.rooms, name)
		}
	}
	log.Debug().Str("module", "app.fanout").Str("sid", string(sid)).Msg("connection detached")
}

// Subscribe tags sid with room. It reports false when sid isn't attached.
func (f *Fanout) Subscribe(sid domain.SessionID, name domain.RoomName) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	conn, ok := f.conns[sid]
	if !ok {
		return false
	}
	room, ok := f.rooms[name]
	if !ok {
		room = core.NewRoomGroup(name)
		f.rooms[name] = room
	}
	room.Add(sid, conn)
	return true
}

func (f *Fanout) Unsubscribe(sid domain.SessionID, name domain.RoomName) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[name]
	if !ok {
		return
	}
	room.Remove(sid)
	if room.MemberCount() == 0 {
		delete(f.rooms, name)
	}
}

// EmitTo sends ev to a single connection. A missing or closed connection is
// not an error.
func (f *Fanout) EmitTo(sid domain.SessionID, ev any) bool {
	f.mu.RLock()
	conn, ok := f.conns[sid]
	f.mu.RUnlock()
	if !ok {
		return false
	}
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("module", "app.fanout").Msg("marshal event")
		return false
	}
	if err := conn.TrySend(data); err != nil {
		log.Debug().Err(err).Str("module", "app.fanout").Str("sid", string(sid)).Msg("emit dropped")
		return false
	}
	return true
}

// EmitRoom sends ev to every connection subscribed to name.
func (f *Fanout) EmitRoom(name domain.RoomName, from domain.SessionID, ev any, excludeSelf bool) core.PublishResult {
	f.mu.RLock()
	room, ok := f.rooms[name]
	f.mu.RUnlock()
	if !ok {
		return core.PublishResult{}
	}
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("module", "app.fanout").Msg("marshal event")
		return core.PublishResult{}
	}
	return room.Broadcast(from, data, excludeSelf)
}

// Close shuts the connection of sid down; its adapter reports the disconnect.
func (f *Fanout) Close(sid domain.SessionID) {
	f.mu.RLock()
	conn, ok := f.conns[sid]
	f.mu.RUnlock()
	if ok {
		conn.Close()
	}
}

func (f *Fanout) List() []core.RoomInfo {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(f.rooms))
	for name, r := range f.rooms {
		out = append(out, core.RoomInfo{Name: name, MemberCount: r.MemberCount()})
	}
	return out
}

// Connections counts attached connections, joined or not.
func (f *Fanout) Connections() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.conns)
}
