package core

import (
	"slices"
	"sync"

	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// roomGroup is a threadsafe in-memory broadcast group.
// Members are kept in subscription order.
type roomGroup struct {
	name  domain.RoomName
	mu    sync.Mutex
	order []domain.SessionID
	bySID map[domain.SessionID]SignalConnection
}

func NewRoomGroup(name domain.RoomName) RoomGroup {
	return &roomGroup{
		name:  name,
		bySID: make(map[domain.SessionID]SignalConnection),
	}
}

func (r *roomGroup) Name() domain.RoomName { return r.name }

func (r *roomGroup) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bySID)
}

func (r *roomGroup) Add(sid domain.SessionID, conn SignalConnection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bySID[sid]; !ok {
		r.order = append(r.order, sid)
	}
	r.bySID[sid] = conn
	log.Debug().Str("module", "core.room").Str("room", string(r.name)).Str("sid", string(sid)).Msg("member added")
}

func (r *roomGroup) Remove(sid domain.SessionID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bySID[sid]; !ok {
		return false
	}
	delete(r.bySID, sid)
	r.order = slices.DeleteFunc(r.order, func(s domain.SessionID) bool { return s == sid })
	log.Debug().Str("module", "core.room").Str("room", string(r.name)).Str("sid", string(sid)).Msg("member removed")
	return true
}

// Broadcast holds the group lock for the whole loop; that is what keeps
// per-room delivery FIFO when several sessions publish at once.
func (r *roomGroup) Broadcast(from domain.SessionID, data Frame, excludeSelf bool) PublishResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := PublishResult{}
	for _, sid := range r.order {
		if excludeSelf && sid == from {
			continue
		}
		if err := r.bySID[sid].TrySend(data); err != nil {
			res.Dropped = append(res.Dropped, sid)
			continue
		}
		res.SendTo++
	}
	log.Debug().Str("module", "core.room").Str("room", string(r.name)).Str("from", string(from)).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}
