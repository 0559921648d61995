package core

import (
	"github.com/dkeye/Relay/internal/domain"
)

// PublishResult reports delivery stats/backpressure to orchestrator.
type PublishResult struct {
	SendTo  int
	Dropped []domain.SessionID
}

type RoomInfo struct {
	Name        domain.RoomName `json:"name"`
	MemberCount int             `json:"client_count"`
}

// RoomGroup is the broadcast group of one room: the set of connections
// tagged with the room's label. It never closes adapter-owned resources.
type RoomGroup interface {
	Name() domain.RoomName
	MemberCount() int

	Add(sid domain.SessionID, conn SignalConnection)
	Remove(sid domain.SessionID) bool
	// Broadcast delivers data to every member, skipping from when
	// excludeSelf is set. Calls on one group are delivered in call order.
	Broadcast(from domain.SessionID, data Frame, excludeSelf bool) PublishResult
}
