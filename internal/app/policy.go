package app

import "github.com/dkeye/Relay/internal/domain"

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
)

type PersistFailureAction int

const (
	DropMessage PersistFailureAction = iota
	BroadcastAnyway
)

// Policy decides what to do when delivery or persistence goes wrong.
type Policy interface {
	OnBackPressure(room domain.RoomName, sid domain.SessionID) BackpressureAction
	OnPersistFailure(room domain.RoomName, err error) PersistFailureAction
}

type SimplePolicy struct {
	// Broadcast chat messages whose log write failed instead of dropping them.
	BroadcastUnsaved bool
}

func (SimplePolicy) OnBackPressure(room domain.RoomName, sid domain.SessionID) BackpressureAction {
	return KickMember
}

func (p SimplePolicy) OnPersistFailure(room domain.RoomName, err error) PersistFailureAction {
	if p.BroadcastUnsaved {
		return BroadcastAnyway
	}
	return DropMessage
}
