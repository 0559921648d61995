// Package orch drives a connection through join, chat and disconnect.
package orch

import (
	"time"

	"github.com/dkeye/Relay/internal/app"
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	DefaultWelcomeText    = "Welcome to Relay!"
	DefaultPersistTimeout = 5 * time.Second
)

// Outcome tells the transport what became of one inbound event.
type Outcome int

const (
	Handled Outcome = iota
	// DroppedNoSession: the connection has no identity (never joined, or
	// the event raced a disconnect).
	DroppedNoSession
	DroppedInvalid
	DroppedPersistFailed
)

func (o Outcome) String() string {
	switch o {
	case Handled:
		return "handled"
	case DroppedNoSession:
		return "dropped: no session"
	case DroppedInvalid:
		return "dropped: invalid"
	case DroppedPersistFailed:
		return "dropped: persist failed"
	default:
		return "unknown"
	}
}

// Orchestrator runs each room's membership changes and chat broadcasts one
// at a time, so every member sees them in the same order.
type Orchestrator struct {
	Directory   *app.Directory
	Fanout      *app.Fanout
	Formatter   *app.Formatter
	Store       core.Store
	Policy      app.Policy
	WelcomeText string

	// PersistTimeout bounds one chat log write; zero means DefaultPersistTimeout.
	PersistTimeout time.Duration

	rooms core.KeyedMutex[domain.RoomName]
}

// Connect registers a live connection with the transport. The connection
// stays Unjoined until a successful Join.
func (o *Orchestrator) Connect(sid domain.SessionID, conn core.SignalConnection) {
	o.Fanout.Attach(sid, conn)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Msg("connected")
}

// publish fans ev out to room and applies the backpressure policy to
// whoever could not keep up.
func (o *Orchestrator) publish(room domain.RoomName, from domain.SessionID, ev any, excludeSelf bool) {
	res := o.Fanout.EmitRoom(room, from, ev, excludeSelf)
	if o.Policy == nil {
		return
	}
	for _, slow := range res.Dropped {
		switch o.Policy.OnBackPressure(room, slow) {
		case app.KickMember:
			log.Warn().Str("module", "orch").Str("sid", string(slow)).Str("room", string(room)).Msg("kicking slow member")
			o.Fanout.Close(slow)
		case app.NoAction:
		}
	}
}

// lockRoomOf locks the room sid is currently in. It reports false, with
// nothing locked, when sid has no identity.
func (o *Orchestrator) lockRoomOf(sid domain.SessionID) (domain.Identity, func(), bool) {
	for {
		id, ok := o.Directory.Get(sid)
		if !ok {
			return domain.Identity{}, nil, false
		}
		unlock := o.rooms.Lock(id.Room)
		cur, ok := o.Directory.Get(sid)
		if ok && cur.Room == id.Room {
			return cur, unlock, true
		}
		unlock()
	}
}

// publishRoster must run under the room lock; the roster it sends is then
// the one every member ends up with.
func (o *Orchestrator) publishRoster(room domain.RoomName) {
	o.publish(room, "", core.NewRoomUsersEvent(room, o.Directory.ListByRoom(room)), false)
}

func (o *Orchestrator) system(text string) core.MessageEvent {
	return core.NewMessageEvent(o.Formatter.System(text))
}
