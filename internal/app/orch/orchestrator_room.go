package orch

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

var errNotAttached = errors.New("connection not attached")

// Join moves sid into room. A session already in a room leaves it first,
// with the usual departure announcement. The welcome, the join notice and
// the roster go out under the room lock, so nothing else from the room
// reaches the joiner before its welcome.
func (o *Orchestrator) Join(_ context.Context, sid domain.SessionID, username string, room domain.RoomName) Outcome {
	if err := validateJoin(username, room); err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("sid", string(sid)).Msg("join rejected")
		return DroppedInvalid
	}
	if prev, ok := o.Directory.Get(sid); ok {
		o.Leave(sid)
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("from_room", string(prev.Room)).Msg("left previous room")
	}

	unlock := o.rooms.Lock(room)
	defer unlock()

	id, err := o.bind(sid, username, room)
	if err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("sid", string(sid)).Msg("join failed")
		return DroppedInvalid
	}

	welcome := o.WelcomeText
	if welcome == "" {
		welcome = DefaultWelcomeText
	}
	o.Fanout.EmitTo(sid, o.system(welcome))
	o.publish(id.Room, sid, o.system(fmt.Sprintf("%s has joined the chat", id.Username)), true)
	o.publishRoster(id.Room)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("username", id.Username).Str("room", string(id.Room)).Msg("joined")
	return Handled
}

// Leave takes sid out of its room but keeps the connection open.
func (o *Orchestrator) Leave(sid domain.SessionID) Outcome {
	id, unlock, ok := o.lockRoomOf(sid)
	if !ok {
		return DroppedNoSession
	}
	defer unlock()

	o.unbind(sid)
	o.publish(id.Room, sid, o.system(fmt.Sprintf("%s has left the chat", id.Username)), true)
	o.publishRoster(id.Room)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(id.Room)).Msg("left")
	return Handled
}

// Disconnect is Leave followed by forgetting the connection. Disconnecting
// a session that never joined announces nothing.
func (o *Orchestrator) Disconnect(sid domain.SessionID) Outcome {
	out := o.Leave(sid)
	o.Fanout.Detach(sid)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("outcome", out.String()).Msg("disconnected")
	return out
}

func (o *Orchestrator) WhoAmI(sid domain.SessionID) Outcome {
	ev := core.WhoAmIEvent{Type: core.EventWhoAmI}
	id, ok := o.Directory.Get(sid)
	if ok {
		ev.Username = id.Username
		ev.Room = id.Room
	}
	o.Fanout.EmitTo(sid, ev)
	if !ok {
		return DroppedNoSession
	}
	return Handled
}

// bind records the identity and subscribes the connection as one step, so
// the directory and the room group never disagree about sid.
func (o *Orchestrator) bind(sid domain.SessionID, username string, room domain.RoomName) (domain.Identity, error) {
	id, err := o.Directory.Join(sid, username, room)
	if err != nil {
		return domain.Identity{}, err
	}
	if !o.Fanout.Subscribe(sid, room) {
		o.Directory.Leave(sid)
		return domain.Identity{}, errNotAttached
	}
	return id, nil
}

func (o *Orchestrator) unbind(sid domain.SessionID) (domain.Identity, bool) {
	id, ok := o.Directory.Leave(sid)
	if ok {
		o.Fanout.Unsubscribe(sid, id.Room)
	}
	return id, ok
}

func validateJoin(username string, room domain.RoomName) error {
	if err := domain.ValidateUsername(username); err != nil {
		return err
	}
	return domain.ValidateRoomName(room)
}
