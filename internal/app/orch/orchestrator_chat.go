package orch

import (
	"context"
	"strings"

	"github.com/dkeye/Relay/internal/app"
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/dkeye/Relay/internal/storage"
	"github.com/rs/zerolog/log"
)

// Chat logs text to the sender's room and then broadcasts it to everyone in
// the room, sender included. Write and broadcast run under the room lock,
// so the room's log and what its members receive share one order. The
// write is bounded by PersistTimeout.
func (o *Orchestrator) Chat(ctx context.Context, sid domain.SessionID, text string) Outcome {
	if strings.TrimSpace(text) == "" {
		if _, ok := o.Directory.Get(sid); !ok {
			return DroppedNoSession
		}
		return DroppedInvalid
	}
	id, unlock, ok := o.lockRoomOf(sid)
	if !ok {
		log.Debug().Str("module", "orch").Str("sid", string(sid)).Msg("chat without session dropped")
		return DroppedNoSession
	}
	defer unlock()

	if err := o.persist(ctx, id, text); err != nil {
		log.Error().Err(err).Str("module", "orch").Str("sid", string(sid)).Str("room", string(id.Room)).Msg("persist chat message")
		if o.persistFailure(id.Room, err) == app.DropMessage {
			return DroppedPersistFailed
		}
	}

	o.publish(id.Room, sid, core.NewMessageEvent(o.Formatter.Format(id.Username, text)), false)
	return Handled
}

func (o *Orchestrator) persist(ctx context.Context, id domain.Identity, text string) error {
	timeout := o.PersistTimeout
	if timeout <= 0 {
		timeout = DefaultPersistTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return storage.PushJSON(ctx, o.Store, storage.MessagesKey(id.Room), domain.LogEntry{Username: id.Username, Message: text})
}

func (o *Orchestrator) persistFailure(room domain.RoomName, err error) app.PersistFailureAction {
	if o.Policy == nil {
		return app.DropMessage
	}
	return o.Policy.OnPersistFailure(room, err)
}
