package signal

import (
	"context"

	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

type joinPayload struct {
	Username string `json:"username" validate:"required,max=36"`
	Room     string `json:"room" validate:"required,max=36"`
}

func (ctl *SignalWSController) handleJoin(ctx context.Context, sid domain.SessionID, data []byte) {
	var p joinPayload
	if !ctl.decode(sid, data, &p) {
		return
	}
	out := ctl.Orch.Join(ctx, sid, p.Username, domain.RoomName(p.Room))
	log.Debug().Str("module", "signal").Str("sid", string(sid)).Str("room", p.Room).Str("outcome", out.String()).Msg("join")
}

// handleLeave takes the session out of its room; the socket stays open.
func (ctl *SignalWSController) handleLeave(sid domain.SessionID) {
	out := ctl.Orch.Leave(sid)
	log.Debug().Str("module", "signal").Str("sid", string(sid)).Str("outcome", out.String()).Msg("leave")
}
