package signal

import (
	"context"
	"fmt"

	"github.com/dkeye/Relay/internal/app/orch"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

type chatPayload struct {
	Text string `json:"text" validate:"required"`
}

func (ctl *SignalWSController) handleChat(ctx context.Context, sid domain.SessionID, data []byte) {
	var p chatPayload
	if !ctl.decode(sid, data, &p) {
		return
	}
	if ctl.maxMessageLen > 0 {
		if err := ctl.validate.Var(p.Text, fmt.Sprintf("max=%d", ctl.maxMessageLen)); err != nil {
			log.Warn().Str("module", "signal").Str("sid", string(sid)).Int("len", len(p.Text)).Msg("message too long")
			return
		}
	}
	out := ctl.Orch.Chat(ctx, sid, p.Text)
	if out != orch.Handled {
		log.Debug().Str("module", "signal").Str("sid", string(sid)).Str("outcome", out.String()).Msg("chat")
	}
}
