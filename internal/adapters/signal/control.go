package signal

import (
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
)

func (ctl *SignalWSController) handlePing(sid domain.SessionID) {
	ctl.Orch.Fanout.EmitTo(sid, core.PongEvent{Type: core.EventPong})
}
