// Package signal is the WebSocket side of the relay: one read pump and one
// write pump per connection, inbound frames dispatched to the orchestrator.
package signal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dkeye/Relay/internal/app/orch"
	"github.com/dkeye/Relay/internal/config"
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrClosed       = errors.New("connection closed")
)

const (
	writeWait         = 5 * time.Second
	defaultPingPeriod = 54 * time.Second
	defaultSendBuffer = 64
)

type SignalWSController struct {
	Orch *orch.Orchestrator

	upgrader      websocket.Upgrader
	validate      *validator.Validate
	readLimit     int64
	pingPeriod    time.Duration
	sendBuffer    int
	maxMessageLen int
}

func NewSignalWSController(o *orch.Orchestrator, cfg *config.Config) *SignalWSController {
	origins := newOriginPolicy(cfg.AllowedOrigins)
	ctl := &SignalWSController{
		Orch:          o,
		upgrader:      websocket.Upgrader{CheckOrigin: origins.check},
		validate:      validator.New(),
		readLimit:     cfg.ReadLimit,
		pingPeriod:    cfg.PingPeriod,
		sendBuffer:    cfg.SendBuffer,
		maxMessageLen: cfg.MaxMessageLen,
	}
	if ctl.pingPeriod <= 0 {
		ctl.pingPeriod = defaultPingPeriod
	}
	if ctl.sendBuffer <= 0 {
		ctl.sendBuffer = defaultSendBuffer
	}
	return ctl
}

// WsSignalConn queues outbound frames for the write pump. TrySend never
// blocks: a full queue is reported as ErrBackpressure.
type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
}

func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	token := c.GetString("client_token")
	sid := domain.SessionID(uuid.NewString())

	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("client_token", token).Msg("new WS connection")

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, ctl.sendBuffer),
	}
	ctl.Orch.Connect(sid, conn)

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, sid, conn)
}
