package http

import (
	"context"
	"errors"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/PolusVault/chess/internal/core"
	"github.com/PolusVault/chess/internal/limiter"
	"github.com/PolusVault/chess/internal/proto"
)

// errBanned terminates a read loop after its source address has been
// banned. No envelope goes back to a banned source.
var errBanned = errors.New("source banned")

// WSHandler upgrades HTTP connections, gates them through the
// admission controllers, and bridges them to the Hub.
type WSHandler struct {
	hub             *core.Hub
	conns           *limiter.ConnLimiter
	rates           *limiter.RateLimiter
	maxMessageBytes int64
	log             *zerolog.Logger
}

// NewWSHandler builds a new game socket handler.
func NewWSHandler(hub *core.Hub, conns *limiter.ConnLimiter, rates *limiter.RateLimiter, maxMessageBytes int64, logger *zerolog.Logger) *WSHandler {
	return &WSHandler{
		hub:             hub,
		conns:           conns,
		rates:           rates,
		maxMessageBytes: maxMessageBytes,
		log:             logger,
	}
}

// Handle serves one game socket connection for its whole lifetime.
func (h *WSHandler) Handle(c *gin.Context) {
	addr := c.ClientIP()

	if h.conns.IsBanned(addr) {
		h.log.Warn().Str("addr", addr).Msg("refused banned address")
		c.AbortWithStatus(403)
		return
	}
	if !h.conns.Admit(addr) {
		h.log.Warn().Str("addr", addr).Int("tracked", h.conns.Tracked()).Msg("connection refused by limiter")
		c.AbortWithStatus(429)
		return
	}
	defer h.conns.Release(addr)

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Str("addr", addr).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	if h.maxMessageBytes > 0 {
		conn.SetReadLimit(h.maxMessageBytes)
	}

	client, err := h.hub.Connect(uuid.NewString())
	if err != nil {
		conn.Close(websocket.StatusTryAgainLater, "server full")
		return
	}
	defer h.hub.Disconnect(client.ID)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client, addr)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	switch {
	case errors.Is(err, errBanned):
		status = websocket.StatusPolicyViolation
		reason = "banned"
	case err == nil || errors.Is(err, context.Canceled):
	default:
		if s := websocket.CloseStatus(err); s != -1 {
			status = s
		} else {
			h.log.Debug().Err(err).Str("client_id", client.ID).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client, addr string) error {
	for {
		var inbound proto.Inbound
		if err := wsjson.Read(ctx, conn, &inbound); err != nil {
			return err
		}

		if h.rates.Check(addr) == limiter.LimitExceeded {
			h.ban(addr, client.ID, "rate limit exceeded")
			return errBanned
		}

		ack, err := h.dispatch(client, inbound)
		if err != nil {
			// Malformed input is treated as hostile: ban, close,
			// never answer.
			h.ban(addr, client.ID, err.Error())
			return errBanned
		}
		if ack == nil {
			continue
		}
		if err := wsjson.Write(ctx, conn, ack); err != nil {
			return err
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case event, ok := <-client.Events:
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, broadcastFromEvent(event)); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (h *WSHandler) ban(addr, clientID, why string) {
	recorded := h.conns.Ban(addr)
	h.log.Warn().
		Str("addr", addr).
		Str("client_id", clientID).
		Bool("recorded", recorded).
		Str("cause", why).
		Msg("source banned")
}
