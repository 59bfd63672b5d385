package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/careerpath/admin-backend/internal/events"
	"github.com/careerpath/admin-backend/internal/middleware"
	ws "github.com/careerpath/admin-backend/internal/websocket"
)

const keepAliveInterval = 30 * time.Second

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// EventsHandler streams the admin activity feed over WebSocket.
type EventsHandler struct {
	bus      *events.Bus
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(bus *events.Bus, log zerolog.Logger, allowedOrigins []string) *EventsHandler {
	return &EventsHandler{
		bus:      bus,
		log:      log.With().Str("component", "events_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// Stream godoc
// WS /api/admin/events/ws
// Forwards every admin event published on the bus until the client leaves.
func (h *EventsHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	uid := ""
	if identity := middleware.GetIdentity(c); identity != nil {
		uid = identity.UID
	}
	wsLog := h.log.With().Str("uid", uid).Logger()

	// A hijacked connection's request context is not cancelled when the
	// client goes away; the read loop cancels instead.
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	var feed <-chan *redis.Message
	if sub := h.bus.Subscribe(ctx); sub != nil {
		defer sub.Close()
		feed = sub.Channel()
	}

	if err := ws.WriteTyped(conn, ws.ReadyResponse{Event: ws.EventReady, Live: feed != nil}); err != nil {
		return
	}

	pings := make(chan struct{}, 1)
	go readLoop(conn, cancel, pings)

	wsLog.Info().Msg("Admin attached to activity feed")
	defer wsLog.Info().Msg("Admin detached from activity feed")

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case msg, ok := <-feed:
			if !ok {
				return
			}
			if err := ws.WriteTyped(conn, ws.ActivityResponse{
				Event: ws.EventActivity,
				Data:  json.RawMessage(msg.Payload),
			}); err != nil {
				return
			}

		case <-pings:
			if err := ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong}); err != nil {
				return
			}

		case <-keepAlive.C:
			if err := ws.WritePing(conn); err != nil {
				return
			}
		}
	}
}

// readLoop consumes client messages until the connection fails, then cancels
// the stream. It is the only reader of conn; all writes stay in Stream.
func readLoop(conn *websocket.Conn, cancel context.CancelFunc, pings chan<- struct{}) {
	defer cancel()

	conn.SetPongHandler(ws.ExtendReadDeadline(conn))
	for {
		var req ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &req); err != nil {
			return
		}
		if req.Action == ws.ActionPing {
			select {
			case pings <- struct{}{}:
			default:
			}
		}
	}
}
