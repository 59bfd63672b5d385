package websocket

import "encoding/json"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is the only client message shape the feed understands.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventReady    Event = "ready"
	EventActivity Event = "activity"
	EventPong     Event = "pong"
	EventError    Event = "error"
)

// ReadyResponse is the first message on a new connection. Live is false when
// the server has no event bus and the feed will stay silent.
type ReadyResponse struct {
	Event Event `json:"event"`
	Live  bool  `json:"live"`
}

// ActivityResponse wraps one admin event as published on the bus.
type ActivityResponse struct {
	Event Event           `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
