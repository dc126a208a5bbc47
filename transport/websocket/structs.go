package websocket

import (
	"encoding/json"

	"github.com/xoarena/tictactoe-backend/internal/engine"
	"github.com/xoarena/tictactoe-backend/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RequestPayload carries everything a client may send with an action.
type RequestPayload struct {
	Session struct {
		ID string `json:"id"`
	} `json:"session"`
	Cell *int `json:"cell,omitempty"`
}

// ResponsePayload mirrors a request back with the resulting session state.
type ResponsePayload struct {
	Session *entity.Session `json:"session,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// GameOverPayload is pushed once per game on the terminal transition.
type GameOverPayload struct {
	SessionID string         `json:"session_id"`
	Outcome   engine.Outcome `json:"outcome"`
}
