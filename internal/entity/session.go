package entity

import (
	"time"

	"github.com/xoarena/tictactoe-backend/internal/engine"
)

// Session is one screen's running game. The two players share the screen,
// so a session carries exactly one game state and nothing about who holds
// the device.
type Session struct {
	ID        string           `json:"id"`
	State     engine.GameState `json:"state"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		State:     engine.NewGameState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
