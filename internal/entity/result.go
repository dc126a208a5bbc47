package entity

import "time"

// GameResult is the permanent record written when a game reaches a
// terminal outcome. Winner is empty for a draw.
type GameResult struct {
	SessionID  string    `json:"session_id"`
	Status     string    `json:"status"`
	Winner     string    `json:"winner,omitempty"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}
