// Package engine holds the tic-tac-toe rules as a pure state-transition
// function. A GameState is a value: Play never mutates its input, it
// returns a replacement. Nothing in here touches storage, transport or a
// clock, which keeps the whole package testable without any setup.
package engine

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""
)

const (
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusDraw       = "draw"
)

// winLines are the 8 winning lines: rows top to bottom, columns left to
// right, then both diagonals.
var winLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is the 3x3 grid in row-major order (index = row*3 + col).
type Board [9]string

// Outcome is the resolution status of a board.
type Outcome struct {
	Status string `json:"status"`
	Winner string `json:"winner,omitempty"`
}

// GameState is one full snapshot of a game. X always moves first.
type GameState struct {
	Board  Board  `json:"board"`
	Turn   string `json:"player_turn"`
	Status string `json:"status"`
	Winner string `json:"winner,omitempty"`
}

// GameOverEvent is returned by Play exactly once per game, on the move
// that takes the outcome from in-progress to won or drawn.
type GameOverEvent struct {
	Outcome Outcome `json:"outcome"`
}

// NewGameState returns a fresh game: empty board, X to move.
func NewGameState() GameState {
	return GameState{
		Turn:   PlayerX,
		Status: StatusInProgress,
	}
}

// Play applies one move for the side whose turn it is and returns the
// resulting state. Moves on an occupied cell, an out-of-range cell or a
// finished game are ignored: the input state comes back unchanged. When
// the move ends the game the mover stays recorded as Turn and a non-nil
// GameOverEvent is returned; otherwise the turn flips.
func Play(state GameState, cell int) (GameState, *GameOverEvent) {
	if state.Status != StatusInProgress {
		return state, nil
	}

	if cell < 0 || cell >= len(state.Board) {
		return state, nil
	}

	if state.Board[cell] != EmptyCell {
		return state, nil
	}

	state.Board[cell] = state.Turn

	outcome := Evaluate(state.Board)
	state.Status = outcome.Status
	state.Winner = outcome.Winner

	if outcome.Status != StatusInProgress {
		return state, &GameOverEvent{Outcome: outcome}
	}

	state.Turn = toggleMark(state.Turn)

	return state, nil
}

// Evaluate resolves a board: a won line beats a full board, a full board
// with no winner is a draw, anything else is still in progress. At most
// one side can hold a completed line after a legal move, so the scan
// order of winLines never changes the result.
func Evaluate(board Board) Outcome {
	for _, line := range winLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != EmptyCell && a == b && b == c {
			return Outcome{Status: StatusWon, Winner: a}
		}
	}

	for _, cell := range board {
		if cell == EmptyCell {
			return Outcome{Status: StatusInProgress}
		}
	}

	return Outcome{Status: StatusDraw}
}

// IsTerminal reports whether the game accepts no further moves.
func (that GameState) IsTerminal() bool {
	return that.Status != StatusInProgress
}

func toggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
