package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xoarena/tictactoe-backend/internal/engine"
	"github.com/xoarena/tictactoe-backend/internal/entity"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.GameResult) error
	ListRecent(ctx context.Context, limit int) ([]entity.GameResult, error)
}

// GameManager owns the session lifecycle: it loads a session, runs the
// engine on it and persists whatever comes back. The engine itself stays
// storage-free.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	resultRepo  resultRepo

	now func() time.Time
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, resultRepo resultRepo) *GameManager {
	return &GameManager{
		logger: logger,

		sessionRepo: sessionRepo,
		resultRepo:  resultRepo,

		now: time.Now,
	}
}

// GetOrCreateSession returns the session with the given id, creating a
// fresh one (with a generated id when none is supplied) if it doesn't
// exist yet.
func (that *GameManager) GetOrCreateSession(ctx context.Context, id string) (*entity.Session, error) {
	if id == "" {
		session := entity.NewSession(uuid.NewString(), that.now())
		if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}

		return session, nil
	}

	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return session, nil
}

// Play applies one move to the session's game. Ignored moves (occupied
// cell, finished game, bad index) still succeed and return the unchanged
// session; the event is non-nil only on the move that ends the game.
func (that *GameManager) Play(ctx context.Context, sessionID string, cell int) (*entity.Session, *engine.GameOverEvent, error) {
	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	nextState, event := engine.Play(session.State, cell)
	if nextState == session.State {
		return session, nil, nil
	}

	session.State = nextState
	session.UpdatedAt = that.now()

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to update session: %w", err)
	}

	if event != nil {
		that.recordResult(ctx, session, event)
	}

	return session, event, nil
}

// Reset replaces the session's game with a fresh one.
func (that *GameManager) Reset(ctx context.Context, sessionID string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	session.State = engine.NewGameState()
	session.UpdatedAt = that.now()

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return session, nil
}

// ListResults returns the most recently finished games.
func (that *GameManager) ListResults(ctx context.Context, limit int) ([]entity.GameResult, error) {
	results, err := that.resultRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	return results, nil
}

// recordResult writes the finished game to the results store. A failed
// write must not fail the move itself: the client already holds the
// terminal state.
func (that *GameManager) recordResult(ctx context.Context, session *entity.Session, event *engine.GameOverEvent) {
	log := that.logger.With("method", "recordResult", "sessionID", session.ID)

	result := &entity.GameResult{
		SessionID:  session.ID,
		Status:     event.Outcome.Status,
		Winner:     event.Outcome.Winner,
		Moves:      countMoves(session.State.Board),
		FinishedAt: session.UpdatedAt,
	}

	if err := that.resultRepo.Save(ctx, result); err != nil {
		log.Error("failed to save game result", "error", err)
		return
	}

	log.Info("game finished", "status", result.Status, "winner", result.Winner)
}

func countMoves(board engine.Board) int {
	moves := 0
	for _, cell := range board {
		if cell != engine.EmptyCell {
			moves++
		}
	}
	return moves
}
