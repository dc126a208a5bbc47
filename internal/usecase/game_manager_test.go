package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xoarena/tictactoe-backend/internal/engine"
	"github.com/xoarena/tictactoe-backend/internal/entity"
)

var (
	errRedisDown      = errors.New("redis down")
	errStorageIsFull  = errors.New("storage is full")
	errSessionMissing = errors.New("session not found")
)

type mockSessionRepo struct {
	mock.Mock
}

func (that *mockSessionRepo) CreateOrUpdate(ctx context.Context, session *entity.Session) error {
	args := that.Called(ctx, session)
	return args.Error(0)
}

func (that *mockSessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	args := that.Called(ctx, id)
	session, _ := args.Get(0).(*entity.Session)
	return session, args.Error(1)
}

func (that *mockSessionRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

type mockResultRepo struct {
	mock.Mock
}

func (that *mockResultRepo) Save(ctx context.Context, result *entity.GameResult) error {
	args := that.Called(ctx, result)
	return args.Error(0)
}

func (that *mockResultRepo) ListRecent(ctx context.Context, limit int) ([]entity.GameResult, error) {
	args := that.Called(ctx, limit)
	results, _ := args.Get(0).([]entity.GameResult)
	return results, args.Error(1)
}

func newTestManager(t *testing.T) (*GameManager, *mockSessionRepo, *mockResultRepo) {
	t.Helper()

	sessionRepo := &mockSessionRepo{}
	resultRepo := &mockResultRepo{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	manager := NewGameManager(logger, sessionRepo, resultRepo)

	t.Cleanup(func() {
		sessionRepo.AssertExpectations(t)
		resultRepo.AssertExpectations(t)
	})

	return manager, sessionRepo, resultRepo
}

func sessionWithState(id string, state engine.GameState) *entity.Session {
	return &entity.Session{ID: id, State: state}
}

func TestGameManager_GetOrCreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a new session when the id is empty", func(t *testing.T) {
		// Given: a session repo accepting any new session
		manager, sessionRepo, _ := newTestManager(t)
		sessionRepo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Session")).
			Return(nil).Once()

		// When: requesting a session without an id
		session, err := manager.GetOrCreateSession(ctx, "")

		// Then: a fresh session with a generated id and a new game is returned
		require.NoError(t, err)
		assert.NotEmpty(t, session.ID)
		assert.Equal(t, engine.NewGameState(), session.State)
	})

	t.Run("Returns the existing session when the id is known", func(t *testing.T) {
		// Given: a stored session
		manager, sessionRepo, _ := newTestManager(t)
		existing := sessionWithState("s1", engine.NewGameState())
		sessionRepo.On("GetByID", mock.Anything, "s1").Return(existing, nil).Once()

		// When: requesting that session
		session, err := manager.GetOrCreateSession(ctx, "s1")

		// Then: the stored session comes back
		require.NoError(t, err)
		assert.Equal(t, existing, session)
	})

	t.Run("Propagates repository failures", func(t *testing.T) {
		// Given: a session repo that is down
		manager, sessionRepo, _ := newTestManager(t)
		sessionRepo.On("GetByID", mock.Anything, "s1").
			Return(nil, errRedisDown).Once()

		// When: requesting a session
		session, err := manager.GetOrCreateSession(ctx, "s1")

		// Then: the error is surfaced and no session is returned
		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, session)
	})
}

func TestGameManager_Play(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies a move and persists the new state", func(t *testing.T) {
		// Given: a fresh stored session
		manager, sessionRepo, _ := newTestManager(t)
		sessionRepo.On("GetByID", mock.Anything, "s1").
			Return(sessionWithState("s1", engine.NewGameState()), nil).Once()
		sessionRepo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Session")).
			Return(nil).Once()

		// When: X plays cell 0
		session, event, err := manager.Play(ctx, "s1", 0)

		// Then: the move is applied, no game-over event fires
		require.NoError(t, err)
		assert.Equal(t, engine.PlayerX, session.State.Board[0])
		assert.Equal(t, engine.PlayerO, session.State.Turn)
		assert.Nil(t, event)
	})

	t.Run("Ignored move skips persistence", func(t *testing.T) {
		// Given: a session where cell 0 is already taken
		manager, sessionRepo, _ := newTestManager(t)
		state, _ := engine.Play(engine.NewGameState(), 0)
		stored := sessionWithState("s1", state)
		sessionRepo.On("GetByID", mock.Anything, "s1").Return(stored, nil).Once()

		// When: the occupied cell is played again
		session, event, err := manager.Play(ctx, "s1", 0)

		// Then: the unchanged session is returned without any write
		require.NoError(t, err)
		assert.Equal(t, stored, session)
		assert.Nil(t, event)
	})

	t.Run("Records a result exactly once when the game ends", func(t *testing.T) {
		// Given: a session one move away from an X win on the left column
		manager, sessionRepo, resultRepo := newTestManager(t)
		state := engine.NewGameState()
		for _, cell := range []int{0, 1, 3, 4} {
			state, _ = engine.Play(state, cell)
		}
		sessionRepo.On("GetByID", mock.Anything, "s1").
			Return(sessionWithState("s1", state), nil).Once()
		sessionRepo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Session")).
			Return(nil).Once()
		resultRepo.On("Save", mock.Anything, mock.MatchedBy(func(result *entity.GameResult) bool {
			return result.SessionID == "s1" &&
				result.Status == engine.StatusWon &&
				result.Winner == engine.PlayerX &&
				result.Moves == 5
		})).Return(nil).Once()

		// When: X completes the column
		session, event, err := manager.Play(ctx, "s1", 6)

		// Then: the event fires with the win and the result is stored
		require.NoError(t, err)
		require.NotNil(t, event)
		assert.Equal(t, engine.StatusWon, event.Outcome.Status)
		assert.Equal(t, engine.PlayerX, session.State.Winner)
	})

	t.Run("A failed result write does not fail the move", func(t *testing.T) {
		// Given: a result repo that rejects writes
		manager, sessionRepo, resultRepo := newTestManager(t)
		state := engine.NewGameState()
		for _, cell := range []int{0, 1, 3, 4} {
			state, _ = engine.Play(state, cell)
		}
		sessionRepo.On("GetByID", mock.Anything, "s1").
			Return(sessionWithState("s1", state), nil).Once()
		sessionRepo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Session")).
			Return(nil).Once()
		resultRepo.On("Save", mock.Anything, mock.AnythingOfType("*entity.GameResult")).
			Return(errStorageIsFull).Once()

		// When: the winning move is played
		_, event, err := manager.Play(ctx, "s1", 6)

		// Then: the move still succeeds and the event still fires
		require.NoError(t, err)
		assert.NotNil(t, event)
	})

	t.Run("Fails when the session does not exist", func(t *testing.T) {
		// Given: no stored session
		manager, sessionRepo, _ := newTestManager(t)
		sessionRepo.On("GetByID", mock.Anything, "ghost").
			Return(nil, errSessionMissing).Once()

		// When: playing into the missing session
		session, event, err := manager.Play(ctx, "ghost", 0)

		// Then: the lookup error is surfaced
		require.ErrorIs(t, err, errSessionMissing)
		assert.Nil(t, session)
		assert.Nil(t, event)
	})
}

func TestGameManager_Reset(t *testing.T) {
	ctx := context.Background()

	t.Run("Replaces the game with a fresh one", func(t *testing.T) {
		// Given: a finished stored session
		manager, sessionRepo, _ := newTestManager(t)
		state := engine.NewGameState()
		for _, cell := range []int{0, 1, 3, 4, 6} {
			state, _ = engine.Play(state, cell)
		}
		require.True(t, state.IsTerminal())

		sessionRepo.On("GetByID", mock.Anything, "s1").
			Return(sessionWithState("s1", state), nil).Once()
		sessionRepo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Session")).
			Return(nil).Once()

		// When: resetting the session
		session, err := manager.Reset(ctx, "s1")

		// Then: the session holds a brand-new game
		require.NoError(t, err)
		assert.Equal(t, engine.NewGameState(), session.State)
	})
}
