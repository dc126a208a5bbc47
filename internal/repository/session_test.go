package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xoarena/tictactoe-backend/internal/apperror"
	"github.com/xoarena/tictactoe-backend/internal/engine"
	"github.com/xoarena/tictactoe-backend/internal/entity"
	"github.com/xoarena/tictactoe-backend/testing/suite"
)

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage)

	// Given: a fresh session
	session := entity.NewSession("123", time.Now().UTC())

	// When: CreateOrUpdate is called
	err := sessionRepo.CreateOrUpdate(ctx, session)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		// Given: a stored session with one move played
		session := entity.NewSession("123", time.Now().UTC())
		session.State, _ = engine.Play(session.State, 4)

		err := sessionRepo.CreateOrUpdate(ctx, session)
		require.NoError(t, err)

		// When: GetByID is called with the existing id
		retrieved, err := sessionRepo.GetByID(ctx, session.ID)

		// Then: the retrieved session matches the saved one
		require.NoError(t, err)
		require.Equal(t, session.ID, retrieved.ID)
		require.Equal(t, session.State, retrieved.State)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		// When: GetByID is called with a non-existent id
		retrieved, err := sessionRepo.GetByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		// Given: a stored session
		session := entity.NewSession("123", time.Now().UTC())

		err := sessionRepo.CreateOrUpdate(ctx, session)
		require.NoError(t, err)

		// When: DeleteByID is called with the existing id
		err = sessionRepo.DeleteByID(ctx, session.ID)

		// Then: no error should be returned and the session is gone
		require.NoError(t, err)

		_, err = sessionRepo.GetByID(ctx, session.ID)
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		// When: DeleteByID is called with a non-existent id
		err := sessionRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
