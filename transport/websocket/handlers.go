package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
)

const actionGameOver = "game:over"

// handleConnect - returns the session with the requested id, creating one
// when the client connects for the first time (empty id).
func (that *Server) handleConnect(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := that.decodePayload(msg)
	if err != nil {
		return err
	}

	session, err := that.games.GetOrCreateSession(ctx, payloadReq.Session.ID)
	if err != nil {
		log.Error("failed to get or create session", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to get or create session")
	}

	log.Info("session connected", "sessionID", session.ID)

	return that.sendMessage(conn, msg.Action, ResponsePayload{Session: session})
}

// handleGamePlay - applies one move and mirrors the resulting state back.
// When the move ends the game a one-time game:over message follows.
func (that *Server) handleGamePlay(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "handleGamePlay")

	payloadReq, err := that.decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Session.ID == "" {
		return that.sendErrorResponse(conn, msg.Action, "session id is required")
	}

	if payloadReq.Cell == nil {
		return that.sendErrorResponse(conn, msg.Action, "cell is required")
	}

	session, event, err := that.games.Play(ctx, payloadReq.Session.ID, *payloadReq.Cell)
	if err != nil {
		log.Error("failed to make a move", "sessionID", payloadReq.Session.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to make a move")
	}

	if err = that.sendMessage(conn, msg.Action, ResponsePayload{Session: session}); err != nil {
		return err
	}

	if event == nil {
		return nil
	}

	log.Info("game over", "sessionID", session.ID, "status", event.Outcome.Status, "winner", event.Outcome.Winner)

	return that.sendMessage(conn, actionGameOver, GameOverPayload{
		SessionID: session.ID,
		Outcome:   event.Outcome,
	})
}

// handleGameReset - starts a fresh game in the session.
func (that *Server) handleGameReset(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "handleGameReset")

	payloadReq, err := that.decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Session.ID == "" {
		return that.sendErrorResponse(conn, msg.Action, "session id is required")
	}

	session, err := that.games.Reset(ctx, payloadReq.Session.ID)
	if err != nil {
		log.Error("failed to reset game", "sessionID", payloadReq.Session.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to reset game")
	}

	log.Info("game reset", "sessionID", session.ID)

	return that.sendMessage(conn, msg.Action, ResponsePayload{Session: session})
}

func (that *Server) decodePayload(msg *Message) (*RequestPayload, error) {
	var payload RequestPayload

	if len(msg.Payload) == 0 {
		return &payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return &payload, nil
}
