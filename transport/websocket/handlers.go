package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/mindgames-backend/internal/apperror"
	"github.com/rocketscienceinc/mindgames-backend/internal/entity"
)

var errNoActiveGame = errors.New("player has no active game")

func (that *Server) handleConnect(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return c.sendError(msg.Action, "malformed payload")
	}

	var playerID string
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.uGame.GetOrCreatePlayer(ctx, playerID)
	if errors.Is(err, apperror.ErrPlayerNotFound) {
		// the stored player expired, start over with a new one
		player, err = that.uGame.GetOrCreatePlayer(ctx, "")
	}

	if err != nil {
		log.Error("failed to create or get player", "error", err)
		return c.sendError(msg.Action, "failed to create a new player")
	}

	that.register(player.ID, c)

	if err = c.send(msg.Action, Payload{Player: player}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := that.decodePlayerPayload(msg, c)
	if err != nil {
		return err
	}

	kind, err := entity.ParseKind(payloadReq.Kind)
	if err != nil {
		return c.sendError(msg.Action, fmt.Sprintf("unknown game %q", payloadReq.Kind))
	}

	session, err := that.uGame.StartSession(ctx, payloadReq.Player.ID, kind)
	if err != nil {
		log.Error("failed to start game", "kind", kind, "error", err)
		return c.sendError(msg.Action, "failed to create a new game")
	}

	payloadResp := Payload{
		Player:  &entity.Player{ID: session.PlayerID, SessionID: session.ID},
		Session: session,
	}

	log.Info("game started", "playerID", session.PlayerID, "sessionID", session.ID, "kind", kind)

	return c.send(msg.Action, payloadResp)
}

func (that *Server) handleMove(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleMove")

	payloadReq, err := that.decodePlayerPayload(msg, c)
	if err != nil {
		return err
	}

	if payloadReq.Intent == nil {
		return c.sendError(msg.Action, "Intent is required")
	}

	player, err := that.activePlayer(ctx, payloadReq.Player.ID)
	if err != nil {
		return c.sendError(msg.Action, err.Error())
	}

	session, err := that.uGame.Move(ctx, player.SessionID, *payloadReq.Intent)

	switch {
	case errors.Is(err, apperror.ErrInvalidMove), errors.Is(err, apperror.ErrOutOfRange):
		return c.send(msg.Action, Payload{Session: session, Error: fmt.Sprintf("move rejected: %v", err)})
	case errors.Is(err, apperror.ErrSessionNotFound):
		return c.sendError(msg.Action, errNoActiveGame.Error())
	case err != nil:
		log.Error("failed to make move", "error", err)
		return c.sendError(msg.Action, "failed to make move")
	}

	return c.send(msg.Action, Payload{Session: session})
}

func (that *Server) handleReset(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleReset")

	payloadReq, err := that.decodePlayerPayload(msg, c)
	if err != nil {
		return err
	}

	player, err := that.activePlayer(ctx, payloadReq.Player.ID)
	if err != nil {
		return c.sendError(msg.Action, err.Error())
	}

	session, err := that.uGame.Reset(ctx, player.SessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		return c.sendError(msg.Action, errNoActiveGame.Error())
	}

	if err != nil {
		log.Error("failed to reset game", "error", err)
		return c.sendError(msg.Action, "failed to reset game")
	}

	return c.send(msg.Action, Payload{Session: session})
}

func (that *Server) handleLeave(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleLeave")

	payloadReq, err := that.decodePlayerPayload(msg, c)
	if err != nil {
		return err
	}

	player, err := that.activePlayer(ctx, payloadReq.Player.ID)
	if err != nil {
		return c.sendError(msg.Action, err.Error())
	}

	if err = that.uGame.Close(ctx, player.SessionID); err != nil {
		log.Error("failed to end game", "error", err)
		return c.sendError(msg.Action, "failed to leave game")
	}

	log.Info("player left game", "playerID", player.ID, "sessionID", player.SessionID)

	return c.send(msg.Action, Payload{Player: &entity.Player{ID: player.ID}})
}

func (that *Server) handleScores(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleScores")

	payloadReq, err := that.decodePlayerPayload(msg, c)
	if err != nil {
		return err
	}

	scores, err := that.uGame.Scores(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to get scores", "error", err)
		return c.sendError(msg.Action, "failed to get scores")
	}

	return c.send(msg.Action, Payload{Player: payloadReq.Player, Scores: scores})
}

func (that *Server) activePlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	player, err := that.uGame.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		that.logger.Error("failed to get player", "playerID", playerID, "error", err)
		return nil, errors.New("player not found")
	}

	if !player.InSession() {
		return nil, errNoActiveGame
	}

	return player, nil
}

// decodePlayerPayload decodes a payload that must name the player. On a bad
// payload the error response is already sent.
func (that *Server) decodePlayerPayload(msg *Message, c *client) (Payload, error) {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		if sendErr := c.sendError(msg.Action, "malformed payload"); sendErr != nil {
			return Payload{}, sendErr
		}

		return Payload{}, err
	}

	if payloadReq.Player == nil || payloadReq.Player.ID == "" {
		that.logger.Error("Player is missing in payload", "action", msg.Action)
		if err = c.sendError(msg.Action, "Player is required"); err != nil {
			return Payload{}, err
		}

		return Payload{}, errors.New("player is missing in payload")
	}

	return payloadReq, nil
}

func decodePayload(msg *Message) (Payload, error) {
	var payload Payload
	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return Payload{}, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}
