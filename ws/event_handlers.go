package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/judgegodwins/chess-rooms/room"
	"github.com/judgegodwins/chess-rooms/util"
)

// JoinGameHandler assigns the connection a role in the room (creating the
// room on first reference), subscribes it, and sends it its role and the
// current position. Nothing is broadcast to the other members.
func JoinGameHandler(ctx context.Context, e Event, c *Client) error {
	var payload PayloadJoinGame

	if err := json.Unmarshal(e.Payload, &payload); err != nil {
		return fmt.Errorf("invalid join payload: %w", err)
	}

	if payload.RoomID == "" {
		payload.RoomID = uuid.NewString()
	}

	rm, err := c.manager.registry.GetOrCreate(payload.RoomID)
	if err != nil {
		return fmt.Errorf("could not open room %v", payload.RoomID)
	}

	role, _ := rm.Join(c.ID, func(role room.Role, position string) {
		c.Join(payload.RoomID)
		err = sendAssignment(c, payload.RoomID, role, position)
	})

	log.Info().
		Str("client_id", c.ID).
		Str("room_id", payload.RoomID).
		Str("role", string(role)).
		Msg("joined room")

	return err
}

func sendAssignment(c *Client, roomID string, role room.Role, position string) error {
	var err error

	if role == room.RoleSpectator {
		err = c.PushEventToEgress(EventSpectatorAssigned, PayloadSpectatorAssigned{
			RoomID: roomID,
		})
	} else {
		err = c.PushEventToEgress(EventRoleAssigned, PayloadRoleAssigned{
			RoomID: roomID,
			Role:   role,
		})
	}

	if err != nil {
		return err
	}

	return c.PushEventToEgress(EventPositionUpdate, PayloadPositionUpdate{
		RoomID:   roomID,
		Position: position,
	})
}

// MoveHandler applies a move and broadcasts the result. Every rejection is
// silent: the sender gets no reply and the room sees nothing.
func MoveHandler(ctx context.Context, e Event, c *Client) error {
	var payload PayloadMove

	logger := log.With().Str("client_id", c.ID).Str("event", e.Type).Logger()

	if err := json.Unmarshal(e.Payload, &payload); err != nil {
		logger.Debug().Err(err).Str("reason", "invalid_payload").Msg("move dropped")
		return nil
	}

	if err := util.Validate.Struct(payload.Move); err != nil {
		logger.Debug().Err(err).Str("reason", "invalid_payload").Msg("move dropped")
		return nil
	}

	rm, ok := c.manager.registry.Get(payload.RoomID)

	if !ok {
		logger.Debug().Str("room_id", payload.RoomID).Str("reason", "unknown_room").Msg("move dropped")
		return nil
	}

	var emitErr error

	res := rm.ApplyMove(c.ID, room.ParseRole(payload.Role), payload.Move, func(res room.MoveResult) {
		emitErr = c.manager.emitToRoom(payload.RoomID, EventPositionUpdate, PayloadPositionUpdate{
			RoomID:   payload.RoomID,
			Position: res.Position,
		})

		if emitErr != nil || res.Outcome == room.OutcomeNone {
			return
		}

		emitErr = c.manager.emitToRoom(payload.RoomID, EventGameOver, PayloadGameOver{
			RoomID:  payload.RoomID,
			Outcome: res.Outcome,
		})
	})

	if !res.Accepted {
		logger.Debug().
			Err(res.Reason).
			Str("room_id", payload.RoomID).
			Str("reason", rejectReason(res.Reason)).
			Msg("move dropped")
		return nil
	}

	logger.Info().
		Str("room_id", payload.RoomID).
		Str("move", payload.Move.UCI()).
		Msg("move applied")

	if res.Outcome != room.OutcomeNone {
		logger.Info().Str("room_id", payload.RoomID).Str("outcome", string(res.Outcome)).Msg("game over")
	}

	return emitErr
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, room.ErrTerminal):
		return "terminal"
	case errors.Is(err, room.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, room.ErrRoleMismatch):
		return "role_mismatch"
	default:
		return "illegal_move"
	}
}

// ChatMessageHandler relays user and text verbatim to every member of the
// room. Only members of the room may post to it.
func ChatMessageHandler(ctx context.Context, e Event, c *Client) error {
	var payload PayloadChatIn

	if err := json.Unmarshal(e.Payload, &payload); err != nil {
		log.Debug().Err(err).Str("client_id", c.ID).Msg("unroutable chat dropped")
		return nil
	}

	if !c.InRoom(payload.RoomID) {
		log.Debug().Str("client_id", c.ID).Str("room_id", payload.RoomID).Msg("chat from non-member dropped")
		return nil
	}

	return c.manager.emitToRoom(payload.RoomID, EventChatMessage, PayloadChatOut{
		User: payload.User,
		Text: payload.Text,
	})
}

// TypingHandler relays a typing notice once. Receivers clear it themselves.
func TypingHandler(ctx context.Context, e Event, c *Client) error {
	var payload PayloadTypingIn

	if err := json.Unmarshal(e.Payload, &payload); err != nil {
		return nil
	}

	if !c.InRoom(payload.RoomID) {
		return nil
	}

	return c.manager.emitToRoom(payload.RoomID, EventTyping, PayloadTypingOut{
		User: payload.User,
	})
}
