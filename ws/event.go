package ws

import (
	"context"
	"encoding/json"

	"github.com/judgegodwins/chess-rooms/room"
	"github.com/judgegodwins/chess-rooms/rules"
)

type Event struct {
	Type    string          `json:"type"`
	TraceID string          `json:"trace_id,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

type EventHandler func(ctx context.Context, evt Event, c *Client) error

const (
	// inbound
	EventJoinGame = "join_game"
	EventMove     = "move"

	// outbound
	EventRoleAssigned      = "role_assigned"
	EventSpectatorAssigned = "spectator_assigned"
	EventPositionUpdate    = "position_update"
	EventGameOver          = "game_over"
	EventError             = "error"

	// both directions
	EventChatMessage = "chat_message"
	EventTyping      = "typing"
)

type PayloadError struct {
	Message string `json:"message"`
}

type PayloadJoinGame struct {
	RoomID string `json:"room_id"`
}

type PayloadRoleAssigned struct {
	RoomID string    `json:"room_id"`
	Role   room.Role `json:"role"`
}

type PayloadSpectatorAssigned struct {
	RoomID string `json:"room_id"`
}

type PayloadPositionUpdate struct {
	RoomID   string `json:"room_id"`
	Position string `json:"position"`
}

type PayloadMove struct {
	RoomID string     `json:"room_id"`
	Move   rules.Move `json:"move"`
	Role   string     `json:"role"`
}

type PayloadGameOver struct {
	RoomID  string       `json:"room_id"`
	Outcome room.Outcome `json:"outcome"`
}

// Chat and typing fields are relayed as received.
type PayloadChatIn struct {
	RoomID string          `json:"room_id"`
	User   json.RawMessage `json:"user"`
	Text   json.RawMessage `json:"text"`
}

type PayloadChatOut struct {
	User json.RawMessage `json:"user"`
	Text json.RawMessage `json:"text"`
}

type PayloadTypingIn struct {
	RoomID string          `json:"room_id"`
	User   json.RawMessage `json:"user"`
}

type PayloadTypingOut struct {
	User json.RawMessage `json:"user"`
}

func NewEvent(evtType string, payload any) (Event, error) {
	b, err := json.Marshal(payload)

	if err != nil {
		return Event{}, err
	}

	return NewEventStruct(evtType, b, ""), nil
}

// NewErrorEvent builds the error reply for a failed inbound event. The trace
// id lets the client match it to the request it sent.
func NewErrorEvent(traceId, message string) (Event, error) {
	b, err := json.Marshal(PayloadError{Message: message})

	if err != nil {
		return Event{}, err
	}

	return NewEventStruct(EventError, b, traceId), nil
}

func NewEventStruct(evtType string, payload []byte, traceId string) Event {
	return Event{
		Type:    evtType,
		TraceID: traceId,
		Payload: payload,
	}
}
