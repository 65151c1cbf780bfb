package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

var (
	pongWait     = 10 * time.Second
	pingInterval = (pongWait * 9) / 10
	writeWait    = 5 * time.Second
)

const (
	egressBuffer   = 64
	maxMessageSize = 4096
)

var errSlowConsumer = errors.New("client egress buffer full")

type Client struct {
	ID          string
	connection  *websocket.Conn
	manager     *Manager
	egress      chan Event
	JoinedRooms []string
	err         chan error
	done        chan struct{}
	closeOnce   sync.Once
}

func NewClient(conn *websocket.Conn, manager *Manager) *Client {
	return &Client{
		ID:          uuid.NewString(),
		connection:  conn,
		manager:     manager,
		egress:      make(chan Event, egressBuffer),
		JoinedRooms: []string{},
		err:         make(chan error, 1),
		done:        make(chan struct{}),
	}
}

// Reads incoming messages from the clients websocket connection. Events are
// routed one at a time, so a client's own events are handled in the order sent.
func (c *Client) readMessages(ctx context.Context) {
	c.connection.SetReadLimit(maxMessageSize)

	if err := c.connection.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.handleError(err)
		return
	}

	c.connection.SetPongHandler(c.pongHandler)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, payload, err := c.connection.ReadMessage()

			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Error().Err(err).Str("client_id", c.ID).Msg("error reading message")
				}
				c.handleError(err)
				return
			}

			var evt Event

			if err := json.Unmarshal(payload, &evt); err != nil {
				c.pushError("", "invalid event: "+err.Error())
				continue
			}

			if err := c.manager.routeEvent(ctx, evt, c); err != nil {
				log.Debug().Err(err).Str("client_id", c.ID).Str("event", evt.Type).Msg("error handling event")
				// errors returned from handlers go back to the sender under the request's trace id
				c.pushError(evt.TraceID, err.Error())
			}
		}
	}
}

// writes messages pushed to the client's egress channel
func (c *Client) writeMessages(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)

	defer func() {
		ticker.Stop()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case message := <-c.egress:
			data, err := json.Marshal(message)

			if err != nil {
				log.Error().Err(err).Str("client_id", c.ID).Msg("marshalling event")
				continue
			}

			if err := c.write(websocket.TextMessage, data); err != nil {
				c.handleError(err)
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				c.handleError(err)
				return
			}
		}
	}
}

// write sends one frame, bounded by writeWait.
func (c *Client) write(messageType int, data []byte) error {
	if err := c.connection.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("setting write deadline: %w", err)
	}

	return c.connection.WriteMessage(messageType, data)
}

// Sets a new read deadline when a pong is received for a ping message.
func (c *Client) pongHandler(pongMsg string) error {
	return c.connection.SetReadDeadline(time.Now().Add(pongWait))
}

// Reports the first error from either pump. ServeWS waits on Err and tears
// the connection down; later errors are dropped.
func (c *Client) handleError(e error) {
	select {
	case c.err <- e:
	default:
	}
}

// Returns the error channel
func (c *Client) Err() <-chan error {
	return c.err
}

// Creates an event and pushes to client's egress
func (c *Client) PushEventToEgress(evtType string, payload any) error {
	evt, err := NewEvent(evtType, payload)
	if err != nil {
		return err
	}
	c.PushToEgress(evt)
	return nil
}

// Queues an event for delivery without blocking. A client that cannot keep up
// is disconnected so it never stalls the room it is in.
func (c *Client) PushToEgress(evt Event) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.egress <- evt:
	default:
		log.Warn().Str("client_id", c.ID).Str("event", evt.Type).Msg("evicting slow client")
		c.handleError(errSlowConsumer)
	}
}

func (c *Client) pushError(traceID, message string) {
	evt, err := NewErrorEvent(traceID, message)
	if err != nil {
		log.Error().Err(err).Msg("creating error event")
		return
	}
	c.PushToEgress(evt)
}

// close marks the client as gone; pushes after this are dropped.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// Join subscribes the client to a room's broadcast group.
func (c *Client) Join(roomID string) {
	c.manager.Lock()
	defer c.manager.Unlock()

	select {
	case <-c.done:
		// removed while this event was in flight
		return
	default:
	}

	room := c.manager.Rooms[roomID]

	if !slices.Contains(room, c) {
		c.manager.Rooms[roomID] = append(room, c)
	}

	if !slices.Contains(c.JoinedRooms, roomID) {
		c.JoinedRooms = append(c.JoinedRooms, roomID)
	}
}

// Leave removes the client from a room's broadcast group.
func (c *Client) Leave(roomID string) {
	c.manager.Lock()
	defer c.manager.Unlock()

	c.leave(roomID)
}

func (c *Client) leave(roomID string) {
	room, ok := c.manager.Rooms[roomID]

	if !ok {
		return
	}

	if index := slices.Index(room, c); index >= 0 {
		room = slices.Delete(room, index, index+1)
	}

	if len(room) == 0 {
		delete(c.manager.Rooms, roomID)
	} else {
		c.manager.Rooms[roomID] = room
	}

	if index := slices.Index(c.JoinedRooms, roomID); index >= 0 {
		c.JoinedRooms = slices.Delete(c.JoinedRooms, index, index+1)
	}
}

func (c *Client) LeaveAllRooms() {
	c.manager.Lock()
	defer c.manager.Unlock()

	for _, roomID := range slices.Clone(c.JoinedRooms) {
		c.leave(roomID)
	}
}

func (c *Client) InRoom(roomID string) bool {
	c.manager.RLock()
	defer c.manager.RUnlock()

	return slices.Contains(c.JoinedRooms, roomID)
}
