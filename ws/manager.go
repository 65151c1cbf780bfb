package ws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/judgegodwins/chess-rooms/room"
	"github.com/judgegodwins/chess-rooms/util"
)

type ClientList map[string]*Client

// Manager is the session coordinator. It owns the live connections and the
// per-room broadcast groups, and routes inbound events to the room registry.
type Manager struct {
	clients ClientList
	sync.RWMutex
	handlers map[string]EventHandler
	Rooms    map[string][]*Client
	config   *util.Config
	registry *room.Registry
	upgrader websocket.Upgrader
}

func NewManager(config *util.Config, registry *room.Registry) *Manager {
	m := &Manager{
		clients:  make(ClientList),
		handlers: make(map[string]EventHandler),
		Rooms:    make(map[string][]*Client),
		config:   config,
		registry: registry,
	}

	m.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     m.checkOrigin,
	}

	m.setupEventHandlers()

	return m
}

func (m *Manager) setupEventHandlers() {
	m.handlers[EventJoinGame] = JoinGameHandler
	m.handlers[EventMove] = MoveHandler
	m.handlers[EventChatMessage] = ChatMessageHandler
	m.handlers[EventTyping] = TypingHandler
}

func (m *Manager) routeEvent(ctx context.Context, evt Event, c *Client) error {
	if handler, ok := m.handlers[evt.Type]; ok {
		if err := handler(ctx, evt, c); err != nil {
			return err
		}

		return nil
	}

	return fmt.Errorf("there is no such event type: %q", evt.Type)
}

func (m *Manager) addClient(client *Client) {
	m.Lock()
	defer m.Unlock()

	m.clients[client.ID] = client
}

// removeClient drops the connection and its subscriptions. Role slots the
// connection holds are left as they are.
func (m *Manager) removeClient(client *Client) {
	m.Lock()
	_, ok := m.clients[client.ID]
	delete(m.clients, client.ID)
	m.Unlock()

	if !ok {
		return
	}

	client.close()
	client.LeaveAllRooms()
	client.connection.Close()

	log.Info().Str("client_id", client.ID).Msg("client disconnected")
}

func (m *Manager) ClientCount() int {
	m.RLock()
	defer m.RUnlock()

	return len(m.clients)
}

// Websocket connection handler
func (m *Manager) ServeWS(c *gin.Context) {
	conn, err := m.upgrader.Upgrade(c.Writer, c.Request, nil)

	if err != nil {
		// the upgrader has already written an error response
		log.Error().Err(err).Msg("error upgrading to websocket connection")
		return
	}

	client := NewClient(conn, m)

	m.addClient(client)

	log.Info().Str("client_id", client.ID).Str("remote", c.Request.RemoteAddr).Msg("client connected")

	ctx, cancel := context.WithCancel(context.Background())

	defer func() {
		cancel()
		closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		err := client.connection.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(writeWait))

		if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
			log.Debug().Err(err).Str("client_id", client.ID).Msg("sending close message")
		}

		m.removeClient(client)
	}()

	go client.readMessages(ctx)
	go client.writeMessages(ctx)

	err = <-client.Err()

	log.Debug().Err(err).Str("client_id", client.ID).Msg("client connection ended")
}

func (m *Manager) checkOrigin(r *http.Request) bool {
	return util.OriginAllowed(m.config.AllowedOrigins, r.Header.Get("Origin"))
}
