package ws

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// EmitToRoom delivers evt to every client subscribed to roomID. The group is
// copied under the read lock so delivery never holds the manager lock.
func (m *Manager) EmitToRoom(roomID string, evt Event) {
	m.RLock()
	members := slices.Clone(m.Rooms[roomID])
	m.RUnlock()

	for _, client := range members {
		client.PushToEgress(evt)
	}

	log.Trace().Str("room_id", roomID).Str("event", evt.Type).Int("members", len(members)).Msg("broadcast")
}

func (m *Manager) emitToRoom(roomID, evtType string, payload any) error {
	evt, err := NewEvent(evtType, payload)
	if err != nil {
		return err
	}

	m.EmitToRoom(roomID, evt)
	return nil
}

// Members returns how many connections are subscribed to roomID, spectators included.
func (m *Manager) Members(roomID string) int {
	m.RLock()
	defer m.RUnlock()

	return len(m.Rooms[roomID])
}
