package room

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/judgegodwins/chess-rooms/rules"
)

// Registry maps room ids to rooms for the life of the process. Rooms are
// created on first reference and never removed.
type Registry struct {
	mu     sync.RWMutex
	rooms  map[string]*Room
	engine rules.Engine
	start  string
}

type Option func(*Registry)

// WithStartingPosition makes new rooms start from fen instead of the
// standard initial position.
func WithStartingPosition(fen string) Option {
	return func(r *Registry) {
		r.start = fen
	}
}

// NewRegistry fails when the starting position cannot be loaded.
func NewRegistry(engine rules.Engine, opts ...Option) (*Registry, error) {
	r := &Registry{
		rooms:  make(map[string]*Room),
		engine: engine,
		start:  rules.StartingPosition,
	}

	for _, opt := range opts {
		opt(r)
	}

	if _, err := engine.Load(r.start); err != nil {
		return nil, fmt.Errorf("starting position: %w", err)
	}

	return r, nil
}

// GetOrCreate returns the room with the given id, creating it if absent.
// Concurrent first calls for the same id all receive the same Room.
func (r *Registry) GetOrCreate(id string) (*Room, error) {
	if room, ok := r.Get(id); ok {
		return room, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if room, ok := r.rooms[id]; ok {
		return room, nil
	}

	game, err := r.engine.Load(r.start)
	if err != nil {
		log.Error().Err(err).Str("room_id", id).Msg("loading starting position")
		return nil, fmt.Errorf("creating room %v: %w", id, err)
	}

	room := newRoom(id, game)
	r.rooms[id] = room

	log.Info().Str("room_id", id).Msg("room created")

	return room, nil
}

func (r *Registry) Get(id string) (*Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	return room, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rooms)
}
