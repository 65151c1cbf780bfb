package room

import (
	"errors"
	"sync"

	"github.com/judgegodwins/chess-rooms/rules"
)

// Rejection reasons reported in MoveResult. They are never sent to clients.
var (
	ErrTerminal     = errors.New("game already finished")
	ErrNotYourTurn  = errors.New("connection does not hold the side to move")
	ErrRoleMismatch = errors.New("claimed role differs from assigned role")
)

// Room is one game: a position and the two player slots. All fields are
// guarded by mu as a single unit.
type Room struct {
	ID string

	mu      sync.Mutex
	game    rules.Game
	white   string
	black   string
	outcome Outcome
}

func newRoom(id string, game rules.Game) *Room {
	return &Room{
		ID:   id,
		game: game,
	}
}

type MoveResult struct {
	Accepted bool
	Position string
	Outcome  Outcome
	// Reason is set when the move was rejected.
	Reason error
}

type Snapshot struct {
	ID         string  `json:"id"`
	Position   string  `json:"position"`
	Turn       Role    `json:"turn"`
	WhiteTaken bool    `json:"white_taken"`
	BlackTaken bool    `json:"black_taken"`
	Outcome    Outcome `json:"outcome,omitempty"`
}

// AssignRole binds connID to the first free player slot. Slots are never
// reassigned once bound. A connection already holding a slot keeps it.
func (r *Room) AssignRole(connID string) Role {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.assignRole(connID)
}

func (r *Room) assignRole(connID string) Role {
	if connID == "" {
		return RoleSpectator
	}

	if role := r.roleOf(connID); role != RoleSpectator {
		return role
	}

	switch {
	case r.white == "":
		r.white = connID
		return RoleWhite
	case r.black == "":
		r.black = connID
		return RoleBlack
	default:
		return RoleSpectator
	}
}

// Join assigns a role and reads the current position in one critical
// section. onJoin, if non-nil, runs inside that section too; subscribing and
// queueing the joiner's snapshot there means no broadcast can overtake it.
// onJoin must not call back into the room.
func (r *Room) Join(connID string, onJoin func(role Role, position string)) (Role, string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	role := r.assignRole(connID)
	position := r.game.Serialize()

	if onJoin != nil {
		onJoin(role, position)
	}

	return role, position
}

func (r *Room) RoleOf(connID string) Role {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.roleOf(connID)
}

func (r *Room) roleOf(connID string) Role {
	switch {
	case connID != "" && r.white == connID:
		return RoleWhite
	case connID != "" && r.black == connID:
		return RoleBlack
	default:
		return RoleSpectator
	}
}

// ApplyMove validates and applies mv on behalf of connID. A non-empty
// claimed role must match the role bound to the connection. Rejected moves
// leave the room untouched. onAccept, if non-nil, runs under the room lock
// after an accepted move and must not call back into the room.
func (r *Room) ApplyMove(connID string, claimed Role, mv rules.Move, onAccept func(MoveResult)) MoveResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.outcome != OutcomeNone {
		return MoveResult{Reason: ErrTerminal}
	}

	role := r.roleOf(connID)

	if claimed != "" && claimed != role {
		return MoveResult{Reason: ErrRoleMismatch}
	}

	mover := roleFor(r.game.Turn())

	if role != mover {
		return MoveResult{Reason: ErrNotYourTurn}
	}

	if err := r.game.Move(mv); err != nil {
		return MoveResult{Reason: err}
	}

	switch {
	case r.game.IsCheckmate():
		r.outcome = Outcome(mover)
	case r.game.IsDraw():
		r.outcome = OutcomeDraw
	}

	res := MoveResult{
		Accepted: true,
		Position: r.game.Serialize(),
		Outcome:  r.outcome,
	}

	if onAccept != nil {
		onAccept(res)
	}

	return res
}

func (r *Room) Position() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.game.Serialize()
}

func (r *Room) Outcome() Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.outcome
}

func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		ID:         r.ID,
		Position:   r.game.Serialize(),
		Turn:       roleFor(r.game.Turn()),
		WhiteTaken: r.white != "",
		BlackTaken: r.black != "",
		Outcome:    r.outcome,
	}
}
