package rules

import (
	"errors"
	"strings"
)

const StartingPosition = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	ErrIllegalMove     = errors.New("illegal move")
	ErrGameOver        = errors.New("game is over")
	ErrInvalidPosition = errors.New("invalid position")
)

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

// Move is a from/to square pair with an optional promotion piece.
type Move struct {
	From      string `json:"from" validate:"required,len=2"`
	To        string `json:"to" validate:"required,len=2"`
	Promotion string `json:"promotion,omitempty" validate:"omitempty,oneof=q r b n"`
}

// UCI renders the move as submitted in long algebraic form, e.g. "e7e8q".
// Clients may attach a promotion piece to moves that do not promote, so this
// is not always what the engine plays.
func (m Move) UCI() string {
	return strings.ToLower(m.From + m.To + m.Promotion)
}

// Engine loads positions into playable games.
type Engine interface {
	Load(position string) (Game, error)
}

// Game is a single position plus its history. Move never mutates the game
// when it returns an error.
type Game interface {
	Turn() Color
	Move(m Move) error
	IsCheckmate() bool
	IsDraw() bool
	Serialize() string
}
