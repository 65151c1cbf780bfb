package room

import (
	"strings"

	"github.com/judgegodwins/chess-rooms/rules"
)

type Role string

const (
	RoleWhite     Role = "white"
	RoleBlack     Role = "black"
	RoleSpectator Role = "spectator"
)

// ParseRole accepts the long names and the single-letter color codes older
// clients send. Unknown input yields the zero Role, which never authorizes a move.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return RoleWhite
	case "black", "b":
		return RoleBlack
	case "spectator":
		return RoleSpectator
	default:
		return ""
	}
}

func roleFor(c rules.Color) Role {
	if c == rules.White {
		return RoleWhite
	}
	return RoleBlack
}

type Outcome string

const (
	OutcomeNone  Outcome = ""
	OutcomeWhite Outcome = "white"
	OutcomeBlack Outcome = "black"
	OutcomeDraw  Outcome = "draw"
)
