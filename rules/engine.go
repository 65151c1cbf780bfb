package rules

import (
	"fmt"
	"strings"

	"github.com/corentings/chess/v2"
)

type chessEngine struct{}

// NewEngine returns an Engine backed by corentings/chess.
func NewEngine() Engine {
	return chessEngine{}
}

func (chessEngine) Load(position string) (Game, error) {
	position = strings.TrimSpace(position)

	if position == "" || position == StartingPosition {
		return &chessGame{game: chess.NewGame()}, nil
	}

	option, err := chess.FEN(position)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
	}

	return &chessGame{game: chess.NewGame(option)}, nil
}

type chessGame struct {
	game *chess.Game
}

func (g *chessGame) Turn() Color {
	if g.game.Position().Turn() == chess.White {
		return White
	}
	return Black
}

func (g *chessGame) Move(m Move) error {
	if g.game.Outcome() != chess.NoOutcome {
		return ErrGameOver
	}

	uci, ok := g.legalMove(m)
	if !ok {
		return fmt.Errorf("%w: %v-%v", ErrIllegalMove, m.From, m.To)
	}

	if err := g.game.PushNotationMove(uci, chess.UCINotation{}, nil); err != nil {
		return fmt.Errorf("%w %v: %v", ErrIllegalMove, uci, err)
	}

	return nil
}

// legalMove finds m among the legal moves of the current position and
// returns it in UCI form. The promotion piece only matters when the legal
// move promotes; a promotion without one defaults to a queen.
func (g *chessGame) legalMove(m Move) (string, bool) {
	from := strings.ToLower(m.From)
	to := strings.ToLower(m.To)

	promo := strings.ToLower(m.Promotion)
	if promo == "" {
		promo = "q"
	}

	for _, legal := range g.game.ValidMoves() {
		if legal.S1().String() != from || legal.S2().String() != to {
			continue
		}

		if legal.Promo() != chess.NoPieceType && strings.ToLower(legal.Promo().String()) != promo {
			continue
		}

		return legal.String(), true
	}

	return "", false
}

func (g *chessGame) IsCheckmate() bool {
	return g.game.Method() == chess.Checkmate
}

// IsDraw reports automatic draws (stalemate, insufficient material) as well
// as the claimable ones: threefold repetition and the fifty-move rule.
func (g *chessGame) IsDraw() bool {
	if g.game.Outcome() == chess.Draw {
		return true
	}

	for _, method := range g.game.EligibleDraws() {
		if method == chess.ThreefoldRepetition || method == chess.FiftyMoveRule {
			return true
		}
	}

	return false
}

func (g *chessGame) Serialize() string {
	return g.game.FEN()
}
