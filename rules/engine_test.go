package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func play(t *testing.T, g Game, moves ...string) {
	t.Helper()

	for _, mv := range moves {
		require.NoError(t, g.Move(Move{From: mv[:2], To: mv[2:4], Promotion: mv[4:]}), mv)
	}
}

func TestLoad(t *testing.T) {
	engine := NewEngine()

	t.Run("empty position is the starting position", func(t *testing.T) {
		g, err := engine.Load("")
		require.NoError(t, err)
		require.Equal(t, StartingPosition, g.Serialize())
		require.Equal(t, White, g.Turn())
	})

	t.Run("custom fen", func(t *testing.T) {
		fen := "k7/8/1Q6/8/8/8/8/7K b - - 0 1"
		g, err := engine.Load(fen)
		require.NoError(t, err)
		require.Equal(t, Black, g.Turn())
	})

	t.Run("garbage fen", func(t *testing.T) {
		_, err := engine.Load("not a position")
		require.ErrorIs(t, err, ErrInvalidPosition)
	})
}

func TestMove(t *testing.T) {
	engine := NewEngine()

	t.Run("legal move changes position and turn", func(t *testing.T) {
		g, err := engine.Load("")
		require.NoError(t, err)

		require.NoError(t, g.Move(Move{From: "e2", To: "e4"}))
		require.NotEqual(t, StartingPosition, g.Serialize())
		require.Equal(t, Black, g.Turn())
		require.False(t, g.IsCheckmate())
		require.False(t, g.IsDraw())
	})

	t.Run("illegal move leaves position untouched", func(t *testing.T) {
		g, err := engine.Load("")
		require.NoError(t, err)

		err = g.Move(Move{From: "e2", To: "e5"})
		require.ErrorIs(t, err, ErrIllegalMove)
		require.Equal(t, StartingPosition, g.Serialize())
	})

	t.Run("moving the wrong color is illegal", func(t *testing.T) {
		g, err := engine.Load("")
		require.NoError(t, err)

		err = g.Move(Move{From: "e7", To: "e5"})
		require.ErrorIs(t, err, ErrIllegalMove)
		require.Equal(t, White, g.Turn())
	})

	t.Run("promotion", func(t *testing.T) {
		g, err := engine.Load("8/P7/8/8/8/8/8/k6K w - - 0 1")
		require.NoError(t, err)

		require.NoError(t, g.Move(Move{From: "a7", To: "a8", Promotion: "q"}))
		require.True(t, strings.HasPrefix(g.Serialize(), "Q7/"), g.Serialize())
	})

	t.Run("under promotion", func(t *testing.T) {
		g, err := engine.Load("8/P7/8/8/8/8/8/k6K w - - 0 1")
		require.NoError(t, err)

		require.NoError(t, g.Move(Move{From: "a7", To: "a8", Promotion: "n"}))
		require.True(t, strings.HasPrefix(g.Serialize(), "N7/"), g.Serialize())
	})

	t.Run("promotion without a piece becomes a queen", func(t *testing.T) {
		g, err := engine.Load("8/P7/8/8/8/8/8/k6K w - - 0 1")
		require.NoError(t, err)

		require.NoError(t, g.Move(Move{From: "a7", To: "a8"}))
		require.True(t, strings.HasPrefix(g.Serialize(), "Q7/"), g.Serialize())
	})

	t.Run("promotion piece on an ordinary move is ignored", func(t *testing.T) {
		g, err := engine.Load("")
		require.NoError(t, err)

		require.NoError(t, g.Move(Move{From: "e2", To: "e4", Promotion: "q"}))
		require.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", g.Serialize())

		require.NoError(t, g.Move(Move{From: "g8", To: "f6", Promotion: "q"}))
		require.Equal(t, White, g.Turn())
	})

	t.Run("promotion piece does not make an illegal move legal", func(t *testing.T) {
		g, err := engine.Load("")
		require.NoError(t, err)

		err = g.Move(Move{From: "e2", To: "e5", Promotion: "q"})
		require.ErrorIs(t, err, ErrIllegalMove)
		require.Equal(t, StartingPosition, g.Serialize())
	})
}

func TestTermination(t *testing.T) {
	engine := NewEngine()

	t.Run("fool's mate", func(t *testing.T) {
		g, err := engine.Load("")
		require.NoError(t, err)

		play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

		require.True(t, g.IsCheckmate())
		require.False(t, g.IsDraw())
		require.Equal(t, White, g.Turn())

		err = g.Move(Move{From: "a2", To: "a3"})
		require.ErrorIs(t, err, ErrGameOver)
	})

	t.Run("stalemate is a draw", func(t *testing.T) {
		g, err := engine.Load("k7/8/1Q6/8/8/8/8/7K w - - 0 1")
		require.NoError(t, err)

		play(t, g, "b6c7")

		require.False(t, g.IsCheckmate())
		require.True(t, g.IsDraw())
	})

	t.Run("threefold repetition is a draw", func(t *testing.T) {
		g, err := engine.Load("")
		require.NoError(t, err)

		play(t, g, "g1f3", "g8f6", "f3g1", "f6g8")
		require.False(t, g.IsDraw())

		play(t, g, "g1f3", "g8f6", "f3g1", "f6g8")
		require.True(t, g.IsDraw())
	})

	t.Run("fifty move rule is a draw", func(t *testing.T) {
		g, err := engine.Load("k7/8/8/8/8/8/8/K6R w - - 99 80")
		require.NoError(t, err)
		require.False(t, g.IsDraw())

		play(t, g, "h1h2")
		require.True(t, g.IsDraw())
	})
}
