package room

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/judgegodwins/chess-rooms/rules"
)

func newRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()

	reg, err := NewRegistry(rules.NewEngine(), opts...)
	require.NoError(t, err)

	return reg
}

func getOrCreate(t *testing.T, reg *Registry, id string) *Room {
	t.Helper()

	rm, err := reg.GetOrCreate(id)
	require.NoError(t, err)

	return rm
}

// flakyEngine loads the first position and fails every load after it.
type flakyEngine struct {
	rules.Engine
	loads int
}

var errEngineDown = errors.New("engine down")

func (e *flakyEngine) Load(position string) (rules.Game, error) {
	e.loads++
	if e.loads > 1 {
		return nil, errEngineDown
	}
	return e.Engine.Load(position)
}

func TestRegistry(t *testing.T) {
	t.Run("get or create is idempotent", func(t *testing.T) {
		reg := newRegistry(t)

		a := getOrCreate(t, reg, "abc123")
		b := getOrCreate(t, reg, "abc123")

		require.Same(t, a, b)
		require.Equal(t, 1, reg.Len())
		require.Equal(t, rules.StartingPosition, a.Position())

		a.AssignRole("conn")
		require.Equal(t, RoleWhite, b.RoleOf("conn"))
	})

	t.Run("distinct ids get distinct rooms", func(t *testing.T) {
		reg := newRegistry(t)

		require.NotSame(t, getOrCreate(t, reg, "one"), getOrCreate(t, reg, "two"))
		require.Equal(t, 2, reg.Len())
	})

	t.Run("get does not create", func(t *testing.T) {
		reg := newRegistry(t)

		_, ok := reg.Get("missing")
		require.False(t, ok)
		require.Zero(t, reg.Len())
	})

	t.Run("concurrent first touch", func(t *testing.T) {
		reg := newRegistry(t)

		const n = 32
		rooms := make([]*Room, n)
		errs := make([]error, n)

		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				rooms[i], errs[i] = reg.GetOrCreate("fresh")
			}(i)
		}
		wg.Wait()

		for i, r := range rooms {
			require.NoError(t, errs[i])
			require.Same(t, rooms[0], r)
		}
		require.Equal(t, 1, reg.Len())
	})

	t.Run("custom starting position", func(t *testing.T) {
		fen := "k7/8/1Q6/8/8/8/8/7K w - - 0 1"
		reg := newRegistry(t, WithStartingPosition(fen))

		require.Equal(t, fen, getOrCreate(t, reg, "x").Position())
	})

	t.Run("invalid starting position", func(t *testing.T) {
		reg, err := NewRegistry(rules.NewEngine(), WithStartingPosition("not a position"))

		require.ErrorIs(t, err, rules.ErrInvalidPosition)
		require.Nil(t, reg)
	})

	t.Run("load failure is returned and creates nothing", func(t *testing.T) {
		reg, err := NewRegistry(&flakyEngine{Engine: rules.NewEngine()})
		require.NoError(t, err)

		rm, err := reg.GetOrCreate("abc123")
		require.ErrorIs(t, err, errEngineDown)
		require.Nil(t, rm)
		require.Zero(t, reg.Len())

		_, ok := reg.Get("abc123")
		require.False(t, ok)
	})
}
