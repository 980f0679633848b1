package strategy

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"baduk/game"
)

func TestQTable(t *testing.T) {
	t.Run("storing and retrieving values", func(t *testing.T) {
		table := NewQTable()
		s := mustParse(t, game.Black,
			"X . .",
			". O .",
			". . .",
		)

		_, ok := table.Get(s, game.Place(2, 2))
		require.False(t, ok)

		table.Set(s, game.Place(2, 2), 0.75)
		value, ok := table.Get(s, game.Place(2, 2))
		require.True(t, ok)
		require.Equal(t, 0.75, value)
		require.Equal(t, 1, table.Len())
	})

	t.Run("keeping entries apart", func(t *testing.T) {
		table := NewQTable()
		black := mustParse(t, game.Black, ". . .", ". . .", ". . .")
		white := mustParse(t, game.White, ". . .", ". . .", ". . .")

		table.Set(black, game.Place(0, 0), 1)
		table.Set(black, game.Pass(), 2)
		table.Set(white, game.Place(0, 0), 3)

		require.Equal(t, 3, table.Len(), "side to move and move must both key the entry")

		value, ok := table.Get(black, game.Place(0, 0))
		require.True(t, ok)
		require.Equal(t, 1.0, value)
	})

	t.Run("surviving a save and load", func(t *testing.T) {
		table := NewQTable()
		s := mustParse(t, game.White, "X . .", ". . .", ". . O")
		table.Set(s, game.Place(1, 1), -0.25)
		table.Set(s, game.Pass(), 0.5)

		path := filepath.Join(t.TempDir(), "qtable.gob")
		require.NoError(t, table.Save(path))

		loaded := NewQTable()
		require.NoError(t, loaded.Load(path))

		require.Equal(t, table.Len(), loaded.Len())
		value, ok := loaded.Get(s, game.Place(1, 1))
		require.True(t, ok)
		require.Equal(t, -0.25, value)
	})

	t.Run("failing to load a missing file", func(t *testing.T) {
		table := NewQTable()

		err := table.Load(filepath.Join(t.TempDir(), "missing.gob"))
		require.Error(t, err)
	})
}

func TestNewLearner(t *testing.T) {
	t.Run("rejecting a nil table", func(t *testing.T) {
		_, err := NewLearner(nil)

		var confErr *game.ConfigurationError
		require.ErrorAs(t, err, &confErr)
	})

	t.Run("defaulting the learning parameters", func(t *testing.T) {
		l, err := NewLearner(NewQTable())

		require.NoError(t, err)
		require.Equal(t, defaultAlpha, l.alpha)
		require.Equal(t, defaultGamma, l.gamma)
		require.Equal(t, defaultEpsilon, l.Epsilon())
	})
}

func TestLearnerObserve(t *testing.T) {
	t.Run("applying the temporal-difference update", func(t *testing.T) {
		table := NewQTable()
		l, err := NewLearner(table, WithAlpha(0.5), WithGamma(0.9))
		require.NoError(t, err)

		prev := mustParse(t, game.Black, ". . .", ". O .", ". . .")
		move := game.Place(0, 0)
		next, err := game.Apply(prev, move)
		require.NoError(t, err)

		// Seed the current estimate and one dominant follow-up so the
		// update terms are all known.
		table.Set(prev, move, 0.5)
		future := aligned(next, game.Black)
		table.Set(future, game.Place(2, 2), 10)

		l.Observe(prev, move, next, game.Black)

		reward := game.Heuristic(next, game.Black) / rewardScale
		expected := 0.5 + 0.5*(reward+0.9*10-0.5)
		got, ok := table.Get(prev, move)
		require.True(t, ok)
		require.InDelta(t, expected, got, 1e-9)
	})

	t.Run("using the bare outcome at the end of the game", func(t *testing.T) {
		table := NewQTable()
		l, err := NewLearner(table, WithAlpha(1.0))
		require.NoError(t, err)

		// Black owns the whole board; a second consecutive pass ends the
		// game with a black win and no future term.
		prev := mustParse(t, game.Black, "X . .", ". . .", ". . .")
		prev.Passes = 1
		move := game.Pass()
		next, err := game.Apply(prev, move)
		require.NoError(t, err)
		require.True(t, game.IsTerminal(next))

		table.Set(prev, move, 0.0)
		l.Observe(prev, move, next, game.Black)

		got, ok := table.Get(prev, move)
		require.True(t, ok)
		require.InDelta(t, 1.0, got, 1e-9, "a won terminal state should back up the full reward")
	})
}

func TestLearnerSelectMove(t *testing.T) {
	t.Run("exploiting the table when exploration is off", func(t *testing.T) {
		table := NewQTable()
		l, err := NewLearner(table, WithEpsilon(0))
		require.NoError(t, err)

		s := mustParse(t, game.Black, ". . .", ". . .", ". . .")
		for _, m := range placements(s, game.Black) {
			table.Set(s, m, 0)
		}
		table.Set(s, game.Place(1, 1), 5)

		require.Equal(t, game.Place(1, 1), l.SelectMove(s, game.Black))
	})

	t.Run("replaying identically for the same seed", func(t *testing.T) {
		a, err := NewLearner(NewQTable(), WithLearnerSeed(21))
		require.NoError(t, err)
		b, err := NewLearner(NewQTable(), WithLearnerSeed(21))
		require.NoError(t, err)

		s, err := game.NewBoard(4)
		require.NoError(t, err)
		for i := 0; i < 8; i++ {
			moveA := a.SelectMove(s, s.ToMove)
			moveB := b.SelectMove(s, s.ToMove)
			require.Equal(t, moveA, moveB, "move %d diverged", i)

			s, err = game.Apply(s, moveA)
			require.NoError(t, err)
		}
	})

	t.Run("passing when no placement is legal", func(t *testing.T) {
		l, err := NewLearner(NewQTable())
		require.NoError(t, err)

		require.Equal(t, game.Pass(), l.SelectMove(deadEnd(t), game.White))
	})
}

func TestLearnerEpsilonDecay(t *testing.T) {
	l, err := NewLearner(NewQTable(), WithEpsilon(1.0), WithEpsilonDecay(0.5, 0.2))
	require.NoError(t, err)

	l.EndEpisode()
	require.InDelta(t, 0.5, l.Epsilon(), 1e-9)
	l.EndEpisode()
	require.InDelta(t, 0.25, l.Epsilon(), 1e-9)
	l.EndEpisode()
	require.InDelta(t, 0.2, l.Epsilon(), 1e-9, "decay must stop at the floor")
	l.EndEpisode()
	require.InDelta(t, 0.2, l.Epsilon(), 1e-9)
}
