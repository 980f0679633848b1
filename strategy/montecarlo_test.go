package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"baduk/game"
)

func TestNewMonteCarlo(t *testing.T) {
	t.Run("defaulting the budget and workers", func(t *testing.T) {
		m, err := NewMonteCarlo()

		require.NoError(t, err)
		require.Equal(t, defaultIterations, m.iterations)
		require.Equal(t, 1, m.goroutines)
		require.Equal(t, defaultCutoff, m.cutoff)
	})

	t.Run("switching to a wall-clock budget", func(t *testing.T) {
		m, err := NewMonteCarlo(WithIterations(100), WithDuration(10*time.Millisecond))

		require.NoError(t, err)
		require.Zero(t, m.iterations, "a duration budget replaces the iteration budget")
		require.Equal(t, 10*time.Millisecond, m.duration)
	})
}

func TestMonteCarloSelectMove(t *testing.T) {
	t.Run("returning a legal move", func(t *testing.T) {
		m, err := NewMonteCarlo(WithIterations(30), WithSeed(9))
		require.NoError(t, err)

		s, err := game.NewBoard(5)
		require.NoError(t, err)
		for i := 0; i < 6; i++ {
			move := m.SelectMove(s, s.ToMove)
			s, err = game.Apply(s, move)
			require.NoError(t, err, "search returned an illegal move")
		}
	})

	t.Run("replaying identically for the same seed", func(t *testing.T) {
		s, err := game.NewBoard(5)
		require.NoError(t, err)

		a, err := NewMonteCarlo(WithIterations(40), WithSeed(7))
		require.NoError(t, err)
		b, err := NewMonteCarlo(WithIterations(40), WithSeed(7))
		require.NoError(t, err)

		require.Equal(t, a.SelectMove(s, game.Black), b.SelectMove(s, game.Black))
	})

	t.Run("searching with parallel workers", func(t *testing.T) {
		m, err := NewMonteCarlo(WithIterations(200), WithGoroutines(4), WithSeed(11))
		require.NoError(t, err)

		s, err := game.NewBoard(5)
		require.NoError(t, err)
		move := m.SelectMove(s, game.Black)

		_, err = game.Apply(s, move)
		require.NoError(t, err)
	})

	t.Run("searching within a wall-clock budget", func(t *testing.T) {
		m, err := NewMonteCarlo(WithDuration(20*time.Millisecond), WithGoroutines(2), WithSeed(3))
		require.NoError(t, err)

		s, err := game.NewBoard(5)
		require.NoError(t, err)

		start := time.Now()
		move := m.SelectMove(s, game.Black)
		elapsed := time.Since(start)

		_, err = game.Apply(s, move)
		require.NoError(t, err)
		require.Less(t, elapsed, time.Second, "the budget should bound the search")
	})

	t.Run("taking the capture given enough rollouts", func(t *testing.T) {
		// Capturing the white pair swings every rollout black's way; the
		// capture should dominate the visit counts quickly.
		s := mustParse(t, game.Black,
			". X X .",
			"X O O .",
			". X X .",
			". . . .",
		)

		m, err := NewMonteCarlo(WithIterations(800), WithSeed(17))
		require.NoError(t, err)

		require.Equal(t, game.Place(1, 3), m.SelectMove(s, game.Black))
	})

	t.Run("passing when no placement is legal", func(t *testing.T) {
		m, err := NewMonteCarlo(WithIterations(10), WithSeed(1))
		require.NoError(t, err)

		require.Equal(t, game.Pass(), m.SelectMove(deadEnd(t), game.White))
	})
}
