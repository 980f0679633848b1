package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"baduk/game"
)

func TestUCB1(t *testing.T) {
	t.Run("sorting unvisited children first", func(t *testing.T) {
		require.True(t, math.IsInf(ucb1(0, 0, 1), 1))
	})

	t.Run("preferring the higher mean at equal visits", func(t *testing.T) {
		normalizer := 1.5 * 1.5 * math.Log(20)
		require.Greater(t, ucb1(8, 10, normalizer), ucb1(5, 10, normalizer))
	})

	t.Run("preferring the less visited child at equal means", func(t *testing.T) {
		normalizer := 1.5 * 1.5 * math.Log(20)
		require.Greater(t, ucb1(1, 2, normalizer), ucb1(5, 10, normalizer))
	})
}

func TestNode(t *testing.T) {
	t.Run("expanding every legal move before selecting", func(t *testing.T) {
		s := mustParse(t, game.Black,
			"X O .",
			"O X .",
			". . X",
		)
		root := newNode(nil, s, game.White)

		legal := len(game.LegalMoves(s, game.Black))
		for i := 0; i < legal; i++ {
			child, childState, selected := root.selectOrExpand(s, 1.5)

			require.False(t, selected, "expansion %d should not be a selection", i)
			require.NotSame(t, root, child)
			require.Equal(t, game.Black, child.player)
			require.Equal(t, childState.ToMove, child.side)

			for n := child; n != nil; {
				n = n.backup(func(game.Color) float64 { return draw })
			}
		}

		require.Empty(t, root.unexplored)
		require.Len(t, root.children, legal)

		_, _, selected := root.selectOrExpand(s, 1.5)
		require.True(t, selected, "a fully expanded node selects")
	})

	t.Run("treating a finished position as a leaf", func(t *testing.T) {
		s := mustParse(t, game.Black, "X . .", ". . .", ". . .")
		s.Passes = 2

		n := newNode(nil, s, game.White)
		leaf, leafState, selected := n.selectOrExpand(s, 1.5)

		require.Same(t, n, leaf)
		require.Same(t, s, leafState)
		require.False(t, selected)
	})

	t.Run("choosing the most visited move", func(t *testing.T) {
		s := mustParse(t, game.Black, ". .", ". .")
		root := newNode(nil, s, game.White)

		// Expand all children, then reward only the first one repeatedly.
		for len(root.unexplored) > 0 {
			child, _, _ := root.selectOrExpand(s, 1.5)
			child.backup(func(game.Color) float64 { return loss })
		}
		favorite := root.children[0]
		for i := 0; i < 5; i++ {
			favorite.applyLoss()
			favorite.backup(func(game.Color) float64 { return win })
		}

		move, ok := root.bestMove()
		require.True(t, ok)
		require.Equal(t, root.moves[0], move)
	})

	t.Run("reversing the virtual loss on backup", func(t *testing.T) {
		s := mustParse(t, game.Black, ". .", ". .")
		root := newNode(nil, s, game.White)
		child, _, _ := root.selectOrExpand(s, 1.5)

		require.Equal(t, 1.0, child.visitCount(), "expansion applies a virtual visit")

		parent := child.backup(func(game.Color) float64 { return win })
		require.Same(t, root, parent)
		require.Equal(t, 1.0, child.visitCount(), "backup replaces the virtual visit")
		require.Equal(t, win, child.rewards)

		require.Nil(t, root.backup(func(game.Color) float64 { return win }))
	})

	t.Run("reporting no move on an unexplored root", func(t *testing.T) {
		s := mustParse(t, game.Black, ". .", ". .")
		root := newNode(nil, s, game.White)

		_, ok := root.bestMove()
		require.False(t, ok)
	})
}
