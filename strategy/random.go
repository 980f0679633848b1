package strategy

import (
	"golang.org/x/exp/rand"

	"baduk/game"
)

// Random draws uniformly among the legal placements, passing only when
// none exist. Deterministic for a given seed because LegalMoves returns
// moves in a fixed order.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) SelectMove(s *game.BoardState, side game.Color) game.Move {
	moves := placements(s, side)
	if len(moves) == 0 {
		return game.Pass()
	}
	return moves[r.rng.Intn(len(moves))]
}
