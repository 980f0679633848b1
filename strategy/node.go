package strategy

import (
	"math"
	"sync"

	"baduk/game"
)

// Rewards backed up the tree.
const (
	win  = 1.0
	draw = 0.5
	loss = 0.0
)

// node is one position in the search tree. Stats are guarded by the
// embedded lock so rollout workers can share the tree; a virtual loss is
// applied on the way down and reversed during backup, which keeps
// concurrent workers from piling onto the same branch.
type node struct {
	sync.RWMutex
	parent *node
	player game.Color // side whose move produced this node
	side   game.Color // side to move here

	unexplored []game.Move
	moves      []game.Move // explored, parallel to children
	children   []*node

	rewards float64
	visits  float64
}

func newNode(parent *node, state *game.BoardState, player game.Color) *node {
	n := &node{
		parent: parent,
		player: player,
		side:   state.ToMove,
	}
	if !game.IsTerminal(state) {
		n.unexplored = game.LegalMoves(state, state.ToMove)
	}
	return n
}

// selectOrExpand descends one level: it expands the first untried move if
// any remain, otherwise selects the child with the best UCB score.
// Terminal nodes return themselves. The returned bool reports selection
// (true) versus expansion or stagnation (false).
func (n *node) selectOrExpand(state *game.BoardState, c float64) (*node, *game.BoardState, bool) {
	n.Lock()
	defer n.Unlock()

	if len(n.unexplored) == 0 && len(n.children) == 0 { // terminal
		return n, state, false
	}

	if len(n.unexplored) > 0 {
		move := n.unexplored[0]
		n.unexplored = n.unexplored[1:]
		childState, err := game.Apply(state, move)
		if err != nil {
			// LegalMoves vouched for the move; treat a rejection as a dead branch.
			return n, state, false
		}
		child := newNode(n, childState, n.side)
		n.moves = append(n.moves, move)
		n.children = append(n.children, child)
		child.applyLoss()
		return child, childState, false
	}

	ith := n.pickChild(c)
	child := n.children[ith]
	childState, err := game.Apply(state, n.moves[ith])
	if err != nil {
		return n, state, false
	}
	child.applyLoss()
	return child, childState, true
}

// pickChild returns the index of the child maximizing UCB1 from the
// perspective of the side to move at this node.
func (n *node) pickChild(c float64) int {
	normalizer := c * c * math.Log(n.visits)

	maxIndex := 0
	maxScore := math.Inf(-1)
	for i, child := range n.children {
		score := child.score(normalizer)
		if math.IsInf(score, 1) {
			return i
		}
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (n *node) score(normalizer float64) float64 {
	n.RLock()
	defer n.RUnlock()

	return ucb1(n.rewards, n.visits, normalizer)
}

func (n *node) applyLoss() {
	n.Lock()
	defer n.Unlock()

	n.rewards += loss
	n.visits++
}

// backup records the rollout outcome, reversing the virtual loss first on
// non-root nodes, and returns the parent for the walk to the root.
func (n *node) backup(reward func(game.Color) float64) *node {
	n.Lock()
	defer n.Unlock()

	if n.parent != nil {
		n.rewards -= loss
		n.visits--
	}

	n.rewards += reward(n.player)
	n.visits++

	return n.parent
}

func (n *node) visitCount() float64 {
	n.RLock()
	defer n.RUnlock()

	return n.visits
}

// bestMove returns the most visited root move. ok is false when nothing
// was explored.
func (n *node) bestMove() (game.Move, bool) {
	n.RLock()
	defer n.RUnlock()

	if len(n.children) == 0 {
		return game.Move{}, false
	}
	bestIndex := 0
	maxVisits := n.children[0].visitCount()
	for i, child := range n.children[1:] {
		if v := child.visitCount(); v > maxVisits {
			maxVisits = v
			bestIndex = i + 1
		}
	}
	return n.moves[bestIndex], true
}

// ucb1 balances exploitation (mean reward) with exploration of
// under-visited children. Unvisited children sort first.
func ucb1(rewards, visits, normalizer float64) float64 {
	if visits == 0 {
		return math.Inf(1)
	}
	return rewards/visits + math.Sqrt(normalizer/visits)
}
