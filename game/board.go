package game

import (
	"hash/fnv"
)

// StateHash is a cheap 64-bit fingerprint of a board position, used as a
// memo key by the depth-bounded search strategies.
type StateHash uint64

// BoardState is a snapshot of a position: the grid, whose turn it is, the
// pass history and the move counter. States are never mutated after Apply
// returns them - lookahead always works on copies, so the authoritative
// state held by a driver stays intact.
type BoardState struct {
	Size       int
	ToMove     Color
	Passes     int
	MoveNumber int

	grid []Color // row-major, Size*Size
	prev []Color // grid before the last applied move, nil on a fresh board (simple ko)
}

// MaxBoardSize bounds NewBoard. 25 covers every size GTP names.
const MaxBoardSize = 25

// NewBoard returns an empty size x size board with Black to move.
func NewBoard(size int) (*BoardState, error) {
	if size < 2 || size > MaxBoardSize {
		return nil, &ConfigurationError{Setting: "board size", Value: size}
	}
	return &BoardState{
		Size:   size,
		ToMove: Black,
		grid:   make([]Color, size*size),
	}, nil
}

// Copy returns a deep copy sharing nothing mutable with the receiver.
func (s *BoardState) Copy() *BoardState {
	grid := make([]Color, len(s.grid))
	copy(grid, s.grid)

	var prev []Color
	if s.prev != nil {
		prev = make([]Color, len(s.prev))
		copy(prev, s.prev)
	}

	return &BoardState{
		Size:       s.Size,
		ToMove:     s.ToMove,
		Passes:     s.Passes,
		MoveNumber: s.MoveNumber,
		grid:       grid,
		prev:       prev,
	}
}

// At returns the content of the point at (row, col).
func (s *BoardState) At(row, col int) Color {
	return s.grid[row*s.Size+col]
}

func (s *BoardState) onBoard(row, col int) bool {
	return row >= 0 && row < s.Size && col >= 0 && col < s.Size
}

// neighbors appends the orthogonal on-board neighbors of (row, col) to
// buf and returns it. buf lets hot loops reuse one backing array.
func (s *BoardState) neighbors(row, col int, buf [][2]int) [][2]int {
	buf = buf[:0]
	if row > 0 {
		buf = append(buf, [2]int{row - 1, col})
	}
	if row < s.Size-1 {
		buf = append(buf, [2]int{row + 1, col})
	}
	if col > 0 {
		buf = append(buf, [2]int{row, col - 1})
	}
	if col < s.Size-1 {
		buf = append(buf, [2]int{row, col + 1})
	}
	return buf
}

// group returns the maximal connected same-color group containing
// (row, col) and its liberty count. Groups are derived on demand and
// never stored, so liberty counts cannot go stale across moves.
func (s *BoardState) group(row, col int) (stones []int, liberties int) {
	color := s.At(row, col)
	if color == Empty {
		return nil, 0
	}

	seen := make([]bool, len(s.grid))
	libSeen := make([]bool, len(s.grid))
	stack := []int{row*s.Size + col}
	seen[stack[0]] = true

	var nbuf [][2]int
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stones = append(stones, idx)

		nbuf = s.neighbors(idx/s.Size, idx%s.Size, nbuf)
		for _, n := range nbuf {
			nidx := n[0]*s.Size + n[1]
			switch s.grid[nidx] {
			case color:
				if !seen[nidx] {
					seen[nidx] = true
					stack = append(stack, nidx)
				}
			case Empty:
				if !libSeen[nidx] {
					libSeen[nidx] = true
					liberties++
				}
			}
		}
	}
	return stones, liberties
}

// Stones returns the number of stones of the given color on the board.
func (s *BoardState) Stones(color Color) int {
	count := 0
	for _, c := range s.grid {
		if c == color {
			count++
		}
	}
	return count
}

// keyBytes is the canonical encoding of grid + side to move. Two distinct
// positions never encode the same, and identical positions always do.
func (s *BoardState) keyBytes() []byte {
	b := make([]byte, len(s.grid)+1)
	for i, c := range s.grid {
		b[i] = byte(c)
	}
	b[len(s.grid)] = byte(s.ToMove)
	return b
}

// Key returns the canonical string encoding of the position, suitable as
// a collision-free Q-table key.
func (s *BoardState) Key() string {
	return string(s.keyBytes())
}

// Hash returns an FNV-1a fingerprint of the position. Unlike Key it can
// collide, so it only backs search memo tables, never the Q-table.
func (s *BoardState) Hash() StateHash {
	hasher := fnv.New64a()
	hasher.Write(s.keyBytes())
	return StateHash(hasher.Sum64())
}

func sameGrid(a, b []Color) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
