package game

// Color is the content of a board point.
type Color int8

const (
	Empty Color = iota
	Black
	White
)

// Opponent returns the other stone color. Calling it on Empty is a
// programming error.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		panic("no opponent for empty")
	}
}

func (c Color) String() string {
	switch c {
	case Black:
		return "BLACK"
	case White:
		return "WHITE"
	default:
		return "EMPTY"
	}
}
