// Package display renders board positions as text. Rendering is pure
// formatting over a BoardState and sits entirely outside the rules'
// correctness surface.
package display

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"baduk/game"
)

const columnLabels = "ABCDEFGHJKLMNOPQRSTUVWXYZ" // no I, per board convention

// Render returns a plain text dump of the grid with coordinate labels.
func Render(s *game.BoardState) string {
	return render(s, func(c game.Color) string {
		switch c {
		case game.Black:
			return "X"
		case game.White:
			return "O"
		default:
			return "."
		}
	})
}

// RenderColor renders the grid with ANSI-styled stones for the given
// terminal profile. With termenv.Ascii it degrades to Render.
func RenderColor(s *game.BoardState, profile termenv.Profile) string {
	if profile == termenv.Ascii {
		return Render(s)
	}
	return render(s, func(c game.Color) string {
		switch c {
		case game.Black:
			return termenv.String("●").Foreground(profile.Color("8")).String()
		case game.White:
			return termenv.String("●").Foreground(profile.Color("15")).String()
		default:
			return "·"
		}
	})
}

func render(s *game.BoardState, stone func(game.Color) string) string {
	var b strings.Builder

	b.WriteString("   ")
	for col := 0; col < s.Size; col++ {
		b.WriteByte(columnLabels[col])
		b.WriteByte(' ')
	}
	b.WriteByte('\n')

	for row := 0; row < s.Size; row++ {
		fmt.Fprintf(&b, "%2d ", s.Size-row)
		for col := 0; col < s.Size; col++ {
			b.WriteString(stone(s.At(row, col)))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "%s to move, move %d\n", s.ToMove, s.MoveNumber)
	return b.String()
}
