package board

import (
	"fmt"
	"os"
	"strings"

	"github.com/domino14/barragoon/navigation"
	"github.com/domino14/barragoon/tiles"
)

var (
	ColorSupport = os.Getenv("BARRAGOON_DISABLE_COLOR") != "on"
)

const (
	lightColor = "\x1b[1;33m"
	darkColor  = "\x1b[1;34m"
	faceColor  = "\x1b[0;31m"
	resetColor = "\x1b[0m"
)

func (s SquareContent) displayString(color bool) string {
	ch := string(s.CLIChar())
	if !color {
		return ch
	}
	switch s.Kind {
	case TileContent:
		if s.Tile.Player == tiles.Light {
			return lightColor + ch + resetColor
		}
		return darkColor + ch + resetColor
	case BarragoonContent:
		return faceColor + ch + resetColor
	}
	return ch
}

// ToDisplayText draws the board, rank 9 at the top, for the terminal.
// It colors pieces when ColorSupport is set.
func (p *Position) ToDisplayText() string {
	return p.DisplayText(ColorSupport)
}

// DisplayText draws the board, with ANSI colors only if color is set.
func (p *Position) DisplayText(color bool) string {
	var str strings.Builder
	border := "  " + strings.Repeat("┼───", navigation.BoardWidth) + "┼\n"
	str.WriteString(border)
	for r := navigation.BoardHeight - 1; r >= 0; r-- {
		fmt.Fprintf(&str, "%c ", navigation.RankNames[r])
		for f := 0; f < navigation.BoardWidth; f++ {
			str.WriteString("│ " + p.grid[r][f].displayString(color) + " ")
		}
		str.WriteString("│\n")
		str.WriteString(border)
	}
	str.WriteString("  ")
	for _, name := range navigation.FileNames {
		fmt.Fprintf(&str, "  %c ", name)
	}
	str.WriteString("\n")
	return "\n" + str.String()
}
