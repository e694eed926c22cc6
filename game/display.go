package game

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/barragoon/board"
	"github.com/domino14/barragoon/tiles"
)

func splitSubN(s string, n int) []string {
	runes := []rune(s)
	var subs []string
	for len(runes) > n {
		subs = append(subs, string(runes[:n]))
		runes = runes[n:]
	}
	if len(runes) > 0 {
		subs = append(subs, string(runes))
	}
	return subs
}

func addText(lines []string, row int, hpad int, text string) {
	maxTextSize := 42
	for _, chunk := range splitSubN(text, maxTextSize) {
		if row >= len(lines) {
			return
		}
		lines[row] = lines[row] + strings.Repeat(" ", hpad) + chunk
		row++
	}
}

// ToDisplayText turns the current state of the game into a displayable
// string.
func (g *Game) ToDisplayText() string {
	return g.DisplayText(board.ColorSupport)
}

// DisplayText is ToDisplayText with colors chosen by the caller.
func (g *Game) DisplayText(color bool) string {
	bt := g.pos.DisplayText(color)
	// insert the side info to the right of the board rows
	bts := strings.Split(bt, "\n")
	hpadding := 3
	vpadding := 2

	log.Debug().Str("onturn", g.pos.CurrentPlayer.String()).Msg("todisplaytext")
	addText(bts, vpadding, hpadding, fmt.Sprintf("Turn %d: %s to move", g.turnnum+1, g.pos.CurrentPlayer))
	addText(bts, vpadding+2, hpadding, fmt.Sprintf("Light tiles: %d", g.pos.TileCount(tiles.Light)))
	addText(bts, vpadding+4, hpadding, fmt.Sprintf("Dark tiles: %d", g.pos.TileCount(tiles.Dark)))

	if m, ok := g.LastMove(); ok {
		addText(bts, vpadding+8, hpadding, "Last move: "+m.String())
	}
	if g.playing == GameOver {
		addText(bts, vpadding+10, hpadding, fmt.Sprintf("Game is over. %s wins.", g.winner))
	}

	return strings.Join(append(bts, g.pos.FullFEN()), "\n")
}
