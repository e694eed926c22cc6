package game

import (
	"fmt"
	"strings"

	"github.com/domino14/barragoon/move"
	"github.com/domino14/barragoon/tiles"
)

// Turn is one entry of the game history.
type Turn struct {
	Player tiles.Player
	Move   move.Move
}

func (t Turn) String() string {
	return fmt.Sprintf("%s %s", t.Player, t.Move)
}

// History returns the played turns, oldest first. The slice must not be
// modified.
func (g *Game) History() []Turn {
	return g.history
}

// LastMove returns the most recently played move, if any.
func (g *Game) LastMove() (move.Move, bool) {
	if len(g.history) == 0 {
		return move.Move{}, false
	}
	return g.history[len(g.history)-1].Move, true
}

// MoveList renders the history as numbered move pairs, light first.
func (g *Game) MoveList() string {
	var sb strings.Builder
	for i, t := range g.history {
		if i%2 == 0 {
			if i > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "%d.", i/2+1)
		}
		sb.WriteString(" " + t.Move.String())
	}
	return sb.String()
}
