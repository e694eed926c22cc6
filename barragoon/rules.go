package barragoon

import (
	"fmt"

	"github.com/domino14/barragoon/navigation"
	"github.com/domino14/barragoon/tiles"
)

// Directions passed to the rules are directions of travel: a tile moving
// north enters a square with enter == North.

type traversal uint8

const (
	horizontalPass traversal = iota
	verticalPass
	leftTurn
	rightTurn
)

// classify sorts a pair of travel directions into a pass along an axis
// or a quarter turn. Pairs on one axis count as a pass in either
// orientation.
func classify(enter, leave navigation.Direction) traversal {
	switch {
	case enter.TurnLeft() == leave:
		return leftTurn
	case enter.TurnRight() == leave:
		return rightTurn
	case enter == navigation.East || enter == navigation.West:
		return horizontalPass
	}
	return verticalPass
}

// CanBeCapturedFrom reports whether a tile entering with the given
// direction may capture the face.
func (f Face) CanBeCapturedFrom(enter navigation.Direction) bool {
	switch f.Kind {
	case Blocking, ForceTurn:
		return true
	case Straight:
		if f.Alignment == Vertical {
			return enter == navigation.North || enter == navigation.South
		}
		return enter == navigation.West || enter == navigation.East
	case OneWay:
		return enter == f.Direction
	case OneWayTurnLeft:
		// a left turn ending in Direction starts from Direction turned right
		return enter == f.Direction.TurnRight()
	case OneWayTurnRight:
		return enter == f.Direction.TurnLeft()
	}
	panic(fmt.Sprintf("unexpected face kind %d", f.Kind))
}

// CanBeCapturedBy reports whether a tile type may capture the face. Only
// the two-tile is barred, and only from force-turn faces.
func (f Face) CanBeCapturedBy(tt tiles.TileType) bool {
	return !(tt == tiles.Two && f.Kind == ForceTurn)
}

// CanBeTraversed reports whether a tile may enter the face's square with
// enter and leave it with leave.
func (f Face) CanBeTraversed(enter, leave navigation.Direction) bool {
	t := classify(enter, leave)
	pass := t == horizontalPass || t == verticalPass
	switch f.Kind {
	case Blocking:
		return false
	case ForceTurn:
		return !pass
	case Straight:
		if f.Alignment == Vertical {
			return t == verticalPass
		}
		return t == horizontalPass
	case OneWay:
		return pass && enter == f.Direction
	case OneWayTurnLeft:
		return t == leftTurn && leave == f.Direction
	case OneWayTurnRight:
		return t == rightTurn && leave == f.Direction
	}
	panic(fmt.Sprintf("unexpected face kind %d", f.Kind))
}
