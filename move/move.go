package move

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/domino14/barragoon/barragoon"
	"github.com/domino14/barragoon/navigation"
	"github.com/domino14/barragoon/tiles"
)

// MoveType is a kind of move; a straight move, a capture, etc.
type MoveType uint8

const (
	MoveTypeStraight MoveType = iota
	MoveTypeTileCapture
	MoveTypeBarragoonCapture
	// MoveTypeBarragoonPlacement only occurs as the second half of a
	// barragoon capture.
	MoveTypeBarragoonPlacement
)

var ErrUnparseableMove = errors.New("cannot parse move")

// Move is a value. Fields that do not apply to its type are left zero,
// so two moves are equal exactly when == says so and a Move can be used
// as a map key.
type Move struct {
	Action     MoveType
	Start      navigation.Coordinate
	Stop       navigation.Coordinate
	Tile       tiles.Tile
	VictimTile tiles.Tile
	VictimFace barragoon.Face
	Target     navigation.Coordinate
	NewFace    barragoon.Face
}

func NewStraight(start, stop navigation.Coordinate, tile tiles.Tile) Move {
	return Move{Action: MoveTypeStraight, Start: start, Stop: stop, Tile: tile}
}

func NewTileCapture(start, stop navigation.Coordinate, tile, victim tiles.Tile) Move {
	return Move{Action: MoveTypeTileCapture, Start: start, Stop: stop, Tile: tile,
		VictimTile: victim}
}

// NewBarragoonCapture captures the face on stop and places newFace on
// target.
func NewBarragoonCapture(start, stop navigation.Coordinate, tile tiles.Tile,
	victim barragoon.Face, target navigation.Coordinate, newFace barragoon.Face) Move {

	return Move{Action: MoveTypeBarragoonCapture, Start: start, Stop: stop, Tile: tile,
		VictimFace: victim, Target: target, NewFace: newFace}
}

func NewPlacement(target navigation.Coordinate, face barragoon.Face) Move {
	return Move{Action: MoveTypeBarragoonPlacement, Target: target, NewFace: face}
}

// MovesTile reports whether a tile leaves its square.
func (m Move) MovesTile() bool {
	return m.Action != MoveTypeBarragoonPlacement
}

// Placement returns the placement carried by a barragoon capture.
func (m Move) Placement() (Move, bool) {
	if m.Action != MoveTypeBarragoonCapture && m.Action != MoveTypeBarragoonPlacement {
		return Move{}, false
	}
	return NewPlacement(m.Target, m.NewFace), true
}

// String renders the move in move notation.
func (m Move) String() string {
	switch m.Action {
	case MoveTypeStraight:
		return fmt.Sprintf("%c%s%s", m.Tile.FENChar(), m.Start, m.Stop)
	case MoveTypeTileCapture:
		return fmt.Sprintf("%c%sx%c%s", m.Tile.FENChar(), m.Start,
			m.VictimTile.FENChar(), m.Stop)
	case MoveTypeBarragoonCapture:
		return fmt.Sprintf("%c%so%c%s!%c%s", m.Tile.FENChar(), m.Start,
			m.VictimFace.FENChar(), m.Stop, m.NewFace.FENChar(), m.Target)
	case MoveTypeBarragoonPlacement:
		return fmt.Sprintf("!%c%s", m.NewFace.FENChar(), m.Target)
	}
	return "<unhandled move>"
}

func (m Move) MoveTypeString() string {
	switch m.Action {
	case MoveTypeStraight:
		return "Straight"
	case MoveTypeTileCapture:
		return "TileCapture"
	case MoveTypeBarragoonCapture:
		return "BarragoonCapture"
	case MoveTypeBarragoonPlacement:
		return "BarragoonPlacement"
	}
	return "UNHANDLED"
}

const (
	tileClass = `[ZDVzdv]`
	faceClass = `[-+|Y^<>SNEWsnewx]`
	square    = `[a-g][1-9]`
)

var reStraight, reTileCapture, reBarragoonCapture, rePlacement *regexp.Regexp

func init() {
	reStraight = regexp.MustCompile(`^(` + tileClass + `)(` + square + `)(` + square + `)$`)
	reTileCapture = regexp.MustCompile(`^(` + tileClass + `)(` + square + `)x(` +
		tileClass + `)(` + square + `)$`)
	reBarragoonCapture = regexp.MustCompile(`^(` + tileClass + `)(` + square + `)o(` +
		faceClass + `)(` + square + `)!(` + faceClass + `)(` + square + `)$`)
	rePlacement = regexp.MustCompile(`^!(` + faceClass + `)(` + square + `)$`)
}

// FromNotation parses move notation, the inverse of String. The
// characters are read by position, since some face characters are also
// file letters.
func FromNotation(s string) (Move, error) {
	if g := reStraight.FindStringSubmatch(s); g != nil {
		return NewStraight(sq(g[2]), sq(g[3]), tile(g[1])), nil
	}
	if g := reTileCapture.FindStringSubmatch(s); g != nil {
		return NewTileCapture(sq(g[2]), sq(g[4]), tile(g[1]), tile(g[3])), nil
	}
	if g := reBarragoonCapture.FindStringSubmatch(s); g != nil {
		return NewBarragoonCapture(sq(g[2]), sq(g[4]), tile(g[1]), face(g[3]),
			sq(g[6]), face(g[5])), nil
	}
	if g := rePlacement.FindStringSubmatch(s); g != nil {
		return NewPlacement(sq(g[2]), face(g[1])), nil
	}
	return Move{}, fmt.Errorf("%w: %q", ErrUnparseableMove, s)
}

// The helpers below are only handed regexp-validated input.

func sq(s string) navigation.Coordinate {
	c, err := navigation.FromSquareName(s)
	if err != nil {
		panic(err)
	}
	return c
}

func tile(s string) tiles.Tile {
	t, _ := tiles.TileFromFENChar(s[0])
	return t
}

func face(s string) barragoon.Face {
	f, _ := barragoon.FromFENChar(s[0])
	return f
}
