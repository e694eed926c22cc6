// Package navigation holds the direction algebra and coordinate
// arithmetic of the barragoon board.
package navigation

import (
	"errors"
	"fmt"
)

const (
	// BoardHeight is the number of ranks.
	BoardHeight = 9
	// BoardWidth is the number of files.
	BoardWidth = 7
)

var (
	FileNames = [BoardWidth]byte{'a', 'b', 'c', 'd', 'e', 'f', 'g'}
	RankNames = [BoardHeight]byte{'1', '2', '3', '4', '5', '6', '7', '8', '9'}
)

var ErrInvalidSquareName = errors.New("invalid square name")

// Direction is one of the four compass directions. Rank increases to the
// north and file increases to the east.
type Direction uint8

const (
	North Direction = iota
	West
	South
	East
)

// AllDirections is every direction, in enum order.
var AllDirections = [4]Direction{North, West, South, East}

// TurnLeft rotates counterclockwise: N -> W -> S -> E -> N.
func (d Direction) TurnLeft() Direction {
	return (d + 1) % 4
}

// TurnRight rotates clockwise: N -> E -> S -> W -> N.
func (d Direction) TurnRight() Direction {
	return (d + 3) % 4
}

func (d Direction) Reverse() Direction {
	return (d + 2) % 4
}

// AsDelta returns the unit displacement for a direction.
func (d Direction) AsDelta() PositionDelta {
	switch d {
	case North:
		return PositionDelta{Rank: 1}
	case West:
		return PositionDelta{File: -1}
	case South:
		return PositionDelta{Rank: -1}
	case East:
		return PositionDelta{File: 1}
	}
	panic(fmt.Sprintf("unexpected direction %d", d))
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case West:
		return "west"
	case South:
		return "south"
	case East:
		return "east"
	}
	return fmt.Sprintf("Direction(%d)", d)
}

// PositionDelta is a signed displacement in ranks and files.
type PositionDelta struct {
	Rank int
	File int
}

func (p PositionDelta) Add(o PositionDelta) PositionDelta {
	return PositionDelta{Rank: p.Rank + o.Rank, File: p.File + o.File}
}

func (p PositionDelta) Sub(o PositionDelta) PositionDelta {
	return PositionDelta{Rank: p.Rank - o.Rank, File: p.File - o.File}
}

func (p PositionDelta) Mul(n int) PositionDelta {
	return PositionDelta{Rank: p.Rank * n, File: p.File * n}
}

func (p PositionDelta) Neg() PositionDelta {
	return p.Mul(-1)
}

// Coordinate is a square on the board. A coordinate produced by
// arithmetic may lie off the board; callers check with OnBoard.
type Coordinate struct {
	Rank int
	File int
}

func NewCoordinate(rank, file int) Coordinate {
	return Coordinate{Rank: rank, File: file}
}

func (c Coordinate) Add(d PositionDelta) Coordinate {
	return Coordinate{Rank: c.Rank + d.Rank, File: c.File + d.File}
}

func (c Coordinate) SubDelta(d PositionDelta) Coordinate {
	return c.Add(d.Neg())
}

// Sub returns the displacement that leads from o to c.
func (c Coordinate) Sub(o Coordinate) PositionDelta {
	return PositionDelta{Rank: c.Rank - o.Rank, File: c.File - o.File}
}

// OnBoard reports whether the coordinate lies within the 9x7 grid.
func (c Coordinate) OnBoard() bool {
	return c.Rank >= 0 && c.Rank < BoardHeight && c.File >= 0 && c.File < BoardWidth
}

// Index is the row-major index of the square, rank 0 first.
func (c Coordinate) Index() int {
	return c.Rank*BoardWidth + c.File
}

func FromIndex(idx int) Coordinate {
	return Coordinate{Rank: idx / BoardWidth, File: idx % BoardWidth}
}

// String renders the square name, e.g. "d5".
func (c Coordinate) String() string {
	if !c.OnBoard() {
		return fmt.Sprintf("(%d,%d)", c.Rank, c.File)
	}
	return string([]byte{FileNames[c.File], RankNames[c.Rank]})
}

// FromSquareName parses a square name such as "a1" or "g9".
func FromSquareName(name string) (Coordinate, error) {
	if len(name) != 2 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidSquareName, name)
	}
	file := int(name[0]) - 'a'
	rank := int(name[1]) - '1'
	c := Coordinate{Rank: rank, File: file}
	if !c.OnBoard() {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidSquareName, name)
	}
	return c, nil
}
