// Package board holds the barragoon position: the grid of squares, the
// player to move, and the FEN-style text codec.
package board

import (
	"iter"

	"github.com/domino14/barragoon/navigation"
	"github.com/domino14/barragoon/tiles"
)

const (
	StartFEN = "1vd1dv1/2zdz2/7/1x3x1/x1x1x1x/1x3x1/7/2ZDZ2/1VD1DV1"
	EmptyFEN = "7/7/7/7/7/7/7/7/7"
)

// Position is a plain value; copying it copies the whole grid.
type Position struct {
	grid          [navigation.BoardHeight][navigation.BoardWidth]SquareContent
	CurrentPlayer tiles.Player
}

// New returns the canonical start position with light to move.
func New() *Position {
	p, err := FromFEN(StartFEN)
	if err != nil {
		panic("start position FEN is corrupted: " + err.Error())
	}
	return p
}

func Empty() *Position {
	return &Position{}
}

// ContainsCoordinate reports whether c is a square of the board.
func ContainsCoordinate(c navigation.Coordinate) bool {
	return c.OnBoard()
}

func (p *Position) Content(c navigation.Coordinate) SquareContent {
	return p.grid[c.Rank][c.File]
}

func (p *Position) SetContent(c navigation.Coordinate, s SquareContent) {
	p.grid[c.Rank][c.File] = s
}

// MoveContent moves whatever is on from onto to, leaving from empty.
func (p *Position) MoveContent(from, to navigation.Coordinate) {
	p.grid[to.Rank][to.File] = p.grid[from.Rank][from.File]
	p.grid[from.Rank][from.File] = SquareContent{}
}

// Squares yields every square with its content, rank 0 first and file 0
// first within a rank.
func (p *Position) Squares() iter.Seq2[navigation.Coordinate, SquareContent] {
	return func(yield func(navigation.Coordinate, SquareContent) bool) {
		for r := 0; r < navigation.BoardHeight; r++ {
			for f := 0; f < navigation.BoardWidth; f++ {
				if !yield(navigation.Coordinate{Rank: r, File: f}, p.grid[r][f]) {
					return
				}
			}
		}
	}
}

// EmptySquares lists the empty squares in Squares order.
func (p *Position) EmptySquares() []navigation.Coordinate {
	var sqs []navigation.Coordinate
	for c, s := range p.Squares() {
		if s.IsEmpty() {
			sqs = append(sqs, c)
		}
	}
	return sqs
}

// TileCount returns how many tiles the player has on the board.
func (p *Position) TileCount(player tiles.Player) int {
	n := 0
	for _, s := range p.Squares() {
		if s.Kind == TileContent && s.Tile.Player == player {
			n++
		}
	}
	return n
}

func (p *Position) Copy() *Position {
	cp := *p
	return &cp
}

func (p *Position) CopyFrom(o *Position) {
	*p = *o
}

// Equals compares the grid and the player to move.
func (p *Position) Equals(o *Position) bool {
	return *p == *o
}
