// Package movegen contains the move-generating functions. For every tile
// of the player to move it walks the tile's strides over the position,
// consulting the barragoon rules for every face it meets.
package movegen

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/domino14/barragoon/barragoon"
	"github.com/domino14/barragoon/board"
	"github.com/domino14/barragoon/move"
	"github.com/domino14/barragoon/navigation"
	"github.com/domino14/barragoon/tiles"
)

// MoveGenerator is implemented by Generator; game and perft depend on
// the interface.
type MoveGenerator interface {
	GenAll(pos *board.Position) []move.Move
	CountAll(pos *board.Position) int
	HasMoves(pos *board.Position) bool
	IsLegal(pos *board.Position, m move.Move) bool
}

var strideCache = func() [3][]tiles.Stride {
	var c [3][]tiles.Stride
	for _, tt := range tiles.AllTileTypes {
		c[tt] = tt.AllStrides()
	}
	return c
}()

// Generator is not safe for concurrent use; give each goroutine its own.
type Generator struct {
	plays   map[move.Move]struct{}
	covered map[navigation.Coordinate]struct{}
	targets []navigation.Coordinate
	// stopAtFirst makes generation quit once any move is recorded.
	stopAtFirst bool
	done        bool
}

func NewGenerator() *Generator {
	return &Generator{
		plays:   make(map[move.Move]struct{}),
		covered: make(map[navigation.Coordinate]struct{}),
	}
}

// Generate is a convenience wrapper that uses a fresh generator.
func Generate(pos *board.Position) []move.Move {
	return NewGenerator().GenAll(pos)
}

// GenAll returns every legal move for the player to move, without
// duplicates, ordered by their packed encoding.
func (gen *Generator) GenAll(pos *board.Position) []move.Move {
	gen.generate(pos)
	plays := lo.Keys(gen.plays)
	slices.SortFunc(plays, func(a, b move.Move) int {
		return cmp.Compare(a.Pack(), b.Pack())
	})
	return plays
}

// CountAll returns the number of distinct legal moves.
func (gen *Generator) CountAll(pos *board.Position) int {
	gen.generate(pos)
	return len(gen.plays)
}

// HasMoves reports whether the player to move has any legal move.
func (gen *Generator) HasMoves(pos *board.Position) bool {
	gen.stopAtFirst = true
	defer func() { gen.stopAtFirst = false }()
	gen.generate(pos)
	return len(gen.plays) > 0
}

// IsLegal reports whether m is among the legal moves of pos.
func (gen *Generator) IsLegal(pos *board.Position, m move.Move) bool {
	gen.generate(pos)
	_, ok := gen.plays[m]
	return ok
}

func (gen *Generator) generate(pos *board.Position) {
	clear(gen.plays)
	gen.done = false
	gen.targets = gen.targets[:0]
	targetsReady := false

	for origin, content := range pos.Squares() {
		if content.Kind != board.TileContent || content.Tile.Player != pos.CurrentPlayer {
			continue
		}
		clear(gen.covered)
		for _, stride := range strideCache[content.Tile.Type] {
			dest := origin.Add(stride.FullDelta())
			if !dest.OnBoard() {
				continue
			}
			if _, ok := gen.covered[dest]; ok {
				continue
			}
			if gen.walk(pos, origin, content.Tile, stride, &targetsReady) {
				gen.covered[dest] = struct{}{}
			}
			if gen.done {
				return
			}
		}
	}
}

// walk follows one stride from origin and records the move it ends in,
// if any. It returns whether a move was recorded.
func (gen *Generator) walk(pos *board.Position, origin navigation.Coordinate,
	mover tiles.Tile, stride tiles.Stride, targetsReady *bool) bool {

	for step := range stride.Steps() {
		sq := origin.Add(step.PositionDelta)
		if !sq.OnBoard() {
			return false
		}
		content := pos.Content(sq)
		switch content.Kind {
		case board.TileContent:
			if content.Tile.Player == mover.Player || !step.Last || !stride.CanCapture() {
				return false
			}
			gen.record(move.NewTileCapture(origin, sq, mover, content.Tile))
			return true

		case board.EmptyContent:
			if step.Last {
				gen.record(move.NewStraight(origin, sq, mover))
				return true
			}

		case board.BarragoonContent:
			face := content.Face
			if !step.Last {
				if !face.CanBeTraversed(step.EnterDirection, step.LeaveDirection) {
					return false
				}
				continue
			}
			if !stride.CanCapture() || !face.CanBeCapturedBy(mover.Type) ||
				!face.CanBeCapturedFrom(step.EnterDirection) {
				return false
			}
			if !*targetsReady {
				gen.targets = append(gen.targets, pos.EmptySquares()...)
				*targetsReady = true
			}
			gen.recordCapture(origin, sq, mover, face)
			return true
		}
	}
	return false
}

// recordCapture expands a barragoon capture into one move per
// replacement face and target square. Targets are the empty squares plus
// the mover's own square, which the move vacates.
func (gen *Generator) recordCapture(origin, stop navigation.Coordinate,
	mover tiles.Tile, victim barragoon.Face) {

	faces := barragoon.AllFaces()
	for _, target := range append(gen.targets, origin) {
		for _, nf := range faces {
			gen.record(move.NewBarragoonCapture(origin, stop, mover, victim, target, nf))
			if gen.done {
				return
			}
		}
	}
}

func (gen *Generator) record(m move.Move) {
	gen.plays[m] = struct{}{}
	if gen.stopAtFirst {
		gen.done = true
	}
}
