package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/barragoon/barragoon"
	"github.com/domino14/barragoon/board"
	"github.com/domino14/barragoon/move"
	"github.com/domino14/barragoon/navigation"
	"github.com/domino14/barragoon/tiles"
)

const bignum = 1<<63 - 2

const (
	numSquares = navigation.BoardHeight * navigation.BoardWidth
	// six tiles (three types, two players) followed by sixteen faces
	numPieces = 6 + 16
)

// Zobrist hashes barragoon positions.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	darkToMove uint64
	posTable   [numSquares][numPieces]uint64
}

func New() *Zobrist {
	z := &Zobrist{}
	z.Initialize()
	return z
}

func (z *Zobrist) Initialize() {
	for i := 0; i < numSquares; i++ {
		for j := 0; j < numPieces; j++ {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	z.darkToMove = frand.Uint64n(bignum) + 1
}

func tileIdx(t tiles.Tile) int {
	return int(t.Type)*2 + int(t.Player)
}

func faceIdx(f barragoon.Face) int {
	return 6 + f.Index()
}

func (z *Zobrist) tileKey(c navigation.Coordinate, t tiles.Tile) uint64 {
	return z.posTable[c.Index()][tileIdx(t)]
}

func (z *Zobrist) faceKey(c navigation.Coordinate, f barragoon.Face) uint64 {
	return z.posTable[c.Index()][faceIdx(f)]
}

// Hash computes the key of a position from scratch.
func (z *Zobrist) Hash(pos *board.Position) uint64 {
	key := uint64(0)
	for c, sq := range pos.Squares() {
		switch sq.Kind {
		case board.TileContent:
			key ^= z.tileKey(c, sq.Tile)
		case board.BarragoonContent:
			key ^= z.faceKey(c, sq.Face)
		}
	}
	if pos.CurrentPlayer == tiles.Dark {
		key ^= z.darkToMove
	}
	return key
}

// AddMove returns the key after m is played and the turn passes. Every
// square a move touches is recorded in the move itself, so the position
// is not needed.
func (z *Zobrist) AddMove(key uint64, m move.Move) uint64 {
	switch m.Action {
	case move.MoveTypeStraight:
		key ^= z.tileKey(m.Start, m.Tile) ^ z.tileKey(m.Stop, m.Tile)
	case move.MoveTypeTileCapture:
		key ^= z.tileKey(m.Start, m.Tile) ^ z.tileKey(m.Stop, m.Tile)
		key ^= z.tileKey(m.Stop, m.VictimTile)
	case move.MoveTypeBarragoonCapture:
		key ^= z.tileKey(m.Start, m.Tile) ^ z.tileKey(m.Stop, m.Tile)
		key ^= z.faceKey(m.Stop, m.VictimFace)
		key ^= z.faceKey(m.Target, m.NewFace)
	case move.MoveTypeBarragoonPlacement:
		key ^= z.faceKey(m.Target, m.NewFace)
	}
	return key ^ z.darkToMove
}
