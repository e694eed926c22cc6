package move

import (
	"github.com/domino14/barragoon/barragoon"
	"github.com/domino14/barragoon/navigation"
	"github.com/domino14/barragoon/tiles"
)

const (
	// layout of a packed move, low bits first
	// aa  sssssss ttttttt kkk vvv ffff rrrrrrr nnnn
	// a - move type
	// s - start square index (7 bits, 63 squares)
	// t - stop square index
	// k - moving tile (type << 1 | player)
	// v - victim tile
	// f - victim face index
	// r - target square index
	// n - new face index

	mmStartShift      = 2
	mmStopShift       = 9
	mmTileShift       = 16
	mmVictimTileShift = 19
	mmVictimFaceShift = 22
	mmTargetShift     = 26
	mmNewFaceShift    = 33

	mmTypeBitmask   = (1 << 2) - 1
	mmSquareBitmask = (1 << 7) - 1
	mmTileBitmask   = (1 << 3) - 1
	mmFaceBitmask   = (1 << 4) - 1
)

// MinimalMove is a move packed into an integer. The generator orders its
// output by it.
type MinimalMove uint64

func packTile(t tiles.Tile) uint64 {
	return uint64(t.Type)<<1 | uint64(t.Player)
}

func unpackTile(v uint64) tiles.Tile {
	return tiles.Tile{Type: tiles.TileType(v >> 1), Player: tiles.Player(v & 1)}
}

// Pack encodes the move. Every field is encoded, so distinct moves get
// distinct keys.
func (m Move) Pack() MinimalMove {
	k := uint64(m.Action) |
		uint64(m.Start.Index())<<mmStartShift |
		uint64(m.Stop.Index())<<mmStopShift |
		packTile(m.Tile)<<mmTileShift |
		packTile(m.VictimTile)<<mmVictimTileShift |
		uint64(m.VictimFace.Index())<<mmVictimFaceShift |
		uint64(m.Target.Index())<<mmTargetShift |
		uint64(m.NewFace.Index())<<mmNewFaceShift
	return MinimalMove(k)
}

// Unpack is the inverse of Pack.
func (mm MinimalMove) Unpack() Move {
	v := uint64(mm)
	return Move{
		Action:     MoveType(v & mmTypeBitmask),
		Start:      navigation.FromIndex(int(v >> mmStartShift & mmSquareBitmask)),
		Stop:       navigation.FromIndex(int(v >> mmStopShift & mmSquareBitmask)),
		Tile:       unpackTile(v >> mmTileShift & mmTileBitmask),
		VictimTile: unpackTile(v >> mmVictimTileShift & mmTileBitmask),
		VictimFace: barragoon.FaceFromIndex(int(v >> mmVictimFaceShift & mmFaceBitmask)),
		Target:     navigation.FromIndex(int(v >> mmTargetShift & mmSquareBitmask)),
		NewFace:    barragoon.FaceFromIndex(int(v >> mmNewFaceShift & mmFaceBitmask)),
	}
}
