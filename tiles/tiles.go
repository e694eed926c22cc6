// Package tiles describes the movable pieces and the strides they travel.
package tiles

import (
	"fmt"

	"github.com/domino14/barragoon/navigation"
)

type Player uint8

const (
	Light Player = iota
	Dark
)

func (p Player) Other() Player {
	return 1 - p
}

func (p Player) String() string {
	if p == Light {
		return "light"
	}
	return "dark"
}

// TileType determines how far a tile travels.
type TileType uint8

const (
	Two TileType = iota
	Three
	Four
)

var AllTileTypes = [3]TileType{Two, Three, Four}

func (t TileType) FullStrideLength() int {
	return int(t) + 2
}

// ShortStrideLength is one less than the full length. Short strides
// never capture.
func (t TileType) ShortStrideLength() int {
	return int(t) + 1
}

func (t TileType) String() string {
	switch t {
	case Two:
		return "two"
	case Three:
		return "three"
	case Four:
		return "four"
	}
	return fmt.Sprintf("TileType(%d)", t)
}

// Tile is a tile type owned by a player.
type Tile struct {
	Type   TileType
	Player Player
}

// FENChar returns Z/D/V for light tiles, z/d/v for dark ones.
func (t Tile) FENChar() byte {
	var c byte
	switch t.Type {
	case Two:
		c = 'Z'
	case Three:
		c = 'D'
	case Four:
		c = 'V'
	default:
		panic(fmt.Sprintf("unexpected tile type %d", t.Type))
	}
	if t.Player == Dark {
		c += 'a' - 'A'
	}
	return c
}

// TileFromFENChar is the inverse of FENChar.
func TileFromFENChar(c byte) (Tile, bool) {
	switch c {
	case 'Z':
		return Tile{Two, Light}, true
	case 'D':
		return Tile{Three, Light}, true
	case 'V':
		return Tile{Four, Light}, true
	case 'z':
		return Tile{Two, Dark}, true
	case 'd':
		return Tile{Three, Dark}, true
	case 'v':
		return Tile{Four, Dark}, true
	}
	return Tile{}, false
}

var cliGlyphs = [2][3]rune{
	{'➋', '➌', '➍'},
	{'➁', '➂', '➃'},
}

// CLIChar is the glyph used when drawing the board in a terminal.
func (t Tile) CLIChar() rune {
	return cliGlyphs[t.Player][t.Type]
}

func (t Tile) String() string {
	return fmt.Sprintf("%s %s", t.Player, t.Type)
}

func strides(length int, full bool) []Stride {
	ss := make([]Stride, 0, 4*(2*length-1))
	for _, dir := range navigation.AllDirections {
		for bend := 0; bend < length; bend++ {
			if bend == 0 {
				ss = append(ss, Stride{
					StartDirection: dir,
					StartLength:    length,
					BendDirection:  dir,
					IsFullStride:   full,
				})
				continue
			}
			for _, bendDir := range [2]navigation.Direction{dir.TurnLeft(), dir.TurnRight()} {
				ss = append(ss, Stride{
					StartDirection: dir,
					StartLength:    bend,
					BendDirection:  bendDir,
					BendLength:     length - bend,
					IsFullStride:   full,
				})
			}
		}
	}
	return ss
}

// FullStrides lists every capturing stride of the tile type: per start
// direction one straight stride and two bent strides per bend point.
func (t TileType) FullStrides() []Stride {
	return strides(t.FullStrideLength(), true)
}

func (t TileType) ShortStrides() []Stride {
	return strides(t.ShortStrideLength(), false)
}

// AllStrides lists the full strides followed by the short strides.
func (t TileType) AllStrides() []Stride {
	return append(t.FullStrides(), t.ShortStrides()...)
}
