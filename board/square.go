package board

import (
	"fmt"

	"github.com/domino14/barragoon/barragoon"
	"github.com/domino14/barragoon/tiles"
)

type ContentKind uint8

const (
	EmptyContent ContentKind = iota
	TileContent
	BarragoonContent
)

// SquareContent is what occupies a square: nothing, a tile, or a
// barragoon face. The zero value is an empty square.
type SquareContent struct {
	Kind ContentKind
	Tile tiles.Tile
	Face barragoon.Face
}

func TileAt(t tiles.Tile) SquareContent {
	return SquareContent{Kind: TileContent, Tile: t}
}

func FaceAt(f barragoon.Face) SquareContent {
	return SquareContent{Kind: BarragoonContent, Face: f}
}

func (s SquareContent) IsEmpty() bool {
	return s.Kind == EmptyContent
}

// FENChar returns the position notation character. Empty squares have
// none and render as a space.
func (s SquareContent) FENChar() byte {
	switch s.Kind {
	case EmptyContent:
		return ' '
	case TileContent:
		return s.Tile.FENChar()
	case BarragoonContent:
		return s.Face.FENChar()
	}
	panic(fmt.Sprintf("unexpected content kind %d", s.Kind))
}

func contentFromFENChar(c byte) (SquareContent, bool) {
	if t, ok := tiles.TileFromFENChar(c); ok {
		return TileAt(t), true
	}
	if f, ok := barragoon.FromFENChar(c); ok {
		return FaceAt(f), true
	}
	return SquareContent{}, false
}

func (s SquareContent) CLIChar() rune {
	switch s.Kind {
	case EmptyContent:
		return ' '
	case TileContent:
		return s.Tile.CLIChar()
	case BarragoonContent:
		return s.Face.CLIChar()
	}
	panic(fmt.Sprintf("unexpected content kind %d", s.Kind))
}

func (s SquareContent) String() string {
	switch s.Kind {
	case TileContent:
		return s.Tile.String()
	case BarragoonContent:
		return s.Face.String()
	}
	return "empty"
}
