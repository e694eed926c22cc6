package movegen

import (
	"testing"

	"github.com/matryer/is"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/barragoon/barragoon"
	"github.com/domino14/barragoon/board"
	"github.com/domino14/barragoon/move"
	"github.com/domino14/barragoon/navigation"
	"github.com/domino14/barragoon/tiles"
)

var d5 = navigation.NewCoordinate(4, 3)

func lightTile(tt tiles.TileType) board.SquareContent {
	return board.TileAt(tiles.Tile{Type: tt, Player: tiles.Light})
}

func withTileAtD5(tt tiles.TileType) *board.Position {
	pos := board.Empty()
	pos.SetContent(d5, lightTile(tt))
	return pos
}

func countKind(moves []move.Move, mt move.MoveType) int {
	return lo.CountBy(moves, func(m move.Move) bool { return m.Action == mt })
}

func TestStartPositionMoves(t *testing.T) {
	is := is.New(t)
	moves := Generate(board.New())
	is.Equal(len(moves), 28)
	is.Equal(countKind(moves, move.MoveTypeStraight), 28)
	is.Equal(len(lo.Uniq(moves)), 28)
}

func TestDarkStartMoves(t *testing.T) {
	is := is.New(t)
	pos := board.New()
	pos.CurrentPlayer = tiles.Dark
	moves := Generate(pos)
	is.Equal(len(moves), 28)
	for _, m := range moves {
		is.Equal(m.Tile.Player, tiles.Dark)
	}
}

func TestSingleTileOnEmptyBoard(t *testing.T) {
	type tc struct {
		tt    tiles.TileType
		moves int
	}
	for _, c := range []tc{{tiles.Two, 12}, {tiles.Three, 20}, {tiles.Four, 26}} {
		moves := Generate(withTileAtD5(c.tt))
		assert.Equal(t, c.moves, len(moves), "tile type %s", c.tt)
		assert.Equal(t, c.moves, countKind(moves, move.MoveTypeStraight))
	}
}

func TestTwoAndABlockingBarragoon(t *testing.T) {
	is := is.New(t)
	pos := withTileAtD5(tiles.Two)
	pos.SetContent(navigation.NewCoordinate(2, 3), board.FaceAt(barragoon.BlockingFace))

	moves := Generate(pos)
	is.Equal(len(moves), 7+4+62*16)
	is.Equal(countKind(moves, move.MoveTypeBarragoonCapture), 62*16)

	// the vacated square is a legal target
	_, found := lo.Find(moves, func(m move.Move) bool {
		return m.Action == move.MoveTypeBarragoonCapture && m.Target == d5
	})
	is.True(found)
	// the square captured on is not
	_, found = lo.Find(moves, func(m move.Move) bool {
		return m.Action == move.MoveTypeBarragoonCapture && m.Target == m.Stop
	})
	is.True(!found)

	// every generated move survives notation
	for _, m := range moves {
		parsed, err := move.FromNotation(m.String())
		is.NoErr(err)
		is.Equal(parsed, m)
	}
}

func TestTwoCannotCaptureForceTurn(t *testing.T) {
	is := is.New(t)
	pos := withTileAtD5(tiles.Two)
	pos.SetContent(navigation.NewCoordinate(4, 1), board.FaceAt(barragoon.ForceTurnFace))
	moves := Generate(pos)
	is.Equal(countKind(moves, move.MoveTypeBarragoonCapture), 0)
	is.Equal(len(moves), 11)
}

func TestThreeCanCaptureForceTurn(t *testing.T) {
	is := is.New(t)
	pos := withTileAtD5(tiles.Three)
	for _, sq := range []navigation.Coordinate{
		navigation.NewCoordinate(4, 0),
		navigation.NewCoordinate(3, 1),
		navigation.NewCoordinate(2, 2),
		navigation.NewCoordinate(1, 3),
	} {
		pos.SetContent(sq, board.FaceAt(barragoon.ForceTurnFace))
		moves := Generate(pos)
		_, found := lo.Find(moves, func(m move.Move) bool {
			return m.Action == move.MoveTypeBarragoonCapture && m.Stop == sq
		})
		is.True(found) // capture of the newly placed face
	}
}

func TestTileCapture(t *testing.T) {
	is := is.New(t)
	pos := withTileAtD5(tiles.Two)
	victim := tiles.Tile{Type: tiles.Three, Player: tiles.Dark}
	pos.SetContent(navigation.NewCoordinate(6, 3), board.TileAt(victim))
	moves := Generate(pos)
	is.Equal(len(moves), 12)
	captures := lo.Filter(moves, func(m move.Move, _ int) bool {
		return m.Action == move.MoveTypeTileCapture
	})
	is.Equal(len(captures), 1)
	is.Equal(captures[0].VictimTile, victim)
	is.Equal(captures[0].String(), "Zd5xdd7")
}

func TestShortStridesDoNotCapture(t *testing.T) {
	is := is.New(t)
	pos := withTileAtD5(tiles.Two)
	pos.SetContent(navigation.NewCoordinate(5, 3),
		board.TileAt(tiles.Tile{Type: tiles.Two, Player: tiles.Dark}))
	moves := Generate(pos)
	// north is blocked for the full stride and the short one ends on a tile
	is.Equal(countKind(moves, move.MoveTypeTileCapture), 0)
	is.Equal(len(moves), 10)
}

func TestOwnTileBlocks(t *testing.T) {
	is := is.New(t)
	pos := withTileAtD5(tiles.Two)
	pos.SetContent(navigation.NewCoordinate(5, 3), lightTile(tiles.Two))
	moves := lo.Filter(Generate(pos), func(m move.Move, _ int) bool { return m.Start == d5 })
	is.Equal(len(moves), 10)
}

func TestTraversal(t *testing.T) {
	type tc struct {
		name  string
		face  barragoon.Face
		moves int
	}
	cases := []tc{
		{"vertical lets the northward stride through", barragoon.StraightFace(barragoon.Vertical), 11},
		{"horizontal blocks it", barragoon.StraightFace(barragoon.Horizontal), 10},
		{"force turn allows only the bend", barragoon.ForceTurnFace, 10},
		{"one-way north passes", barragoon.OneWayFace(navigation.North), 11},
		{"one-way south blocks", barragoon.OneWayFace(navigation.South), 10},
		{"blocking", barragoon.BlockingFace, 10},
	}
	for _, c := range cases {
		pos := withTileAtD5(tiles.Two)
		pos.SetContent(navigation.NewCoordinate(5, 3), board.FaceAt(c.face))
		assert.Equal(t, c.moves, len(Generate(pos)), c.name)
	}
}

func TestStraightFaceCapturedOnlyAlongAxis(t *testing.T) {
	is := is.New(t)
	pos := withTileAtD5(tiles.Two)
	pos.SetContent(navigation.NewCoordinate(6, 3), board.FaceAt(barragoon.StraightFace(barragoon.Vertical)))
	is.Equal(len(Generate(pos)), 7+4+62*16)

	pos.SetContent(navigation.NewCoordinate(6, 3), board.FaceAt(barragoon.StraightFace(barragoon.Horizontal)))
	is.Equal(len(Generate(pos)), 11)
}

func TestGeneratorReuse(t *testing.T) {
	is := is.New(t)
	gen := NewGenerator()
	is.Equal(gen.CountAll(board.New()), 28)
	is.Equal(gen.CountAll(withTileAtD5(tiles.Four)), 26)
	is.True(gen.HasMoves(board.New()))
	is.True(!gen.HasMoves(board.Empty()))
	// HasMoves does not leave the generator in early-exit mode
	is.Equal(len(gen.GenAll(board.New())), 28)
}

func TestGenerationIsDeterministic(t *testing.T) {
	is := is.New(t)
	pos := withTileAtD5(tiles.Two)
	pos.SetContent(navigation.NewCoordinate(2, 3), board.FaceAt(barragoon.BlockingFace))
	is.Equal(Generate(pos), Generate(pos))
}
