package board

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/barragoon/barragoon"
	"github.com/domino14/barragoon/navigation"
	"github.com/domino14/barragoon/tiles"
)

func sq(rank, file int) navigation.Coordinate {
	return navigation.NewCoordinate(rank, file)
}

func TestEmptyPositionIsEmpty(t *testing.T) {
	is := is.New(t)
	p, err := FromFEN(EmptyFEN)
	is.NoErr(err)
	n := 0
	for _, s := range p.Squares() {
		is.True(s.IsEmpty())
		is.Equal(s.Kind, EmptyContent)
		n++
	}
	is.Equal(n, 63)
	is.True(p.Equals(Empty()))
	is.Equal(SquareContent{}.Kind, EmptyContent)
	is.Equal(SquareContent{}.FENChar(), byte(' '))
	is.Equal(len(p.EmptySquares()), 63)
}

func TestStartPosition(t *testing.T) {
	is := is.New(t)
	p := New()
	light := func(tt tiles.TileType) SquareContent {
		return TileAt(tiles.Tile{Type: tt, Player: tiles.Light})
	}
	dark := func(tt tiles.TileType) SquareContent {
		return TileAt(tiles.Tile{Type: tt, Player: tiles.Dark})
	}
	blocking := FaceAt(barragoon.BlockingFace)

	expected := map[navigation.Coordinate]SquareContent{
		sq(0, 1): light(tiles.Four),
		sq(0, 2): light(tiles.Three),
		sq(0, 4): light(tiles.Three),
		sq(0, 5): light(tiles.Four),
		sq(1, 2): light(tiles.Two),
		sq(1, 3): light(tiles.Three),
		sq(1, 4): light(tiles.Two),

		sq(3, 1): blocking,
		sq(3, 5): blocking,
		sq(4, 0): blocking,
		sq(4, 2): blocking,
		sq(4, 4): blocking,
		sq(4, 6): blocking,
		sq(5, 1): blocking,
		sq(5, 5): blocking,

		sq(7, 2): dark(tiles.Two),
		sq(7, 3): dark(tiles.Three),
		sq(7, 4): dark(tiles.Two),
		sq(8, 1): dark(tiles.Four),
		sq(8, 2): dark(tiles.Three),
		sq(8, 4): dark(tiles.Three),
		sq(8, 5): dark(tiles.Four),
	}
	for c, s := range p.Squares() {
		want, ok := expected[c]
		if !ok {
			is.True(s.IsEmpty()) // square should be empty
			continue
		}
		is.Equal(s, want)
	}
	is.Equal(p.CurrentPlayer, tiles.Light)
	is.Equal(p.TileCount(tiles.Light), 7)
	is.Equal(p.TileCount(tiles.Dark), 7)
}

func TestSquaresOrder(t *testing.T) {
	is := is.New(t)
	idx := 0
	for c := range Empty().Squares() {
		is.Equal(c, navigation.FromIndex(idx))
		idx++
	}
	// the sequence can be walked again
	for range Empty().Squares() {
		idx--
	}
	is.Equal(idx, 0)
}

func TestFENRoundTrip(t *testing.T) {
	is := is.New(t)
	fens := []string{
		StartFEN,
		EmptyFEN,
		"+|-Y^<>/SNEWsne/wx5/7/3Z3/7/7/7/vVdDzZ1",
		"7/7/7/7/3Z3/7/3x3/7/7",
		"1vd1dv1/2zdz2/7/1x3x1/x1x1x1x/1x3x1/7/2ZDZ2/1VD1DV1",
	}
	for _, fen := range fens {
		p, err := FromFEN(fen)
		is.NoErr(err)
		is.Equal(p.FEN(), fen)
		p2, err := FromFEN(p.FEN())
		is.NoErr(err)
		is.True(p.Equals(p2))
	}
}

func TestFENPlayerField(t *testing.T) {
	is := is.New(t)
	p, err := FromFEN(StartFEN + " d")
	is.NoErr(err)
	is.Equal(p.CurrentPlayer, tiles.Dark)
	is.Equal(p.FullFEN(), StartFEN+" d")
	is.Equal(p.FEN(), StartFEN)

	p, err = FromFEN(StartFEN + " l")
	is.NoErr(err)
	is.Equal(p.CurrentPlayer, tiles.Light)

	_, err = FromFEN(StartFEN + " q")
	is.True(errors.Is(err, ErrInvalidChar))
}

func TestFENErrors(t *testing.T) {
	is := is.New(t)
	type tc struct {
		fen  string
		kind error
		idx  int
	}
	cases := []tc{
		{"6/7/7/7/7/7/7/7/7", ErrUnderfullLine, 1},
		{"8/7/7/7/7/7/7/7/7", ErrInvalidChar, 0},
		{"44/7/7/7/7/7/7/7/7", ErrOverfullLine, 1},
		{"7Z/7/7/7/7/7/7/7/7", ErrOverfullLine, 1},
		{"7/7/7/7/7/7/7/7/7/7", ErrTooManyLines, 17},
		{"7/7/7/7/7/7/7/7/7/", ErrTooManyLines, 17},
		{"7/7/7/7/7/7/7/7/6", ErrUnderfullLine, 17},
		{"7/7/7", ErrUnderfullLine, 5},
		{"7/7/7/7/q6/7/7/7/7", ErrInvalidChar, 8},
		{"", ErrUnderfullLine, 0},
	}
	for _, c := range cases {
		_, err := FromFEN(c.fen)
		is.True(errors.Is(err, c.kind))
		var pe *PositionError
		is.True(errors.As(err, &pe))
		is.Equal(pe.CharIndex, c.idx)
	}
}

func TestMoveContent(t *testing.T) {
	is := is.New(t)
	p := New()
	cp := p.Copy()
	p.MoveContent(sq(1, 2), sq(3, 2))
	is.True(p.Content(sq(1, 2)).IsEmpty())
	is.Equal(p.Content(sq(3, 2)), TileAt(tiles.Tile{Type: tiles.Two, Player: tiles.Light}))
	// the copy is independent
	is.Equal(cp.FEN(), StartFEN)
	is.True(!cp.Equals(p))
	cp.CopyFrom(p)
	is.True(cp.Equals(p))
}

func TestDisplayText(t *testing.T) {
	is := is.New(t)
	old := ColorSupport
	ColorSupport = false
	defer func() { ColorSupport = old }()
	txt := New().ToDisplayText()
	lines := strings.Split(strings.TrimSpace(txt), "\n")
	// 9 ranks, 10 borders and the file letters
	is.Equal(len(lines), 20)
	is.True(strings.HasPrefix(lines[1], "9 "))
	is.True(strings.Contains(lines[1], "➃"))
	is.True(strings.Contains(lines[19], "a"))
	is.True(strings.Contains(lines[19], "g"))
}

func TestDisplayColors(t *testing.T) {
	is := is.New(t)
	p := New()
	is.True(strings.Contains(p.DisplayText(true), "\x1b["))
	is.True(!strings.Contains(p.DisplayText(false), "\x1b["))
}
