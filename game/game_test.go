package game

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/barragoon/board"
	"github.com/domino14/barragoon/move"
	"github.com/domino14/barragoon/movegen"
	"github.com/domino14/barragoon/navigation"
	"github.com/domino14/barragoon/tiles"
)

var lightTwo = tiles.Tile{Type: tiles.Two, Player: tiles.Light}

func sq(s string) navigation.Coordinate {
	c, err := navigation.FromSquareName(s)
	if err != nil {
		panic(err)
	}
	return c
}

func TestMakeMoveStraight(t *testing.T) {
	is := is.New(t)
	g := New()
	mover, err := g.MakeMove(move.NewStraight(sq("c2"), sq("c4"), lightTwo))
	is.NoErr(err)
	is.Equal(mover, tiles.Light)
	is.True(g.Position().Content(sq("c2")).IsEmpty())
	is.Equal(g.Position().Content(sq("c4")), board.TileAt(lightTwo))
	// MakeMove leaves the turn alone
	is.Equal(g.PlayerOnTurn(), tiles.Light)
	is.Equal(g.FEN(), "1vd1dv1/2zdz2/7/1x3x1/x1x1x1x/1xZ2x1/7/3DZ2/1VD1DV1")
}

func TestMakeIllegalMove(t *testing.T) {
	is := is.New(t)
	g := New()
	before := g.FEN()
	_, err := g.MakeMove(move.NewStraight(sq("c2"), sq("c9"), lightTwo))
	is.True(errors.Is(err, ErrIllegalMove))
	var ime *IllegalMoveError
	is.True(errors.As(err, &ime))
	is.Equal(ime.Move.Stop, sq("c9"))
	is.Equal(g.FEN(), before)
}

func TestPlayMoveAlternates(t *testing.T) {
	is := is.New(t)
	g := New()
	_, err := g.PlayNotation("Zc2c4")
	is.NoErr(err)
	is.Equal(g.PlayerOnTurn(), tiles.Dark)
	is.Equal(g.Turn(), 1)

	// light may not move twice
	_, err = g.PlayNotation("Ze2e4")
	is.True(errors.Is(err, ErrIllegalMove))

	_, err = g.PlayNotation("ze8e6")
	is.NoErr(err)
	is.Equal(g.PlayerOnTurn(), tiles.Light)
	is.Equal(len(g.History()), 2)
	is.Equal(g.History()[1].Player, tiles.Dark)
	is.Equal(g.MoveList(), "1. Zc2c4 ze8e6")
}

func TestPlayBadNotation(t *testing.T) {
	is := is.New(t)
	g := New()
	_, err := g.PlayNotation("Zc2")
	is.True(errors.Is(err, move.ErrUnparseableMove))
	is.Equal(g.Turn(), 0)
}

func TestUnplay(t *testing.T) {
	is := is.New(t)
	g := New()
	g.SetBackupMode(SimulationMode)
	start := g.FEN()
	h := g.Hash()

	for _, n := range []string{"Zc2c4", "ze8e6", "Ze2e4"} {
		_, err := g.PlayNotation(n)
		is.NoErr(err)
	}
	// a rejected move must not push a backup
	_, err := g.PlayNotation("Zd2d4")
	is.True(err != nil)

	for i := 0; i < 3; i++ {
		is.NoErr(g.UnplayLastMove())
	}
	is.Equal(g.FEN(), start)
	is.Equal(g.Hash(), h)
	is.Equal(g.PlayerOnTurn(), tiles.Light)
	is.Equal(len(g.History()), 0)
	is.True(errors.Is(g.UnplayLastMove(), ErrNoHistory))
}

func TestUnplayInteractive(t *testing.T) {
	is := is.New(t)
	g := New()
	g.SetBackupMode(InteractiveGameplayMode)
	_, err := g.PlayNotation("Zc2c4")
	is.NoErr(err)
	after := g.FEN()
	_, err = g.PlayNotation("ze8e6")
	is.NoErr(err)
	is.NoErr(g.UnplayLastMove())
	is.Equal(g.FEN(), after)
	is.Equal(g.PlayerOnTurn(), tiles.Dark)
}

func TestNoBackupCannotUnplay(t *testing.T) {
	g := New()
	_, err := g.PlayNotation("Zc2c4")
	assert.NoError(t, err)
	assert.ErrorIs(t, g.UnplayLastMove(), ErrNoHistory)
}

func TestGameOverWhenOpponentHasNoTiles(t *testing.T) {
	is := is.New(t)
	g, err := FromFEN("7/7/7/7/7/7/7/7/Z6")
	is.NoErr(err)
	is.Equal(g.Playing(), Playing)
	_, err = g.PlayNotation("Za1a3")
	is.NoErr(err)
	is.Equal(g.Playing(), GameOver)
	w, over := g.Winner()
	is.True(over)
	is.Equal(w, tiles.Light)
	_, err = g.PlayNotation("Za3a5")
	is.True(errors.Is(err, ErrGameOver))
}

func TestGameOverOnEmptyBoard(t *testing.T) {
	is := is.New(t)
	g := Empty()
	w, over := g.Winner()
	is.True(over)
	is.Equal(w, tiles.Dark)
}

func TestTileCaptureRemovesVictim(t *testing.T) {
	is := is.New(t)
	g, err := FromFEN("7/7/7/7/7/3d3/7/3Z3/7")
	is.NoErr(err)
	m, err := g.PlayNotation("Zd2xdd4")
	is.NoErr(err)
	is.Equal(m.VictimTile, tiles.Tile{Type: tiles.Three, Player: tiles.Dark})
	is.Equal(g.Position().TileCount(tiles.Dark), 0)
	is.Equal(g.Playing(), GameOver)
}

func TestBarragoonCaptureOntoVacatedSquare(t *testing.T) {
	is := is.New(t)
	g, err := FromFEN("3z3/7/7/7/3Z3/7/3x3/7/7")
	is.NoErr(err)
	_, err = g.PlayNotation("Zd5oxd3!+d5")
	is.NoErr(err)
	pos := g.Position()
	is.Equal(pos.Content(sq("d3")), board.TileAt(lightTwo))
	is.Equal(pos.Content(sq("d5")).Kind, board.BarragoonContent)
	is.Equal(pos.Content(sq("d5")).FENChar(), byte('+'))
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	g := New()
	cp := g.Copy()
	_, err := cp.PlayNotation("Zc2c4")
	is.NoErr(err)
	is.Equal(g.FEN(), board.StartFEN)
	is.Equal(g.Turn(), 0)
	is.True(cp.Hash() != g.Hash())
}

func TestDisplayText(t *testing.T) {
	board.ColorSupport = false
	defer func() { board.ColorSupport = true }()
	g := New()
	_, err := g.PlayNotation("Zc2c4")
	assert.NoError(t, err)
	txt := g.ToDisplayText()
	assert.Contains(t, txt, "Turn 2: dark to move")
	assert.Contains(t, txt, "Last move: Zc2c4")
	assert.Contains(t, txt, "Light tiles: 7")
}

// countingGen counts full legality checks.
type countingGen struct {
	movegen.MoveGenerator
	legalChecks int
}

func (c *countingGen) IsLegal(pos *board.Position, m move.Move) bool {
	c.legalChecks++
	return c.MoveGenerator.IsLegal(pos, m)
}

func TestPlayMoveValidatesOnce(t *testing.T) {
	is := is.New(t)
	g := New()
	cg := &countingGen{MoveGenerator: movegen.NewGenerator()}
	g.gen = cg

	_, err := g.PlayNotation("Zc2c4")
	is.NoErr(err)
	is.Equal(cg.legalChecks, 1)

	_, err = g.PlayNotation("Zc2c9")
	is.True(errors.Is(err, ErrIllegalMove))
	is.Equal(cg.legalChecks, 2)
	is.Equal(g.Turn(), 1)
}
