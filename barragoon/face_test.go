package barragoon

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/barragoon/navigation"
	"github.com/domino14/barragoon/tiles"
)

const (
	n = navigation.North
	w = navigation.West
	s = navigation.South
	e = navigation.East
)

func TestFaceChars(t *testing.T) {
	is := is.New(t)
	seen := map[byte]bool{}
	faces := AllFaces()
	for _, f := range faces {
		c := f.FENChar()
		is.True(!seen[c])
		seen[c] = true
		back, ok := FromFENChar(c)
		is.True(ok)
		is.Equal(back, f)
	}
	is.Equal(len(seen), 16)
	is.Equal(faces[0], BlockingFace)
	is.Equal(faces[15], ForceTurnFace)

	_, ok := FromFENChar('Z')
	is.True(!ok)
	is.Equal(TurnRightFace(e).FENChar(), byte('e'))
	is.Equal(OneWayFace(s).FENChar(), byte('Y'))
}

func TestCapturedFrom(t *testing.T) {
	type tc struct {
		face    Face
		allowed []navigation.Direction
	}
	cases := []tc{
		{BlockingFace, []navigation.Direction{n, w, s, e}},
		{ForceTurnFace, []navigation.Direction{n, w, s, e}},
		{StraightFace(Vertical), []navigation.Direction{n, s}},
		{StraightFace(Horizontal), []navigation.Direction{w, e}},
		{OneWayFace(n), []navigation.Direction{n}},
		{OneWayFace(w), []navigation.Direction{w}},
		{TurnLeftFace(s), []navigation.Direction{w}},
		{TurnRightFace(n), []navigation.Direction{w}},
		{TurnLeftFace(n), []navigation.Direction{e}},
		{TurnRightFace(s), []navigation.Direction{e}},
		{TurnLeftFace(e), []navigation.Direction{s}},
		{TurnRightFace(w), []navigation.Direction{s}},
		{TurnLeftFace(w), []navigation.Direction{n}},
		{TurnRightFace(e), []navigation.Direction{n}},
	}
	for _, c := range cases {
		for _, d := range navigation.AllDirections {
			assert.Equal(t, contains(c.allowed, d), c.face.CanBeCapturedFrom(d),
				"%s from %s", c.face, d)
		}
	}
}

func contains(ds []navigation.Direction, d navigation.Direction) bool {
	for _, x := range ds {
		if x == d {
			return true
		}
	}
	return false
}

func TestCapturedBy(t *testing.T) {
	is := is.New(t)
	for _, f := range AllFaces() {
		for _, tt := range tiles.AllTileTypes {
			want := !(f == ForceTurnFace && tt == tiles.Two)
			is.Equal(f.CanBeCapturedBy(tt), want)
		}
	}
}

func TestTraversal(t *testing.T) {
	type pair struct{ enter, leave navigation.Direction }
	type tc struct {
		face    Face
		allowed []pair
	}
	leftTurns := []pair{{n, w}, {s, e}, {e, n}, {w, s}}
	rightTurns := []pair{{n, e}, {s, w}, {e, s}, {w, n}}
	cases := []tc{
		{BlockingFace, nil},
		{ForceTurnFace, append(append([]pair{}, leftTurns...), rightTurns...)},
		{StraightFace(Vertical), []pair{{n, n}, {s, s}, {n, s}, {s, n}}},
		{StraightFace(Horizontal), []pair{{e, e}, {w, w}, {e, w}, {w, e}}},
		{OneWayFace(n), []pair{{n, n}, {n, s}}},
		{OneWayFace(e), []pair{{e, e}, {e, w}}},
		{TurnLeftFace(w), []pair{{n, w}}},
		{TurnLeftFace(s), []pair{{w, s}}},
		{TurnRightFace(e), []pair{{n, e}}},
		{TurnRightFace(n), []pair{{w, n}}},
	}
	for _, c := range cases {
		for _, enter := range navigation.AllDirections {
			for _, leave := range navigation.AllDirections {
				want := false
				for _, p := range c.allowed {
					if p.enter == enter && p.leave == leave {
						want = true
					}
				}
				assert.Equal(t, want, c.face.CanBeTraversed(enter, leave),
					"%s entering %s leaving %s", c.face, enter, leave)
			}
		}
	}
}

// A face that can be passed by turning can always be captured by a tile
// arriving the way it would have entered to turn.
func TestTurnFacesCaptureMatchesTraversal(t *testing.T) {
	is := is.New(t)
	for _, f := range AllFaces() {
		if f.Kind != OneWayTurnLeft && f.Kind != OneWayTurnRight {
			continue
		}
		for _, enter := range navigation.AllDirections {
			passable := f.CanBeTraversed(enter, enter.TurnLeft()) ||
				f.CanBeTraversed(enter, enter.TurnRight())
			is.Equal(passable, f.CanBeCapturedFrom(enter))
		}
	}
}
