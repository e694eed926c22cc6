// Package barragoon models the faces of the directional barriers and
// the rules deciding when a tile may pass through or capture one.
package barragoon

import (
	"fmt"

	"github.com/domino14/barragoon/navigation"
)

type Kind uint8

const (
	Blocking Kind = iota
	Straight
	OneWay
	OneWayTurnLeft
	OneWayTurnRight
	ForceTurn
)

type Alignment uint8

const (
	Horizontal Alignment = iota
	Vertical
)

// Face is one of the sixteen barragoon faces. Alignment is used only by
// Straight faces and Direction only by the three one-way kinds; unused
// fields stay zero so faces compare with ==.
type Face struct {
	Kind      Kind
	Alignment Alignment
	Direction navigation.Direction
}

var (
	BlockingFace  = Face{Kind: Blocking}
	ForceTurnFace = Face{Kind: ForceTurn}
)

func StraightFace(a Alignment) Face {
	return Face{Kind: Straight, Alignment: a}
}

func OneWayFace(d navigation.Direction) Face {
	return Face{Kind: OneWay, Direction: d}
}

func TurnLeftFace(d navigation.Direction) Face {
	return Face{Kind: OneWayTurnLeft, Direction: d}
}

func TurnRightFace(d navigation.Direction) Face {
	return Face{Kind: OneWayTurnRight, Direction: d}
}

var allFaces = [16]Face{
	BlockingFace,
	StraightFace(Horizontal),
	StraightFace(Vertical),
	OneWayFace(navigation.North),
	OneWayFace(navigation.South),
	OneWayFace(navigation.East),
	OneWayFace(navigation.West),
	TurnLeftFace(navigation.North),
	TurnLeftFace(navigation.South),
	TurnLeftFace(navigation.East),
	TurnLeftFace(navigation.West),
	TurnRightFace(navigation.North),
	TurnRightFace(navigation.South),
	TurnRightFace(navigation.East),
	TurnRightFace(navigation.West),
	ForceTurnFace,
}

// AllFaces returns the sixteen faces in a fixed order.
func AllFaces() [16]Face {
	return allFaces
}

// Index is the face's position in AllFaces.
func (f Face) Index() int {
	for i, af := range allFaces {
		if af == f {
			return i
		}
	}
	panic(fmt.Sprintf("unexpected face %#v", f))
}

func FaceFromIndex(i int) Face {
	return allFaces[i]
}

var faceChars = map[Face]byte{
	ForceTurnFace:                   '+',
	StraightFace(Vertical):          '|',
	StraightFace(Horizontal):        '-',
	OneWayFace(navigation.South):    'Y',
	OneWayFace(navigation.North):    '^',
	OneWayFace(navigation.West):     '<',
	OneWayFace(navigation.East):     '>',
	TurnLeftFace(navigation.South):  'S',
	TurnLeftFace(navigation.North):  'N',
	TurnLeftFace(navigation.East):   'E',
	TurnLeftFace(navigation.West):   'W',
	TurnRightFace(navigation.South): 's',
	TurnRightFace(navigation.North): 'n',
	TurnRightFace(navigation.East):  'e',
	TurnRightFace(navigation.West):  'w',
	BlockingFace:                    'x',
}

var charFaces = func() map[byte]Face {
	m := make(map[byte]Face, len(faceChars))
	for f, c := range faceChars {
		m[c] = f
	}
	return m
}()

// FENChar returns the character used for the face in position and move
// notation.
func (f Face) FENChar() byte {
	c, ok := faceChars[f]
	if !ok {
		panic(fmt.Sprintf("unexpected face %#v", f))
	}
	return c
}

func FromFENChar(c byte) (Face, bool) {
	f, ok := charFaces[c]
	return f, ok
}

// CLIChar is the glyph used when drawing the board in a terminal.
func (f Face) CLIChar() rune {
	switch f.Kind {
	case Blocking:
		return '⊗'
	case ForceTurn:
		return '⊕'
	case Straight:
		if f.Alignment == Vertical {
			return '↕'
		}
		return '↔'
	case OneWay:
		return [4]rune{'↑', '←', '↓', '→'}[f.Direction]
	case OneWayTurnLeft:
		return [4]rune{'⬏', '⬐', '⬎', '⬑'}[f.Direction]
	case OneWayTurnRight:
		return [4]rune{'⬑', '⬎', '⬐', '⬏'}[f.Direction]
	}
	panic(fmt.Sprintf("unexpected face kind %d", f.Kind))
}

func (f Face) String() string {
	switch f.Kind {
	case Blocking:
		return "blocking"
	case ForceTurn:
		return "force-turn"
	case Straight:
		if f.Alignment == Vertical {
			return "straight vertical"
		}
		return "straight horizontal"
	case OneWay:
		return "one-way " + f.Direction.String()
	case OneWayTurnLeft:
		return "turn-left " + f.Direction.String()
	case OneWayTurnRight:
		return "turn-right " + f.Direction.String()
	}
	return fmt.Sprintf("Face(%d)", f.Kind)
}
