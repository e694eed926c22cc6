package tiles

import (
	"fmt"
	"iter"

	"github.com/domino14/barragoon/navigation"
)

// A Stride is a travel pattern independent of board contents. With a
// zero BendLength it is a straight line; otherwise it is an L-shaped
// path that turns once by 90 degrees.
type Stride struct {
	StartDirection navigation.Direction
	StartLength    int
	BendDirection  navigation.Direction
	BendLength     int
	IsFullStride   bool
}

// Step is one cell of a stride's walk. LeaveDirection is meaningful only
// when Last is false.
type Step struct {
	EnterDirection navigation.Direction
	LeaveDirection navigation.Direction
	Last           bool
	// PositionDelta is the displacement from the origin square.
	PositionDelta navigation.PositionDelta
}

func (s Stride) Length() int {
	return s.StartLength + s.BendLength
}

func (s Stride) CanCapture() bool {
	return s.IsFullStride
}

// FullDelta is the displacement of the whole stride.
func (s Stride) FullDelta() navigation.PositionDelta {
	return s.StartDirection.AsDelta().Mul(s.StartLength).
		Add(s.BendDirection.AsDelta().Mul(s.BendLength))
}

// Steps yields one Step per cell, from the first cell to the destination.
func (s Stride) Steps() iter.Seq[Step] {
	return func(yield func(Step) bool) {
		var delta navigation.PositionDelta
		n := s.Length()
		for i := 1; i <= n; i++ {
			enter := s.StartDirection
			if i > s.StartLength {
				enter = s.BendDirection
			}
			delta = delta.Add(enter.AsDelta())
			step := Step{EnterDirection: enter, PositionDelta: delta, Last: i == n}
			if !step.Last {
				step.LeaveDirection = s.StartDirection
				if i >= s.StartLength {
					step.LeaveDirection = s.BendDirection
				}
			}
			if !yield(step) {
				return
			}
		}
	}
}

func (s Stride) String() string {
	kind := "short"
	if s.IsFullStride {
		kind = "full"
	}
	if s.BendLength == 0 {
		return fmt.Sprintf("%s %d %s", kind, s.StartLength, s.StartDirection)
	}
	return fmt.Sprintf("%s %d %s, %d %s", kind, s.StartLength, s.StartDirection,
		s.BendLength, s.BendDirection)
}
