package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/domino14/barragoon/navigation"
	"github.com/domino14/barragoon/tiles"
)

var (
	ErrUnderfullLine = errors.New("underfull line")
	ErrOverfullLine  = errors.New("overfull line")
	ErrTooManyLines  = errors.New("too many lines")
	ErrInvalidChar   = errors.New("invalid character")
)

// PositionError is returned when position text cannot be decoded.
// CharIndex is the byte offset in the input at which decoding failed.
type PositionError struct {
	Kind      error
	CharIndex int
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("%v at character %d", e.Kind, e.CharIndex)
}

func (e *PositionError) Unwrap() error {
	return e.Kind
}

func posErr(kind error, idx int) error {
	return &PositionError{Kind: kind, CharIndex: idx}
}

// FromFEN decodes position text. Ranks are listed from the top (rank 9)
// down, separated by '/'. Runs of empty squares are written as a digit
// 1-7. An optional second field, "l" or "d", names the player to move;
// it defaults to light.
func FromFEN(fen string) (*Position, error) {
	p := &Position{}
	boardPart := fen
	if sp := strings.IndexByte(fen, ' '); sp >= 0 {
		boardPart = fen[:sp]
		rest := strings.TrimSpace(fen[sp:])
		switch rest {
		case "", "l":
			p.CurrentPlayer = tiles.Light
		case "d":
			p.CurrentPlayer = tiles.Dark
		default:
			return nil, posErr(ErrInvalidChar, sp+1+strings.Index(fen[sp+1:], rest))
		}
	}

	row := navigation.BoardHeight - 1
	col := 0
	for idx := 0; idx < len(boardPart); idx++ {
		c := boardPart[idx]
		switch {
		case c >= '1' && c <= '7':
			col += int(c - '0')
			if col > navigation.BoardWidth {
				return nil, posErr(ErrOverfullLine, idx)
			}
		case c == '/':
			if col != navigation.BoardWidth {
				return nil, posErr(ErrUnderfullLine, idx)
			}
			col = 0
			row--
			if row < 0 {
				return nil, posErr(ErrTooManyLines, idx)
			}
		default:
			content, ok := contentFromFENChar(c)
			if !ok {
				return nil, posErr(ErrInvalidChar, idx)
			}
			if col >= navigation.BoardWidth {
				return nil, posErr(ErrOverfullLine, idx)
			}
			p.grid[row][col] = content
			col++
		}
	}
	// the last rank, and any ranks never reached, are short of squares
	if col != navigation.BoardWidth || row != 0 {
		return nil, posErr(ErrUnderfullLine, len(boardPart))
	}
	return p, nil
}

// FEN encodes the board. It is the exact inverse of FromFEN for the
// board; the player to move is left out.
func (p *Position) FEN() string {
	var sb strings.Builder
	for r := navigation.BoardHeight - 1; r >= 0; r-- {
		empties := 0
		for f := 0; f < navigation.BoardWidth; f++ {
			sq := p.grid[r][f]
			if sq.IsEmpty() {
				empties++
				continue
			}
			if empties > 0 {
				sb.WriteString(strconv.Itoa(empties))
				empties = 0
			}
			sb.WriteByte(sq.FENChar())
		}
		if empties > 0 {
			sb.WriteString(strconv.Itoa(empties))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// FullFEN is FEN followed by the player to move.
func (p *Position) FullFEN() string {
	if p.CurrentPlayer == tiles.Dark {
		return p.FEN() + " d"
	}
	return p.FEN() + " l"
}
