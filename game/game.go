package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/barragoon/board"
	"github.com/domino14/barragoon/move"
	"github.com/domino14/barragoon/movegen"
	"github.com/domino14/barragoon/tiles"
	"github.com/domino14/barragoon/zobrist"
)

type PlayState uint8

const (
	Playing PlayState = iota
	GameOver
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
	ErrNoHistory   = errors.New("no move to undo")
)

// IllegalMoveError is returned when a move is not among the legal moves
// of the position. The position is left untouched.
type IllegalMoveError struct {
	Move move.Move
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("%v: %v", ErrIllegalMove, e.Move)
}

func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}

// Game is the rules layer over a position: it validates and applies
// moves, alternates turns, and keeps the history. It doesn't care how
// moves are chosen; players of any kind live outside this package.
type Game struct {
	pos *board.Position
	gen movegen.MoveGenerator

	playing PlayState
	winner  tiles.Player
	turnnum int
	history []Turn

	zobrist *zobrist.Zobrist
	hash    uint64

	backupMode BackupMode
	stateStack []*stateBackup
	stackPtr   int
}

// New returns a game at the canonical start position.
func New() *Game {
	return newGame(board.New())
}

// Empty returns a game on an empty board.
func Empty() *Game {
	return newGame(board.Empty())
}

// FromFEN starts a game from position text.
func FromFEN(fen string) (*Game, error) {
	pos, err := board.FromFEN(fen)
	if err != nil {
		return nil, err
	}
	return newGame(pos), nil
}

// FromPosition starts a game from a copy of pos.
func FromPosition(pos *board.Position) *Game {
	return newGame(pos.Copy())
}

func newGame(pos *board.Position) *Game {
	g := &Game{
		pos:     pos,
		gen:     movegen.NewGenerator(),
		zobrist: zobrist.New(),
	}
	g.hash = g.zobrist.Hash(pos)
	g.updatePlayState()
	return g
}

// ValidMoves returns every legal move of the player to move.
func (g *Game) ValidMoves() []move.Move {
	return g.gen.GenAll(g.pos)
}

// MakeMove validates m against the legal moves and applies it. It
// returns the player who moved. The turn is not passed; see PlayMove.
func (g *Game) MakeMove(m move.Move) (tiles.Player, error) {
	if !g.gen.IsLegal(g.pos, m) {
		return g.pos.CurrentPlayer, &IllegalMoveError{Move: m}
	}
	return g.makeMove(m), nil
}

// makeMove applies an already validated move.
func (g *Game) makeMove(m move.Move) tiles.Player {
	Apply(g.pos, m)
	return g.pos.CurrentPlayer
}

// Apply mutates pos according to m without any validation.
func Apply(pos *board.Position, m move.Move) {
	switch m.Action {
	case move.MoveTypeStraight, move.MoveTypeTileCapture:
		pos.SetContent(m.Stop, board.TileAt(m.Tile))
		pos.SetContent(m.Start, board.SquareContent{})
	case move.MoveTypeBarragoonCapture:
		pos.SetContent(m.Stop, board.TileAt(m.Tile))
		pos.SetContent(m.Start, board.SquareContent{})
		pos.SetContent(m.Target, board.FaceAt(m.NewFace))
	case move.MoveTypeBarragoonPlacement:
		pos.SetContent(m.Target, board.FaceAt(m.NewFace))
	default:
		panic(fmt.Sprintf("unexpected move type %d", m.Action))
	}
}

// PlayMove plays a legal move and passes the turn to the other player.
func (g *Game) PlayMove(m move.Move) error {
	if g.playing == GameOver {
		return ErrGameOver
	}
	// validate before backing up so a rejected move leaves the backups alone
	if !g.gen.IsLegal(g.pos, m) {
		return &IllegalMoveError{Move: m}
	}
	if g.backupMode != NoBackup {
		g.backupState()
	}
	mover := g.makeMove(m)
	g.history = append(g.history, Turn{Player: mover, Move: m})
	g.pos.CurrentPlayer = mover.Other()
	g.hash = g.zobrist.AddMove(g.hash, m)
	g.turnnum++
	g.updatePlayState()
	if g.playing == GameOver {
		log.Debug().Str("winner", g.winner.String()).Int("turn", g.turnnum).Msg("game is over")
	}
	return nil
}

// PlayNotation parses a move in move notation and plays it.
func (g *Game) PlayNotation(s string) (move.Move, error) {
	m, err := move.FromNotation(s)
	if err != nil {
		return m, err
	}
	return m, g.PlayMove(m)
}

// updatePlayState ends the game when the player to move has no tiles or
// no legal move; that player loses.
func (g *Game) updatePlayState() {
	onturn := g.pos.CurrentPlayer
	if g.pos.TileCount(onturn) == 0 || !g.gen.HasMoves(g.pos) {
		g.playing = GameOver
		g.winner = onturn.Other()
		return
	}
	g.playing = Playing
}

func (g *Game) Playing() PlayState {
	return g.playing
}

// Winner returns the winner once the game is over.
func (g *Game) Winner() (tiles.Player, bool) {
	return g.winner, g.playing == GameOver
}

func (g *Game) PlayerOnTurn() tiles.Player {
	return g.pos.CurrentPlayer
}

func (g *Game) Turn() int {
	return g.turnnum
}

func (g *Game) Position() *board.Position {
	return g.pos
}

func (g *Game) FEN() string {
	return g.pos.FEN()
}

func (g *Game) Hash() uint64 {
	return g.hash
}

func (g *Game) Zobrist() *zobrist.Zobrist {
	return g.zobrist
}
