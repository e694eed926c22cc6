package game

import (
	"github.com/domino14/barragoon/board"
	"github.com/domino14/barragoon/movegen"
	"github.com/domino14/barragoon/tiles"
)

type BackupMode int

const (
	// NoBackup never performs game backups. It can be used for autoplay
	// that never takes moves back.
	NoBackup BackupMode = iota
	// SimulationMode keeps a stack of game states, one per played move,
	// so any number of moves can be taken back.
	SimulationMode
	// InteractiveGameplayMode keeps just one backup, of the state before
	// the last move.
	InteractiveGameplayMode
)

// stateBackup is a subset of Game, meant only for backup purposes.
type stateBackup struct {
	pos     board.Position
	playing PlayState
	winner  tiles.Player
	turnnum int
	hash    uint64
	nhist   int
}

func (g *Game) SetBackupMode(m BackupMode) {
	g.backupMode = m
	g.stackPtr = 0
}

func (g *Game) backupState() {
	if g.backupMode == InteractiveGameplayMode {
		g.stackPtr = 0
	}
	if g.stackPtr == len(g.stateStack) {
		g.stateStack = append(g.stateStack, &stateBackup{})
	}
	st := g.stateStack[g.stackPtr]
	st.pos.CopyFrom(g.pos)
	st.playing = g.playing
	st.winner = g.winner
	st.turnnum = g.turnnum
	st.hash = g.hash
	st.nhist = len(g.history)
	g.stackPtr++
}

// UnplayLastMove restores the state from before the last played move.
func (g *Game) UnplayLastMove() error {
	if g.backupMode == NoBackup || g.stackPtr == 0 {
		return ErrNoHistory
	}
	g.stackPtr--
	b := g.stateStack[g.stackPtr]
	g.pos.CopyFrom(&b.pos)
	g.playing = b.playing
	g.winner = b.winner
	g.turnnum = b.turnnum
	g.hash = b.hash
	g.history = g.history[:b.nhist]
	return nil
}

// Copy creates a deep copy of the game state. The backup stack is not
// copied; the copy starts without backups.
func (g *Game) Copy() *Game {
	cp := &Game{
		pos:     g.pos.Copy(),
		gen:     movegen.NewGenerator(),
		playing: g.playing,
		winner:  g.winner,
		turnnum: g.turnnum,
		history: append([]Turn(nil), g.history...),
		zobrist: g.zobrist,
		hash:    g.hash,
	}
	return cp
}
