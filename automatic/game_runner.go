// Package automatic plays barragoon games with no human involved: both
// sides choose uniformly among their legal moves. It is used to soak-test
// the rules and to collect branching statistics.
package automatic

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/domino14/barragoon/game"
	"github.com/domino14/barragoon/move"
	"github.com/domino14/barragoon/tiles"
)

const DefaultMaxTurns = 500

// GameResult describes one finished (or abandoned) game.
type GameResult struct {
	ID       int
	Turns    int
	Decided  bool
	Winner   tiles.Player
	FinalFEN string
	// Branching holds the number of legal moves before every turn.
	Branching []int
	// Repeats counts turns that led back to a position seen earlier in
	// the game, side to move included.
	Repeats int
}

func (r GameResult) winnerString() string {
	if !r.Decided {
		return "none"
	}
	return r.Winner.String()
}

// csvRow renders the result as a log file row.
func (r GameResult) csvRow() string {
	mean := 0.0
	if len(r.Branching) > 0 {
		mean = float64(lo.Sum(r.Branching)) / float64(len(r.Branching))
	}
	return fmt.Sprintf("%d,%d,%s,%s,%.3f,%d\n", r.ID, r.Turns, r.winnerString(),
		r.FinalFEN, mean, r.Repeats)
}

const csvHeader = "gameID,turns,winner,finalfen,meanbranching,repeats\n"

// GameRunner plays random games one after another.
type GameRunner struct {
	game     *game.Game
	maxTurns int
	logchan  chan string
}

// NewGameRunner returns a runner; rows for finished games go to logchan
// if it is not nil.
func NewGameRunner(logchan chan string, maxTurns int) *GameRunner {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &GameRunner{logchan: logchan, maxTurns: maxTurns}
}

// StartGame sets up a fresh game at the start position.
func (r *GameRunner) StartGame() {
	r.game = game.New()
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

// PlayRandomTurn plays one uniformly chosen legal move and returns it
// along with the number of choices there were.
func (r *GameRunner) PlayRandomTurn() (move.Move, int, error) {
	moves := r.game.ValidMoves()
	if len(moves) == 0 {
		return move.Move{}, 0, game.ErrGameOver
	}
	m := moves[frand.Intn(len(moves))]
	return m, len(moves), r.game.PlayMove(m)
}

// PlayGame plays a whole game from the start position, stopping after
// the turn limit if no one has won.
func (r *GameRunner) PlayGame(id int) (GameResult, error) {
	r.StartGame()
	res := GameResult{ID: id}
	seen := map[uint64]struct{}{r.game.Hash(): {}}
	for r.game.Playing() == game.Playing && r.game.Turn() < r.maxTurns {
		_, n, err := r.PlayRandomTurn()
		if err != nil {
			return res, err
		}
		res.Branching = append(res.Branching, n)
		if _, ok := seen[r.game.Hash()]; ok {
			res.Repeats++
		} else {
			seen[r.game.Hash()] = struct{}{}
		}
	}
	res.Turns = r.game.Turn()
	res.Winner, res.Decided = r.game.Winner()
	res.FinalFEN = r.game.FEN()
	log.Debug().Int("game", id).Int("turns", res.Turns).
		Str("winner", res.winnerString()).Msg("game-finished")
	if r.logchan != nil {
		r.logchan <- res.csvRow()
	}
	return res, nil
}
