package shell

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/barragoon/automatic"
	"github.com/domino14/barragoon/config"
	"github.com/domino14/barragoon/game"
	"github.com/domino14/barragoon/move"
	"github.com/domino14/barragoon/perft"
)

const defaultShownPlays = 30

// Response is what a command produced. data, if set, is what scripts
// receive through barragoon_json.
type Response struct {
	message string
	data    any
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

// intArg parses the positional argument at idx, or returns def if it is
// missing.
func intArg(cmd *shellcmd, idx, def int) (int, error) {
	if len(cmd.args) <= idx {
		return def, nil
	}
	return strconv.Atoi(cmd.args[idx])
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	sc.setGame(game.New())
	return sc.show(cmd)
}

func (sc *ShellController) empty(cmd *shellcmd) (*Response, error) {
	sc.setGame(game.Empty())
	return sc.show(cmd)
}

func (sc *ShellController) fen(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return &Response{message: sc.game.Position().FullFEN(), data: sc.game.Position().FullFEN()}, nil
	}
	g, err := game.FromFEN(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	sc.setGame(g)
	return sc.show(cmd)
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	return &Response{message: sc.game.ToDisplayText(), data: sc.game.Position().FullFEN()}, nil
}

func moveTableHeader() string {
	return "     Move                    Type\n"
}

func moveTableRow(idx int, m move.Move) string {
	return fmt.Sprintf("%4d: %-24s%s", idx+1, m.String(), m.MoveTypeString())
}

func (sc *ShellController) generate(cmd *shellcmd) (*Response, error) {
	n, err := intArg(cmd, 0, defaultShownPlays)
	if err != nil {
		return nil, err
	}
	sc.curPlays = sc.game.ValidMoves()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d legal moves for %s\n", len(sc.curPlays), sc.game.PlayerOnTurn())
	sb.WriteString(moveTableHeader())
	for i, m := range sc.curPlays {
		if i >= n {
			fmt.Fprintf(&sb, "... and %d more\n", len(sc.curPlays)-n)
			break
		}
		sb.WriteString(moveTableRow(i, m) + "\n")
	}
	strs := lo.Map(sc.curPlays, func(m move.Move, _ int) string { return m.String() })
	return &Response{message: strings.TrimRight(sb.String(), "\n"), data: strs}, nil
}

// play accepts move notation or the number of a move from the last gen
// listing.
func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <move|index>")
	}
	var m move.Move
	if idx, err := strconv.Atoi(cmd.args[0]); err == nil {
		if idx < 1 || idx > len(sc.curPlays) {
			return nil, fmt.Errorf("no move %d in the last gen listing", idx)
		}
		m = sc.curPlays[idx-1]
	} else {
		m, err = move.FromNotation(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	if err := sc.game.PlayMove(m); err != nil {
		return nil, err
	}
	sc.curPlays = nil
	return sc.show(cmd)
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if err := sc.game.UnplayLastMove(); err != nil {
		return nil, err
	}
	sc.curPlays = nil
	return sc.show(cmd)
}

func (sc *ShellController) threads(cmd *shellcmd, idx int) (int, error) {
	def := 1
	if sc.config != nil {
		def = max(sc.config.GetInt(config.ConfigThreads), 1)
	}
	return intArg(cmd, idx, def)
}

func (sc *ShellController) perft(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: perft <depth> [threads] [-tt true] [-divide true]")
	}
	depth, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	threads, err := sc.threads(cmd, 1)
	if err != nil {
		return nil, err
	}
	counter := &perft.Counter{}
	if cmd.options.Bool("tt") {
		if sc.tt == nil {
			frac := 0.25
			if sc.config != nil {
				frac = sc.config.GetFloat64(config.ConfigTTableMemFraction)
			}
			sc.tt = perft.NewTranspositionTable(frac)
		}
		counter.TT = sc.tt
	}
	ts := time.Now()
	ctx := context.Background()
	pos := sc.game.Position()
	var sb strings.Builder
	var total uint64
	if cmd.options.Bool("divide") && depth > 0 {
		div, err := counter.Divide(ctx, pos, depth, threads)
		if err != nil {
			return nil, err
		}
		for _, mc := range div {
			fmt.Fprintf(&sb, "%s: %d\n", mc.Move, mc.Count)
			total += mc.Count
		}
	} else {
		total, err = counter.Count(ctx, pos, depth, threads)
		if err != nil {
			return nil, err
		}
	}
	elapsed := time.Since(ts)
	fmt.Fprintf(&sb, "perft %d %d (%s, %.0f nps)", depth, total, elapsed.Round(time.Millisecond),
		float64(total)/max(elapsed.Seconds(), 1e-9))
	return &Response{message: sb.String(),
		data: map[string]any{"depth": depth, "count": total}}, nil
}

func (sc *ShellController) hash(cmd *shellcmd) (*Response, error) {
	h := sc.game.Hash()
	return &Response{message: fmt.Sprintf("%016x", h), data: fmt.Sprintf("%016x", h)}, nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 1 && cmd.args[0] == "stop" {
		if sc.autoplayCancel == nil {
			return nil, errors.New("no autoplay is running")
		}
		sc.autoplayCancel()
		sc.waitAutoplay()
		return msg("autoplay stopped"), nil
	}
	if sc.autoplayDone != nil {
		select {
		case <-sc.autoplayDone:
			sc.waitAutoplay()
		default:
			return nil, automatic.ErrAlreadyPlaying
		}
	}
	n, err := intArg(cmd, 0, 100)
	if err != nil {
		return nil, err
	}
	threads, err := sc.threads(cmd, 1)
	if err != nil {
		return nil, err
	}
	logfile := "/tmp/autoplay.csv"
	maxTurns := automatic.DefaultMaxTurns
	if sc.config != nil {
		logfile = sc.config.GetString(config.ConfigAutoplayLogfile)
		maxTurns = sc.config.GetInt(config.ConfigAutoplayMaxTurns)
	}
	if len(cmd.args) > 2 {
		logfile = cmd.args[2]
	}
	if maxTurns, err = cmd.options.IntDefault("maxturns", maxTurns); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	sc.autoplayCancel = cancel
	sc.autoplayDone = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		summary, err := automatic.Run(ctx, n, threads, maxTurns, logfile)
		if err != nil {
			log.Err(err).Msg("autoplay-failed")
			return
		}
		out, err := summary.YAML()
		if err != nil {
			log.Err(err).Msg("autoplay-summary")
			return
		}
		var hist strings.Builder
		if err := summary.WriteHistogram(&hist, 50); err != nil {
			log.Err(err).Msg("autoplay-histogram")
		}
		sc.showMessage(out + "\nbranching factor:\n" + hist.String())
	}(sc.autoplayDone)
	return msg(fmt.Sprintf("autoplay of %d games started on %d threads, logging to %s",
		n, threads, filepath.Clean(logfile))), nil
}

func (sc *ShellController) waitAutoplay() {
	if sc.autoplayDone != nil {
		<-sc.autoplayDone
	}
	if sc.autoplayCancel != nil {
		sc.autoplayCancel()
	}
	sc.autoplayDone = nil
	sc.autoplayCancel = nil
}

func (sc *ShellController) autoAnalyze(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: autoanalyze <logfile>")
	}
	report, err := automatic.AnalyzeLogFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	return msg(report), nil
}
