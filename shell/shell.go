// Package shell is the interactive barragoon console: load positions,
// list and play moves, run perft and self-play, and run Lua scripts.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/barragoon/config"
	"github.com/domino14/barragoon/game"
	"github.com/domino14/barragoon/move"
	"github.com/domino14/barragoon/perft"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errQuit              = errors.New("sending quit signal")
)

type ShellController struct {
	l        *readline.Instance
	config   *config.Config
	execPath string
	version  string

	game     *game.Game
	curPlays []move.Move
	tt       *perft.TranspositionTable

	autoplayCancel context.CancelFunc
	autoplayDone   chan struct{}
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config, execPath, version string) *ShellController {
	sc := newController(cfg, execPath, version)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mbarragoon>\033[0m ",
		HistoryFile:     "/tmp/barragoon_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	return sc
}

func newController(cfg *config.Config, execPath, version string) *ShellController {
	sc := &ShellController{config: cfg, execPath: execPath, version: version}
	sc.setGame(game.New())
	return sc
}

func (sc *ShellController) setGame(g *game.Game) {
	g.SetBackupMode(game.SimulationMode)
	sc.game = g
	sc.curPlays = nil
}

func (sc *ShellController) stderr() io.Writer {
	if sc.l == nil {
		return os.Stderr
	}
	return sc.l.Stderr()
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a line into the command, its positional
// arguments, and -key value options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		// negative numbers are arguments, not options
		if strings.HasPrefix(f, "-") && len(f) > 1 && (f[1] < '0' || f[1] > '9') {
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			key := f[1:]
			options[key] = append(options[key], fields[i+1])
			i++
			continue
		}
		args = append(args, f)
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

// Execute runs a single line, as given on the command line, and quits.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.dispatch(line)
	if errors.Is(err, errQuit) {
		sig <- syscall.SIGINT
		return
	}
	if err != nil {
		sc.showError(err)
		return
	}
	if resp != nil && resp.message != "" {
		fmt.Println(resp.message)
	}
	sc.waitAutoplay()
}

func (sc *ShellController) dispatch(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("cmd", cmd.cmd).Strs("args", cmd.args).Msg("shell-command")

	switch cmd.cmd {
	case "exit", "bye":
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "empty":
		return sc.empty(cmd)
	case "fen":
		return sc.fen(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "gen":
		return sc.generate(cmd)
	case "play":
		return sc.play(cmd)
	case "undo":
		return sc.undo(cmd)
	case "perft":
		return sc.perft(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "autoanalyze":
		return sc.autoAnalyze(cmd)
	case "script":
		return sc.script(cmd)
	case "hash":
		return sc.hash(cmd)
	}
	log.Debug().Msgf("you said: %v", strconv.Quote(line))
	return nil, fmt.Errorf("unrecognized command %q; try help", cmd.cmd)
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) error {
	resp, err := sc.dispatch(line)
	switch {
	case errors.Is(err, errQuit):
		sig <- syscall.SIGINT
		return err
	case errors.Is(err, errNoData):
	case err != nil:
		sc.showError(err)
	case resp != nil && resp.message != "":
		sc.showMessage(resp.message)
	}
	return nil
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if err := sc.standardModeSwitch(line, sig); err != nil {
			log.Debug().Err(err).Msg("leaving-loop")
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup stops any running background work.
func (sc *ShellController) Cleanup() {
	if sc.autoplayCancel != nil {
		sc.autoplayCancel()
	}
	sc.waitAutoplay()
}
