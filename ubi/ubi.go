// Package ubi speaks the Universal Barragoon Interface, a line protocol
// for driving the engine from a GUI or a test harness.
package ubi

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/barragoon/game"
	"github.com/domino14/barragoon/perft"
)

const (
	EngineName = "barragoon"
	Author     = "the barragoon developers"
)

// Version is set at build time for release binaries.
var Version = "0.1.0"

type State uint8

const (
	Uninitialized State = iota
	WaitingForReady
	Ready
	PositionSet
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case WaitingForReady:
		return "waiting-for-ready"
	case Ready:
		return "ready"
	case PositionSet:
		return "position-set"
	}
	return "unknown"
}

var (
	errNotInitialized = errors.New("send ubi first")
	errAlreadyInit    = errors.New("already initialized")
	errBusy           = errors.New("a search is already running")
)

// Handler keeps the protocol state between lines.
type Handler struct {
	state   State
	game    *game.Game
	threads int
	counter *perft.Counter

	out io.Writer
	// mu guards out; background perft writes to it too.
	mu sync.Mutex

	cancel context.CancelFunc
	done   chan struct{}
}

// NewHandler returns a handler writing answers to out. tt may be nil.
func NewHandler(out io.Writer, threads int, tt *perft.TranspositionTable) *Handler {
	return &Handler{
		game:    game.Empty(),
		threads: max(threads, 1),
		counter: perft.NewCounter(tt, threads),
		out:     out,
	}
}

func (h *Handler) State() State {
	return h.state
}

func (h *Handler) println(a ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintln(h.out, a...)
}

func (h *Handler) errout(err error) {
	h.println("info string error", err.Error())
}

// Handle processes one line and reports whether the session should end.
func (h *Handler) Handle(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	if !keywords[fields[0]] {
		h.println("Unknown command")
		return false
	}
	cmd, err := parse(line)
	if err != nil {
		h.errout(err)
		return false
	}
	log.Debug().Str("line", line).Str("state", h.state.String()).Msg("ubi-command")

	switch {
	case cmd.Position != nil:
		h.position(cmd.Position)
	case cmd.Perft != nil:
		h.perft(ctx, cmd.Perft.Depth)
	case cmd.Go != nil:
		h.goPerft(ctx, cmd.Go.Perft.Depth)
	default:
		return h.keyword(cmd.Keyword)
	}
	return false
}

func (h *Handler) keyword(kw string) bool {
	switch kw {
	case "ubi":
		if h.state != Uninitialized {
			h.errout(errAlreadyInit)
			return false
		}
		h.state = WaitingForReady
		h.println(fmt.Sprintf("id name %s v%s author %s", EngineName, Version, Author))
		h.println("ubiok")
	case "isready":
		if h.state == Uninitialized {
			h.errout(errNotInitialized)
			return false
		}
		// wait for a running search so readyok means idle
		h.wait()
		if h.state == WaitingForReady {
			h.state = Ready
		}
		h.println("readyok")
	case "moves":
		moves := h.game.ValidMoves()
		strs := make([]string, len(moves))
		for i, m := range moves {
			strs[i] = m.String()
		}
		h.println(strings.Join(strs, " "))
	case "d":
		h.println(h.game.DisplayText(false))
	case "stop":
		h.stop()
	case "exit", "quit":
		return true
	}
	return false
}

func (h *Handler) position(p *positionCmd) {
	var g *game.Game
	if p.StartPos {
		g = game.New()
	} else {
		var err error
		g, err = game.FromFEN(strings.Join(p.FEN, " "))
		if err != nil {
			h.errout(err)
			return
		}
	}
	for _, m := range p.Moves {
		if _, err := g.PlayNotation(m); err != nil {
			h.errout(fmt.Errorf("move %s: %w", m, err))
			return
		}
	}
	h.game = g
	h.state = PositionSet
}

func (h *Handler) perft(ctx context.Context, depth int) {
	if h.busy() {
		h.errout(errBusy)
		return
	}
	n, err := h.counter.Count(ctx, h.game.Position(), depth, h.threads)
	if err != nil {
		h.errout(err)
		return
	}
	h.println(fmt.Sprintf("perft %d %d", depth, n))
}

func (h *Handler) busy() bool {
	if h.done == nil {
		return false
	}
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// goPerft runs perft in the background until it finishes or stop is
// received.
func (h *Handler) goPerft(ctx context.Context, depth int) {
	if h.busy() {
		h.errout(errBusy)
		return
	}
	h.release()
	ctx, h.cancel = context.WithCancel(ctx)
	h.done = make(chan struct{})
	pos := h.game.Position().Copy()
	go func(done chan struct{}) {
		defer close(done)
		n, err := h.counter.Count(ctx, pos, depth, h.threads)
		if errors.Is(err, context.Canceled) {
			h.println("info string perft stopped")
			return
		}
		if err != nil {
			h.errout(err)
			return
		}
		h.println(fmt.Sprintf("perft %d %d", depth, n))
	}(h.done)
}

func (h *Handler) stop() {
	if h.cancel != nil {
		h.cancel()
	}
	h.wait()
}

func (h *Handler) wait() {
	if h.done != nil {
		<-h.done
	}
	h.release()
}

func (h *Handler) release() {
	if h.cancel != nil {
		h.cancel()
	}
	h.cancel = nil
	h.done = nil
}

// Loop reads commands from in until exit, quit or end of input.
func Loop(ctx context.Context, in io.Reader, out io.Writer, threads int,
	tt *perft.TranspositionTable) error {

	h := NewHandler(out, threads, tt)
	// let a background search finish before returning
	defer h.wait()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if h.Handle(ctx, scanner.Text()) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
	return scanner.Err()
}
