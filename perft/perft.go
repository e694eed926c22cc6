// Package perft counts move paths from a position to a fixed depth. The
// counts validate the move generator; they are the usual tool for that in
// board game engines.
package perft

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/barragoon/board"
	"github.com/domino14/barragoon/game"
	"github.com/domino14/barragoon/move"
	"github.com/domino14/barragoon/movegen"
)

// MoveCount is the number of paths below one root move.
type MoveCount struct {
	Move  move.Move
	Count uint64
}

// Counter counts paths, optionally through a transposition table. The
// table's lock mode is fixed when the counter is made; see NewCounter.
type Counter struct {
	TT *TranspositionTable
}

// NewCounter returns a counter over tt, which may be nil. A table only
// ever used by single-threaded counts can skip locking.
func NewCounter(tt *TranspositionTable, threads int) *Counter {
	if tt != nil {
		if threads <= 1 {
			tt.SetSingleThreadedMode()
		} else {
			tt.SetMultiThreadedMode()
		}
	}
	return &Counter{TT: tt}
}

// Count counts paths without a table.
func Count(ctx context.Context, pos *board.Position, depth, threads int) (uint64, error) {
	return (&Counter{}).Count(ctx, pos, depth, threads)
}

// Count returns the number of distinct move sequences of length depth
// from pos. The root moves are split across threads workers.
func (c *Counter) Count(ctx context.Context, pos *board.Position, depth, threads int) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}
	div, err := c.Divide(ctx, pos, depth, threads)
	if err != nil {
		return 0, err
	}
	var total uint64
	for _, mc := range div {
		total += mc.Count
	}
	return total, nil
}

// Divide returns the path count below every root move, ordered by move
// notation.
func (c *Counter) Divide(ctx context.Context, pos *board.Position, depth, threads int) ([]MoveCount, error) {
	if depth <= 0 {
		return nil, nil
	}
	threads = max(threads, 1)
	ts := time.Now()
	root := movegen.NewGenerator().GenAll(pos)
	results := make([]MoveCount, len(root))
	var rootHash uint64
	if c.TT != nil {
		rootHash = c.TT.Zobrist().Hash(pos)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i, m := range root {
		g.Go(func() error {
			child := *pos
			play(&child, m)
			var h uint64
			if c.TT != nil {
				h = c.TT.Zobrist().AddMove(rootHash, m)
			}
			n, err := c.count(ctx, movegen.NewGenerator(), &child, h, depth-1)
			if err != nil {
				return err
			}
			results[i] = MoveCount{Move: m, Count: n}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	slices.SortFunc(results, func(a, b MoveCount) int {
		return cmp.Compare(a.Move.String(), b.Move.String())
	})
	log.Debug().Int("depth", depth).Int("threads", threads).
		Int("root-moves", len(root)).
		Dur("elapsed", time.Since(ts)).Msg("perft-divide")
	return results, nil
}

func (c *Counter) count(ctx context.Context, gen *movegen.Generator, pos *board.Position,
	hash uint64, depth int) (uint64, error) {

	switch depth {
	case 0:
		return 1, nil
	case 1:
		return uint64(gen.CountAll(pos)), nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if c.TT != nil {
		if n, ok := c.TT.lookup(hash, depth); ok {
			return n, nil
		}
	}
	var total uint64
	for _, m := range gen.GenAll(pos) {
		child := *pos
		play(&child, m)
		var h uint64
		if c.TT != nil {
			h = c.TT.Zobrist().AddMove(hash, m)
		}
		n, err := c.count(ctx, gen, &child, h, depth-1)
		if err != nil {
			return 0, err
		}
		total += n
	}
	if c.TT != nil {
		c.TT.store(hash, depth, total)
	}
	return total, nil
}

func play(pos *board.Position, m move.Move) {
	game.Apply(pos, m)
	pos.CurrentPlayer = pos.CurrentPlayer.Other()
}
