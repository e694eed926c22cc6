package perft

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/barragoon/board"
)

func TestPerftStart(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	n, err := Count(ctx, board.New(), 0, 1)
	is.NoErr(err)
	is.Equal(n, uint64(1))

	n, err = Count(ctx, board.New(), 1, 1)
	is.NoErr(err)
	is.Equal(n, uint64(28))
}

func TestThreadsAgree(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	single, err := Count(ctx, board.New(), 2, 1)
	is.NoErr(err)
	multi, err := Count(ctx, board.New(), 2, 4)
	is.NoErr(err)
	is.Equal(single, multi)
	is.True(single > 28)
}

func TestTableAgrees(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	plain, err := Count(ctx, board.New(), 3, 2)
	is.NoErr(err)

	tt := NewTranspositionTable(0.00001)
	cached := &Counter{TT: tt}
	n, err := cached.Count(ctx, board.New(), 3, 2)
	is.NoErr(err)
	is.Equal(n, plain)

	// second run is served from the table
	n, err = cached.Count(ctx, board.New(), 3, 1)
	is.NoErr(err)
	is.Equal(n, plain)
	_, hits, created := tt.Stats()
	is.True(created > 0)
	is.True(hits > 0)
}

func TestDivideSumsToCount(t *testing.T) {
	ctx := context.Background()
	pos, err := board.FromFEN("3z3/7/7/7/3Z3/7/3x3/7/7")
	assert.NoError(t, err)
	total, err := Count(ctx, pos, 2, 3)
	assert.NoError(t, err)

	div, err := (&Counter{}).Divide(ctx, pos, 2, 3)
	assert.NoError(t, err)
	// the dark tile on d9 takes one target square away
	assert.Len(t, div, 7+4+61*16)
	var sum uint64
	for _, mc := range div {
		sum += mc.Count
	}
	assert.Equal(t, total, sum)
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Count(ctx, board.New(), 3, 2)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestTableSizing(t *testing.T) {
	tt := NewTranspositionTable(0)
	assert.Equal(t, 1<<minSizePowerOf2, tt.Size())
}

func TestCounterLockMode(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable(0)
	c := NewCounter(tt, 1)
	_, fake := tt.TableLock.(FakeLock)
	is.True(fake)

	plain, err := Count(context.Background(), board.New(), 3, 1)
	is.NoErr(err)
	n, err := c.Count(context.Background(), board.New(), 3, 1)
	is.NoErr(err)
	is.Equal(n, plain)
	// counting does not change the lock chosen at construction
	_, fake = tt.TableLock.(FakeLock)
	is.True(fake)

	NewCounter(tt, 4)
	_, fake = tt.TableLock.(FakeLock)
	is.True(!fake)
	is.True(NewCounter(nil, 4).TT == nil)
}
