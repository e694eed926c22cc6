package perft

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/barragoon/zobrist"
)

const entrySize = 16

const (
	minSizePowerOf2 = 16
	maxSizePowerOf2 = 30

	depthShift = 56
	countMask  = (1 << depthShift) - 1
)

// tableEntry keeps the full hash; the depth sits in the top byte of
// data and the path count in the rest. Only depths of 2 and more are
// stored, so a zero entry is never valid.
type tableEntry struct {
	hash uint64
	data uint64
}

func (t tableEntry) depth() int {
	return int(t.data >> depthShift)
}

func (t tableEntry) count() uint64 {
	return t.data & countMask
}

type TableLock interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

type FakeLock struct{}

func (f FakeLock) Lock()    {}
func (f FakeLock) Unlock()  {}
func (f FakeLock) RLock()   {}
func (f FakeLock) RUnlock() {}

// TranspositionTable caches path counts keyed by (hash, depth).
type TranspositionTable struct {
	TableLock
	table        []tableEntry
	sizePowerOf2 int
	sizeMask     uint64

	created    atomic.Uint64
	lookups    atomic.Uint64
	hits       atomic.Uint64
	collisions atomic.Uint64

	zobrist *zobrist.Zobrist
}

// NewTranspositionTable sizes a table to the given fraction of total
// system memory.
func NewTranspositionTable(fractionOfMemory float64) *TranspositionTable {
	t := &TranspositionTable{TableLock: new(sync.RWMutex)}
	t.Reset(fractionOfMemory)
	return t
}

func (t *TranspositionTable) SetSingleThreadedMode() {
	t.TableLock = FakeLock{}
}

func (t *TranspositionTable) SetMultiThreadedMode() {
	t.TableLock = new(sync.RWMutex)
}

func (t *TranspositionTable) lookup(hash uint64, depth int) (uint64, bool) {
	t.RLock()
	defer t.RUnlock()
	t.lookups.Add(1)
	e := t.table[hash&t.sizeMask]
	if e.hash != hash || e.depth() != depth {
		if e.data != 0 {
			t.collisions.Add(1)
		}
		return 0, false
	}
	t.hits.Add(1)
	return e.count(), true
}

func (t *TranspositionTable) store(hash uint64, depth int, count uint64) {
	if count > countMask {
		return
	}
	e := tableEntry{hash: hash, data: uint64(depth)<<depthShift | count}
	t.Lock()
	defer t.Unlock()
	// always replace
	t.table[hash&t.sizeMask] = e
	t.created.Add(1)
}

// Reset clears the table, reallocating it if the size changes.
func (t *TranspositionTable) Reset(fractionOfMemory float64) {
	if t.TableLock == nil {
		t.TableLock = new(sync.RWMutex)
	}
	t.Lock()
	defer t.Unlock()
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	t.sizePowerOf2 = int(math.Log2(math.Max(desiredNElems, 1)))
	t.sizePowerOf2 = max(t.sizePowerOf2, minSizePowerOf2)
	t.sizePowerOf2 = min(t.sizePowerOf2, maxSizePowerOf2)

	numElems := 1 << t.sizePowerOf2
	t.sizeMask = uint64(numElems - 1)
	reset := false
	if t.table != nil && len(t.table) == numElems {
		reset = true
		clear(t.table)
	} else {
		t.table = make([]tableEntry, numElems)
	}
	if t.zobrist == nil {
		t.zobrist = zobrist.New()
	}

	log.Info().Int("num-elems", numElems).
		Float64("desired-num-elems", desiredNElems).
		Int("estimated-total-memory-bytes", numElems*entrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Bool("reset", reset).
		Msg("transposition-table-size")

	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.collisions.Store(0)
}

func (t *TranspositionTable) Zobrist() *zobrist.Zobrist {
	return t.zobrist
}

// Stats returns the lookup, hit and store counters.
func (t *TranspositionTable) Stats() (lookups, hits, created uint64) {
	return t.lookups.Load(), t.hits.Load(), t.created.Load()
}

func (t *TranspositionTable) Size() int {
	return len(t.table)
}
