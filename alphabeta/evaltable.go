package alphabeta

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/twentyfortyeight/board"
	"github.com/domino14/twentyfortyeight/game"
	"github.com/domino14/twentyfortyeight/zobrist"
)

const entrySize = 16

const minTableSizePowerOf2 = 16

const (
	entryValid  = 0x01
	entryRandom = 0x02
)

// 16 bytes (entrySize). The whole board is kept so a lookup only ever
// returns the value for the exact position asked about.
type tableEntry struct {
	board board.Board
	value int32
	flags uint8
}

func (t tableEntry) matches(b board.Board, randomToMove bool) bool {
	want := uint8(entryValid)
	if randomToMove {
		want |= entryRandom
	}
	return t.flags == want && t.board == b
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

// EvalTable memoises static evaluations of positions. Evaluations of
// positions that have not been won depend only on the board and the side
// to move, so they are safe to share across searches, moves and games.
type EvalTable struct {
	TableLock
	table        []tableEntry
	created      atomic.Uint64
	lookups      atomic.Uint64
	hits         atomic.Uint64
	t2collisions atomic.Uint64
	sizePowerOf2 int
	sizeMask     uint64

	zobrist *zobrist.Zobrist
}

func (t *EvalTable) SetSingleThreadedMode() {
	t.TableLock = &FakeLock{}
}

func (t *EvalTable) SetMultiThreadedMode() {
	t.TableLock = new(sync.RWMutex)
}

func (t *EvalTable) lookup(zval uint64, b board.Board, randomToMove bool) (int64, bool) {
	t.RLock()
	defer t.RUnlock()
	t.lookups.Add(1)
	entry := t.table[zval&t.sizeMask]
	if !entry.matches(b, randomToMove) {
		if entry.flags&entryValid != 0 {
			t.t2collisions.Add(1)
		}
		return 0, false
	}
	t.hits.Add(1)
	return int64(entry.value), true
}

func (t *EvalTable) store(zval uint64, b board.Board, randomToMove bool, value int64) {
	entry := tableEntry{board: b, value: int32(value), flags: entryValid}
	if randomToMove {
		entry.flags |= entryRandom
	}
	t.Lock()
	defer t.Unlock()
	// just overwrite whatever is there.
	t.table[zval&t.sizeMask] = entry
	t.created.Add(1)
}

// Evaluate returns n's heuristic value, consulting the table first.
func (t *EvalTable) Evaluate(n *game.Node) int64 {
	b := n.Board()
	if b.HasWinningTile() {
		// depends on the score, so never stored.
		return n.Heuristic()
	}
	randomToMove := n.Player() == game.Random
	zval := t.zobrist.Hash(b, randomToMove)
	if v, ok := t.lookup(zval, b, randomToMove); ok {
		return v
	}
	v := n.Heuristic()
	t.store(zval, b, randomToMove, v)
	return v
}

// Reset sizes the table to the largest power of two that fits in the given
// fraction of system memory (at least 2^16 entries) and clears it.
func (t *EvalTable) Reset(fractionOfMemory float64) {
	if t.TableLock == nil {
		t.SetSingleThreadedMode()
	}
	t.Lock()
	defer t.Unlock()
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	t.sizePowerOf2 = minTableSizePowerOf2
	if desiredNElems > 1 {
		t.sizePowerOf2 = max(int(math.Log2(desiredNElems)), minTableSizePowerOf2)
	}
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
		log.Debug().Msg("creating zobrist hash")
		t.zobrist = &zobrist.Zobrist{}
		t.zobrist.Initialize()
	}

	log.Debug().Int("num-elems", numElems).
		Float64("desired-num-elems", desiredNElems).
		Int("estimated-total-memory-bytes", numElems*entrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Bool("reset", reset).
		Msg("eval-table-size")

	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.t2collisions.Store(0)
}

// Stats reports how many entries were created, looked up and found.
func (t *EvalTable) Stats() (created, lookups, hits, collisions uint64) {
	return t.created.Load(), t.lookups.Load(), t.hits.Load(), t.t2collisions.Load()
}

func (t *EvalTable) Size() int {
	return len(t.table)
}
