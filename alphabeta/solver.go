// Package alphabeta searches the 2048 game tree with depth-limited minimax
// and alpha-beta pruning. The human maximises the heuristic; the random
// player is treated as an adversary that places the worst possible tile.
package alphabeta

import (
	"errors"
	"math"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/twentyfortyeight/game"
	"github.com/domino14/twentyfortyeight/move"
)

const (
	Infinity = math.MaxInt64

	DefaultMinDepth    = 2
	DefaultRetainPlies = 2
)

var (
	ErrNoRecommendation = errors.New("no search depth completed; no recommendation")
	ErrNotHumanTurn     = errors.New("moves can only be suggested on the human's turn")
)

// Termination tells the search what to do at a node.
type Termination uint8

const (
	// Continue searching below this node.
	Continue Termination = iota
	// End the search here and evaluate the node statically.
	End
	// Abort the whole search. Values returned are only bounds.
	Abort
)

func (t Termination) String() string {
	switch t {
	case Continue:
		return "continue"
	case End:
		return "end"
	}
	return "abort"
}

// A Terminator is consulted on entry to every node. depth counts the
// random player's turns between the search root and n. It may be called
// from several goroutines at once.
type Terminator func(n *game.Node, depth int) Termination

// FixedDepth ends the search once depth random turns have been searched.
func FixedDepth(depth int) Terminator {
	return func(_ *game.Node, d int) Termination {
		if d >= depth {
			return End
		}
		return Continue
	}
}

// Result is the outcome of one search.
type Result struct {
	Value int64
	// Move is the best move from the searched node. It is move.GameOver if
	// the node was a leaf or the search was aborted.
	Move move.Move
	// Termination is Abort if the search was aborted, End if some leaf was
	// cut off by the terminator, and Continue if every leaf was the end of
	// the game.
	Termination Termination
	// PrunedNodes counts the successors skipped at alpha-beta cutoffs.
	PrunedNodes uint64
	Nodes       uint64
}

// Solver implements the minimax + alphabeta algorithm.
type Solver struct {
	threads     int
	minDepth    int
	maxDepth    int
	retainPlies int

	etable *EvalTable
	nodes  atomic.Uint64
}

// Init initializes the solver
func (s *Solver) Init() {
	s.threads = 1
	s.minDepth = DefaultMinDepth
	s.maxDepth = 0
	s.retainPlies = DefaultRetainPlies
	s.etable = nil
}

// SetThreads sets how many goroutines search the successors of a human
// root node.
func (s *Solver) SetThreads(threads int) {
	s.threads = max(threads, 1)
	if s.etable != nil && s.threads > 1 {
		s.etable.SetMultiThreadedMode()
	}
}

// SetMinDepth sets the depth of the first iteration of Suggest. That
// iteration always runs to completion.
func (s *Solver) SetMinDepth(d int) {
	s.minDepth = max(d, 1)
}

// SetMaxDepth caps the depth of Suggest. 0 means no cap.
func (s *Solver) SetMaxDepth(d int) {
	s.maxDepth = max(d, 0)
}

// SetRetainPlies sets how many levels below the root keep their cached
// successors once searched. Deeper nodes are released after use.
func (s *Solver) SetRetainPlies(p int) {
	s.retainPlies = max(p, 1)
}

// SetEvalTable attaches a table for memoising static evaluations. A nil
// table turns memoisation off.
func (s *Solver) SetEvalTable(t *EvalTable) {
	s.etable = t
	if t != nil && s.threads > 1 {
		t.SetMultiThreadedMode()
	}
}

func (s *Solver) Threads() int { return s.threads }

// Search runs a full-window alpha-beta search from n, stopping wherever
// term says so.
func (s *Solver) Search(n *game.Node, term Terminator) Result {
	before := s.nodes.Load()
	var res Result
	if s.threads > 1 && n.Player() == game.Human {
		res = s.searchRootSplit(n, term)
	} else {
		res = s.alphabeta(n, 0, 0, -Infinity, Infinity, term)
	}
	res.Nodes = s.nodes.Load() - before
	return res
}

func (s *Solver) evaluate(n *game.Node) int64 {
	if s.etable != nil {
		return s.etable.Evaluate(n)
	}
	return n.Heuristic()
}

// release drops the successor cache of a node ply levels below the root,
// unless it is close enough to the root to be worth keeping for the next
// iteration.
func (s *Solver) release(n *game.Node, ply int) {
	if ply >= s.retainPlies {
		n.ClearSuccessors()
	}
}

// enter handles the terminator and leaves. It returns the result and true
// if there is nothing to search below n.
func (s *Solver) enter(n *game.Node, depth int, α, β int64, term Terminator) (Result, []*game.Node, bool) {
	s.nodes.Add(1)
	switch term(n, depth) {
	case Abort:
		v := β
		if n.Player() == game.Human {
			v = α
		}
		return Result{Value: v, Move: move.GameOver, Termination: Abort}, nil, true
	case End:
		return Result{Value: s.evaluate(n), Move: move.GameOver, Termination: End}, nil, true
	}
	succ := n.Successors()
	if len(succ) == 0 {
		return Result{Value: s.evaluate(n), Move: move.GameOver, Termination: Continue}, nil, true
	}
	return Result{}, succ, false
}

func (s *Solver) alphabeta(n *game.Node, depth, ply int, α, β int64, term Terminator) Result {
	res, succ, leaf := s.enter(n, depth, α, β, term)
	if leaf {
		return res
	}
	res.Termination = Continue

	if n.Player() == game.Human {
		res.Value = -Infinity
		res.Move = move.GameOver
		for i, child := range succ {
			cr := s.alphabeta(child, depth, ply+1, α, β, term)
			s.release(child, ply+1)
			res.PrunedNodes += cr.PrunedNodes
			if cr.Termination == Abort {
				return Result{Value: α, Move: move.GameOver, Termination: Abort,
					PrunedNodes: res.PrunedNodes}
			}
			if cr.Termination == End {
				res.Termination = End
			}
			if cr.Value > res.Value {
				res.Value = cr.Value
				res.Move = child.Move()
			}
			α = max(α, res.Value)
			if β <= α {
				res.PrunedNodes += uint64(len(succ) - i - 1)
				break
			}
		}
		return res
	}

	res.Value = Infinity
	res.Move = move.Rand
	for i, child := range succ {
		cr := s.alphabeta(child, depth+1, ply+1, α, β, term)
		s.release(child, ply+1)
		res.PrunedNodes += cr.PrunedNodes
		if cr.Termination == Abort {
			return Result{Value: β, Move: move.GameOver, Termination: Abort,
				PrunedNodes: res.PrunedNodes}
		}
		if cr.Termination == End {
			res.Termination = End
		}
		if cr.Value < res.Value {
			res.Value = cr.Value
		}
		β = min(β, res.Value)
		if β <= α {
			res.PrunedNodes += uint64(len(succ) - i - 1)
			break
		}
	}
	return res
}

// searchRootSplit searches every successor of a human root concurrently,
// each with a full window, and keeps the first best one.
func (s *Solver) searchRootSplit(n *game.Node, term Terminator) Result {
	res, succ, leaf := s.enter(n, 0, -Infinity, Infinity, term)
	if leaf {
		return res
	}
	results := make([]Result, len(succ))
	g := errgroup.Group{}
	g.SetLimit(s.threads)
	for i, child := range succ {
		g.Go(func() error {
			results[i] = s.alphabeta(child, 0, 1, -Infinity, Infinity, term)
			s.release(child, 1)
			return nil
		})
	}
	// nothing returns an error.
	_ = g.Wait()
	log.Debug().Int("threads", s.threads).Int("successors", len(succ)).Msg("root-split-done")

	res = Result{Value: -Infinity, Move: move.GameOver, Termination: Continue}
	for i, cr := range results {
		res.PrunedNodes += cr.PrunedNodes
		if cr.Termination == Abort {
			return Result{Value: res.Value, Move: move.GameOver, Termination: Abort,
				PrunedNodes: res.PrunedNodes}
		}
		if cr.Termination == End {
			res.Termination = End
		}
		if cr.Value > res.Value {
			res.Value = cr.Value
			res.Move = succ[i].Move()
		}
	}
	return res
}
