package alphabeta

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/twentyfortyeight/game"
	"github.com/domino14/twentyfortyeight/move"
)

// Suggestion is the best move found by the deepest completed iteration.
type Suggestion struct {
	Move        move.Move
	Value       int64
	PlyReached  int
	PrunedNodes uint64
	Nodes       uint64
	Elapsed     time.Duration
}

func (s Suggestion) String() string {
	return fmt.Sprintf("%s (value %d, ply %d, %d nodes, %d pruned, %s)",
		s.Move, s.Value, s.PlyReached, s.Nodes, s.PrunedNodes, s.Elapsed.Round(time.Millisecond))
}

// deadlineTerminator ends the search at the given depth, and aborts it
// once the deadline has passed or ctx is done. The iteration at the
// minimum depth is never aborted.
func (s *Solver) deadlineTerminator(ctx context.Context, tstart time.Time,
	deadline time.Duration, depth int) Terminator {

	abortable := depth > s.minDepth
	return func(_ *game.Node, d int) Termination {
		if abortable && (time.Since(tstart) >= deadline || ctx.Err() != nil) {
			return Abort
		}
		if d >= depth {
			return End
		}
		return Continue
	}
}

// Suggest searches n at increasing depths, starting from the minimum
// depth, until the deadline passes or ctx is cancelled, and returns the
// result of the deepest iteration that completed. onProgress, if not nil,
// is called after each completed iteration.
func (s *Solver) Suggest(ctx context.Context, n *game.Node, deadline time.Duration,
	onProgress func(Suggestion)) (Suggestion, error) {

	if n.IsGameOver() {
		return Suggestion{}, game.ErrGameOver
	}
	if n.Player() != game.Human {
		return Suggestion{}, ErrNotHumanTurn
	}
	tstart := time.Now()
	var best Suggestion
	found := false
	for depth := s.minDepth; s.maxDepth == 0 || depth <= s.maxDepth; depth++ {
		if depth > s.minDepth && (time.Since(tstart) >= deadline || ctx.Err() != nil) {
			break
		}
		res := s.Search(n, s.deadlineTerminator(ctx, tstart, deadline, depth))
		if res.Termination == Abort {
			log.Debug().Int("ply", depth).Msg("iteration-aborted")
			break
		}
		found = true
		best = Suggestion{
			Move:        res.Move,
			Value:       res.Value,
			PlyReached:  depth,
			PrunedNodes: res.PrunedNodes,
			Nodes:       res.Nodes,
			Elapsed:     time.Since(tstart),
		}
		log.Debug().Int("ply", depth).Int64("value", res.Value).
			Str("move", res.Move.String()).Uint64("nodes", res.Nodes).
			Uint64("pruned", res.PrunedNodes).Msg("best-val")
		if onProgress != nil {
			onProgress(best)
		}
		if res.Termination == Continue {
			// every line ended the game before reaching depth.
			break
		}
	}
	if !found {
		return Suggestion{}, fmt.Errorf("%w: minimum depth %d, maximum depth %d",
			ErrNoRecommendation, s.minDepth, s.maxDepth)
	}
	if s.etable != nil {
		created, lookups, hits, t2 := s.etable.Stats()
		log.Debug().Uint64("etable-created", created).
			Uint64("etable-lookups", lookups).
			Uint64("etable-hits", hits).
			Uint64("etable-t2collisions", t2).
			Msg("etable-stats")
	}
	log.Debug().Str("move", best.Move.String()).Int("ply", best.PlyReached).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("suggest-returning")
	return best, nil
}
