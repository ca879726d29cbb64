// Package automatic plays whole games of 2048 with the computer choosing
// every move, and collects statistics about how well it does.
package automatic

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/twentyfortyeight/alphabeta"
	"github.com/domino14/twentyfortyeight/config"
	"github.com/domino14/twentyfortyeight/game"
)

const turnLogHeader = "gameID,turn,move,value,ply,nodes,score,largesttile,emptycells\n"

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	solver   *alphabeta.Solver
	src      game.RandSource
	seed     [32]byte
	deadline time.Duration

	config  *config.Config
	logchan chan string
}

// GameResult is how a single game ended.
type GameResult struct {
	GameID      int           `yaml:"game-id"`
	Score       uint32        `yaml:"score"`
	LargestTile int           `yaml:"largest-tile"`
	Turns       int           `yaml:"turns"`
	Won         bool          `yaml:"won"`
	Elapsed     time.Duration `yaml:"elapsed"`
}

// NewGameRunner just instantiates and initializes a game runner. etable
// may be nil, or shared between runners that play at the same time.
func NewGameRunner(logchan chan string, cfg *config.Config, etable *alphabeta.EvalTable) *GameRunner {
	r := &GameRunner{logchan: logchan, config: cfg}
	r.solver = &alphabeta.Solver{}
	r.solver.Init()
	r.solver.SetThreads(cfg.GetInt(config.ConfigSearchThreads))
	r.solver.SetMinDepth(cfg.GetInt(config.ConfigMinSearchDepth))
	r.solver.SetMaxDepth(cfg.GetInt(config.ConfigMaxSearchDepth))
	r.solver.SetRetainPlies(cfg.GetInt(config.ConfigRetainPlies))
	r.solver.SetEvalTable(etable)
	r.deadline = time.Duration(cfg.GetInt(config.ConfigAIDeadline)) * time.Millisecond
	r.Init(game.SeedBytes(cfg.GetUint64(config.ConfigSeed)))
	return r
}

// Init reseeds the runner. Equal seeds give equal games as long as the
// search is bounded by depth rather than by the deadline.
func (r *GameRunner) Init(seed [32]byte) {
	r.seed = seed
	r.src = game.SourceFromSeed(seed)
}

// PlayGame plays one game from the start until nobody can move.
func (r *GameRunner) PlayGame(ctx context.Context, gameID int) (GameResult, error) {
	tstart := time.Now()
	n := game.NewGame(r.src)
	turn := 0
	for !n.IsGameOver() {
		if err := ctx.Err(); err != nil {
			return GameResult{}, fmt.Errorf("game %d stopped at turn %d: %w", gameID, turn, err)
		}
		turn++
		sug, err := r.solver.Suggest(ctx, n, r.deadline, nil)
		if err != nil {
			return GameResult{}, fmt.Errorf("game %d turn %d: %w", gameID, turn, err)
		}
		child, err := game.ApplyHumanMove(n, sug.Move)
		if err != nil {
			return GameResult{}, fmt.Errorf("game %d turn %d: %w", gameID, turn, err)
		}
		r.logTurn(gameID, turn, sug, child)
		if child.IsGameOver() {
			n = child
			break
		}
		n, err = game.ApplyRandomTurn(child, r.src)
		if err != nil {
			return GameResult{}, fmt.Errorf("game %d turn %d: %w", gameID, turn, err)
		}
	}
	res := GameResult{
		GameID:      gameID,
		Score:       n.Score(),
		LargestTile: n.LargestTile(),
		Turns:       turn,
		Won:         n.HasWon(),
		Elapsed:     time.Since(tstart),
	}
	log.Debug().Int("game", gameID).Uint32("score", res.Score).
		Int("largest", res.LargestTile).Int("turns", turn).Msg("game-over")
	return res, nil
}

func (r *GameRunner) logTurn(gameID, turn int, sug alphabeta.Suggestion, after *game.Node) {
	if r.logchan == nil {
		return
	}
	b := after.Board()
	r.logchan <- fmt.Sprintf("%d,%d,%s,%d,%d,%d,%d,%d,%d\n",
		gameID,
		turn,
		sug.Move,
		sug.Value,
		sug.PlyReached,
		sug.Nodes,
		after.Score(),
		after.LargestTile(),
		b.NumEmptySpaces())
}
