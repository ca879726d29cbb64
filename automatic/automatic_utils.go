package automatic

// Batch autoplay: many computer-played games across goroutines.

import (
	"bufio"
	"context"
	"errors"
	"expvar"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/twentyfortyeight/alphabeta"
	"github.com/domino14/twentyfortyeight/config"
)

var (
	GamesPlayed *expvar.Int
	IsPlaying   *expvar.Int
)

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

func init() {
	GamesPlayed = expvar.NewInt("gamesPlayed")
	IsPlaying = expvar.NewInt("isPlaying")
}

type job struct {
	gameID int
	seed   [32]byte
}

// PlayGames plays numGames games on the given number of goroutines,
// writing one CSV line per turn to outputFilename and the seeds used to
// outputFilename + ".seeds". It returns once every game is over or ctx is
// done; games cut short are left out of the summary.
func PlayGames(ctx context.Context, cfg *config.Config, numGames, threads int,
	outputFilename string) (*Summary, error) {

	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	threads = max(threads, 1)

	seeds, err := GenerateSeeds(numGames, cfg.GetUint64(config.ConfigSeed))
	if err != nil {
		return nil, err
	}
	if err := SaveSeeds(seeds, outputFilename+".seeds"); err != nil {
		return nil, err
	}
	logfile, err := os.Create(outputFilename)
	if err != nil {
		return nil, err
	}
	defer logfile.Close()

	etable := &alphabeta.EvalTable{}
	etable.SetMultiThreadedMode()
	etable.Reset(cfg.GetFloat64(config.ConfigEvalTableFraction))

	log.Info().Int("games", numGames).Int("threads", threads).
		Str("output", outputFilename).Msg("starting-autoplay")
	GamesPlayed.Set(0)

	jobs := make(chan job, 100)
	logChan := make(chan string, 100)
	var mu sync.Mutex
	results := make([]GameResult, 0, numGames)
	progressEvery := max(cfg.GetInt(config.ConfigAutoplayProgressEveryN), 1)

	g, gctx := errgroup.WithContext(ctx)
	for t := 0; t < threads; t++ {
		g.Go(func() error {
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			r := NewGameRunner(logChan, cfg, etable)
			for j := range jobs {
				r.Init(j.seed)
				res, err := r.PlayGame(gctx, j.gameID)
				if err != nil {
					if gctx.Err() != nil {
						log.Info().Int("game", j.gameID).Msg("stopping-early")
						return nil
					}
					return err
				}
				mu.Lock()
				results = append(results, res)
				mu.Unlock()
				GamesPlayed.Add(1)
				if played := GamesPlayed.Value(); played%int64(progressEvery) == 0 {
					log.Info().Int64("played", played).Msg("autoplay-progress")
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for i, seed := range seeds {
			select {
			case jobs <- job{gameID: i + 1, seed: seed}:
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return nil
			}
		}
		return nil
	})

	loggerDone := make(chan error)
	go func() {
		w := bufio.NewWriter(logfile)
		_, err := w.WriteString(turnLogHeader)
		for msg := range logChan {
			if err == nil {
				_, err = w.WriteString(msg)
			}
		}
		if err == nil {
			err = w.Flush()
		}
		loggerDone <- err
	}()

	err = g.Wait()
	close(logChan)
	if lerr := <-loggerDone; err == nil {
		err = lerr
	}
	if err != nil {
		return nil, err
	}
	summary := Summarize(results)
	log.Info().Int("games", summary.Games).Int("wins", summary.Wins).
		Float64("mean-score", summary.MeanScore).Msg("autoplay-finished")
	return summary, nil
}
