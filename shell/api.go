package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/domino14/twentyfortyeight/alphabeta"
	"github.com/domino14/twentyfortyeight/automatic"
	"github.com/domino14/twentyfortyeight/config"
	"github.com/domino14/twentyfortyeight/game"
	"github.com/domino14/twentyfortyeight/move"
)

type Response struct {
	message string
}

type CmdOptions map[string]string

func (c CmdOptions) String(key string) string {
	return c[key]
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v, ok := c[key]
	if !ok {
		return defaultI, nil
	}
	return strconv.Atoi(v)
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) executeCommand(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "exit", "quit":
		return nil, errExit
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGameCmd(cmd)
	case "show":
		return sc.show(cmd)
	case "moves":
		return sc.legalMoves(cmd)
	case "move", "m":
		if len(cmd.args) != 1 {
			return nil, errors.New("usage: move <up|down|left|right>")
		}
		return sc.playMove(cmd.args[0])
	case "hint":
		return sc.hint(cmd)
	case "auto":
		return sc.auto(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "analyze":
		return sc.analyze(cmd)
	}
	if m, err := move.FromString(cmd.cmd); err == nil && len(cmd.args) == 0 {
		return sc.playMove(m.String())
	}
	return nil, fmt.Errorf("command %v not found", strconv.Quote(cmd.cmd))
}

func (sc *ShellController) newGame(seed uint64) {
	if seed == 0 {
		seed = frand.Uint64n(1<<53) + 1
	}
	sc.seed = seed
	sc.src = game.SeededSource(seed)
	sc.curNode = game.NewGame(sc.src)
	sc.turn = 0
	log.Debug().Uint64("seed", seed).Msg("new-game")
}

func (sc *ShellController) newGameCmd(cmd *shellcmd) (*Response, error) {
	var seed uint64
	if len(cmd.args) > 0 {
		var err error
		seed, err = strconv.ParseUint(cmd.args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad seed: %w", err)
		}
	}
	sc.newGame(seed)
	return msg(sc.statusLine() + "\n" + sc.curNode.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.curNode == nil {
		return nil, errNoGame
	}
	return msg(sc.statusLine() + "\n" + sc.curNode.ToDisplayText()), nil
}

func (sc *ShellController) legalMoves(cmd *shellcmd) (*Response, error) {
	if sc.curNode == nil {
		return nil, errNoGame
	}
	moves := lo.Map(sc.curNode.LegalMoves(), func(m move.Move, _ int) string { return m.String() })
	if len(moves) == 0 {
		return msg("No moves; the game is over."), nil
	}
	return msg(strings.Join(moves, " ")), nil
}

// applyMove plays m for the human and then spawns the random tile.
func (sc *ShellController) applyMove(m move.Move) error {
	if sc.curNode == nil {
		return errNoGame
	}
	child, err := game.ApplyHumanMove(sc.curNode, m)
	if err != nil {
		return err
	}
	sc.turn++
	if child.IsGameOver() {
		sc.curNode = child
		return nil
	}
	next, err := game.ApplyRandomTurn(child, sc.src)
	if err != nil {
		return err
	}
	sc.curNode = next
	return nil
}

func (sc *ShellController) playMove(s string) (*Response, error) {
	m, err := move.FromString(s)
	if err != nil {
		return nil, err
	}
	if err := sc.applyMove(m); err != nil {
		return nil, err
	}
	return msg(sc.curNode.ToDisplayText()), nil
}

func (sc *ShellController) deadlineOption(cmd *shellcmd) (time.Duration, error) {
	ms, err := cmd.options.IntDefault("deadline", int(sc.deadline/time.Millisecond))
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func (sc *ShellController) hint(cmd *shellcmd) (*Response, error) {
	if sc.curNode == nil {
		return nil, errNoGame
	}
	deadline, err := sc.deadlineOption(cmd)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	sug, err := sc.solver.Suggest(context.Background(), sc.curNode, deadline, func(s alphabeta.Suggestion) {
		fmt.Fprintf(&sb, "  ply %d: %s\n", s.PlyReached, s)
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(&sb, "Best move: %s", sug.Move)
	return msg(sb.String()), nil
}

// computerMove asks the engine for a move and plays it.
func (sc *ShellController) computerMove(ctx context.Context) (alphabeta.Suggestion, error) {
	if sc.curNode == nil {
		return alphabeta.Suggestion{}, errNoGame
	}
	sug, err := sc.solver.Suggest(ctx, sc.curNode, sc.deadline, nil)
	if err != nil {
		return sug, err
	}
	return sug, sc.applyMove(sug.Move)
}

func (sc *ShellController) auto(cmd *shellcmd) (*Response, error) {
	if sc.curNode == nil {
		return nil, errNoGame
	}
	n := 1
	if len(cmd.args) > 0 {
		if cmd.args[0] == "all" {
			n = -1
		} else {
			var err error
			if n, err = strconv.Atoi(cmd.args[0]); err != nil {
				return nil, err
			}
		}
	}
	var sb strings.Builder
	for i := 0; n < 0 || i < n; i++ {
		if sc.curNode.IsGameOver() {
			break
		}
		sug, err := sc.computerMove(context.Background())
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&sb, "Turn %d: %s\n", sc.turn, sug)
	}
	sb.WriteString(sc.curNode.ToDisplayText())
	return msg(sb.String()), nil
}

func (sc *ShellController) stopAutoplay() {
	if sc.autoplayCancel != nil {
		sc.autoplayCancel()
		<-sc.autoplayDone
		sc.autoplayCancel = nil
	}
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 && cmd.args[0] == "stop" {
		if sc.autoplayCancel == nil {
			return nil, errors.New("no autoplay is running")
		}
		sc.stopAutoplay()
		return msg("Autoplay stopped."), nil
	}
	if sc.autoplayCancel != nil {
		select {
		case <-sc.autoplayDone:
			sc.autoplayCancel = nil
		default:
			return nil, automatic.ErrAlreadyPlaying
		}
	}
	numGames := sc.config.GetInt(config.ConfigAutoplayGames)
	if len(cmd.args) > 0 {
		var err error
		if numGames, err = strconv.Atoi(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigAutoplayThreads))
	if err != nil {
		return nil, err
	}
	output := cmd.options.String("output")
	if output == "" {
		output = sc.config.GetString(config.ConfigAutoplayOutput)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sc.autoplayCancel = cancel
	sc.autoplayDone = make(chan struct{})
	go func() {
		defer close(sc.autoplayDone)
		summary, err := automatic.PlayGames(ctx, sc.config, numGames, threads, output)
		if err != nil {
			log.Error().Err(err).Msg("autoplay-failed")
			return
		}
		log.Info().Msg("autoplay-done\n" + summary.String())
		if path := sc.config.GetString(config.ConfigAutoplaySummary); path != "" {
			if err := summary.SaveYAML(path); err != nil {
				log.Error().Err(err).Msg("autoplay-summary-failed")
			}
		}
	}()
	return msg(fmt.Sprintf("Playing %d games on %d threads; log in %s. Use `autoplay stop` to stop.",
		numGames, threads, output)), nil
}

func (sc *ShellController) analyze(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: analyze <autoplay log file>")
	}
	summary, err := automatic.AnalyzeLogFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	sb.WriteString(summary.String())
	if err := summary.WriteHistograms(&sb); err != nil {
		return nil, err
	}
	return msg(sb.String()), nil
}
