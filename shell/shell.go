// Package shell is an interactive readline front end for playing 2048
// and asking the engine for advice.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/twentyfortyeight/alphabeta"
	"github.com/domino14/twentyfortyeight/config"
	"github.com/domino14/twentyfortyeight/game"
)

var (
	errNoData            = errors.New("no data in line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("please start a game first with the `new` command")
	errExit              = errors.New("exit")
)

type ShellController struct {
	l      *readline.Instance
	config *config.Config

	src      game.RandSource
	seed     uint64
	curNode  *game.Node
	turn     int
	solver   *alphabeta.Solver
	etable   *alphabeta.EvalTable
	deadline time.Duration

	autoplayCancel context.CancelFunc
	autoplayDone   chan struct{}
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// newController sets up everything but the terminal.
func newController(cfg *config.Config) *ShellController {
	sc := &ShellController{config: cfg}
	sc.etable = &alphabeta.EvalTable{}
	sc.etable.Reset(cfg.GetFloat64(config.ConfigEvalTableFraction))
	sc.solver = &alphabeta.Solver{}
	sc.solver.Init()
	sc.solver.SetThreads(cfg.GetInt(config.ConfigSearchThreads))
	sc.solver.SetMinDepth(cfg.GetInt(config.ConfigMinSearchDepth))
	sc.solver.SetMaxDepth(cfg.GetInt(config.ConfigMaxSearchDepth))
	sc.solver.SetRetainPlies(cfg.GetInt(config.ConfigRetainPlies))
	sc.solver.SetEvalTable(sc.etable)
	sc.deadline = time.Duration(cfg.GetInt(config.ConfigAIDeadline)) * time.Millisecond
	return sc
}

func NewShellController(cfg *config.Config) *ShellController {
	sc := newController(cfg)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[33m2048>\033[0m ",
		HistoryFile:     cfg.GetString(config.ConfigShellHistoryFile),
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stdout())
}

func (sc *ShellController) showError(err error) {
	showMessage("Error: "+err.Error(), sc.l.Stderr())
}

// extractFields splits a line into a command, its positional arguments
// and its -option value pairs.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: fields[0], options: CmdOptions{}}
	for i := 1; i < len(fields); i++ {
		if strings.HasPrefix(fields[i], "-") && len(fields[i]) > 1 {
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			cmd.options[fields[i][1:]] = fields[i+1]
			i++
			continue
		}
		cmd.args = append(cmd.args, fields[i])
	}
	return cmd, nil
}

func (sc *ShellController) standardModeSwitch(line string) error {
	cmd, err := extractFields(line)
	if errors.Is(err, errNoData) {
		return nil
	}
	if err != nil {
		sc.showError(err)
		return nil
	}
	resp, err := sc.executeCommand(cmd)
	if errors.Is(err, errExit) {
		return err
	}
	if err != nil {
		sc.showError(err)
		return nil
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return nil
}

// Automate lets the computer play the current game (a new one if there is
// none) to the end, printing each position to w.
func (sc *ShellController) Automate(ctx context.Context, w io.Writer) error {
	if sc.curNode == nil {
		sc.newGame(sc.config.GetUint64(config.ConfigSeed))
	}
	for !sc.curNode.IsGameOver() {
		if _, err := sc.computerMove(ctx); err != nil {
			return err
		}
		showMessage(sc.curNode.ToDisplayText(), w)
	}
	return nil
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	for {
		line, err := sc.l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if errors.Is(err, io.EOF) {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if err := sc.standardModeSwitch(line); err != nil {
			if !errors.Is(err, errExit) {
				log.Error().Err(err).Msg("")
			}
			sig <- syscall.SIGINT
			break
		}
	}
	sc.stopAutoplay()
	log.Debug().Msgf("Exiting readline loop...")
}

func (sc *ShellController) statusLine() string {
	return fmt.Sprintf("seed %d, turn %d", sc.seed, sc.turn)
}
