package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/twentyfortyeight/config"
	"github.com/domino14/twentyfortyeight/move"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"autoplay -output /path/to/log.txt",
			&shellcmd{"autoplay", nil, CmdOptions{"output": "/path/to/log.txt"}},
			nil},
		{"autoplay stop",
			&shellcmd{"autoplay", []string{"stop"}, CmdOptions{}},
			nil},
		{"autoplay 100 -threads 4 -output 'my log.txt' ",
			&shellcmd{"autoplay",
				[]string{"100"},
				CmdOptions{"threads": "4", "output": "my log.txt"}},
			nil,
		},
		{"hint -deadline",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func testController() *ShellController {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigMinSearchDepth, 1)
	cfg.Set(config.ConfigMaxSearchDepth, 2)
	cfg.Set(config.ConfigAIDeadline, 60000)
	cfg.Set(config.ConfigEvalTableFraction, 0)
	return newController(cfg)
}

func run(sc *ShellController, line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	return sc.executeCommand(cmd)
}

func TestNeedsGame(t *testing.T) {
	is := is.New(t)
	sc := testController()
	for _, line := range []string{"show", "moves", "left", "hint", "auto"} {
		_, err := run(sc, line)
		is.Equal(err, errNoGame)
	}
}

func TestNewGameIsDeterministic(t *testing.T) {
	is := is.New(t)
	a, b := testController(), testController()
	ra, err := run(a, "new 42")
	is.NoErr(err)
	rb, err := run(b, "new 42")
	is.NoErr(err)
	is.Equal(ra.message, rb.message)
	is.True(strings.HasPrefix(ra.message, "seed 42, turn 0\nScore: 0\n"))
	is.Equal(a.curNode.Board(), b.curNode.Board())
}

func TestPlayMoves(t *testing.T) {
	is := is.New(t)
	sc := testController()
	_, err := run(sc, "new 7")
	is.NoErr(err)

	resp, err := run(sc, "moves")
	is.NoErr(err)
	legal := strings.Fields(resp.message)
	is.True(len(legal) > 0)

	before := sc.curNode.Board().NumFilled()
	_, err = run(sc, legal[0])
	is.NoErr(err)
	is.Equal(sc.turn, 1)
	// one tile spawned, at most one merge.
	is.True(sc.curNode.Board().NumFilled() >= before)

	_, err = run(sc, "move "+legal[0])
	if err != nil {
		is.True(strings.Contains(err.Error(), "illegal move"))
	}

	_, err = run(sc, "move sideways")
	is.True(err != nil)
	_, err = run(sc, "bogus")
	is.True(err != nil)
}

func TestHintAndAuto(t *testing.T) {
	is := is.New(t)
	sc := testController()
	_, err := run(sc, "new 11")
	is.NoErr(err)

	resp, err := run(sc, "hint -deadline 1000")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "ply 1:"))
	is.True(strings.Contains(resp.message, "ply 2:"))
	best := resp.message[strings.LastIndex(resp.message, " ")+1:]
	_, err = move.FromString(best)
	is.NoErr(err)

	_, err = run(sc, "auto 3")
	is.NoErr(err)
	is.Equal(sc.turn, 3)
}

func TestAnalyze(t *testing.T) {
	is := is.New(t)
	sc := testController()
	path := filepath.Join(t.TempDir(), "log.txt")
	is.NoErr(os.WriteFile(path, []byte(
		"gameID,turn,move,value,ply,nodes,score,largesttile,emptycells\n"+
			"1,1,left,100,2,50,4,4,13\n"+
			"1,2,up,100,2,50,12,8,12\n"+
			"2,1,down,100,2,50,0,2,14\n"), 0o644))
	resp, err := run(sc, "analyze "+path)
	is.NoErr(err)
	assert.Contains(t, resp.message, "Games played: 2\n")
	assert.Contains(t, resp.message, "Final score (2 samples)")
}

func TestHelp(t *testing.T) {
	is := is.New(t)
	sc := testController()
	resp, err := run(sc, "help")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "Commands:"))
	resp, err = run(sc, "help hint")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "hint [-deadline ms]"))
	resp, err = run(sc, "help nothing")
	is.NoErr(err)
	is.Equal(resp.message, "There is no help text for the topic nothing\n")

	_, err = run(sc, "exit")
	is.Equal(err, errExit)
}

func TestCompleter(t *testing.T) {
	c := NewShellCompleter(testController())
	matches, n := c.Do([]rune("auto"), 4)
	assert.Equal(t, 4, n)
	assert.Equal(t, [][]rune{[]rune(""), []rune("play")}, matches)

	matches, n = c.Do([]rune("autoplay -t"), 11)
	assert.Equal(t, 2, n)
	assert.Equal(t, [][]rune{[]rune("hreads")}, matches)

	matches, _ = c.Do([]rune("move l"), 6)
	assert.Equal(t, [][]rune{[]rune("eft")}, matches)

	matches, _ = c.Do([]rune("autoplay -output "), 17)
	assert.Empty(t, matches)
}
