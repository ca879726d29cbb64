package automatic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/domino14/twentyfortyeight/board"
)

// AnalyzeLogFile reads a per-turn autoplay log and summarises the games in
// it, using the last logged turn of each game.
func AnalyzeLogFile(filepath string) (*Summary, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	r := csv.NewReader(file)

	// Record looks like:
	// gameID,turn,move,value,ply,nodes,score,largesttile,emptycells
	last := map[int]GameResult{}
	order := []int{}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == "gameID" {
			continue
		}
		res, err := parseTurnRecord(record)
		if err != nil {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if _, ok := last[res.GameID]; !ok {
			order = append(order, res.GameID)
		}
		last[res.GameID] = res
	}
	results := make([]GameResult, 0, len(order))
	for _, id := range order {
		results = append(results, last[id])
	}
	return Summarize(results), nil
}

func parseTurnRecord(record []string) (GameResult, error) {
	if len(record) != 9 {
		return GameResult{}, fmt.Errorf("expected 9 fields, got %d", len(record))
	}
	var ints [4]int
	for i, idx := range []int{0, 1, 6, 7} {
		v, err := strconv.Atoi(record[idx])
		if err != nil {
			return GameResult{}, err
		}
		ints[i] = v
	}
	return GameResult{
		GameID:      ints[0],
		Turns:       ints[1],
		Score:       uint32(ints[2]),
		LargestTile: ints[3],
		Won:         ints[3] >= 1<<board.WinningExponent,
	}, nil
}
