package automatic

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"lukechampine.com/frand"

	"github.com/domino14/twentyfortyeight/game"
)

// GenerateSeeds creates n 32-byte game seeds. A non-zero base makes them
// deterministic: game i gets the seed for base+i.
func GenerateSeeds(n int, base uint64) ([][32]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("cannot generate %d seeds", n)
	}
	seeds := make([][32]byte, n)
	for i := range seeds {
		if base != 0 {
			seeds[i] = game.SeedBytes(base + uint64(i))
			continue
		}
		frand.Read(seeds[i][:])
	}
	return seeds, nil
}

// SaveSeeds writes seeds to path, one URL-safe base64 seed per line.
func SaveSeeds(seeds [][32]byte, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create seed file: %w", err)
	}
	w := bufio.NewWriter(file)
	fmt.Fprintln(w, "# 2048 game seeds (base64 URL-safe encoded, 32 bytes each)")
	for _, seed := range seeds {
		fmt.Fprintln(w, base64.RawURLEncoding.EncodeToString(seed[:]))
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to write seed file: %w", err)
	}
	return file.Close()
}

// LoadSeeds reads seeds written by SaveSeeds. Blank lines and lines
// starting with # are skipped.
func LoadSeeds(path string) ([][32]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer file.Close()

	var seeds [][32]byte
	scanner := bufio.NewScanner(file)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		decoded, err := base64.RawURLEncoding.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("failed to decode seed at line %d: %w", lineNum, err)
		}
		if len(decoded) != 32 {
			return nil, fmt.Errorf("invalid seed length at line %d: got %d bytes, expected 32", lineNum, len(decoded))
		}
		seeds = append(seeds, [32]byte(decoded))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading seed file: %w", err)
	}
	return seeds, nil
}
