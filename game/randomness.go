package game

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// RandSource is the randomness a game needs: a uniform index and a uniform
// float in [0, 1). *frand.RNG satisfies it.
type RandSource interface {
	Intn(n int) int
	Float64() float64
}

// NewSource returns a non-deterministic source.
func NewSource() RandSource {
	return frand.New()
}

// SourceFromSeed returns a deterministic source for the given 32-byte seed.
func SourceFromSeed(seed [32]byte) RandSource {
	return frand.NewCustom(seed[:], 1024, 12)
}

// SeededSource is a convenience for small integer seeds, e.g. from the
// command line. Equal seeds give equal sequences.
func SeededSource(seed uint64) RandSource {
	return SourceFromSeed(SeedBytes(seed))
}

// SeedBytes expands an integer seed to the 32-byte form.
func SeedBytes(seed uint64) [32]byte {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[:8], seed)
	return b
}
