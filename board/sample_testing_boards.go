package board

// This file contains some sample positions, used solely for testing.

// SamplePosition is a grid in display-text form.
type SamplePosition string

const (
	// StuckPosition is a full board with no legal move.
	StuckPosition SamplePosition = `
+----+----+----+----+
|  2 |  4 |  2 |  4 |
+----+----+----+----+
|  4 |  2 |  4 |  2 |
+----+----+----+----+
|  2 |  4 |  2 |  4 |
+----+----+----+----+
|  4 |  2 |  4 |  2 |
+----+----+----+----+
`
	// CornerPosition is a well-kept board with the large tiles stacked in
	// the top-left corner.
	CornerPosition SamplePosition = `
+----+----+----+----+
|1024|512 |256 |128 |
+----+----+----+----+
| 64 | 32 | 16 |  8 |
+----+----+----+----+
|  4 |  2 |    |    |
+----+----+----+----+
|    |    |    |  2 |
+----+----+----+----+
`
	// AlmostWonPosition has two 1024 tiles next to each other.
	AlmostWonPosition SamplePosition = `
+----+----+----+----+
|1024|1024| 16 |  4 |
+----+----+----+----+
| 64 | 32 |  8 |  2 |
+----+----+----+----+
|  4 |  2 |    |    |
+----+----+----+----+
|    |    |    |    |
+----+----+----+----+
`
	// WonPosition contains a 2048 tile.
	WonPosition SamplePosition = `
+----+----+----+----+
|2048| 16 |  4 |    |
+----+----+----+----+
| 64 | 32 |  8 |  2 |
+----+----+----+----+
|  4 |  2 |    |    |
+----+----+----+----+
|    |    |    |    |
+----+----+----+----+
`
	// ScatteredPosition is a mid-game board with tiles all over the place.
	ScatteredPosition SamplePosition = `
+----+----+----+----+
|  2 |    | 16 |  4 |
+----+----+----+----+
|    | 64 |  4 |    |
+----+----+----+----+
|  8 |    |  2 | 32 |
+----+----+----+----+
|  2 |128 |    |  4 |
+----+----+----+----+
`
	// CrowdedPosition has a single empty cell.
	CrowdedPosition SamplePosition = `
+----+----+----+----+
|  2 |  4 |  8 | 16 |
+----+----+----+----+
|  4 |  8 | 16 | 32 |
+----+----+----+----+
|  8 | 16 | 32 | 64 |
+----+----+----+----+
| 16 | 32 | 64 |    |
+----+----+----+----+
`
)

// MustParse parses the sample position, panicking if it is malformed.
func (s SamplePosition) MustParse() Board {
	b, err := ParseDisplayText(string(s))
	if err != nil {
		panic(err)
	}
	return b
}
