package stats

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
)

// WriteHistogram draws a text histogram of samples, bars scaled to width
// characters.
func WriteHistogram(w io.Writer, title string, samples []float64, bins, width int) error {
	if len(samples) == 0 {
		_, err := fmt.Fprintf(w, "%s: no data\n", title)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s (%d samples)\n", title, len(samples)); err != nil {
		return err
	}
	h := histogram.Hist(bins, samples)
	return histogram.Fprint(w, h, histogram.Linear(width))
}
