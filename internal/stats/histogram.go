package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

const DefaultHistogramBins = 20

type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
	Label string  `json:"label"`
}

// Histogram splits the values into at most bins equal-width bins over [min, max].
// When all values are equal there is a single bin.
func Histogram(values []float64, bins int) []HistogramBin {
	if len(values) == 0 {
		return []HistogramBin{}
	}
	if bins <= 0 {
		bins = DefaultHistogramBins
	}

	x := make([]float64, len(values))
	copy(x, values)
	sort.Float64s(x)

	low, high := x[0], x[len(x)-1]
	if low == high {
		return []HistogramBin{{Low: low, High: high, Count: len(x), Label: FormatNumber(low)}}
	}

	width := (high - low) / float64(bins)
	dividers := make([]float64, bins+1)
	for i := range dividers {
		dividers[i] = low + float64(i)*width
	}
	// the last bin is closed on the right
	dividers[bins] = math.Nextafter(high, math.Inf(1))

	counts := stat.Histogram(nil, dividers, x, nil)

	result := make([]HistogramBin, 0, bins)
	for i, c := range counts {
		binHigh := dividers[i+1]
		if i == bins-1 {
			binHigh = high
		}
		result = append(result, HistogramBin{
			Low:   dividers[i],
			High:  binHigh,
			Count: int(c),
			Label: fmt.Sprintf("%s-%s", FormatNumber(dividers[i]), FormatNumber(binHigh)),
		})
	}

	return result
}
