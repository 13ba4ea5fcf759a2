package analytics

import "math"

// Trend directions reported by Trend.
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

// Relative change below this threshold reads as flat.
const trendEpsilon = 0.05

// Average is the arithmetic mean. An empty input reads as 0.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Trend compares the average of the first half of the series against the
// average of the second half. Fewer than two points read as flat.
func Trend(values []float64) string {
	if len(values) < 2 {
		return TrendFlat
	}

	mid := len(values) / 2
	first := Average(values[:mid])
	second := Average(values[mid:])

	base := math.Abs(first)
	if base == 0 {
		base = 1
	}

	diff := second - first
	if math.Abs(diff)/base < trendEpsilon {
		return TrendFlat
	}
	if diff > 0 {
		return TrendUp
	}
	return TrendDown
}

// TurnoverRate is parties served per table over the reporting window,
// rounded to two decimal places. No tables reads as 0.
func TurnoverRate(partiesServed, tableCount int) float64 {
	if tableCount <= 0 {
		return 0.0
	}
	return round2(float64(partiesServed) / float64(tableCount))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
