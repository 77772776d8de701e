package analyzer

const (
	histogramBins = 256

	shadowPercentile    = 0.05
	highlightPercentile = 0.95
)

// percentileIndex returns the first histogram bin whose cumulative count
// reaches the given fraction of total. An empty histogram yields the top bin.
func percentileIndex(hist []int, total int, frac float64) int {
	target := int(frac * float64(total))
	cumulative := 0
	for i, count := range hist {
		cumulative += count
		if cumulative >= target {
			return i
		}
	}
	return len(hist) - 1
}
