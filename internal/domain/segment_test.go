package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_SumWeights(t *testing.T) {
	t.Run("ten tenths sum to exactly 1", func(t *testing.T) {
		// naive float64 accumulation of ten 0.1s lands at 0.9999999999999999
		segments := make([]SegmentRecord, 10)
		for i := range segments {
			segments[i] = SegmentRecord{PortfolioWeight: 0.1, BenchmarkWeight: 0.1}
		}

		require.Equal(t, "1", SumWeights(segments, PortfolioSide).String())
		require.Equal(t, "1", SumWeights(segments, BenchmarkSide).String())
	})

	t.Run("sides are summed independently", func(t *testing.T) {
		segments := []SegmentRecord{
			{PortfolioWeight: 0.6, BenchmarkWeight: 0.5},
			{PortfolioWeight: 0.3, BenchmarkWeight: 0.4},
		}

		require.Equal(t, "0.9", SumWeights(segments, PortfolioSide).String())
		require.Equal(t, "0.9", SumWeights(segments, BenchmarkSide).String())
	})
}
