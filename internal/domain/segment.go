package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SegmentRecord holds one attribution segment (an asset class, sector, or
// other partition of the portfolio/benchmark) with its weights and realized
// returns over the evaluation period. Weights conventionally live in [0,1]
// and sum to 1 per side, but nothing here enforces that.
type SegmentRecord struct {
	SegmentID       string  `json:"segmentId" csv:"segment_id"`
	PortfolioWeight float64 `json:"portfolioWeight" csv:"portfolio_weight"`
	PortfolioReturn float64 `json:"portfolioReturn" csv:"portfolio_return"`
	BenchmarkWeight float64 `json:"benchmarkWeight" csv:"benchmark_weight"`
	BenchmarkReturn float64 `json:"benchmarkReturn" csv:"benchmark_return"`
}

// AttributionResult is the Brinson decomposition of the return gap between a
// portfolio and its benchmark. TotalDifference always equals
// AssetAllocation + Selection + Interaction up to float rounding.
type AttributionResult struct {
	PortfolioReturn float64 `json:"portfolioReturn"`
	BenchmarkReturn float64 `json:"benchmarkReturn"`
	AssetAllocation float64 `json:"assetAllocation"`
	Selection       float64 `json:"selection"`
	Interaction     float64 `json:"interaction"`
	TotalDifference float64 `json:"totalDifference"`
}

type AttributionReport struct {
	ID          uuid.UUID         `json:"id"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Segments    []SegmentRecord   `json:"segments"`
	Result      AttributionResult `json:"result"`
}

func NewAttributionReport(segments []SegmentRecord, result AttributionResult) *AttributionReport {
	return &AttributionReport{
		ID:          uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Segments:    segments,
		Result:      result,
	}
}

// WeightSide selects which weight column of a SegmentRecord to sum.
type WeightSide int

const (
	PortfolioSide WeightSide = iota
	BenchmarkSide
)

// SumWeights adds up one side's weights with decimal arithmetic, so callers
// checking the sum-to-1 convention don't get tripped up by float accumulation
// (0.1+0.2 style).
func SumWeights(segments []SegmentRecord, side WeightSide) decimal.Decimal {
	total := decimal.Zero
	for _, s := range segments {
		w := s.PortfolioWeight
		if side == BenchmarkSide {
			w = s.BenchmarkWeight
		}
		total = total.Add(decimal.NewFromFloat(w))
	}
	return total
}
