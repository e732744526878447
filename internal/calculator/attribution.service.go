package calculator

import (
	"fmt"
	"math"

	"perfattribution/internal/domain"
)

// DecomposeAttribution runs the Brinson decomposition over the given
// segments, splitting the portfolio-vs-benchmark return gap into allocation,
// selection, and interaction effects.
//
// Per segment:
//
//	allocation  = (w_p - w_b) * r_b
//	selection   = w_b * (r_p - r_b)
//	interaction = (w_p - w_b) * (r_p - r_b)
//
// summed over all segments. The three effects always add up to
// TotalDifference (portfolio return minus benchmark return).
//
// Weights are taken as given - they don't have to sum to 1 or sit in [0,1],
// the formula is linear in them either way. Duplicate segment ids are not an
// error; their contributions are summed, which is almost never what the
// caller wants, so dedupe upstream. Empty input and non-finite fields fail
// with InvalidInputError.
func DecomposeAttribution(segments []domain.SegmentRecord) (*domain.AttributionResult, error) {
	if len(segments) == 0 {
		return nil, InvalidInputError{fmt.Errorf("cannot decompose attribution of zero segments")}
	}

	result := &domain.AttributionResult{}
	for _, s := range segments {
		if err := checkFinite(s); err != nil {
			return nil, err
		}

		result.PortfolioReturn += s.PortfolioWeight * s.PortfolioReturn
		result.BenchmarkReturn += s.BenchmarkWeight * s.BenchmarkReturn
		result.AssetAllocation += (s.PortfolioWeight - s.BenchmarkWeight) * s.BenchmarkReturn
		result.Selection += s.BenchmarkWeight * (s.PortfolioReturn - s.BenchmarkReturn)
		result.Interaction += (s.PortfolioWeight - s.BenchmarkWeight) * (s.PortfolioReturn - s.BenchmarkReturn)
	}
	result.TotalDifference = result.PortfolioReturn - result.BenchmarkReturn

	return result, nil
}

func checkFinite(s domain.SegmentRecord) error {
	fields := map[string]float64{
		"portfolio_weight": s.PortfolioWeight,
		"portfolio_return": s.PortfolioReturn,
		"benchmark_weight": s.BenchmarkWeight,
		"benchmark_return": s.BenchmarkReturn,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return InvalidInputError{fmt.Errorf("segment %q has non-finite %s: %v", s.SegmentID, name, v)}
		}
	}
	return nil
}
