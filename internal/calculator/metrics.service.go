package calculator

import (
	"fmt"
	"math"

	"perfattribution/internal/domain"

	"github.com/montanaflynn/stats"
)

type ReturnMetricsResult struct {
	AnnualizedReturn float64 `json:"annualizedReturn"`
	AnnualizedStdev  float64 `json:"annualizedStdev"`
	SharpeRatio      float64 `json:"sharpeRatio"`
	// set only when a benchmark series is supplied
	Beta             *float64 `json:"beta,omitempty"`
	TreynorRatio     *float64 `json:"treynorRatio,omitempty"`
	InformationRatio *float64 `json:"informationRatio,omitempty"`
}

// CalculateReturnMetrics computes risk/return metrics for one return series.
// riskFreeRate is annual; periodsPerYear converts between periodic and annual
// figures (252 for daily, 12 for monthly). benchmark is optional - without it
// the beta-relative metrics (Treynor, Information ratio) are left nil.
func CalculateReturnMetrics(series domain.ReturnSeries, benchmark *domain.ReturnSeries, riskFreeRate float64, periodsPerYear int) (*ReturnMetricsResult, error) {
	if periodsPerYear < 1 {
		return nil, InvalidInputError{fmt.Errorf("periodsPerYear must be >= 1, got %d", periodsPerYear)}
	}
	if err := checkSeriesFinite(series); err != nil {
		return nil, err
	}
	if series.Len() < 2 {
		return nil, InvalidInputError{fmt.Errorf("cannot calculate metrics on < 2 observations for %q", series.Name)}
	}

	stdev, err := stats.StandardDeviationSample(series.Returns)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate stdev: %w", err)
	}
	if stdev == 0 {
		return nil, InvalidInputError{fmt.Errorf("series %q has zero variance - sharpe is undefined", series.Name)}
	}

	mean, err := stats.Mean(series.Returns)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate mean: %w", err)
	}

	annualizedReturn := annualizeReturns(series.Returns, periodsPerYear)
	annualizedStdev := stdev * math.Sqrt(float64(periodsPerYear))

	periodicRiskFree := riskFreeRate / float64(periodsPerYear)
	sharpe := (mean - periodicRiskFree) / stdev * math.Sqrt(float64(periodsPerYear))

	result := &ReturnMetricsResult{
		AnnualizedReturn: annualizedReturn,
		AnnualizedStdev:  annualizedStdev,
		SharpeRatio:      sharpe,
	}

	if benchmark == nil {
		return result, nil
	}

	if err := checkSeriesFinite(*benchmark); err != nil {
		return nil, err
	}
	if benchmark.Len() != series.Len() {
		return nil, InvalidInputError{fmt.Errorf("benchmark %q has %d observations, series %q has %d", benchmark.Name, benchmark.Len(), series.Name, series.Len())}
	}

	beta, err := calculateBeta(series.Returns, benchmark.Returns)
	if err != nil {
		return nil, err
	}
	result.Beta = &beta

	if beta != 0 {
		treynor := (annualizedReturn - riskFreeRate) / beta
		result.TreynorRatio = &treynor
	}

	active := make([]float64, series.Len())
	for i := range series.Returns {
		active[i] = series.Returns[i] - benchmark.Returns[i]
	}
	trackingError, err := stats.StandardDeviationSample(active)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate tracking error: %w", err)
	}
	if trackingError != 0 {
		meanActive, err := stats.Mean(active)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate mean active return: %w", err)
		}
		ir := meanActive / trackingError * math.Sqrt(float64(periodsPerYear))
		result.InformationRatio = &ir
	}

	return result, nil
}

// annualizeReturns compounds periodic returns into a CAGR.
// ((1+r1)*...*(1+rN))^(periodsPerYear/N) - 1
func annualizeReturns(returns []float64, periodsPerYear int) float64 {
	cumulative := 1.0
	for _, r := range returns {
		cumulative *= 1 + r
	}
	years := float64(len(returns)) / float64(periodsPerYear)
	return math.Pow(cumulative, 1/years) - 1
}

func calculateBeta(asset, benchmark []float64) (float64, error) {
	cov, err := stats.Covariance(asset, benchmark)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate covariance: %w", err)
	}
	benchVar, err := stats.SampleVariance(benchmark)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate benchmark variance: %w", err)
	}
	if benchVar == 0 {
		return 0, InvalidInputError{fmt.Errorf("benchmark has zero variance - beta is undefined")}
	}
	return cov / benchVar, nil
}

func checkSeriesFinite(series domain.ReturnSeries) error {
	for i, r := range series.Returns {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return InvalidInputError{fmt.Errorf("series %q has non-finite return at index %d: %v", series.Name, i, r)}
		}
	}
	return nil
}
