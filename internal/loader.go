package internal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"perfattribution/internal/domain"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// weight sums further than this from 1 get a warning
var weightSumTolerance = decimal.New(1, -9)

type SegmentLoader struct {
	Log *zap.SugaredLogger
}

// LoadSegmentsCSV reads segment records from a csv with the header
// segment_id,portfolio_weight,portfolio_return,benchmark_weight,benchmark_return.
// Duplicate segment ids are rejected here - the decomposition itself would
// silently sum them. Weight sums off from 1 only warn, since the convention
// is the caller's to keep.
func (l SegmentLoader) LoadSegmentsCSV(r io.Reader) ([]domain.SegmentRecord, error) {
	segments := []domain.SegmentRecord{}
	if err := gocsv.Unmarshal(r, &segments); err != nil {
		return nil, fmt.Errorf("failed to parse segments csv: %w", err)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("segments csv has no rows")
	}

	seen := map[string]bool{}
	for _, s := range segments {
		if seen[s.SegmentID] {
			return nil, fmt.Errorf("duplicate segment id %q in segments csv", s.SegmentID)
		}
		seen[s.SegmentID] = true
	}

	one := decimal.NewFromInt(1)
	for side, name := range map[domain.WeightSide]string{
		domain.PortfolioSide: "portfolio",
		domain.BenchmarkSide: "benchmark",
	} {
		sum := domain.SumWeights(segments, side)
		if sum.Sub(one).Abs().GreaterThan(weightSumTolerance) {
			l.Log.Warnw("weights do not sum to 1",
				"side", name,
				"sum", sum.String(),
			)
		}
	}

	return segments, nil
}

// LoadReturnSeriesCSV reads a wide csv - one named column per series, one row
// per period - into return series, in header order. gocsv maps rows onto
// fixed structs, which doesn't fit a file whose columns are data, so this one
// goes through encoding/csv directly.
func (l SegmentLoader) LoadReturnSeriesCSV(r io.Reader) ([]domain.ReturnSeries, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse returns csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("returns csv needs a header and at least one row")
	}

	header := records[0]
	series := make([]domain.ReturnSeries, len(header))
	for i, name := range header {
		series[i] = domain.ReturnSeries{
			Name:    name,
			Returns: make([]float64, 0, len(records)-1),
		}
	}

	for rowIdx, row := range records[1:] {
		for col, cell := range row {
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse returns csv row %d column %q: %w", rowIdx+2, header[col], err)
			}
			series[col].Returns = append(series[col].Returns, value)
		}
	}

	return series, nil
}

// FindSeries pulls one series out of a loaded set by name.
func FindSeries(series []domain.ReturnSeries, name string) (*domain.ReturnSeries, error) {
	for i := range series {
		if series[i].Name == name {
			return &series[i], nil
		}
	}
	return nil, fmt.Errorf("no series named %q in returns csv", name)
}
