package calculator

import (
	"fmt"

	"perfattribution/internal/domain"

	"gonum.org/v1/gonum/stat"
)

type CorrelationMatrixResult struct {
	Names []string `json:"names"`
	// Matrix[i][j] is the Pearson correlation between Names[i] and Names[j].
	// Symmetric, unit diagonal.
	Matrix [][]float64 `json:"matrix"`
}

// CalculateCorrelationMatrix computes pairwise Pearson correlations between
// the given return series. All series must be finite, the same length, and
// at least 2 observations long.
func CalculateCorrelationMatrix(series []domain.ReturnSeries) (*CorrelationMatrixResult, error) {
	if len(series) < 2 {
		return nil, InvalidInputError{fmt.Errorf("need at least 2 series to correlate, got %d", len(series))}
	}
	n := series[0].Len()
	if n < 2 {
		return nil, InvalidInputError{fmt.Errorf("need at least 2 observations per series, got %d", n)}
	}
	for _, s := range series {
		if err := checkSeriesFinite(s); err != nil {
			return nil, err
		}
		if s.Len() != n {
			return nil, InvalidInputError{fmt.Errorf("series %q has %d observations, expected %d", s.Name, s.Len(), n)}
		}
	}

	result := &CorrelationMatrixResult{
		Names:  make([]string, len(series)),
		Matrix: make([][]float64, len(series)),
	}
	for i, s := range series {
		result.Names[i] = s.Name
		result.Matrix[i] = make([]float64, len(series))
		result.Matrix[i][i] = 1
	}
	for i := range series {
		for j := i + 1; j < len(series); j++ {
			corr := stat.Correlation(series[i].Returns, series[j].Returns, nil)
			result.Matrix[i][j] = corr
			result.Matrix[j][i] = corr
		}
	}

	return result, nil
}
