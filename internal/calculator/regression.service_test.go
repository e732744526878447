package calculator

import (
	"math"
	"testing"

	"perfattribution/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_CalculateCAPM(t *testing.T) {
	market := domain.ReturnSeries{Name: "market", Returns: []float64{0.01, -0.02, 0.03, 0.015, -0.005}}

	t.Run("asset identical to market", func(t *testing.T) {
		asset := domain.ReturnSeries{Name: "fund", Returns: market.Returns}

		result, err := CalculateCAPM(asset, market, 0, 252)
		require.NoError(t, err)

		require.InDelta(t, 0, result.Alpha, 1e-12)
		require.InDelta(t, 1, result.Beta, 1e-12)
		require.InDelta(t, 1, result.RSquared, 1e-12)
	})

	t.Run("exact affine relationship is recovered", func(t *testing.T) {
		returns := make([]float64, len(market.Returns))
		for i, r := range market.Returns {
			returns[i] = 0.001 + 1.5*r
		}
		asset := domain.ReturnSeries{Name: "fund", Returns: returns}

		result, err := CalculateCAPM(asset, market, 0, 252)
		require.NoError(t, err)

		require.InDelta(t, 0.001, result.AlphaPeriodic, 1e-12)
		require.InDelta(t, 0.001*252, result.Alpha, 1e-9)
		require.InDelta(t, 1.5, result.Beta, 1e-12)
		require.InDelta(t, 1, result.RSquared, 1e-12)
	})

	t.Run("length mismatch", func(t *testing.T) {
		asset := domain.ReturnSeries{Name: "fund", Returns: []float64{0.01, 0.02}}

		_, err := CalculateCAPM(asset, market, 0, 252)

		require.Error(t, err)
		require.ErrorAs(t, err, &InvalidInputError{})
	})

	t.Run("too few observations", func(t *testing.T) {
		asset := domain.ReturnSeries{Name: "fund", Returns: []float64{0.01, 0.02}}
		short := domain.ReturnSeries{Name: "market", Returns: []float64{0.01, 0.02}}

		_, err := CalculateCAPM(asset, short, 0, 252)

		require.Error(t, err)
		require.ErrorAs(t, err, &InvalidInputError{})
	})

	t.Run("non-finite observation", func(t *testing.T) {
		asset := domain.ReturnSeries{Name: "fund", Returns: []float64{0.01, math.NaN(), 0.03, 0.015, -0.005}}

		_, err := CalculateCAPM(asset, market, 0, 252)

		require.Error(t, err)
		require.ErrorAs(t, err, &InvalidInputError{})
	})
}

func Test_CalculateFamaFrench(t *testing.T) {
	factors := FamaFrenchFactors{
		Market: domain.ReturnSeries{Name: "market", Returns: []float64{0.01, -0.02, 0.03, 0.0, 0.02, -0.01}},
		SMB:    domain.ReturnSeries{Name: "SMB", Returns: []float64{0.005, 0.01, -0.005, 0.0, 0.002, 0.007}},
		HML:    domain.ReturnSeries{Name: "HML", Returns: []float64{-0.01, 0.0, 0.01, 0.02, -0.005, 0.003}},
	}

	t.Run("exact three-factor relationship is recovered", func(t *testing.T) {
		returns := make([]float64, factors.Market.Len())
		for i := range returns {
			returns[i] = 0.002 +
				1.2*factors.Market.Returns[i] +
				0.5*factors.SMB.Returns[i] -
				0.3*factors.HML.Returns[i]
		}
		asset := domain.ReturnSeries{Name: "fund", Returns: returns}

		result, err := CalculateFamaFrench(asset, factors, 0, 12)
		require.NoError(t, err)

		require.InDelta(t, 0.002, result.AlphaPeriodic, 1e-9)
		require.InDelta(t, 0.002*12, result.Alpha, 1e-8)
		require.InDelta(t, 1.2, result.MarketBeta, 1e-9)
		require.InDelta(t, 0.5, result.SMBBeta, 1e-9)
		require.InDelta(t, -0.3, result.HMLBeta, 1e-9)
		require.InDelta(t, 1, result.RSquared, 1e-9)
	})

	t.Run("risk-free rate shifts the intercept only", func(t *testing.T) {
		returns := make([]float64, factors.Market.Len())
		for i := range returns {
			returns[i] = 0.002 + factors.Market.Returns[i]
		}
		asset := domain.ReturnSeries{Name: "fund", Returns: returns}

		// excess asset = asset - rf/12, excess market = market - rf/12, and
		// with beta exactly 1 the rf terms cancel out of the intercept
		result, err := CalculateFamaFrench(asset, factors, 0.03, 12)
		require.NoError(t, err)

		require.InDelta(t, 0.002, result.AlphaPeriodic, 1e-9)
		require.InDelta(t, 1, result.MarketBeta, 1e-9)
	})

	t.Run("too few observations", func(t *testing.T) {
		short := FamaFrenchFactors{
			Market: domain.ReturnSeries{Name: "market", Returns: []float64{0.01, 0.02, 0.03, 0.0}},
			SMB:    domain.ReturnSeries{Name: "SMB", Returns: []float64{0.005, 0.01, -0.005, 0.0}},
			HML:    domain.ReturnSeries{Name: "HML", Returns: []float64{-0.01, 0.0, 0.01, 0.02}},
		}
		asset := domain.ReturnSeries{Name: "fund", Returns: []float64{0.01, 0.02, 0.03, 0.0}}

		_, err := CalculateFamaFrench(asset, short, 0, 12)

		require.Error(t, err)
		require.ErrorAs(t, err, &InvalidInputError{})
	})

	t.Run("length mismatch", func(t *testing.T) {
		asset := domain.ReturnSeries{Name: "fund", Returns: []float64{0.01, 0.02}}

		_, err := CalculateFamaFrench(asset, factors, 0, 12)

		require.Error(t, err)
		require.ErrorAs(t, err, &InvalidInputError{})
	})
}
