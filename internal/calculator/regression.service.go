package calculator

import (
	"fmt"

	"perfattribution/internal/domain"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

type CAPMResult struct {
	// Alpha is annualized; AlphaPeriodic is the raw regression intercept.
	Alpha         float64 `json:"alpha"`
	AlphaPeriodic float64 `json:"alphaPeriodic"`
	Beta          float64 `json:"beta"`
	RSquared      float64 `json:"rSquared"`
}

// CalculateCAPM regresses the asset's excess returns on the market's excess
// returns. riskFreeRate is annual and gets scaled down to the period before
// the excess returns are formed.
func CalculateCAPM(asset, market domain.ReturnSeries, riskFreeRate float64, periodsPerYear int) (*CAPMResult, error) {
	if periodsPerYear < 1 {
		return nil, InvalidInputError{fmt.Errorf("periodsPerYear must be >= 1, got %d", periodsPerYear)}
	}
	for _, s := range []domain.ReturnSeries{asset, market} {
		if err := checkSeriesFinite(s); err != nil {
			return nil, err
		}
	}
	if asset.Len() != market.Len() {
		return nil, InvalidInputError{fmt.Errorf("asset %q has %d observations, market %q has %d", asset.Name, asset.Len(), market.Name, market.Len())}
	}
	if asset.Len() < 3 {
		return nil, InvalidInputError{fmt.Errorf("need at least 3 observations to fit CAPM, got %d", asset.Len())}
	}

	periodicRiskFree := riskFreeRate / float64(periodsPerYear)
	y := asset.ExcessOver(periodicRiskFree)
	x := market.ExcessOver(periodicRiskFree)

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	r2 := stat.RSquared(x, y, nil, alpha, beta)

	return &CAPMResult{
		Alpha:         alpha * float64(periodsPerYear),
		AlphaPeriodic: alpha,
		Beta:          beta,
		RSquared:      r2,
	}, nil
}

// FamaFrenchFactors holds the three Fama-French factor series. Market is the
// raw market return (excess is formed internally); SMB and HML are already
// long-short spreads, so no risk-free adjustment applies to them.
type FamaFrenchFactors struct {
	Market domain.ReturnSeries
	SMB    domain.ReturnSeries
	HML    domain.ReturnSeries
}

type FamaFrenchResult struct {
	Alpha         float64 `json:"alpha"`
	AlphaPeriodic float64 `json:"alphaPeriodic"`
	MarketBeta    float64 `json:"marketBeta"`
	SMBBeta       float64 `json:"smbBeta"`
	HMLBeta       float64 `json:"hmlBeta"`
	RSquared      float64 `json:"rSquared"`
}

// CalculateFamaFrench fits the three-factor model by ordinary least squares:
//
//	r_asset - rf = alpha + b_mkt*(r_mkt - rf) + b_smb*SMB + b_hml*HML
func CalculateFamaFrench(asset domain.ReturnSeries, factors FamaFrenchFactors, riskFreeRate float64, periodsPerYear int) (*FamaFrenchResult, error) {
	if periodsPerYear < 1 {
		return nil, InvalidInputError{fmt.Errorf("periodsPerYear must be >= 1, got %d", periodsPerYear)}
	}
	n := asset.Len()
	for _, s := range []domain.ReturnSeries{asset, factors.Market, factors.SMB, factors.HML} {
		if err := checkSeriesFinite(s); err != nil {
			return nil, err
		}
		if s.Len() != n {
			return nil, InvalidInputError{fmt.Errorf("series %q has %d observations, expected %d", s.Name, s.Len(), n)}
		}
	}
	// intercept + 3 factors, plus one extra observation so the fit is not
	// exactly determined
	if n < 5 {
		return nil, InvalidInputError{fmt.Errorf("need at least 5 observations to fit the three-factor model, got %d", n)}
	}

	periodicRiskFree := riskFreeRate / float64(periodsPerYear)
	y := asset.ExcessOver(periodicRiskFree)
	marketExcess := factors.Market.ExcessOver(periodicRiskFree)

	x := mat.NewDense(n, 4, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		x.Set(i, 1, marketExcess[i])
		x.Set(i, 2, factors.SMB.Returns[i])
		x.Set(i, 3, factors.HML.Returns[i])
	}
	yVec := mat.NewVecDense(n, y)

	var coef mat.VecDense
	if err := coef.SolveVec(x, yVec); err != nil {
		return nil, fmt.Errorf("failed to solve least squares: %w", err)
	}

	var fitted mat.VecDense
	fitted.MulVec(x, &coef)

	meanY := stat.Mean(y, nil)
	var ssr, sst float64
	for i := 0; i < n; i++ {
		residual := y[i] - fitted.AtVec(i)
		ssr += residual * residual
		dev := y[i] - meanY
		sst += dev * dev
	}
	r2 := 0.0
	if sst != 0 {
		r2 = 1 - ssr/sst
	}

	alpha := coef.AtVec(0)
	return &FamaFrenchResult{
		Alpha:         alpha * float64(periodsPerYear),
		AlphaPeriodic: alpha,
		MarketBeta:    coef.AtVec(1),
		SMBBeta:       coef.AtVec(2),
		HMLBeta:       coef.AtVec(3),
		RSquared:      r2,
	}, nil
}
