package main

import (
	"context"
	"fmt"
	"os"

	"perfattribution/internal"
	"perfattribution/internal/calculator"
	"perfattribution/internal/domain"
	"perfattribution/internal/logger"

	"github.com/spf13/cobra"
)

func main() {
	log := logger.New()
	ctx := context.WithValue(context.Background(), logger.ContextKey, log)

	root := &cobra.Command{
		Use:           "perfattribution",
		Short:         "portfolio performance attribution and return analytics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		attributeCmd(),
		metricsCmd(),
		correlationCmd(),
		capmCmd(),
		famaFrenchCmd(),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		log.Errorw("command failed", "error", err)
		os.Exit(1)
	}
}

func loadSegments(cmd *cobra.Command, path string) ([]domain.SegmentRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open segments file: %w", err)
	}
	defer f.Close()

	loader := internal.SegmentLoader{Log: logger.FromContext(cmd.Context())}
	return loader.LoadSegmentsCSV(f)
}

func loadReturns(cmd *cobra.Command, path string) ([]domain.ReturnSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open returns file: %w", err)
	}
	defer f.Close()

	loader := internal.SegmentLoader{Log: logger.FromContext(cmd.Context())}
	return loader.LoadReturnSeriesCSV(f)
}

func attributeCmd() *cobra.Command {
	var segmentsPath string

	cmd := &cobra.Command{
		Use:   "attribute",
		Short: "decompose a portfolio-vs-benchmark return gap into allocation, selection, and interaction effects",
		RunE: func(cmd *cobra.Command, args []string) error {
			segments, err := loadSegments(cmd, segmentsPath)
			if err != nil {
				return err
			}

			result, err := calculator.DecomposeAttribution(segments)
			if err != nil {
				return err
			}

			internal.Pprint(domain.NewAttributionReport(segments, *result))
			return nil
		},
	}
	cmd.Flags().StringVar(&segmentsPath, "segments", "", "csv of per-segment weights and returns")
	cmd.MarkFlagRequired("segments")

	return cmd
}

func metricsCmd() *cobra.Command {
	var (
		returnsPath   string
		seriesName    string
		benchmarkName string
		riskFreeRate  float64
		periods       int
	)

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "risk/return metrics (annualized return and stdev, sharpe, treynor, information ratio) for one series",
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := loadReturns(cmd, returnsPath)
			if err != nil {
				return err
			}

			target, err := internal.FindSeries(series, seriesName)
			if err != nil {
				return err
			}

			var benchmark *domain.ReturnSeries
			if benchmarkName != "" {
				benchmark, err = internal.FindSeries(series, benchmarkName)
				if err != nil {
					return err
				}
			}

			result, err := calculator.CalculateReturnMetrics(*target, benchmark, riskFreeRate, periods)
			if err != nil {
				return err
			}

			internal.Pprint(result)
			return nil
		},
	}
	cmd.Flags().StringVar(&returnsPath, "returns", "", "wide csv of return series, one column per series")
	cmd.Flags().StringVar(&seriesName, "series", "", "column to analyze")
	cmd.Flags().StringVar(&benchmarkName, "benchmark", "", "benchmark column for treynor/information ratio")
	cmd.Flags().Float64Var(&riskFreeRate, "risk-free", 0, "annual risk-free rate as a decimal")
	cmd.Flags().IntVar(&periods, "periods", 252, "return periods per year")
	cmd.MarkFlagRequired("returns")
	cmd.MarkFlagRequired("series")

	return cmd
}

func correlationCmd() *cobra.Command {
	var returnsPath string

	cmd := &cobra.Command{
		Use:   "correlation",
		Short: "pairwise correlation matrix across all series in a returns csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := loadReturns(cmd, returnsPath)
			if err != nil {
				return err
			}

			result, err := calculator.CalculateCorrelationMatrix(series)
			if err != nil {
				return err
			}

			internal.Pprint(result)
			return nil
		},
	}
	cmd.Flags().StringVar(&returnsPath, "returns", "", "wide csv of return series, one column per series")
	cmd.MarkFlagRequired("returns")

	return cmd
}

func capmCmd() *cobra.Command {
	var (
		returnsPath  string
		assetName    string
		marketName   string
		riskFreeRate float64
		periods      int
	)

	cmd := &cobra.Command{
		Use:   "capm",
		Short: "single-factor CAPM regression of an asset on the market",
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := loadReturns(cmd, returnsPath)
			if err != nil {
				return err
			}

			asset, err := internal.FindSeries(series, assetName)
			if err != nil {
				return err
			}
			market, err := internal.FindSeries(series, marketName)
			if err != nil {
				return err
			}

			result, err := calculator.CalculateCAPM(*asset, *market, riskFreeRate, periods)
			if err != nil {
				return err
			}

			internal.Pprint(result)
			return nil
		},
	}
	cmd.Flags().StringVar(&returnsPath, "returns", "", "wide csv of return series, one column per series")
	cmd.Flags().StringVar(&assetName, "asset", "", "asset column")
	cmd.Flags().StringVar(&marketName, "market", "", "market column")
	cmd.Flags().Float64Var(&riskFreeRate, "risk-free", 0, "annual risk-free rate as a decimal")
	cmd.Flags().IntVar(&periods, "periods", 252, "return periods per year")
	cmd.MarkFlagRequired("returns")
	cmd.MarkFlagRequired("asset")
	cmd.MarkFlagRequired("market")

	return cmd
}

func famaFrenchCmd() *cobra.Command {
	var (
		returnsPath  string
		assetName    string
		marketName   string
		smbName      string
		hmlName      string
		riskFreeRate float64
		periods      int
	)

	cmd := &cobra.Command{
		Use:   "famafrench",
		Short: "fama-french three-factor regression of an asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := loadReturns(cmd, returnsPath)
			if err != nil {
				return err
			}

			asset, err := internal.FindSeries(series, assetName)
			if err != nil {
				return err
			}
			market, err := internal.FindSeries(series, marketName)
			if err != nil {
				return err
			}
			smb, err := internal.FindSeries(series, smbName)
			if err != nil {
				return err
			}
			hml, err := internal.FindSeries(series, hmlName)
			if err != nil {
				return err
			}

			result, err := calculator.CalculateFamaFrench(*asset, calculator.FamaFrenchFactors{
				Market: *market,
				SMB:    *smb,
				HML:    *hml,
			}, riskFreeRate, periods)
			if err != nil {
				return err
			}

			internal.Pprint(result)
			return nil
		},
	}
	cmd.Flags().StringVar(&returnsPath, "returns", "", "wide csv of return series, one column per series")
	cmd.Flags().StringVar(&assetName, "asset", "", "asset column")
	cmd.Flags().StringVar(&marketName, "market", "", "market factor column")
	cmd.Flags().StringVar(&smbName, "smb", "SMB", "size factor column")
	cmd.Flags().StringVar(&hmlName, "hml", "HML", "value factor column")
	cmd.Flags().Float64Var(&riskFreeRate, "risk-free", 0, "annual risk-free rate as a decimal")
	cmd.Flags().IntVar(&periods, "periods", 252, "return periods per year")
	cmd.MarkFlagRequired("returns")
	cmd.MarkFlagRequired("asset")
	cmd.MarkFlagRequired("market")

	return cmd
}
