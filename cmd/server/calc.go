package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"sovereign/internal/calc"
)

var (
	calcClamp       bool
	calcROAS        float64
	calcInvestment  float64
	calcFee         float64
	calcPriceImpact float64
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Run the Reg A+ calculators from the command line",
}

var calcROICmd = &cobra.Command{
	Use:   "roi",
	Short: "Ad-spend savings and ROI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := calc.ROIInput{TargetROAS: calcROAS, Investment: calcInvestment, FeePercent: calcFee}
		if calcClamp {
			in = calc.DefaultSliders().ClampROI(in)
		}
		res, err := calc.ComputeROI(calc.DefaultConstants(), in)
		if err != nil {
			return err
		}
		return printJSON(cmd, map[string]any{"input": in, "result": res})
	},
}

var calcIPOCmd = &cobra.Command{
	Use:   "ipo",
	Short: "Market cap impact of a per-share price move",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := calc.DefaultConstants()
		in := calc.IPOInput{PriceImpact: calcPriceImpact, Investment: calcInvestment}
		if calcClamp {
			in = calc.DefaultSliders().ClampIPO(in)
		}
		res, err := calc.ComputeIPO(c, in)
		if err != nil {
			return err
		}
		return printJSON(cmd, map[string]any{"input": in, "result": res, "scenarios": calc.Scenarios(c)})
	},
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	s := calc.DefaultSliders()
	calcCmd.PersistentFlags().BoolVar(&calcClamp, "clamp", false, "snap inputs to the slider ranges")
	calcCmd.PersistentFlags().Float64Var(&calcInvestment, "investment", s.Investment.Default, "investment in dollars")
	calcROICmd.Flags().Float64Var(&calcROAS, "roas", s.ROAS.Default, "target return on ad spend")
	calcROICmd.Flags().Float64Var(&calcFee, "fee", s.FeePercent.Default, "performance fee percent")
	calcIPOCmd.Flags().Float64Var(&calcPriceImpact, "price-impact", s.PriceImpact.Default, "per-share price impact in dollars")

	calcCmd.AddCommand(calcROICmd, calcIPOCmd)
	rootCmd.AddCommand(calcCmd)
}
