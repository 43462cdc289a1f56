package calc

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeROIReferenceScenario(t *testing.T) {
	c := DefaultConstants()
	got, err := ComputeROI(c, ROIInput{TargetROAS: 8, Investment: 250_000, FeePercent: 15})
	require.NoError(t, err)

	assert.InDelta(t, 15_000_000, got.BaselineSpend, 1e-6)
	assert.InDelta(t, 9_375_000, got.OptimizedSpend, 1e-6)
	assert.InDelta(t, 5_625_000, got.TotalSavings, 1e-6)
	assert.InDelta(t, 723_938, got.SharesPreserved, 1)
	assert.InDelta(t, 843_750, got.PerformanceFee, 1e-6)
	assert.InDelta(t, 4_781_250, got.NetSavings, 1e-6)
	assert.InDelta(t, 19.125, got.ROI, 1e-9)
}

func TestEquityValuePreservedEqualsTotalSavings(t *testing.T) {
	c := DefaultConstants()
	for roas := 5.0; roas <= 12; roas += 0.5 {
		got, err := ComputeROI(c, ROIInput{TargetROAS: roas, Investment: 100_000, FeePercent: 10})
		require.NoError(t, err)
		assert.InDelta(t, got.TotalSavings, got.EquityValuePreserved, 1e-6, "roas=%v", roas)
	}
}

func TestComputeROIIsDeterministic(t *testing.T) {
	c := DefaultConstants()
	in := ROIInput{TargetROAS: 9.5, Investment: 325_000, FeePercent: 17}
	first, err := ComputeROI(c, in)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		again, err := ComputeROI(c, in)
		require.NoError(t, err)
		require.Equal(t, math.Float64bits(first.ROI), math.Float64bits(again.ROI))
		require.Equal(t, first, again)
	}
}

func TestROIIsNonDecreasingInROAS(t *testing.T) {
	c := DefaultConstants()
	for _, fee := range []float64{5, 15, 30} {
		prev := math.Inf(-1)
		for roas := 5.0; roas <= 12; roas += 0.5 {
			got, err := ComputeROI(c, ROIInput{TargetROAS: roas, Investment: 250_000, FeePercent: fee})
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got.ROI, prev, "fee=%v roas=%v", fee, roas)
			prev = got.ROI
		}
	}
}

func TestComputeROIRejectsBadDenominators(t *testing.T) {
	tests := []struct {
		name  string
		c     func(*Constants)
		in    ROIInput
		field string
	}{
		{name: "zero investment", in: ROIInput{TargetROAS: 8, Investment: 0, FeePercent: 15}, field: "investment"},
		{name: "negative investment", in: ROIInput{TargetROAS: 8, Investment: -1, FeePercent: 15}, field: "investment"},
		{name: "zero roas", in: ROIInput{TargetROAS: 0, Investment: 1, FeePercent: 15}, field: "roas"},
		{name: "nan roas", in: ROIInput{TargetROAS: math.NaN(), Investment: 1, FeePercent: 15}, field: "roas"},
		{name: "infinite fee", in: ROIInput{TargetROAS: 8, Investment: 1, FeePercent: math.Inf(1)}, field: "feePercent"},
		{name: "zero baseline", c: func(c *Constants) { c.BaselineROAS = 0 }, in: ROIInput{TargetROAS: 8, Investment: 1}, field: "baselineRoas"},
		{name: "zero share price", c: func(c *Constants) { c.CurrentSharePrice = 0 }, in: ROIInput{TargetROAS: 8, Investment: 1}, field: "currentSharePrice"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultConstants()
			if tc.c != nil {
				tc.c(&c)
			}
			_, err := ComputeROI(c, tc.in)
			require.ErrorIs(t, err, ErrInvalidInput)
			var ie *InputError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tc.field, ie.Field)
		})
	}
}

func TestComputeROIToleratesOutOfRangeSliders(t *testing.T) {
	got, err := ComputeROI(DefaultConstants(), ROIInput{TargetROAS: 2, Investment: 1_000_000, FeePercent: 150})
	require.NoError(t, err)
	assert.Less(t, got.TotalSavings, 0.0)
	assert.False(t, math.IsNaN(got.ROI))
}

func TestComputeIPO(t *testing.T) {
	got, err := ComputeIPO(DefaultConstants(), IPOInput{PriceImpact: 3, Investment: 250_000})
	require.NoError(t, err)
	assert.InDelta(t, 750_000_000, got.MarketCapImpact, 1e-6)
	assert.InDelta(t, 3_000, got.ValuePerDollar, 1e-9)
	assert.Equal(t, 3.0, got.PriceImpact)

	_, err = ComputeIPO(DefaultConstants(), IPOInput{PriceImpact: 3, Investment: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeIPO(DefaultConstants(), IPOInput{PriceImpact: math.NaN(), Investment: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestScenariosAreStatic(t *testing.T) {
	got := Scenarios(DefaultConstants())
	require.Len(t, got, 3)
	assert.Equal(t, "Conservative", got[0].Name)
	assert.InDelta(t, 250_000_000, got[0].MarketCapImpact, 1e-6)
	assert.Equal(t, "Base Case", got[1].Name)
	assert.True(t, got[1].Featured)
	assert.InDelta(t, 750_000_000, got[1].MarketCapImpact, 1e-6)
	assert.InDelta(t, 1_250_000_000, got[2].MarketCapImpact, 1e-6)

	got[0].Impact = 99
	assert.Equal(t, 1.0, Scenarios(DefaultConstants())[0].Impact)
}

func TestRangeClamp(t *testing.T) {
	r := DefaultSliders().ROAS
	assert.Equal(t, 5.0, r.Clamp(1))
	assert.Equal(t, 12.0, r.Clamp(40))
	assert.Equal(t, 8.5, r.Clamp(8.4))
	assert.Equal(t, 8.0, r.Clamp(8.2))
	assert.Equal(t, 8.0, r.Clamp(math.NaN()))

	s := DefaultSliders()
	in := s.ClampROI(ROIInput{TargetROAS: 20, Investment: 110_000, FeePercent: 2})
	assert.Equal(t, ROIInput{TargetROAS: 12, Investment: 100_000, FeePercent: 5}, in)

	ipo := s.ClampIPO(IPOInput{PriceImpact: -1, Investment: 480_000})
	assert.Equal(t, IPOInput{PriceImpact: 0, Investment: 475_000}, ipo)
}
