package calc

import "math"

// Range describes a slider: values in [Min, Max] in Step increments from Min.
type Range struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

// Clamp snaps v to the nearest step and bounds it to the range. NaN maps to
// the default.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Default
	}
	if v <= r.Min {
		return r.Min
	}
	if v >= r.Max {
		return r.Max
	}
	if r.Step > 0 {
		v = r.Min + math.Round((v-r.Min)/r.Step)*r.Step
	}
	return math.Min(r.Max, math.Max(r.Min, v))
}

// Sliders are the widget ranges of both calculators.
type Sliders struct {
	ROAS        Range `json:"roas"`
	Investment  Range `json:"investment"`
	FeePercent  Range `json:"feePercent"`
	PriceImpact Range `json:"priceImpact"`
}

func DefaultSliders() Sliders {
	return Sliders{
		ROAS:        Range{Min: 5, Max: 12, Step: 0.5, Default: 8},
		Investment:  Range{Min: 100_000, Max: 500_000, Step: 25_000, Default: 250_000},
		FeePercent:  Range{Min: 5, Max: 30, Step: 1, Default: 15},
		PriceImpact: Range{Min: 0, Max: 10, Step: 0.5, Default: 3},
	}
}

// ClampROI applies the widget ranges to an ROI input.
func (s Sliders) ClampROI(in ROIInput) ROIInput {
	return ROIInput{
		TargetROAS: s.ROAS.Clamp(in.TargetROAS),
		Investment: s.Investment.Clamp(in.Investment),
		FeePercent: s.FeePercent.Clamp(in.FeePercent),
	}
}

// ClampIPO applies the widget ranges to an IPO input.
func (s Sliders) ClampIPO(in IPOInput) IPOInput {
	return IPOInput{
		PriceImpact: s.PriceImpact.Clamp(in.PriceImpact),
		Investment:  s.Investment.Clamp(in.Investment),
	}
}
