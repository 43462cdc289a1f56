package calc

// ROIInput holds the ad-spend calculator's slider values.
type ROIInput struct {
	TargetROAS float64 `json:"roas"`
	Investment float64 `json:"investment"`
	FeePercent float64 `json:"feePercent"`
}

// ROIResult is recomputed on every input change and never stored.
type ROIResult struct {
	BaselineSpend   float64 `json:"baselineSpend"`
	OptimizedSpend  float64 `json:"optimizedSpend"`
	TotalSavings    float64 `json:"totalSavings"`
	SharesPreserved float64 `json:"sharesPreserved"`
	// EquityValuePreserved is SharesPreserved × CurrentSharePrice, which is
	// TotalSavings again. Both are shown; keep the literal formula.
	EquityValuePreserved float64 `json:"equityValuePreserved"`
	PerformanceFee       float64 `json:"performanceFee"`
	NetSavings           float64 `json:"netSavings"`
	ROI                  float64 `json:"roi"`
}

// ComputeROI models savings from raising the raise target at a better
// return on ad spend than the baseline. Out-of-range slider values are
// accepted; only values that would divide by zero, go negative in a
// denominator or are not finite are rejected.
func ComputeROI(c Constants, in ROIInput) (ROIResult, error) {
	for _, chk := range []struct {
		field string
		v     float64
	}{
		{"roas", in.TargetROAS},
		{"investment", in.Investment},
		{"baselineRoas", c.BaselineROAS},
		{"currentSharePrice", c.CurrentSharePrice},
	} {
		if err := positive(chk.field, chk.v); err != nil {
			return ROIResult{}, err
		}
	}
	if err := finite("feePercent", in.FeePercent); err != nil {
		return ROIResult{}, err
	}
	if err := finite("raiseTarget", c.RaiseTarget); err != nil {
		return ROIResult{}, err
	}

	baseline := c.RaiseTarget / c.BaselineROAS
	optimized := c.RaiseTarget / in.TargetROAS
	savings := baseline - optimized
	shares := savings / c.CurrentSharePrice
	fee := savings * (in.FeePercent / 100)
	net := savings - fee

	return ROIResult{
		BaselineSpend:        baseline,
		OptimizedSpend:       optimized,
		TotalSavings:         savings,
		SharesPreserved:      shares,
		EquityValuePreserved: shares * c.CurrentSharePrice,
		PerformanceFee:       fee,
		NetSavings:           net,
		ROI:                  net / in.Investment,
	}, nil
}
