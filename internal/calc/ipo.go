package calc

// IPOInput holds the valuation-impact calculator's slider values.
type IPOInput struct {
	PriceImpact float64 `json:"priceImpact"`
	Investment  float64 `json:"investment"`
}

type IPOResult struct {
	PriceImpact     float64 `json:"priceImpact"`
	MarketCapImpact float64 `json:"marketCapImpact"`
	ValuePerDollar  float64 `json:"valuePerDollar"`
}

// Scenario is a fixed reference point shown next to the interactive result.
type Scenario struct {
	Name     string  `json:"name"`
	Impact   float64 `json:"impact"`
	Frame    string  `json:"frame"`
	Featured bool    `json:"featured,omitempty"`
}

type ScenarioResult struct {
	Scenario
	MarketCapImpact float64 `json:"marketCapImpact"`
}

var scenarios = [...]Scenario{
	{Name: "Conservative", Impact: 1, Frame: "Modest brand awareness improvement"},
	{Name: "Base Case", Impact: 3, Frame: "Strong marketing execution with institutional visibility", Featured: true},
	{Name: "Aggressive", Impact: 5, Frame: "Premium brand positioning with sustained investor demand"},
}

// ComputeIPO converts a per-share price impact into market cap impact and
// value created per dollar invested.
func ComputeIPO(c Constants, in IPOInput) (IPOResult, error) {
	if err := finite("priceImpact", in.PriceImpact); err != nil {
		return IPOResult{}, err
	}
	if err := positive("investment", in.Investment); err != nil {
		return IPOResult{}, err
	}
	if err := finite("outstandingShares", c.OutstandingShares); err != nil {
		return IPOResult{}, err
	}

	capImpact := marketCapImpact(c, in.PriceImpact)
	return IPOResult{
		PriceImpact:     in.PriceImpact,
		MarketCapImpact: capImpact,
		ValuePerDollar:  capImpact / in.Investment,
	}, nil
}

// Scenarios evaluates the static scenarios. They do not depend on slider
// state.
func Scenarios(c Constants) []ScenarioResult {
	out := make([]ScenarioResult, 0, len(scenarios))
	for _, s := range scenarios {
		out = append(out, ScenarioResult{Scenario: s, MarketCapImpact: marketCapImpact(c, s.Impact)})
	}
	return out
}

func marketCapImpact(c Constants, perShare float64) float64 {
	return perShare * c.OutstandingShares
}
