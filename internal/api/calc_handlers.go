package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"sovereign/internal/calc"
	"sovereign/internal/observability"
)

type calculatorConfig struct {
	Constants calc.Constants        `json:"constants"`
	Sliders   calc.Sliders          `json:"sliders"`
	Scenarios []calc.ScenarioResult `json:"scenarios"`
}

// CalculatorConfigHandler returns what the widget needs to draw itself.
func (s *Server) CalculatorConfigHandler(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, http.StatusOK, calculatorConfig{
		Constants: s.constants,
		Sliders:   s.sliders,
		Scenarios: calc.Scenarios(s.constants),
	})
}

// Missing fields take the slider default.
type roiRequest struct {
	ROAS       *float64 `json:"roas"`
	Investment *float64 `json:"investment"`
	FeePercent *float64 `json:"feePercent"`
}

type roiResponse struct {
	Input  calc.ROIInput  `json:"input"`
	Result calc.ROIResult `json:"result"`
}

type ipoRequest struct {
	PriceImpact *float64 `json:"priceImpact"`
	Investment  *float64 `json:"investment"`
}

type ipoResponse struct {
	Input     calc.IPOInput         `json:"input"`
	Result    calc.IPOResult        `json:"result"`
	Scenarios []calc.ScenarioResult `json:"scenarios"`
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// decodeOptional accepts an empty body as "all defaults".
func decodeOptional(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := decodeJSON(w, r, v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func wantClamp(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("clamp"))
	return ok
}

// ROIHandler runs the ad-spend ROI model. ?clamp=true snaps inputs to the
// slider ranges first.
func (s *Server) ROIHandler(w http.ResponseWriter, r *http.Request) {
	var req roiRequest
	if err := decodeOptional(w, r, &req); err != nil {
		ErrorResponse(w, err)
		return
	}
	in := calc.ROIInput{
		TargetROAS: orDefault(req.ROAS, s.sliders.ROAS.Default),
		Investment: orDefault(req.Investment, s.sliders.Investment.Default),
		FeePercent: orDefault(req.FeePercent, s.sliders.FeePercent.Default),
	}
	if wantClamp(r) {
		in = s.sliders.ClampROI(in)
	}
	res, err := calc.ComputeROI(s.constants, in)
	if err != nil {
		s.calcError(w, "roi", err)
		return
	}
	JSONResponse(w, http.StatusOK, roiResponse{Input: in, Result: res})
}

// IPOHandler runs the valuation-impact model and returns the fixed
// scenarios alongside.
func (s *Server) IPOHandler(w http.ResponseWriter, r *http.Request) {
	var req ipoRequest
	if err := decodeOptional(w, r, &req); err != nil {
		ErrorResponse(w, err)
		return
	}
	in := calc.IPOInput{
		PriceImpact: orDefault(req.PriceImpact, s.sliders.PriceImpact.Default),
		Investment:  orDefault(req.Investment, s.sliders.Investment.Default),
	}
	if wantClamp(r) {
		in = s.sliders.ClampIPO(in)
	}
	res, err := calc.ComputeIPO(s.constants, in)
	if err != nil {
		s.calcError(w, "ipo", err)
		return
	}
	JSONResponse(w, http.StatusOK, ipoResponse{Input: in, Result: res, Scenarios: calc.Scenarios(s.constants)})
}

func (s *Server) calcError(w http.ResponseWriter, calculator string, err error) {
	field := "unknown"
	var ie *calc.InputError
	if errors.As(err, &ie) {
		field = ie.Field
	}
	observability.RecordCalcError(calculator, field)
	s.logger.Debug().Err(err).Str("calculator", calculator).Msg("calculator rejected input")
	ErrorResponse(w, err)
}
