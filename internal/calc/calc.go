// Package calc implements the Reg A+ performance calculator: an ad-spend
// ROI model and an IPO valuation-impact model. Both are pure functions of
// their inputs and a fixed set of financial constants.
package calc

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidInput = errors.New("calc: invalid input")

// InputError names the offending input.
type InputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("calc: %s %s (got %v)", e.Field, e.Reason, e.Value)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// Constants are the company figures every calculation is based on.
type Constants struct {
	OutstandingShares float64 `json:"outstandingShares"`
	CurrentSharePrice float64 `json:"currentSharePrice"`
	RaiseTarget       float64 `json:"raiseTarget"`
	BaselineROAS      float64 `json:"baselineRoas"`
	CompanyValuation  float64 `json:"companyValuation"`
	PriceEstimateLow  float64 `json:"priceEstimateLow"`
	PriceEstimateHigh float64 `json:"priceEstimateHigh"`
	IPOTimeline       string  `json:"ipoTimeline"`
	RaiseTimeline     string  `json:"raiseTimeline"`
}

func DefaultConstants() Constants {
	return Constants{
		OutstandingShares: 250_000_000,
		CurrentSharePrice: 7.77,
		RaiseTarget:       75_000_000,
		BaselineROAS:      5,
		CompanyValuation:  2_000_000_000,
		PriceEstimateLow:  60,
		PriceEstimateHigh: 100,
		IPOTimeline:       "Q3 2025",
		RaiseTimeline:     "< 12 months",
	}
}

func positive(field string, v float64) error {
	if err := finite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return &InputError{Field: field, Value: v, Reason: "must be positive"}
	}
	return nil
}

func finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InputError{Field: field, Value: v, Reason: "must be a finite number"}
	}
	return nil
}
