package parity

import (
	"errors"
	"fmt"
	"math"
)

// DaysPerYear is the day count used to turn days to expiry into a year fraction
const DaysPerYear = 365.0

// ErrInvalidInput is returned when an input falls outside its domain
var ErrInvalidInput = errors.New("invalid input")

// Status is the valuation of a market put price against the parity fair value
type Status string

const (
	StatusNotCompared  Status = "NOT_COMPARED"
	StatusOvervalued   Status = "OVERVALUED"
	StatusUndervalued  Status = "UNDERVALUED"
	StatusFairlyValued Status = "FAIRLY_VALUED"
)

// Inputs is one immutable set of calculator inputs
type Inputs struct {
	Spot         float64
	Strike       float64
	CallPrice    float64
	Rate         float64 // annual, decimal (0.05 = 5%)
	DaysToExpiry int

	// MarketPutPrice is optional; nil or <= 0 means not supplied
	MarketPutPrice *float64
}

// Valuation is the comparison of a market put price with the fair value.
// Difference and PercentageDifference are zero unless Status is
// OVERVALUED or UNDERVALUED.
type Valuation struct {
	Status               Status  `json:"status"`
	Difference           float64 `json:"difference"`
	PercentageDifference float64 `json:"percentage_difference"`
}

// Compared reports whether a market price was supplied
func (v Valuation) Compared() bool {
	return v.Status != StatusNotCompared
}

// Result holds a full parity evaluation
type Result struct {
	Inputs             Inputs
	YearFraction       float64
	PresentValueStrike float64
	FairPutPrice       float64
	Valuation          Valuation
}

// Negative reports a fair put price below zero. This points at an arbitrage
// or inconsistent inputs but is still a valid result.
func (r Result) Negative() bool {
	return r.FairPutPrice < 0
}

// Validate checks every input against its domain
func (in Inputs) Validate() error {
	prices := []struct {
		name  string
		value float64
	}{
		{"spot", in.Spot},
		{"strike", in.Strike},
		{"call_price", in.CallPrice},
	}
	for _, p := range prices {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, p.name)
		}
		if p.value < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %g", ErrInvalidInput, p.name, p.value)
		}
	}

	if math.IsNaN(in.Rate) || in.Rate < 0 || in.Rate > 1 {
		return fmt.Errorf("%w: rate must be between 0 and 1, got %g", ErrInvalidInput, in.Rate)
	}
	if in.DaysToExpiry < 0 {
		return fmt.Errorf("%w: days_to_expiry must be >= 0, got %d", ErrInvalidInput, in.DaysToExpiry)
	}

	if in.MarketPutPrice != nil {
		m := *in.MarketPutPrice
		if math.IsNaN(m) || math.IsInf(m, 0) {
			return fmt.Errorf("%w: market_put_price must be a finite number", ErrInvalidInput)
		}
		if m < 0 {
			return fmt.Errorf("%w: market_put_price must be >= 0, got %g", ErrInvalidInput, m)
		}
	}
	return nil
}

// YearFraction converts a day count to years
func YearFraction(days int) float64 {
	if days > 0 {
		return float64(days) / DaysPerYear
	}
	return 0
}

// PresentValue discounts the strike with annual compounding. At T = 0 the
// strike is returned undiscounted.
func PresentValue(strike, rate, t float64) float64 {
	if t > 0 {
		return strike / math.Pow(1+rate, t)
	}
	return strike
}

// ComputeFairPut returns P = C - S + K/(1+r)^T. Negative values are returned
// as is.
func ComputeFairPut(spot, strike, callPrice, rate float64, days int) float64 {
	return callPrice - spot + PresentValue(strike, rate, YearFraction(days))
}

// Classify compares a market put price with the fair value
func Classify(fairPut float64, marketPut *float64) Valuation {
	if marketPut == nil || *marketPut <= 0 {
		return Valuation{Status: StatusNotCompared}
	}

	market := *marketPut
	difference := market - fairPut
	percentage := 0.0
	if fairPut != 0 {
		percentage = difference / fairPut * 100
	}
	// A fair value near zero can push the ratio past float64 range
	if math.IsInf(percentage, 0) || math.IsNaN(percentage) {
		percentage = 0
	}

	switch {
	case market > fairPut:
		return Valuation{Status: StatusOvervalued, Difference: difference, PercentageDifference: percentage}
	case market < fairPut:
		return Valuation{Status: StatusUndervalued, Difference: math.Abs(difference), PercentageDifference: math.Abs(percentage)}
	default:
		return Valuation{Status: StatusFairlyValued}
	}
}

// Evaluate validates the inputs and runs the full calculation
func Evaluate(in Inputs) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	t := YearFraction(in.DaysToExpiry)
	pv := PresentValue(in.Strike, in.Rate, t)
	fair := in.CallPrice - in.Spot + pv
	if !isFinite(fair) {
		return Result{}, fmt.Errorf("%w: fair put price overflows float64", ErrInvalidInput)
	}

	valuation := Classify(fair, in.MarketPutPrice)
	if !isFinite(valuation.Difference) {
		return Result{}, fmt.Errorf("%w: market_put_price difference overflows float64", ErrInvalidInput)
	}

	return Result{
		Inputs:             in,
		YearFraction:       t,
		PresentValueStrike: pv,
		FairPutPrice:       fair,
		Valuation:          valuation,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
