package models

import "github.com/jwaldner/paritycalc/internal/parity"

// FieldValue represents a field with both raw data and formatted display
type FieldValue struct {
	Raw     interface{} `json:"raw"`     // For sorting/export: 5.238095
	Display string      `json:"display"` // For UI: "₹5.24"
	Type    string      `json:"type"`    // For CSS: "currency"
}

// FormattedCalculation maps field keys to their dual raw/display values
type FormattedCalculation map[string]FieldValue

// Banner levels, one per visual treatment in the UI
const (
	BannerSuccess     = "success"
	BannerWarning     = "warning"
	BannerOvervalued  = "overvalued"
	BannerUndervalued = "undervalued"
	BannerFair        = "fair"
	BannerError       = "error"
)

// Banner is the headline message shown with a result
type Banner struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// CalculationRequest is the JSON body of /api/calculate. Spot, Strike,
// CallPrice and Rate are required; nil means the key was missing. Either
// DaysToExpiry or ExpirationDate (YYYY-MM-DD) sets the time to expiry.
type CalculationRequest struct {
	Spot           *float64 `json:"spot"`
	Strike         *float64 `json:"strike"`
	CallPrice      *float64 `json:"call_price"`
	Rate           *float64 `json:"rate"`
	DaysToExpiry   *int     `json:"days_to_expiry,omitempty"`
	ExpirationDate string   `json:"expiration_date,omitempty"`
	MarketPutPrice *float64 `json:"market_put_price,omitempty"`
}

// CalculationData carries the calculator output
type CalculationData struct {
	FairPutPrice       float64              `json:"fair_put_price"`
	PresentValueStrike float64              `json:"present_value_strike"`
	YearFraction       float64              `json:"year_fraction"`
	DaysToExpiry       int                  `json:"days_to_expiry"`
	Negative           bool                 `json:"negative"`
	Valuation          parity.Valuation     `json:"valuation"`
	Fields             FormattedCalculation `json:"fields"`
	Banner             Banner               `json:"banner"`
	// Comparison is set only when a market put price was supplied
	Comparison *Banner `json:"comparison,omitempty"`
}

type ResponseMetadata struct {
	Timestamp      string  `json:"timestamp"`
	ProcessingTime float64 `json:"processing_time"`
}

// CalculationResponse represents the complete API response
type CalculationResponse struct {
	Success bool             `json:"success"`
	Data    CalculationData  `json:"data"`
	Meta    ResponseMetadata `json:"meta"`
}

// ErrorResponse is returned for rejected requests
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
