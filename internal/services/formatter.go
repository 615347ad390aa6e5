package services

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/jwaldner/paritycalc/internal/models"
	"github.com/jwaldner/paritycalc/internal/parity"
)

// Formatter renders calculator results for display
type Formatter struct {
	currency string
}

// NewFormatter creates a formatter using the given currency symbol
func NewFormatter(currencySymbol string) *Formatter {
	return &Formatter{currency: currencySymbol}
}

// notAvailable is displayed for values outside float64 range
const notAvailable = "n/a"

// toDecimal converts a float for display. decimal.NewFromFloat panics on
// NaN and Inf, so those report false.
func toDecimal(value float64) (decimal.Decimal, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(value), true
}

// Money formats a value to 2 decimal places with the currency symbol in
// front and the sign ahead of the symbol: -₹5.00. Negative amounts keep
// their sign even when they round to zero.
func (f *Formatter) Money(value float64) string {
	d, ok := toDecimal(value)
	if !ok {
		return notAvailable
	}
	if value < 0 {
		return "-" + f.currency + d.Abs().Round(2).StringFixed(2)
	}
	return f.currency + d.Round(2).StringFixed(2)
}

// Percent formats a percentage value (14.5 means 14.5%)
func (f *Formatter) Percent(value float64) string {
	d, ok := toDecimal(value)
	if !ok {
		return notAvailable
	}
	return d.StringFixed(2) + "%"
}

func (f *Formatter) formatCurrency(value float64) models.FieldValue {
	return models.FieldValue{
		Raw:     value,
		Display: f.Money(value),
		Type:    "currency",
	}
}

func (f *Formatter) formatPercentage(value float64) models.FieldValue {
	return models.FieldValue{
		Raw:     value,
		Display: f.Percent(value),
		Type:    "percentage",
	}
}

func (f *Formatter) formatNumber(value float64, places int32) models.FieldValue {
	display := notAvailable
	if d, ok := toDecimal(value); ok {
		display = d.StringFixed(places)
	}
	return models.FieldValue{
		Raw:     value,
		Display: display,
		Type:    "number",
	}
}

func (f *Formatter) formatInteger(value int) models.FieldValue {
	return models.FieldValue{
		Raw:     value,
		Display: fmt.Sprintf("%d", value),
		Type:    "integer",
	}
}

func (f *Formatter) formatText(value string) models.FieldValue {
	return models.FieldValue{
		Raw:     value,
		Display: value,
		Type:    "text",
	}
}

// FormatResult converts a calculator result into the response payload
func (f *Formatter) FormatResult(res parity.Result) models.CalculationData {
	fields := models.FormattedCalculation{
		"fair_put_price":       f.formatCurrency(res.FairPutPrice),
		"present_value_strike": f.formatCurrency(res.PresentValueStrike),
		"year_fraction":        f.formatNumber(res.YearFraction, 4),
		"days_to_expiry":       f.formatInteger(res.Inputs.DaysToExpiry),
		"spot":                 f.formatCurrency(res.Inputs.Spot),
		"strike":               f.formatCurrency(res.Inputs.Strike),
		"call_price":           f.formatCurrency(res.Inputs.CallPrice),
		"rate":                 f.formatPercentage(res.Inputs.Rate * 100),
		"valuation_status":     f.formatText(string(res.Valuation.Status)),
	}

	data := models.CalculationData{
		FairPutPrice:       res.FairPutPrice,
		PresentValueStrike: res.PresentValueStrike,
		YearFraction:       res.YearFraction,
		DaysToExpiry:       res.Inputs.DaysToExpiry,
		Negative:           res.Negative(),
		Valuation:          res.Valuation,
		Fields:             fields,
		Banner:             f.priceBanner(res),
	}

	if res.Valuation.Compared() {
		fields["market_put_price"] = f.formatCurrency(*res.Inputs.MarketPutPrice)
		fields["difference"] = f.formatCurrency(res.Valuation.Difference)
		fields["percentage_difference"] = f.formatPercentage(res.Valuation.PercentageDifference)
		comparison := f.comparisonBanner(res)
		data.Comparison = &comparison
	}

	return data
}

func (f *Formatter) priceBanner(res parity.Result) models.Banner {
	if res.Negative() {
		return models.Banner{
			Level: models.BannerWarning,
			Message: fmt.Sprintf("Calculated put price is negative (%s), which is not realistic. Check inputs for arbitrage or errors.",
				f.Money(res.FairPutPrice)),
		}
	}
	return models.Banner{
		Level:   models.BannerSuccess,
		Message: fmt.Sprintf("Fair Put Option Price (P) = %s", f.Money(res.FairPutPrice)),
	}
}

func (f *Formatter) comparisonBanner(res parity.Result) models.Banner {
	market := f.Money(*res.Inputs.MarketPutPrice)
	fair := f.Money(res.FairPutPrice)
	v := res.Valuation

	switch v.Status {
	case parity.StatusOvervalued:
		return models.Banner{
			Level: models.BannerOvervalued,
			Message: fmt.Sprintf("Market put %s is OVERVALUED by %s (%s) against fair value %s",
				market, f.Money(v.Difference), f.Percent(v.PercentageDifference), fair),
		}
	case parity.StatusUndervalued:
		return models.Banner{
			Level: models.BannerUndervalued,
			Message: fmt.Sprintf("Market put %s is UNDERVALUED by %s (%s) against fair value %s",
				market, f.Money(v.Difference), f.Percent(v.PercentageDifference), fair),
		}
	default:
		return models.Banner{
			Level:   models.BannerFair,
			Message: fmt.Sprintf("Market put %s is FAIRLY VALUED at the parity price", market),
		}
	}
}
