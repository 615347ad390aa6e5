package services

import (
	"math"
	"strings"
	"testing"

	"github.com/jwaldner/paritycalc/internal/models"
	"github.com/jwaldner/paritycalc/internal/parity"
)

func evaluate(t *testing.T, in parity.Inputs) parity.Result {
	t.Helper()
	res, err := parity.Evaluate(in)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	return res
}

func marketPrice(v float64) *float64 {
	return &v
}

func TestMoney(t *testing.T) {
	f := NewFormatter("₹")

	tests := map[float64]string{
		5.238095: "₹5.24",
		10:       "₹10.00",
		-5:       "-₹5.00",
		0.004:    "₹0.00",
		-0.004:   "-₹0.00",
		1234.565: "₹1234.57",
	}
	for value, want := range tests {
		if got := f.Money(value); got != want {
			t.Errorf("Money(%v) = %q, want %q", value, got, want)
		}
	}
}

func TestMoneyAndPercentNonFinite(t *testing.T) {
	f := NewFormatter("₹")
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		if got := f.Money(v); got != "n/a" {
			t.Errorf("Money(%v) = %q, want n/a", v, got)
		}
		if got := f.Percent(v); got != "n/a" {
			t.Errorf("Percent(%v) = %q, want n/a", v, got)
		}
		if got := f.formatNumber(v, 4).Display; got != "n/a" {
			t.Errorf("formatNumber(%v) = %q, want n/a", v, got)
		}
	}
}

func TestPercent(t *testing.T) {
	f := NewFormatter("$")
	if got := f.Percent(14.545454); got != "14.55%" {
		t.Errorf("Percent = %q", got)
	}
	if got := f.Percent(0); got != "0.00%" {
		t.Errorf("Percent = %q", got)
	}
}

func TestFormatResultNoMarketPrice(t *testing.T) {
	f := NewFormatter("₹")
	data := f.FormatResult(evaluate(t, parity.Inputs{Spot: 100, Strike: 100, CallPrice: 10, Rate: 0.05, DaysToExpiry: 365}))

	if data.Banner.Level != models.BannerSuccess {
		t.Errorf("Expected success banner, got %s", data.Banner.Level)
	}
	if data.Banner.Message != "Fair Put Option Price (P) = ₹5.24" {
		t.Errorf("Unexpected banner message %q", data.Banner.Message)
	}
	if data.Comparison != nil {
		t.Errorf("Expected no comparison banner, got %+v", data.Comparison)
	}
	if data.Fields["fair_put_price"].Display != "₹5.24" {
		t.Errorf("Unexpected fair_put_price display %q", data.Fields["fair_put_price"].Display)
	}
	if data.Fields["year_fraction"].Display != "1.0000" {
		t.Errorf("Unexpected year_fraction display %q", data.Fields["year_fraction"].Display)
	}
	if _, ok := data.Fields["difference"]; ok {
		t.Error("difference field should be absent without market price")
	}
	if data.Valuation.Status != parity.StatusNotCompared {
		t.Errorf("Expected NOT_COMPARED, got %s", data.Valuation.Status)
	}
}

func TestFormatResultNegative(t *testing.T) {
	f := NewFormatter("₹")
	data := f.FormatResult(evaluate(t, parity.Inputs{Spot: 110, Strike: 100, CallPrice: 5, DaysToExpiry: 180}))

	if !data.Negative || data.Banner.Level != models.BannerWarning {
		t.Fatalf("Expected negative warning, got %+v", data.Banner)
	}
	if !strings.Contains(data.Banner.Message, "-₹5.00") {
		t.Errorf("Expected formatted negative price in %q", data.Banner.Message)
	}
}

func TestFormatResultComparisons(t *testing.T) {
	f := NewFormatter("$")
	base := parity.Inputs{Spot: 100, Strike: 100, CallPrice: 10, Rate: 0.05, DaysToExpiry: 365}

	tests := []struct {
		market    float64
		level     string
		substring string
	}{
		{6.00, models.BannerOvervalued, "OVERVALUED by $0.76 (14.55%)"},
		{5.00, models.BannerUndervalued, "UNDERVALUED by $0.24"},
	}

	for _, tt := range tests {
		in := base
		in.MarketPutPrice = marketPrice(tt.market)
		data := f.FormatResult(evaluate(t, in))

		if data.Comparison == nil {
			t.Fatalf("market %.2f: expected comparison banner", tt.market)
		}
		if data.Comparison.Level != tt.level {
			t.Errorf("market %.2f: level = %s, want %s", tt.market, data.Comparison.Level, tt.level)
		}
		if !strings.Contains(data.Comparison.Message, tt.substring) {
			t.Errorf("market %.2f: message %q missing %q", tt.market, data.Comparison.Message, tt.substring)
		}
		if _, ok := data.Fields["percentage_difference"]; !ok {
			t.Errorf("market %.2f: missing percentage_difference field", tt.market)
		}
	}

	fair := parity.Inputs{Spot: 100, Strike: 100, CallPrice: 10, Rate: 0, DaysToExpiry: 30, MarketPutPrice: marketPrice(10)}
	data := f.FormatResult(evaluate(t, fair))
	if data.Comparison == nil || data.Comparison.Level != models.BannerFair {
		t.Errorf("Expected fair banner, got %+v", data.Comparison)
	}
}

func TestFormatResultTinyFairValue(t *testing.T) {
	f := NewFormatter("₹")
	in := parity.Inputs{CallPrice: 1e-300, Rate: 0.05, DaysToExpiry: 30, MarketPutPrice: marketPrice(1e10)}
	data := f.FormatResult(evaluate(t, in))

	if data.Valuation.Status != parity.StatusOvervalued {
		t.Fatalf("Expected OVERVALUED, got %s", data.Valuation.Status)
	}
	if got := data.Fields["percentage_difference"].Display; got != "0.00%" {
		t.Errorf("Unexpected percentage display %q", got)
	}
	if data.Comparison == nil || !strings.Contains(data.Comparison.Message, "OVERVALUED") {
		t.Errorf("Unexpected comparison banner %+v", data.Comparison)
	}
}

func TestFormatResultNegativeBelowOneCent(t *testing.T) {
	f := NewFormatter("₹")
	data := f.FormatResult(evaluate(t, parity.Inputs{Spot: 100.004, Strike: 100}))

	if !data.Negative || data.Banner.Level != models.BannerWarning {
		t.Fatalf("Expected negative warning, got %+v", data.Banner)
	}
	if !strings.Contains(data.Banner.Message, "(-₹0.00)") {
		t.Errorf("Expected signed zero in %q", data.Banner.Message)
	}
	if got := data.Fields["fair_put_price"].Display; got != "-₹0.00" {
		t.Errorf("Unexpected fair_put_price display %q", got)
	}
}
