package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jwaldner/paritycalc/internal/config"
	"github.com/jwaldner/paritycalc/internal/logger"
	"github.com/jwaldner/paritycalc/internal/models"
	"github.com/jwaldner/paritycalc/internal/parity"
	"github.com/jwaldner/paritycalc/internal/services"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger.InitDiscard()
	cfg := config.Load()

	fs := flag.NewFlagSet("paritycalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	spot := fs.Float64("spot", cfg.Defaults.Spot, "Current stock price (S)")
	strike := fs.Float64("strike", cfg.Defaults.Strike, "Strike price (K)")
	call := fs.Float64("call", cfg.Defaults.CallPrice, "Call option price (C)")
	rate := fs.Float64("rate", cfg.Defaults.Rate, "Annual risk-free rate as decimal (0.05 = 5%)")
	days := fs.Int("days", cfg.Defaults.DaysToExpiry, "Days to expiration")
	expiry := fs.String("expiry", "", "Expiration date YYYY-MM-DD (overrides -days)")
	market := fs.Float64("market", 0, "Market put price to compare against (0 = skip)")
	asJSON := fs.Bool("json", false, "Print the result as JSON")
	currency := fs.String("currency", cfg.Display.CurrencySymbol, "Currency symbol for display")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	req := models.CalculationRequest{
		Spot:           spot,
		Strike:         strike,
		CallPrice:      call,
		Rate:           rate,
		DaysToExpiry:   days,
		ExpirationDate: *expiry,
		MarketPutPrice: market,
	}

	in, err := services.NewRequestService().ToInputs(req)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	res, err := parity.Evaluate(in)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	data := services.NewFormatter(*currency).FormatResult(res)

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Fprintf(stdout, "T (years):        %s\n", data.Fields["year_fraction"].Display)
	fmt.Fprintf(stdout, "PV(K):            %s\n", data.Fields["present_value_strike"].Display)
	fmt.Fprintf(stdout, "Fair put price:   %s\n", data.Fields["fair_put_price"].Display)
	fmt.Fprintf(stdout, "Valuation:        %s\n", data.Valuation.Status)
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "[%s] %s\n", data.Banner.Level, data.Banner.Message)
	if data.Comparison != nil {
		fmt.Fprintf(stdout, "[%s] %s\n", data.Comparison.Level, data.Comparison.Message)
	}
	return 0
}
