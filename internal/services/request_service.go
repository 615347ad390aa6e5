package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jwaldner/paritycalc/internal/config"
	"github.com/jwaldner/paritycalc/internal/dto"
	"github.com/jwaldner/paritycalc/internal/models"
	"github.com/jwaldner/paritycalc/internal/parity"
	"github.com/jwaldner/paritycalc/internal/utils"
)

// ErrMethodNotAllowed is returned for requests using the wrong HTTP method
var ErrMethodNotAllowed = errors.New("method not allowed")

// RequestService handles HTTP request parsing
type RequestService struct {
	now func() time.Time
}

// NewRequestService creates a new request service
func NewRequestService() *RequestService {
	return &RequestService{now: time.Now}
}

// NewRequestServiceWithClock creates a request service with a fixed clock
func NewRequestServiceWithClock(now func() time.Time) *RequestService {
	return &RequestService{now: now}
}

// DefaultFormInput renders the configured defaults as form values
func DefaultFormInput(d config.DefaultsConfig) dto.FormInput {
	return dto.FormInput{
		Spot:      strconv.FormatFloat(d.Spot, 'f', -1, 64),
		Strike:    strconv.FormatFloat(d.Strike, 'f', -1, 64),
		CallPrice: strconv.FormatFloat(d.CallPrice, 'f', -1, 64),
		Rate:      strconv.FormatFloat(d.Rate, 'f', -1, 64),
		Days:      strconv.Itoa(d.DaysToExpiry),
	}
}

// ParseCalculationRequest parses a JSON body into calculator inputs
func (s *RequestService) ParseCalculationRequest(r *http.Request) (parity.Inputs, error) {
	if r.Method != http.MethodPost {
		return parity.Inputs{}, fmt.Errorf("%w: %s", ErrMethodNotAllowed, r.Method)
	}

	var req models.CalculationRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return parity.Inputs{}, fmt.Errorf("%w: failed to decode request: %v", parity.ErrInvalidInput, err)
	}

	return s.ToInputs(req)
}

// ToInputs converts a decoded request into validated calculator inputs
func (s *RequestService) ToInputs(req models.CalculationRequest) (parity.Inputs, error) {
	required := []struct {
		name  string
		value *float64
	}{
		{"spot", req.Spot},
		{"strike", req.Strike},
		{"call_price", req.CallPrice},
		{"rate", req.Rate},
	}
	for _, f := range required {
		if f.value == nil {
			return parity.Inputs{}, fmt.Errorf("%w: %s is required", parity.ErrInvalidInput, f.name)
		}
	}

	in := parity.Inputs{
		Spot:      *req.Spot,
		Strike:    *req.Strike,
		CallPrice: *req.CallPrice,
		Rate:      *req.Rate,
	}

	switch {
	case req.ExpirationDate != "":
		days, err := s.ValidateExpirationDate(req.ExpirationDate)
		if err != nil {
			return parity.Inputs{}, err
		}
		in.DaysToExpiry = days
	case req.DaysToExpiry != nil:
		in.DaysToExpiry = *req.DaysToExpiry
	default:
		return parity.Inputs{}, fmt.Errorf("%w: days_to_expiry or expiration_date is required", parity.ErrInvalidInput)
	}

	if req.MarketPutPrice != nil && *req.MarketPutPrice != 0 {
		m := *req.MarketPutPrice
		in.MarketPutPrice = &m
	}

	if err := in.Validate(); err != nil {
		return parity.Inputs{}, err
	}
	return in, nil
}

// ParseForm reads a submitted calculator form
func (s *RequestService) ParseForm(r *http.Request) (parity.Inputs, dto.FormInput, error) {
	if err := r.ParseForm(); err != nil {
		return parity.Inputs{}, dto.FormInput{}, fmt.Errorf("%w: failed to parse form: %v", parity.ErrInvalidInput, err)
	}

	form := dto.FormInput{
		Spot:           strings.TrimSpace(r.PostForm.Get("spot")),
		Strike:         strings.TrimSpace(r.PostForm.Get("strike")),
		CallPrice:      strings.TrimSpace(r.PostForm.Get("call_price")),
		Rate:           strings.TrimSpace(r.PostForm.Get("rate")),
		Days:           strings.TrimSpace(r.PostForm.Get("days")),
		ExpirationDate: strings.TrimSpace(r.PostForm.Get("expiration_date")),
		MarketPutPrice: strings.TrimSpace(r.PostForm.Get("market_put_price")),
	}

	var req models.CalculationRequest

	fields := []struct {
		name   string
		value  string
		target **float64
	}{
		{"spot", form.Spot, &req.Spot},
		{"strike", form.Strike, &req.Strike},
		{"call_price", form.CallPrice, &req.CallPrice},
		{"rate", form.Rate, &req.Rate},
	}
	for _, f := range fields {
		v, err := parseRequiredFloat(f.name, f.value)
		if err != nil {
			return parity.Inputs{}, form, err
		}
		*f.target = &v
	}

	req.ExpirationDate = form.ExpirationDate
	if form.Days != "" {
		days, err := strconv.Atoi(form.Days)
		if err != nil {
			return parity.Inputs{}, form, fmt.Errorf("%w: days must be a whole number, got %q", parity.ErrInvalidInput, form.Days)
		}
		req.DaysToExpiry = &days
	}

	if form.MarketPutPrice != "" {
		m, err := parseRequiredFloat("market_put_price", form.MarketPutPrice)
		if err != nil {
			return parity.Inputs{}, form, err
		}
		req.MarketPutPrice = &m
	}

	in, err := s.ToInputs(req)
	return in, form, err
}

// ValidateExpirationDate converts a YYYY-MM-DD expiration into days from today
func (s *RequestService) ValidateExpirationDate(dateStr string) (int, error) {
	days, err := utils.DaysUntil(dateStr, s.now())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", parity.ErrInvalidInput, err)
	}
	return days, nil
}

func parseRequiredFloat(name, value string) (float64, error) {
	if value == "" {
		return 0, fmt.Errorf("%w: %s is required", parity.ErrInvalidInput, name)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", parity.ErrInvalidInput, name, value)
	}
	return v, nil
}
