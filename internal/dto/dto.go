package dto

import "github.com/jwaldner/paritycalc/internal/models"

// FormInput holds the raw form values so they can be echoed back to the page
type FormInput struct {
	Spot           string
	Strike         string
	CallPrice      string
	Rate           string
	Days           string
	ExpirationDate string
	MarketPutPrice string
}

// TemplateData represents data passed to HTML templates
type TemplateData struct {
	Title                 string
	CurrencySymbol        string
	DefaultExpirationDate string
	Form                  FormInput
	Result                *models.CalculationData
	Error                 string
}
