package handlers

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"

	"github.com/jwaldner/paritycalc/internal/config"
	"github.com/jwaldner/paritycalc/internal/dto"
	"github.com/jwaldner/paritycalc/internal/logger"
	"github.com/jwaldner/paritycalc/internal/models"
	"github.com/jwaldner/paritycalc/internal/parity"
	"github.com/jwaldner/paritycalc/internal/services"
	"github.com/jwaldner/paritycalc/internal/utils"
)

// ParityHandler serves the calculator form and JSON API - HTTP layer only,
// all pricing lives in the parity package
type ParityHandler struct {
	config    *config.Config
	requests  *services.RequestService
	formatter *services.Formatter
	now       func() time.Time
}

// NewParityHandler creates a new parity handler
func NewParityHandler(cfg *config.Config, requests *services.RequestService) *ParityHandler {
	return &ParityHandler{
		config:    cfg,
		requests:  requests,
		formatter: services.NewFormatter(cfg.Display.CurrencySymbol),
		now:       time.Now,
	}
}

// RegisterRoutes mounts every calculator endpoint on the router
func RegisterRoutes(r *mux.Router, h *ParityHandler) {
	r.HandleFunc("/", h.HomeHandler).Methods("GET")
	r.HandleFunc("/", h.SubmitHandler).Methods("POST")
	r.HandleFunc("/api/calculate", h.CalculateHandler).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/health", h.HealthHandler).Methods("GET")
}

// HomeHandler serves the empty calculator form
func (h *ParityHandler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	data := h.templateData(services.DefaultFormInput(h.config.Defaults))
	h.render(w, http.StatusOK, data)
}

// SubmitHandler evaluates a submitted form and re-renders the page with the result
func (h *ParityHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	in, form, err := h.requests.ParseForm(r)
	data := h.templateData(form)
	if err != nil {
		logger.Warn.Printf("Rejected form submission: %v", err)
		data.Error = err.Error()
		h.render(w, statusFor(err), data)
		return
	}

	res, err := parity.Evaluate(in)
	if err != nil {
		data.Error = err.Error()
		h.render(w, statusFor(err), data)
		return
	}

	formatted := h.formatter.FormatResult(res)
	data.Result = &formatted
	logger.Info.Printf("Form evaluated: P=%.4f status=%s", res.FairPutPrice, res.Valuation.Status)
	h.render(w, http.StatusOK, data)
}

// CalculateHandler handles JSON calculation requests
func (h *ParityHandler) CalculateHandler(w http.ResponseWriter, r *http.Request) {
	// Set CORS headers for browser compatibility
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	// Handle preflight OPTIONS request
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	startTime := time.Now()

	in, err := h.requests.ParseCalculationRequest(r)
	if err == nil {
		var res parity.Result
		if res, err = parity.Evaluate(in); err == nil {
			response := models.CalculationResponse{
				Success: true,
				Data:    h.formatter.FormatResult(res),
				Meta: models.ResponseMetadata{
					Timestamp:      h.now().Format(time.RFC3339),
					ProcessingTime: time.Since(startTime).Seconds(),
				},
			}
			logger.Debug.Printf("API evaluated: inputs=%+v P=%.6f status=%s", in, res.FairPutPrice, res.Valuation.Status)
			h.writeJSON(w, http.StatusOK, response)
			return
		}
	}

	logger.Warn.Printf("Rejected calculation request: %v", err)
	code := "INVALID_INPUT"
	if errors.Is(err, services.ErrMethodNotAllowed) {
		code = "METHOD_NOT_ALLOWED"
	}
	h.writeJSON(w, statusFor(err), models.ErrorResponse{
		Success: false,
		Error:   code,
		Message: err.Error(),
	})
}

// HealthHandler reports liveness
func (h *ParityHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ParityHandler) templateData(form dto.FormInput) dto.TemplateData {
	return dto.TemplateData{
		Title:                 h.config.Display.Title,
		CurrencySymbol:        h.config.Display.CurrencySymbol,
		DefaultExpirationDate: utils.CalculateNextOptionsExpiration(h.now()),
		Form:                  form,
	}
}

// render loads the page template on every request so web changes need no rebuild
func (h *ParityHandler) render(w http.ResponseWriter, status int, data dto.TemplateData) {
	path := h.config.Server.TemplatePath
	funcMap := template.FuncMap{
		"money":   h.formatter.Money,
		"percent": h.formatter.Percent,
		"field": func(fields models.FormattedCalculation, key string) string {
			return fields[key].Display
		},
	}

	tmpl, err := template.New(filepath.Base(path)).Funcs(funcMap).ParseFiles(path)
	if err != nil {
		logger.Error.Printf("Template error: %v", err)
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		logger.Error.Printf("Template execution error: %v", err)
	}
}

func (h *ParityHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error.Printf("JSON encoding failed: %v", err)
	}
}

// statusFor maps calculator errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, parity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}
