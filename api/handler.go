// Package api exposes the stored rate history over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/malusev998/currency-history"
	"github.com/malusev998/currency-history/services"
)

const dateLayout = "2006-01-02"

type (
	RatesResponse struct {
		Symbol string    `json:"symbol"`
		Start  string    `json:"start"`
		Rates  []float64 `json:"rates"`
	}

	ConversionResponse struct {
		From   string `json:"from"`
		To     string `json:"to"`
		Date   string `json:"date"`
		Amount string `json:"amount"`
		Result string `json:"result"`
		// Symbol is the sign of the target currency when one is known.
		Symbol string `json:"symbol,omitempty"`
	}

	ErrorResponse struct {
		Error  string `json:"error"`
		Status int    `json:"status"`
	}

	Handler struct {
		service *services.ConversionService
		logger  *zap.Logger
		now     func() time.Time
	}
)

func NewHandler(service *services.ConversionService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

func (h *Handler) Rates(w http.ResponseWriter, r *http.Request) {
	symbol := currency.NormalizeSymbol(mux.Vars(r)["symbol"])
	rates, ok := h.service.Rates[symbol]

	if !ok {
		h.sendError(w, "currency not found", http.StatusNotFound)
		return
	}

	h.send(w, http.StatusOK, RatesResponse{
		Symbol: symbol,
		Start:  h.service.Start.String(),
		Rates:  rates,
	})
}

func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	to := currency.NormalizeSymbol(query.Get("to"))

	if to == "" {
		to = currency.NormalizeSymbol(currency.BaseCurrency)
	}

	from, amount, err := conversionSource(query)

	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	date := h.now()

	if value := query.Get("date"); value != "" {
		if date, err = time.Parse(dateLayout, value); err != nil {
			h.sendError(w, "invalid date parameter, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	result, err := h.service.Convert(from, to, amount, date)

	if err != nil {
		switch {
		case errors.Is(err, services.ErrCurrencyNotFound), errors.Is(err, services.ErrNoRates):
			h.sendError(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, services.ErrZeroRate):
			h.sendError(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			h.logger.Error("conversion failed", zap.Error(err))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
		}

		return
	}

	h.logger.Debug("converted",
		zap.String("from", from),
		zap.String("to", to),
		zap.Stringer("amount", amount),
		zap.Stringer("result", result),
	)

	symbol, _ := currency.SymbolOf(to)

	h.send(w, http.StatusOK, ConversionResponse{
		From:   from,
		To:     to,
		Date:   date.Format(dateLayout),
		Amount: amount.String(),
		Result: result.String(),
		Symbol: symbol,
	})
}

// conversionSource reads either a price ("$1,234") or the from and amount pair.
func conversionSource(query url.Values) (string, decimal.Decimal, error) {
	if price := query.Get("price"); price != "" {
		from, amount, err := currency.ParsePrice(price)

		if err != nil {
			return "", decimal.Zero, errors.New("invalid price parameter")
		}

		return from, amount, nil
	}

	from := currency.NormalizeSymbol(query.Get("from"))

	if from == "" {
		return "", decimal.Zero, errors.New("missing from parameter")
	}

	amount, err := decimal.NewFromString(query.Get("amount"))

	if err != nil {
		return "", decimal.Zero, errors.New("invalid amount parameter")
	}

	return from, amount, nil
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/rates/{symbol}", h.Rates).Methods(http.MethodGet)
	router.HandleFunc("/convert", h.Convert).Methods(http.MethodGet)
}

func (h *Handler) sendError(w http.ResponseWriter, message string, status int) {
	h.send(w, status, ErrorResponse{Error: message, Status: status})
}

func (h *Handler) send(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("writing response", zap.Error(err))
	}
}
