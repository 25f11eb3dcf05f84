package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/malusev998/currency-history"
)

const conversionPrecision = 6

var (
	ErrCurrencyNotFound  = errors.New("rate for the currency is not found in storage")
	ErrNoRates           = errors.New("currency has no rates")
	ErrNoStorageProvided = errors.New("no storage provided")
	ErrZeroRate          = errors.New("currency rate is zero")
)

// ConversionService converts amounts with a stored history. The rate at
// index i of every series belongs to the month Start+i.
type ConversionService struct {
	Start currency.Month
	Rates currency.History
}

func NewConversionService(storage currency.Storage) (*ConversionService, error) {
	if storage == nil {
		return nil, ErrNoStorageProvided
	}

	rates, err := storage.Load()

	if err != nil {
		return nil, fmt.Errorf("loading rates from %s: %w", storage.GetStorageProviderName(), err)
	}

	return &ConversionService{
		Start: currency.StartMonth,
		Rates: rates,
	}, nil
}

// Rate returns the rate of the month whose first day is closest to date.
func (c ConversionService) Rate(symbol string, date time.Time) (float64, error) {
	symbol = currency.NormalizeSymbol(symbol)

	if symbol == currency.NormalizeSymbol(currency.BaseCurrency) {
		return 1, nil
	}

	rates, ok := c.Rates[symbol]

	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrCurrencyNotFound, symbol)
	}

	if len(rates) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoRates, symbol)
	}

	start := c.Start

	if start == (currency.Month{}) {
		start = currency.StartMonth
	}

	timestamp := date.Unix()
	best := 0
	bestDiff := abs(timestamp - start.FirstDay().Unix())

	for i := 1; i < len(rates); i++ {
		if diff := abs(timestamp - start.AddMonths(i).FirstDay().Unix()); diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}

	return rates[best], nil
}

func (c ConversionService) ToBase(symbol string, value decimal.Decimal, date time.Time) (decimal.Decimal, error) {
	rate, err := c.decimalRate(symbol, date)

	if err != nil {
		return decimal.Zero, err
	}

	return value.Div(rate).Round(conversionPrecision), nil
}

func (c ConversionService) Convert(from, to string, value decimal.Decimal, date time.Time) (decimal.Decimal, error) {
	fromRate, err := c.decimalRate(from, date)

	if err != nil {
		return decimal.Zero, err
	}

	toRate, err := c.decimalRate(to, date)

	if err != nil {
		return decimal.Zero, err
	}

	return value.Div(fromRate).Mul(toRate).Round(conversionPrecision), nil
}

func (c ConversionService) decimalRate(symbol string, date time.Time) (decimal.Decimal, error) {
	rate, err := c.Rate(symbol, date)

	if err != nil {
		return decimal.Zero, err
	}

	if rate == 0 {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrZeroRate, currency.NormalizeSymbol(symbol))
	}

	return decimal.NewFromFloat(rate), nil
}

func abs(value int64) int64 {
	if value < 0 {
		return -value
	}

	return value
}
