package currency

import (
	"sort"
	"strings"
)

// BaseCurrency is the currency every collected rate is quoted against.
const BaseCurrency = "USD"

type (
	Rate struct {
		Symbol string
		Rate   float64
	}

	// RateTable is a single month snapshot returned by a Fetcher.
	RateTable struct {
		Month Month
		Rates []Rate
	}

	// History maps a lowercase symbol to its rates, one per collected month
	// in chronological order.
	History map[string][]float64

	Collection struct {
		Start       Month
		TotalMonths int
		Rates       History
	}

	Result struct {
		Collection
		Removed []string
	}
)

func NormalizeSymbol(symbol string) string {
	return strings.ToLower(strings.TrimSpace(symbol))
}

func (h History) Append(symbol string, rate float64) {
	symbol = NormalizeSymbol(symbol)
	h[symbol] = append(h[symbol], rate)
}

func (h History) Symbols() []string {
	symbols := make([]string, 0, len(h))

	for symbol := range h {
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	return symbols
}
