package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/malusev998/currency-history"
)

type (
	ExchangeRatesAPIFetcher struct {
		Ctx    context.Context
		Client *http.Client
		URL    string
		APIKey string
	}

	exchangeRateAPIResponse struct {
		Base  string             `json:"base,omitempty"`
		Rates map[string]float64 `json:"rates,omitempty"`
		Date  string             `json:"date,omitempty"`
	}
)

func (e ExchangeRatesAPIFetcher) Fetch(month currency.Month) (currency.RateTable, error) {
	url := e.URL

	if url == "" {
		url = ExchangeRatesAPIURL
	}

	req, err := getData(e.Ctx, strings.TrimRight(url, "/")+"/"+month.FirstDay().Format(dateLayout))

	if err != nil {
		return currency.RateTable{}, err
	}

	q := req.URL.Query()
	q.Add("base", currency.BaseCurrency)

	if e.APIKey != "" {
		q.Add("access_key", e.APIKey)
	}

	req.URL.RawQuery = q.Encode()

	body, err := doRequest(e.Client, req)

	if err != nil {
		return currency.RateTable{}, err
	}

	var data exchangeRateAPIResponse

	if err := json.Unmarshal(body, &data); err != nil {
		return currency.RateTable{}, err
	}

	if data.Rates == nil {
		return currency.RateTable{}, fmt.Errorf("%w: rates are missing", ErrMalformedResponse)
	}

	symbols := make([]string, 0, len(data.Rates))

	for symbol := range data.Rates {
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	table := currency.RateTable{
		Month: month,
		Rates: make([]currency.Rate, 0, len(symbols)),
	}

	for _, symbol := range symbols {
		table.Rates = append(table.Rates, currency.Rate{
			Symbol: currency.NormalizeSymbol(symbol),
			Rate:   data.Rates[symbol],
		})
	}

	return table, nil
}
