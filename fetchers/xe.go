package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/malusev998/currency-history"
)

type (
	// XEFetcher reads the monthly currency tables served by xe.com.
	// The build id is part of the site's deployment and changes whenever
	// the site is redeployed.
	XEFetcher struct {
		Ctx     context.Context
		Client  *http.Client
		URL     string
		BuildID string
	}

	xeResponse struct {
		PageProps *struct {
			HistoricRates *[]xeRate `json:"historicRates"`
		} `json:"pageProps"`
	}

	xeRate struct {
		Currency *string  `json:"currency"`
		Rate     *float64 `json:"rate"`
	}
)

func (x XEFetcher) url() string {
	if x.URL != "" {
		return x.URL
	}

	buildID := x.BuildID

	if buildID == "" {
		buildID = XEBuildID
	}

	return fmt.Sprintf(XEURLTemplate, buildID)
}

func (x XEFetcher) Fetch(month currency.Month) (currency.RateTable, error) {
	req, err := getData(x.Ctx, x.url())

	if err != nil {
		return currency.RateTable{}, err
	}

	q := req.URL.Query()
	q.Add("from", currency.BaseCurrency)
	q.Add("date", month.FirstDay().Format(dateLayout))

	req.URL.RawQuery = q.Encode()

	body, err := doRequest(x.Client, req)

	if err != nil {
		return currency.RateTable{}, err
	}

	var data xeResponse

	if err := json.Unmarshal(body, &data); err != nil {
		return currency.RateTable{}, err
	}

	if data.PageProps == nil || data.PageProps.HistoricRates == nil {
		return currency.RateTable{}, fmt.Errorf("%w: pageProps.historicRates is missing", ErrMalformedResponse)
	}

	rates := *data.PageProps.HistoricRates
	table := currency.RateTable{
		Month: month,
		Rates: make([]currency.Rate, 0, len(rates)),
	}

	for i, rate := range rates {
		if rate.Currency == nil || rate.Rate == nil {
			return currency.RateTable{}, fmt.Errorf("%w: historicRates[%d] has no currency or rate", ErrMalformedResponse, i)
		}

		table.Rates = append(table.Rates, currency.Rate{
			Symbol: currency.NormalizeSymbol(*rate.Currency),
			Rate:   *rate.Rate,
		})
	}

	return table, nil
}
