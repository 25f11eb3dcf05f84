package fetchers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/malusev998/currency-history"
	"github.com/malusev998/currency-history/fetchers"
)

type exchangeRatesHandler struct{}

func (h exchangeRatesHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	if request.URL.Path == "/2000-01-01" && request.URL.Query().Get("base") == "USD" {
		_, _ = writer.Write([]byte(`{"base": "USD", "date": "2000-01-01", "rates": {"RSD": 98.1, "EUR": 0.98}}`))
		return
	}

	if request.URL.Path == "/2000-02-01" {
		_, _ = writer.Write([]byte(`{"base": "USD", "date": "2000-02-01"}`))
		return
	}

	writer.WriteHeader(http.StatusInternalServerError)
}

func TestExchangeRatesAPIFetcher_Fetch(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(exchangeRatesHandler{})
	defer server.Close()

	fetcher, err := fetchers.NewCurrencyFetcher(currency.ExchangeRatesAPIProvider, fetchers.ExchangeRatesAPIConfig{
		BaseConfig: fetchers.BaseConfig{
			Ctx: context.Background(),
			URL: server.URL + "/",
		},
	})
	require.Nil(t, err)

	t.Run("SortedRates", func(t *testing.T) {
		asserts := require.New(t)
		table, err := fetcher.Fetch(currency.StartMonth)

		asserts.Nil(err)
		asserts.Equal([]currency.Rate{
			{Symbol: "eur", Rate: 0.98},
			{Symbol: "rsd", Rate: 98.1},
		}, table.Rates)
	})

	t.Run("MissingRates", func(t *testing.T) {
		asserts := require.New(t)
		_, err := fetcher.Fetch(currency.Month{Year: 2000, Month: time.February})

		asserts.True(errors.Is(err, fetchers.ErrMalformedResponse))
	})

	t.Run("ServerError", func(t *testing.T) {
		asserts := require.New(t)
		_, err := fetcher.Fetch(currency.Month{Year: 2000, Month: time.March})

		asserts.True(errors.Is(err, fetchers.ErrServer))
	})
}

func TestNewCurrencyFetcher(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	fetcher, err := fetchers.NewCurrencyFetcher(currency.XEProvider, fetchers.XEConfig{BuildID: "build"})
	asserts.Nil(err)
	asserts.IsType(fetchers.XEFetcher{}, fetcher)

	fetcher, err = fetchers.NewCurrencyFetcher(currency.EmptyProvider, nil)
	asserts.Nil(fetcher)
	asserts.True(errors.Is(err, fetchers.ErrFetcherNotFound))
}
