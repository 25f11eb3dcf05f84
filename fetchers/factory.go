package fetchers

import (
	"context"
	"net/http"

	"github.com/malusev998/currency-history"
)

type (
	BaseConfig struct {
		Ctx    context.Context
		Client *http.Client
		URL    string
	}
	XEConfig struct {
		BaseConfig
		BuildID string
	}
	ExchangeRatesAPIConfig struct {
		BaseConfig
		APIKey string
	}
)

func NewCurrencyFetcher(provider currency.Provider, config interface{}) (currency.Fetcher, error) {
	switch provider {
	case currency.XEProvider:
		c := config.(XEConfig)

		return XEFetcher{
			Ctx:     c.Ctx,
			Client:  c.Client,
			URL:     c.URL,
			BuildID: c.BuildID,
		}, nil
	case currency.ExchangeRatesAPIProvider:
		c := config.(ExchangeRatesAPIConfig)

		return ExchangeRatesAPIFetcher{
			Ctx:    c.Ctx,
			Client: c.Client,
			URL:    c.URL,
			APIKey: c.APIKey,
		}, nil
	}

	return nil, ErrFetcherNotFound
}
