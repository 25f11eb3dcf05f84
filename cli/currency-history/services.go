package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/malusev998/currency-history"
	"github.com/malusev998/currency-history/fetchers"
	"github.com/malusev998/currency-history/services"
	"github.com/malusev998/currency-history/storage"
)

func createStorage(config *Config, provider storage.Provider) (currency.Storage, error) {
	c, ok := config.StorageConfig[provider]

	if !ok {
		return nil, fmt.Errorf("storage %s does not exist", provider)
	}

	return storage.NewStorage(provider, c)
}

func createStorages(config *Config) ([]currency.Storage, error) {
	storages := make([]currency.Storage, 0, len(config.Storage))

	for _, s := range config.Storage {
		st, err := createStorage(config, s)

		if err != nil {
			_ = closeStorages(storages)()
			return nil, err
		}

		storages = append(storages, st)
	}

	return storages, nil
}

func closeStorages(storages []currency.Storage) func() error {
	return func() error {
		var firstErr error

		for _, st := range storages {
			if err := st.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}

		return firstErr
	}
}

func createCurrencyService(config *Config, logger *zap.Logger) (currency.Service, func() error, error) {
	c, ok := config.FetchersConfig[config.Fetcher]

	if !ok {
		return nil, nil, fmt.Errorf("fetcher %s does not exist", config.Fetcher)
	}

	fetcher, err := fetchers.NewCurrencyFetcher(config.Fetcher, c)

	if err != nil {
		return nil, nil, err
	}

	storages, err := createStorages(config)

	if err != nil {
		return nil, nil, err
	}

	return services.Service{
		Collector: services.Collector{
			Fetcher: fetcher,
			Start:   currency.StartMonth,
			Logger:  logger,
		},
		Storage: storages,
		Logger:  logger,
	}, closeStorages(storages), nil
}

func createConversionService(config *Config) (*services.ConversionService, func() error, error) {
	st, err := createStorage(config, config.ConversionStorage)

	if err != nil {
		return nil, nil, err
	}

	service, err := services.NewConversionService(st)

	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}

	return service, st.Close, nil
}
