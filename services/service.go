package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/malusev998/currency-history"
)

type Service struct {
	Collector Collector
	Storage   []currency.Storage
	Logger    *zap.Logger
}

func (s Service) Save() (currency.Result, error) {
	logger := s.Logger

	if logger == nil {
		logger = zap.NewNop()
	}

	collection, err := s.Collector.Collect()

	if err != nil {
		return currency.Result{}, err
	}

	rates, removed := FilterComplete(collection, logger)
	collection.Rates = rates

	for _, storage := range storeOrder(s.Storage) {
		if err := storage.Store(rates); err != nil {
			return currency.Result{}, fmt.Errorf("storing rates in %s: %w", storage.GetStorageProviderName(), err)
		}

		logger.Debug("rates stored",
			zap.String("storage", storage.GetStorageProviderName()),
			zap.Int("currencies", len(rates)),
		)
	}

	return currency.Result{
		Collection: collection,
		Removed:    removed,
	}, nil
}

// storeOrder moves file storages behind the others, so a failing database
// leaves no file written.
func storeOrder(storages []currency.Storage) []currency.Storage {
	ordered := make([]currency.Storage, 0, len(storages))
	files := make([]currency.Storage, 0, len(storages))

	for _, storage := range storages {
		if _, ok := storage.(currency.FileStorage); ok {
			files = append(files, storage)
			continue
		}

		ordered = append(ordered, storage)
	}

	return append(ordered, files...)
}
