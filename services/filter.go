package services

import (
	"go.uber.org/zap"

	"github.com/malusev998/currency-history"
)

// FilterComplete removes every symbol that misses at least one collected
// month, so index i of each retained series refers to the same month.
func FilterComplete(collection currency.Collection, logger *zap.Logger) (currency.History, []string) {
	if logger == nil {
		logger = zap.NewNop()
	}

	sugar := logger.Sugar()
	removed := make([]string, 0)

	for _, symbol := range collection.Rates.Symbols() {
		if len(collection.Rates[symbol]) == collection.TotalMonths {
			continue
		}

		delete(collection.Rates, symbol)
		removed = append(removed, symbol)

		sugar.Infof("removed %s, didnt exist since year %d", symbol, collection.Start.Year)
	}

	return collection.Rates, removed
}
