package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/malusev998/currency-history"
)

// Collector walks every month from Start through the current month and
// accumulates the fetched rates per symbol.
type Collector struct {
	Fetcher currency.Fetcher
	Start   currency.Month
	Now     func() time.Time
	Logger  *zap.Logger
}

func (c Collector) start() currency.Month {
	if c.Start == (currency.Month{}) {
		return currency.StartMonth
	}

	return c.Start
}

func (c Collector) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}

	return c.Now()
}

func (c Collector) Collect() (currency.Collection, error) {
	logger := c.Logger

	if logger == nil {
		logger = zap.NewNop()
	}

	sugar := logger.Sugar()
	now := c.now()
	month := c.start()

	collection := currency.Collection{
		Start: month,
		Rates: make(currency.History),
	}

	for month.Year < now.Year() || (month.Year == now.Year() && month.Month <= now.Month()) {
		sugar.Infof("month: %s", month)

		table, err := c.Fetcher.Fetch(month)

		if err != nil {
			return currency.Collection{}, fmt.Errorf("fetching %s: %w", month, err)
		}

		collection.TotalMonths++

		for _, rate := range table.Rates {
			collection.Rates.Append(rate.Symbol, rate.Rate)
		}

		logger.Debug("month collected",
			zap.Stringer("month", month),
			zap.Int("rates", len(table.Rates)),
		)

		month = month.Next()
	}

	return collection, nil
}
