package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/malusev998/currency-history"
	"github.com/malusev998/currency-history/storage"
)

type (
	MockFetcher struct {
		mock.Mock
	}

	MockStorage struct {
		mock.Mock
	}

	// constantFetcher returns the same table for every month.
	constantFetcher struct {
		rates []currency.Rate
	}
)

func (m *MockFetcher) Fetch(month currency.Month) (currency.RateTable, error) {
	args := m.Called(month)

	return args.Get(0).(currency.RateTable), args.Error(1)
}

func (m *MockStorage) Store(history currency.History) error {
	args := m.Called(history)

	return args.Error(0)
}

func (m *MockStorage) Load() (currency.History, error) {
	args := m.Called()
	return1 := args.Get(0)

	if return1 == nil {
		return nil, args.Error(1)
	}

	return return1.(currency.History), args.Error(1)
}

func (m *MockStorage) GetStorageProviderName() string {
	return "MockStorage"
}

func (m *MockStorage) Migrate() error {
	return nil
}

func (m *MockStorage) Drop() error {
	return nil
}

func (m *MockStorage) Close() error {
	return nil
}

func (c constantFetcher) Fetch(month currency.Month) (currency.RateTable, error) {
	return currency.RateTable{Month: month, Rates: c.rates}, nil
}

func month(m time.Month) currency.Month {
	return currency.Month{Year: 2000, Month: m}
}

func table(m time.Month, rates ...currency.Rate) currency.RateTable {
	return currency.RateTable{Month: month(m), Rates: rates}
}

func fixedNow(year int, m time.Month) func() time.Time {
	return func() time.Time {
		return time.Date(year, m, 15, 12, 0, 0, 0, time.UTC)
	}
}

func messages(logs *observer.ObservedLogs) []string {
	result := make([]string, 0, logs.Len())

	for _, entry := range logs.All() {
		result = append(result, entry.Message)
	}

	return result
}

func TestService_Save(t *testing.T) {
	t.Parallel()

	t.Run("RemovesIncompleteCurrencies", func(t *testing.T) {
		asserts := require.New(t)
		core, logs := observer.New(zap.InfoLevel)
		logger := zap.New(core)
		fetcher := &MockFetcher{}
		storage := &MockStorage{}

		fetcher.On("Fetch", month(time.January)).Return(table(time.January, currency.Rate{Symbol: "ABC", Rate: 1.1}), nil)
		fetcher.On("Fetch", month(time.February)).Return(table(time.February, currency.Rate{Symbol: "abc", Rate: 1.2}, currency.Rate{Symbol: "xyz", Rate: 5}), nil)
		fetcher.On("Fetch", month(time.March)).Return(table(time.March, currency.Rate{Symbol: "abc", Rate: 1.3}), nil)
		storage.On("Store", currency.History{"abc": {1.1, 1.2, 1.3}}).Return(nil)

		service := Service{
			Collector: Collector{Fetcher: fetcher, Now: fixedNow(2000, time.March), Logger: logger},
			Storage:   []currency.Storage{storage},
			Logger:    logger,
		}

		result, err := service.Save()

		asserts.Nil(err)
		asserts.Equal(3, result.TotalMonths)
		asserts.Equal(currency.StartMonth, result.Start)
		asserts.Equal(currency.History{"abc": {1.1, 1.2, 1.3}}, result.Rates)
		asserts.Equal([]string{"xyz"}, result.Removed)
		asserts.Equal([]string{
			"month: 2000-01",
			"month: 2000-02",
			"month: 2000-03",
			"removed xyz, didnt exist since year 2000",
		}, messages(logs))
		fetcher.AssertExpectations(t)
		storage.AssertExpectations(t)
	})

	t.Run("EmptyMonthStillCounts", func(t *testing.T) {
		asserts := require.New(t)
		fetcher := &MockFetcher{}
		storage := &MockStorage{}

		fetcher.On("Fetch", month(time.January)).Return(table(time.January, currency.Rate{Symbol: "abc", Rate: 1.1}), nil)
		fetcher.On("Fetch", month(time.February)).Return(table(time.February), nil)
		fetcher.On("Fetch", month(time.March)).Return(table(time.March, currency.Rate{Symbol: "abc", Rate: 1.3}), nil)
		storage.On("Store", currency.History{}).Return(nil)

		service := Service{
			Collector: Collector{Fetcher: fetcher, Now: fixedNow(2000, time.March)},
			Storage:   []currency.Storage{storage},
		}

		result, err := service.Save()

		asserts.Nil(err)
		asserts.Equal(3, result.TotalMonths)
		asserts.Empty(result.Rates)
		asserts.Equal([]string{"abc"}, result.Removed)
	})

	t.Run("FetchReturnsError", func(t *testing.T) {
		asserts := require.New(t)
		fetcher := &MockFetcher{}
		storage := &MockStorage{}

		fetcher.On("Fetch", month(time.January)).Return(table(time.January, currency.Rate{Symbol: "abc", Rate: 1.1}), nil)
		fetcher.On("Fetch", month(time.February)).Return(currency.RateTable{}, errors.New("connection reset"))

		service := Service{
			Collector: Collector{Fetcher: fetcher, Now: fixedNow(2000, time.March)},
			Storage:   []currency.Storage{storage},
		}

		result, err := service.Save()

		asserts.Error(err)
		asserts.Equal("fetching 2000-02: connection reset", err.Error())
		asserts.Nil(result.Rates)
		fetcher.AssertNotCalled(t, "Fetch", month(time.March))
		storage.AssertNotCalled(t, "Store", mock.Anything)
	})

	t.Run("StorageReturnsError", func(t *testing.T) {
		asserts := require.New(t)
		storage := &MockStorage{}
		storage.On("Store", mock.Anything).Return(errors.New("disk full"))

		service := Service{
			Collector: Collector{
				Fetcher: constantFetcher{rates: []currency.Rate{{Symbol: "abc", Rate: 1}}},
				Now:     fixedNow(2000, time.February),
			},
			Storage: []currency.Storage{storage},
		}

		_, err := service.Save()

		asserts.Error(err)
		asserts.Contains(err.Error(), "MockStorage")
	})

	t.Run("StorageFailureWritesNothing", func(t *testing.T) {
		asserts := require.New(t)
		path := filepath.Join(t.TempDir(), "rates.json")
		jsonStorage, err := storage.NewJSONStorage(storage.JSONConfig{Path: path})
		asserts.Nil(err)

		database := &MockStorage{}
		database.On("Store", currency.History{"abc": {1, 1}}).Return(errors.New("mysql down"))

		service := Service{
			Collector: Collector{
				Fetcher: constantFetcher{rates: []currency.Rate{{Symbol: "abc", Rate: 1}}},
				Now:     fixedNow(2000, time.February),
			},
			Storage: []currency.Storage{jsonStorage, database},
		}

		_, err = service.Save()

		asserts.Error(err)
		asserts.Equal("storing rates in MockStorage: mysql down", err.Error())
		database.AssertExpectations(t)

		_, err = os.Stat(path)
		asserts.True(os.IsNotExist(err))
	})

	t.Run("FileStorageStoredLast", func(t *testing.T) {
		asserts := require.New(t)
		path := filepath.Join(t.TempDir(), "rates.json")
		jsonStorage, err := storage.NewJSONStorage(storage.JSONConfig{Path: path})
		asserts.Nil(err)

		database := &MockStorage{}
		database.On("Store", currency.History{"abc": {1}}).Return(nil)

		service := Service{
			Collector: Collector{
				Fetcher: constantFetcher{rates: []currency.Rate{{Symbol: "abc", Rate: 1}}},
				Now:     fixedNow(2000, time.January),
			},
			Storage: []currency.Storage{jsonStorage, database},
		}

		_, err = service.Save()

		asserts.Nil(err)
		database.AssertExpectations(t)

		data, err := os.ReadFile(path)
		asserts.Nil(err)
		asserts.Equal(`{"abc":[1]}`, string(data))
	})
}

func TestCollector_TotalMonths(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	collector := Collector{
		Fetcher: constantFetcher{rates: []currency.Rate{{Symbol: "EUR", Rate: 0.9}, {Symbol: "jpy", Rate: 110}}},
		Now:     fixedNow(2024, time.March),
	}

	collection, err := collector.Collect()

	asserts.Nil(err)
	asserts.Equal(291, collection.TotalMonths)
	asserts.Equal(currency.MonthsBetween(currency.StartMonth, currency.Month{Year: 2024, Month: time.March}), collection.TotalMonths)

	rates, removed := FilterComplete(collection, nil)

	asserts.Empty(removed)
	asserts.Len(rates, 2)

	for _, symbol := range rates.Symbols() {
		asserts.Len(rates[symbol], collection.TotalMonths)
	}
}

func TestCollector_CurrentMonthIncluded(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	fetcher := &MockFetcher{}

	fetcher.On("Fetch", mock.AnythingOfType("currency.Month")).Return(currency.RateTable{}, nil)

	collector := Collector{
		Fetcher: fetcher,
		Start:   currency.Month{Year: 2023, Month: time.November},
		Now:     func() time.Time { return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC) },
	}

	collection, err := collector.Collect()

	asserts.Nil(err)
	asserts.Equal(3, collection.TotalMonths)
	fetcher.AssertCalled(t, "Fetch", currency.Month{Year: 2023, Month: time.December})
	fetcher.AssertCalled(t, "Fetch", currency.Month{Year: 2024, Month: time.January})
}

func TestFilterComplete(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	rates, removed := FilterComplete(currency.Collection{
		Start:       currency.StartMonth,
		TotalMonths: 2,
		Rates: currency.History{
			"eur": {1, 2},
			"rsd": {1},
			"jpy": {3, 4},
			"xyz": {},
		},
	}, nil)

	asserts.Equal(currency.History{"eur": {1, 2}, "jpy": {3, 4}}, rates)
	asserts.Equal([]string{"rsd", "xyz"}, removed)

	for _, symbol := range rates.Symbols() {
		asserts.NotEmpty(rates[symbol])
	}
}
