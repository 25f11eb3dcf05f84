package storage

import (
	"encoding/json"
	"strings"

	"github.com/dgraph-io/badger/v3"

	"github.com/malusev998/currency-history"
)

const badgerPrefix = "rates:"

type badgerStorage struct {
	db *badger.DB
}

func NewBadgerStorage(config BadgerConfig) (currency.Storage, error) {
	options := badger.DefaultOptions(config.Path)

	if config.InMemory {
		options = badger.DefaultOptions("").WithInMemory(true)
	}

	options.Logger = nil

	db, err := badger.Open(options)

	if err != nil {
		return nil, err
	}

	return NewBadgerStorageFromDB(db), nil
}

func NewBadgerStorageFromDB(db *badger.DB) currency.Storage {
	return badgerStorage{db: db}
}

func (b badgerStorage) Store(history currency.History) error {
	if err := b.db.DropPrefix([]byte(badgerPrefix)); err != nil {
		return err
	}

	return b.db.Update(func(txn *badger.Txn) error {
		for _, symbol := range history.Symbols() {
			data, err := json.Marshal(history[symbol])

			if err != nil {
				return err
			}

			if err := txn.Set([]byte(badgerPrefix+symbol), data); err != nil {
				return err
			}
		}

		return nil
	})
}

func (b badgerStorage) Load() (currency.History, error) {
	history := make(currency.History)
	prefix := []byte(badgerPrefix)

	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			symbol := strings.TrimPrefix(string(item.Key()), badgerPrefix)

			err := item.Value(func(val []byte) error {
				var rates []float64

				if err := json.Unmarshal(val, &rates); err != nil {
					return err
				}

				history[symbol] = rates

				return nil
			})

			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return history, nil
}

func (b badgerStorage) GetStorageProviderName() string {
	return string(Badger)
}

func (b badgerStorage) Migrate() error {
	return nil
}

func (b badgerStorage) Drop() error {
	return b.db.DropAll()
}

func (b badgerStorage) Close() error {
	return b.db.Close()
}
