package storage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/malusev998/currency-history"
)

const DefaultJSONPath = "rates.json"

// jsonStorage writes the whole history as one JSON object. Keys are
// marshalled in sorted order, so equal histories produce equal files.
type jsonStorage struct {
	path string
}

func NewJSONStorage(config JSONConfig) (currency.Storage, error) {
	path := config.Path

	if path == "" {
		path = DefaultJSONPath
	}

	return jsonStorage{path: path}, nil
}

func (j jsonStorage) Store(history currency.History) error {
	if history == nil {
		history = currency.History{}
	}

	data, err := json.Marshal(history)

	if err != nil {
		return err
	}

	return os.WriteFile(j.path, data, 0o644)
}

func (j jsonStorage) Load() (currency.History, error) {
	data, err := os.ReadFile(j.path)

	if err != nil {
		return nil, err
	}

	history := make(currency.History)

	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}

	return history, nil
}

func (j jsonStorage) Path() string {
	return j.path
}

func (j jsonStorage) GetStorageProviderName() string {
	return string(JSON)
}

func (j jsonStorage) Migrate() error {
	return nil
}

func (j jsonStorage) Drop() error {
	if err := os.Remove(j.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

func (j jsonStorage) Close() error {
	return nil
}
