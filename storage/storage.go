package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/malusev998/currency-history"
)

type (
	Provider   string
	BaseConfig struct {
		Ctx     context.Context
		Migrate bool
	}
	JSONConfig struct {
		BaseConfig
		Path string
	}
	MySQLConfig struct {
		BaseConfig
		ConnectionString string
		TableName        string
		IDGenerator      IDGenerator
	}
	MongoDBConfig struct {
		BaseConfig
		ConnectionString string
		Database         string
		Collection       string
	}
	BadgerConfig struct {
		BaseConfig
		Path     string
		InMemory bool
	}
	RedisConfig struct {
		BaseConfig
		Addr   string
		Prefix string
	}
)

const (
	JSON    Provider = "json"
	MySQL   Provider = "mysql"
	MongoDB Provider = "mongodb"
	Badger  Provider = "badger"
	Redis   Provider = "redis"
)

var (
	ErrStorageNotFound = errors.New("storage is not found")
)

// ParseProvider accepts a storage name in any letter case.
func ParseProvider(name string) (Provider, error) {
	provider := Provider(strings.ToLower(name))

	switch provider {
	case JSON, MySQL, MongoDB, Badger, Redis:
		return provider, nil
	}

	return "", fmt.Errorf("%w: %q", ErrStorageNotFound, name)
}

func NewStorage(provider Provider, config interface{}) (currency.Storage, error) {
	switch provider {
	case JSON:
		return NewJSONStorage(config.(JSONConfig))
	case MySQL:
		return NewMySQLStorage(config.(MySQLConfig))
	case MongoDB:
		return NewMongoStorage(config.(MongoDBConfig))
	case Badger:
		return NewBadgerStorage(config.(BadgerConfig))
	case Redis:
		return NewRedisStorage(config.(RedisConfig))
	}

	return nil, ErrStorageNotFound
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}

	return ctx
}
