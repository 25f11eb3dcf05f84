package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"

	"github.com/malusev998/currency-history"
	"github.com/malusev998/currency-history/fetchers"
	"github.com/malusev998/currency-history/storage"
)

type (
	FetchersConfig map[currency.Provider]interface{}
	StorageConfig  map[storage.Provider]interface{}
	Config         struct {
		Fetcher           currency.Provider
		Storage           []storage.Provider
		ConversionStorage storage.Provider
		FetchersConfig    FetchersConfig
		StorageConfig     StorageConfig
	}
)

func setDefaults() {
	viper.SetDefault("fetcher", string(currency.XEProvider))
	viper.SetDefault("fetchers.xe.buildid", fetchers.XEBuildID)
	viper.SetDefault("fetchers.exchangeratesapi.url", fetchers.ExchangeRatesAPIURL)
	viper.SetDefault("http.timeout", "0s")
	viper.SetDefault("storage", []string{string(storage.JSON)})
	viper.SetDefault("convert.storage", string(storage.JSON))
	viper.SetDefault("migrate", false)
	viper.SetDefault("databases.json.path", storage.DefaultJSONPath)
	viper.SetDefault("databases.mysql.net", "tcp")
	viper.SetDefault("databases.mysql.table", "rates")
	viper.SetDefault("databases.mongodb.db", "currency_history")
	viper.SetDefault("databases.mongodb.collection", "rates")
	viper.SetDefault("databases.badger.path", "./data")
	viper.SetDefault("databases.redis.addr", "redis://localhost:6379/0")
	viper.SetDefault("databases.redis.prefix", storage.DefaultRedisPrefix)
}

// mysqlDSN reads every key on its own, so CURRENCY_HISTORY_DATABASES_MYSQL_*
// variables override the file.
func mysqlDSN() string {
	dsn := mysql.NewConfig()
	dsn.User = viper.GetString("databases.mysql.user")
	dsn.Passwd = viper.GetString("databases.mysql.password")
	dsn.Net = viper.GetString("databases.mysql.net")
	dsn.Addr = viper.GetString("databases.mysql.addr")
	dsn.DBName = viper.GetString("databases.mysql.db")

	return dsn.FormatDSN()
}

func getConfig(ctx context.Context) (*Config, error) {
	fetcher, err := currency.ParseProvider(viper.GetString("fetcher"))

	if err != nil {
		return nil, err
	}

	storages, err := currency.ParseEach(viper.GetStringSlice("storage"), storage.ParseProvider)

	if err != nil {
		return nil, err
	}

	conversionStorage, err := storage.ParseProvider(viper.GetString("convert.storage"))

	if err != nil {
		return nil, fmt.Errorf("error while parsing convert.storage: %w", err)
	}

	client := &http.Client{
		Timeout: viper.GetDuration("http.timeout"),
	}

	storageBaseConfig := storage.BaseConfig{
		Ctx:     ctx,
		Migrate: viper.GetBool("migrate"),
	}

	return &Config{
		Fetcher:           fetcher,
		Storage:           storages,
		ConversionStorage: conversionStorage,
		StorageConfig: StorageConfig{
			storage.JSON: storage.JSONConfig{
				BaseConfig: storageBaseConfig,
				Path:       viper.GetString("databases.json.path"),
			},
			storage.MySQL: storage.MySQLConfig{
				BaseConfig:       storageBaseConfig,
				ConnectionString: mysqlDSN(),
				TableName:        viper.GetString("databases.mysql.table"),
				IDGenerator:      nil,
			},
			storage.MongoDB: storage.MongoDBConfig{
				BaseConfig:       storageBaseConfig,
				ConnectionString: viper.GetString("databases.mongodb.uri"),
				Database:         viper.GetString("databases.mongodb.db"),
				Collection:       viper.GetString("databases.mongodb.collection"),
			},
			storage.Badger: storage.BadgerConfig{
				BaseConfig: storageBaseConfig,
				Path:       viper.GetString("databases.badger.path"),
			},
			storage.Redis: storage.RedisConfig{
				BaseConfig: storageBaseConfig,
				Addr:       viper.GetString("databases.redis.addr"),
				Prefix:     viper.GetString("databases.redis.prefix"),
			},
		},
		FetchersConfig: FetchersConfig{
			currency.XEProvider: fetchers.XEConfig{
				BaseConfig: fetchers.BaseConfig{
					Ctx:    ctx,
					Client: client,
					URL:    viper.GetString("fetchers.xe.url"),
				},
				BuildID: viper.GetString("fetchers.xe.buildid"),
			},
			currency.ExchangeRatesAPIProvider: fetchers.ExchangeRatesAPIConfig{
				BaseConfig: fetchers.BaseConfig{
					Ctx:    ctx,
					Client: client,
					URL:    viper.GetString("fetchers.exchangeratesapi.url"),
				},
				APIKey: viper.GetString("fetchers.exchangeratesapi.apikey"),
			},
		},
	}, nil
}
