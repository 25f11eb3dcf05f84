package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/malusev998/currency-history"
)

const DefaultRedisPrefix = "currency-history:"

type redisStorage struct {
	ctx    context.Context
	client *redis.Client
	prefix string
}

func NewRedisStorage(config RedisConfig) (currency.Storage, error) {
	options, err := redis.ParseURL(config.Addr)

	if err != nil {
		return nil, fmt.Errorf("can't parse url for redis: %w", err)
	}

	ctx := contextOrBackground(config.Ctx)
	client := redis.NewClient(options)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := config.Prefix

	if prefix == "" {
		prefix = DefaultRedisPrefix
	}

	return redisStorage{
		ctx:    ctx,
		client: client,
		prefix: prefix,
	}, nil
}

func (r redisStorage) symbolsKey() string {
	return r.prefix + "symbols"
}

func (r redisStorage) ratesKey(symbol string) string {
	return r.prefix + "rates:" + symbol
}

// keys lists every key currently owned by the storage.
func (r redisStorage) keys() ([]string, error) {
	symbols, err := r.client.SMembers(r.ctx, r.symbolsKey()).Result()

	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(symbols)+1)
	keys = append(keys, r.symbolsKey())

	for _, symbol := range symbols {
		keys = append(keys, r.ratesKey(symbol))
	}

	return keys, nil
}

func (r redisStorage) Store(history currency.History) error {
	keys, err := r.keys()

	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(r.ctx, keys...)

	for _, symbol := range history.Symbols() {
		data, err := json.Marshal(history[symbol])

		if err != nil {
			return err
		}

		pipe.Set(r.ctx, r.ratesKey(symbol), data, 0)
		pipe.SAdd(r.ctx, r.symbolsKey(), symbol)
	}

	_, err = pipe.Exec(r.ctx)

	return err
}

func (r redisStorage) Load() (currency.History, error) {
	symbols, err := r.client.SMembers(r.ctx, r.symbolsKey()).Result()

	if err != nil {
		return nil, err
	}

	history := make(currency.History, len(symbols))

	for _, symbol := range symbols {
		data, err := r.client.Get(r.ctx, r.ratesKey(symbol)).Bytes()

		if err != nil {
			return nil, fmt.Errorf("loading rates for %s: %w", symbol, err)
		}

		var rates []float64

		if err := json.Unmarshal(data, &rates); err != nil {
			return nil, err
		}

		history[symbol] = rates
	}

	return history, nil
}

func (r redisStorage) GetStorageProviderName() string {
	return string(Redis)
}

func (r redisStorage) Migrate() error {
	return nil
}

func (r redisStorage) Drop() error {
	keys, err := r.keys()

	if err != nil {
		return err
	}

	return r.client.Del(r.ctx, keys...).Err()
}

func (r redisStorage) Close() error {
	return r.client.Close()
}
