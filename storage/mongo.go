package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/malusev998/currency-history"
)

type (
	mongoStorage struct {
		ctx        context.Context
		client     *mongo.Client
		collection *mongo.Collection
	}

	mongoDocument struct {
		Symbol string    `bson:"symbol"`
		Start  string    `bson:"start"`
		Rates  []float64 `bson:"rates"`
	}
)

func NewMongoStorage(config MongoDBConfig) (currency.Storage, error) {
	ctx := contextOrBackground(config.Ctx)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.ConnectionString))

	if err != nil {
		return nil, err
	}

	storage := mongoStorage{
		ctx:        ctx,
		client:     client,
		collection: client.Database(config.Database).Collection(config.Collection),
	}

	if config.Migrate {
		if err := storage.Migrate(); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
	}

	return storage, nil
}

func (m mongoStorage) Store(history currency.History) error {
	if _, err := m.collection.DeleteMany(m.ctx, bson.M{}); err != nil {
		return err
	}

	if len(history) == 0 {
		return nil
	}

	documents := make([]interface{}, 0, len(history))

	for _, symbol := range history.Symbols() {
		documents = append(documents, mongoDocument{
			Symbol: symbol,
			Start:  currency.StartMonth.String(),
			Rates:  history[symbol],
		})
	}

	_, err := m.collection.InsertMany(m.ctx, documents)

	return err
}

func (m mongoStorage) Load() (currency.History, error) {
	cursor, err := m.collection.Find(m.ctx, bson.M{})

	if err != nil {
		return nil, err
	}

	defer cursor.Close(m.ctx)

	history := make(currency.History)

	for cursor.Next(m.ctx) {
		var document mongoDocument

		if err := cursor.Decode(&document); err != nil {
			return nil, err
		}

		history[currency.NormalizeSymbol(document.Symbol)] = document.Rates
	}

	return history, cursor.Err()
}

func (m mongoStorage) GetStorageProviderName() string {
	return string(MongoDB)
}

func (m mongoStorage) Migrate() error {
	_, err := m.collection.Indexes().CreateOne(m.ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "symbol", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return err
}

func (m mongoStorage) Drop() error {
	return m.collection.Drop(m.ctx)
}

func (m mongoStorage) Close() error {
	return m.client.Disconnect(m.ctx)
}
