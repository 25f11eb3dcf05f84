package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/malusev998/currency-history"
)

const idLength = 16

var (
	ErrNotEnoughBytesInGenerator = errors.New("id generator returned less than 16 bytes")
)

type (
	IDGenerator interface {
		Generate() []byte
	}

	uuidGenerator struct{}

	sqlStorage struct {
		ctx         context.Context
		db          *sql.DB
		idGenerator IDGenerator
		tableName   string
	}
)

func (uuidGenerator) Generate() []byte {
	id := uuid.New()

	return id[:]
}

func NewMySQLStorage(config MySQLConfig) (currency.Storage, error) {
	db, err := sql.Open("mysql", config.ConnectionString)

	if err != nil {
		return nil, err
	}

	return NewSQLStorage(config.Ctx, db, config.IDGenerator, config.TableName, config.Migrate)
}

func NewSQLStorage(ctx context.Context, db *sql.DB, idGenerator IDGenerator, tableName string, migrate bool) (currency.Storage, error) {
	if idGenerator == nil {
		idGenerator = uuidGenerator{}
	}

	if tableName == "" {
		tableName = "rates"
	}

	storage := sqlStorage{
		ctx:         contextOrBackground(ctx),
		db:          db,
		idGenerator: idGenerator,
		tableName:   tableName,
	}

	if migrate {
		if err := storage.Migrate(); err != nil {
			return nil, err
		}
	}

	return storage, nil
}

// Store replaces the table content with the given history.
func (s sqlStorage) Store(history currency.History) error {
	tx, err := s.db.BeginTx(s.ctx, nil)

	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(s.ctx, fmt.Sprintf("DELETE FROM %s;", s.tableName)); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(s.ctx, fmt.Sprintf("INSERT INTO %s(id, symbol, month_index, rate) VALUES (?,?,?,?);", s.tableName))

	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, symbol := range history.Symbols() {
		for i, rate := range history[symbol] {
			id := s.idGenerator.Generate()

			if len(id) < idLength {
				_ = stmt.Close()
				_ = tx.Rollback()
				return ErrNotEnoughBytesInGenerator
			}

			if _, err := stmt.ExecContext(s.ctx, id[:idLength], symbol, int64(i), rate); err != nil {
				_ = stmt.Close()
				_ = tx.Rollback()
				return err
			}
		}
	}

	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (s sqlStorage) Load() (currency.History, error) {
	rows, err := s.db.QueryContext(s.ctx, fmt.Sprintf("SELECT symbol, month_index, rate FROM %s ORDER BY symbol, month_index;", s.tableName))

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	history := make(currency.History)

	for rows.Next() {
		var symbol string
		var index int64
		var rate float64

		if err := rows.Scan(&symbol, &index, &rate); err != nil {
			return nil, err
		}

		if int64(len(history[symbol])) != index {
			return nil, fmt.Errorf("rates for %s are not contiguous at month index %d", symbol, index)
		}

		history.Append(symbol, rate)
	}

	return history, rows.Err()
}

func (s sqlStorage) GetStorageProviderName() string {
	return string(MySQL)
}

func (s sqlStorage) Migrate() error {
	_, err := s.db.ExecContext(s.ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s(
		id BINARY(16) PRIMARY KEY,
		symbol VARCHAR(16) NOT NULL,
		month_index INT UNSIGNED NOT NULL,
		rate DOUBLE NOT NULL,
		UNIQUE KEY symbol_month (symbol, month_index)
	);`, s.tableName))

	return err
}

func (s sqlStorage) Drop() error {
	_, err := s.db.ExecContext(s.ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s;", s.tableName))

	return err
}

func (s sqlStorage) Close() error {
	return s.db.Close()
}
