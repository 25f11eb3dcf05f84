package currency

import (
	"time"

	"github.com/shopspring/decimal"
)

type (
	Service interface {
		Save() (Result, error)
	}

	Conversion interface {
		Rate(symbol string, date time.Time) (float64, error)
		ToBase(symbol string, value decimal.Decimal, date time.Time) (decimal.Decimal, error)
		Convert(from, to string, value decimal.Decimal, date time.Time) (decimal.Decimal, error)
	}
)
