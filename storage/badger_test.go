package storage_test

import (
	"testing"

	"github.com/bxcodec/faker/v3"
	"github.com/stretchr/testify/require"

	"github.com/malusev998/currency-history"
	"github.com/malusev998/currency-history/storage"
)

func TestBadgerStorage(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	st, err := storage.NewStorage(storage.Badger, storage.BadgerConfig{InMemory: true})
	asserts.Nil(err)
	defer st.Close()

	history := currency.History{}

	for i := 0; i < 10; i++ {
		symbol := currency.NormalizeSymbol(faker.Currency())

		if _, ok := history[symbol]; ok {
			continue
		}

		for month := 0; month < 12; month++ {
			history.Append(symbol, float64(month)+0.5)
		}
	}

	asserts.Nil(st.Store(history))

	loaded, err := st.Load()
	asserts.Nil(err)
	asserts.Equal(history, loaded)

	asserts.Nil(st.Store(currency.History{"eur": {0.9}}))

	loaded, err = st.Load()
	asserts.Nil(err)
	asserts.Equal(currency.History{"eur": {0.9}}, loaded)

	asserts.Nil(st.Drop())

	loaded, err = st.Load()
	asserts.Nil(err)
	asserts.Empty(loaded)
}
