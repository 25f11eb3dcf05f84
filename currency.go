package currency

type (
	Fetcher interface {
		Fetch(month Month) (RateTable, error)
	}
)
