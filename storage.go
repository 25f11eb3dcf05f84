package currency

type Storage interface {
	Store(History) error
	Load() (History, error)
	GetStorageProviderName() string
	Migrate() error
	Drop() error
	Close() error
}

// FileStorage writes straight to a file on disk. A written file cannot be
// rolled back, so it is stored only after every other storage succeeded.
type FileStorage interface {
	Storage
	Path() string
}
