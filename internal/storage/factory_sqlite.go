//go:build sqlite

package storage

func newSQLiteStore(path string) (Store, error) {
	return NewSQLiteStore(path), nil
}

// DefaultStoreKind reports the backend used when the caller does not pick one.
func DefaultStoreKind() string {
	return "sqlite"
}
