package database

import (
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// OpenBadger opens (creating if needed) an embedded badger store at path.
func OpenBadger(path string) (*badger.DB, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("create badger dir: %w", err)
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	return db, nil
}
