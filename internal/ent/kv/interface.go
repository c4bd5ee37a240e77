package kv

// Ledger is a persistent key-value record of per-file outcomes. It replaces
// the archive-directory shuffle of the old uploader: a file recorded as
// uploaded is skipped by later runs.
type Ledger interface {
	// Open opens the underlying store.
	Open() error

	// Close closes the underlying store.
	Close() error

	// Get returns the value for a key, or "" when the key is absent.
	Get(key string) (string, error)

	// Set stores a value for a key.
	Set(key, value string) error
}
