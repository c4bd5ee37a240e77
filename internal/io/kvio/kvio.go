package kvio

import (
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v2"
	"github.com/gnames/gnsys"
	"github.com/springsdata/springsync/internal/ent/kv"
)

type kvio struct {
	dir string
	kv  *badger.DB
}

// New returns a new instance of kvio. Unlike a scratch cache the ledger
// survives between runs, so the directory is created but never cleaned.
func New(dir string) (kv.Ledger, error) {
	res := kvio{
		dir: dir,
	}

	err := gnsys.MakeDir(dir)
	if err != nil {
		slog.Error("Cannot create directory", "error", err, "dir", dir)
		return nil, err
	}

	return &res, nil
}

// Open opens the ledger store.
func (k *kvio) Open() error {
	if k.kv != nil {
		slog.Warn("ledger store is not nil")
	}
	options := badger.DefaultOptions(k.dir)
	options.Logger = nil

	bdb, err := badger.Open(options)
	if err != nil {
		return err
	}
	k.kv = bdb
	return nil
}

// Close closes the ledger store.
func (k *kvio) Close() error {
	if k.kv == nil {
		slog.Warn("ledger store is nil")
		return nil
	}
	err := k.kv.Close()
	k.kv = nil
	return err
}

// Get returns the value for a key, or an empty string for an absent key.
func (k *kvio) Get(key string) (string, error) {
	if k.kv == nil {
		return "", errors.New("ledger store is not open")
	}
	txn := k.kv.NewTransaction(false)
	defer txn.Discard()
	item, err := txn.Get([]byte(key))
	if err == badger.ErrKeyNotFound {
		return "", nil
	} else if err != nil {
		return "", err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return "", err
	}
	return string(val), nil
}

// Set stores a key-value pair.
func (k *kvio) Set(key, value string) error {
	if k.kv == nil {
		return errors.New("ledger store is not open")
	}
	txn := k.kv.NewTransaction(true)
	defer txn.Discard()
	if err := txn.Set([]byte(key), []byte(value)); err != nil {
		return err
	}
	return txn.Commit()
}
