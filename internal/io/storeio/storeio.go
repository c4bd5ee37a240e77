// Package storeio implements the reconciliation store over MySQL. All writes
// go through parameterized statements built from recon.Stmt; the generated
// insert id of the most recent insert is tracked per transaction so dependent
// writes can chain it.
package storeio

import (
	"context"
	"database/sql"
	"log/slog"

	_ "github.com/go-sql-driver/mysql"
	"github.com/springsdata/springsync/internal/ent/recon"
	"github.com/springsdata/springsync/pkg/config"
)

type storeio struct {
	resolver
	db  *sql.DB
	cfg config.Config
}

// New connects to MySQL, runs schema migrations and returns the store.
func New(cfg config.Config) (recon.Store, error) {
	db, err := sql.Open("mysql", dbURI(cfg))
	if err != nil {
		slog.Error("Cannot connect to database", "error", err)
		return nil, &recon.PersistenceError{Op: "open connection", Err: err}
	}
	// One file's transaction at a time; insert-id chaining is only defined
	// for an uninterrupted statement sequence on one connection.
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		slog.Error("Cannot reach database", "error", err)
		return nil, &recon.PersistenceError{Op: "ping", Err: err}
	}

	res := &storeio{db: db, cfg: cfg}
	res.resolver = resolver{q: db}

	if err = res.migrate(); err != nil {
		slog.Error("Cannot migrate database", "error", err)
		return nil, err
	}
	return res, nil
}

func (s *storeio) Begin(ctx context.Context) (recon.Tx, error) {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &recon.PersistenceError{Op: "begin transaction", Err: err}
	}
	return &tx{resolver: resolver{q: sqlTx}, tx: sqlTx}, nil
}

func (s *storeio) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &recon.PersistenceError{Op: "ping", Err: err}
	}
	return nil
}

func (s *storeio) Close() error {
	return s.db.Close()
}

type tx struct {
	resolver
	tx     *sql.Tx
	lastID int64
}

func (t *tx) Apply(ctx context.Context, st recon.Stmt) (int64, error) {
	if st.Empty() {
		return 0, nil
	}
	q, args := buildSQL(st, t.lastID)
	res, err := t.tx.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, &recon.PersistenceError{Op: "apply to " + st.Table, Err: err}
	}
	if st.Op == recon.OpInsert {
		id, err := res.LastInsertId()
		if err != nil {
			return 0, &recon.PersistenceError{Op: "insert id of " + st.Table, Err: err}
		}
		t.lastID = id
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &recon.PersistenceError{Op: "rows affected of " + st.Table, Err: err}
	}
	return n, nil
}

func (t *tx) LastInsertID() int64 {
	return t.lastID
}

func (t *tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return &recon.PersistenceError{Op: "commit", Err: err}
	}
	return nil
}

func (t *tx) Rollback() error {
	return t.tx.Rollback()
}
