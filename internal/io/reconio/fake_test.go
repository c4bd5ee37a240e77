package reconio_test

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/springsdata/springsync/internal/ent/recon"
)

// fakeRow is one stored row; "id" holds the generated identifier.
type fakeRow map[string]any

type fakeState struct {
	nextID int64
	tables map[string][]fakeRow
}

func newFakeState() *fakeState {
	return &fakeState{nextID: 1, tables: make(map[string][]fakeRow)}
}

func (s *fakeState) clone() *fakeState {
	res := &fakeState{
		nextID: s.nextID,
		tables: make(map[string][]fakeRow, len(s.tables)),
	}
	for tbl, rows := range s.tables {
		cp := make([]fakeRow, len(rows))
		for i, r := range rows {
			rc := make(fakeRow, len(r))
			for k, v := range r {
				rc[k] = v
			}
			cp[i] = rc
		}
		res.tables[tbl] = cp
	}
	return res
}

func (s *fakeState) resolveLocation(name string) *recon.Location {
	for _, r := range s.tables[recon.TblLocation] {
		if r["feature_name"] == name {
			return &recon.Location{
				ID:          r["id"].(int64),
				FeatureName: name,
			}
		}
	}
	return nil
}

func (s *fakeState) resolveSample(num string) *recon.Sample {
	for _, r := range s.tables[recon.TblSample] {
		if r["sample_number"] != num {
			continue
		}
		res := &recon.Sample{ID: r["id"].(int64), SampleNumber: num}
		if v, ok := r["phys_id"].(int64); ok {
			res.PhysID = sql.NullInt64{Int64: v, Valid: true}
		}
		if v, ok := r["chem_id"].(int64); ok {
			res.ChemID = sql.NullInt64{Int64: v, Valid: true}
		}
		if v, ok := r["location_id"].(int64); ok {
			res.LocationID = sql.NullInt64{Int64: v, Valid: true}
		}
		return res
	}
	return nil
}

func (s *fakeState) resolveTaxonomy(fileBase, otuID string) *recon.Taxonomy {
	for _, r := range s.tables[recon.TblTaxonomy] {
		dfn, _ := r["data_file_name"].(string)
		if strings.HasPrefix(fileBase, dfn) && r["otu_id"] == otuID {
			return &recon.Taxonomy{
				ID:           r["id"].(int64),
				OTUID:        otuID,
				DataFileName: dfn,
			}
		}
	}
	return nil
}

func (s *fakeState) apply(st recon.Stmt, lastID int64) int64 {
	switch st.Op {
	case recon.OpInsert:
		row := fakeRow{"id": s.nextID}
		s.nextID++
		for i, c := range st.Columns {
			row[c] = st.Values[i]
		}
		for _, c := range st.ChainColumns {
			row[c] = lastID
		}
		s.tables[st.Table] = append(s.tables[st.Table], row)
		return row["id"].(int64)
	case recon.OpUpdate:
		for _, r := range s.tables[st.Table] {
			if fmt.Sprint(r[st.KeyColumn]) != fmt.Sprint(st.KeyValue) {
				continue
			}
			for i, c := range st.Columns {
				r[c] = st.Values[i]
			}
			for _, c := range st.ChainColumns {
				r[c] = lastID
			}
		}
		return lastID
	default:
		if st.KeyColumn == "" {
			s.tables[st.Table] = nil
			return lastID
		}
		var kept []fakeRow
		for _, r := range s.tables[st.Table] {
			if fmt.Sprint(r[st.KeyColumn]) != fmt.Sprint(st.KeyValue) {
				kept = append(kept, r)
			}
		}
		s.tables[st.Table] = kept
		return lastID
	}
}

// fakeStore is an in-memory recon.Store with transaction isolation: a
// transaction works on a copy of the committed state and replaces it on
// commit.
type fakeStore struct {
	state *fakeState

	// failTable makes every write to that table fail with a
	// PersistenceError.
	failTable string
	pingErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{state: newFakeState()}
}

func (f *fakeStore) rows(table string) []fakeRow {
	return f.state.tables[table]
}

func (f *fakeStore) ResolveLocation(
	_ context.Context, name string,
) (*recon.Location, error) {
	return f.state.resolveLocation(name), nil
}

func (f *fakeStore) ResolveSample(
	_ context.Context, num string,
) (*recon.Sample, error) {
	return f.state.resolveSample(num), nil
}

func (f *fakeStore) ResolveTaxonomy(
	_ context.Context, fileBase, otuID string,
) (*recon.Taxonomy, error) {
	return f.state.resolveTaxonomy(fileBase, otuID), nil
}

func (f *fakeStore) Begin(_ context.Context) (recon.Tx, error) {
	return &fakeTx{store: f, state: f.state.clone()}, nil
}

func (f *fakeStore) Ping(_ context.Context) error { return f.pingErr }
func (f *fakeStore) Close() error                 { return nil }

type fakeTx struct {
	store  *fakeStore
	state  *fakeState
	lastID int64
}

func (t *fakeTx) ResolveLocation(
	_ context.Context, name string,
) (*recon.Location, error) {
	return t.state.resolveLocation(name), nil
}

func (t *fakeTx) ResolveSample(
	_ context.Context, num string,
) (*recon.Sample, error) {
	return t.state.resolveSample(num), nil
}

func (t *fakeTx) ResolveTaxonomy(
	_ context.Context, fileBase, otuID string,
) (*recon.Taxonomy, error) {
	return t.state.resolveTaxonomy(fileBase, otuID), nil
}

func (t *fakeTx) Apply(_ context.Context, st recon.Stmt) (int64, error) {
	if t.store.failTable != "" && st.Table == t.store.failTable {
		return 0, &recon.PersistenceError{
			Op:  "write " + st.Table,
			Err: fmt.Errorf("injected failure"),
		}
	}
	t.lastID = t.state.apply(st, t.lastID)
	return 1, nil
}

func (t *fakeTx) LastInsertID() int64 { return t.lastID }

func (t *fakeTx) Commit() error {
	t.store.state = t.state
	return nil
}

func (t *fakeTx) Rollback() error { return nil }

// fakeLedger is an in-memory kv.Ledger.
type fakeLedger struct {
	vals map[string]string
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{vals: make(map[string]string)}
}

func (l *fakeLedger) Open() error  { return nil }
func (l *fakeLedger) Close() error { return nil }

func (l *fakeLedger) Get(key string) (string, error) {
	return l.vals[key], nil
}

func (l *fakeLedger) Set(key, value string) error {
	l.vals[key] = value
	return nil
}

// fakeImageStore records object-store traffic.
type fakeImageStore struct {
	keys    []string
	deleted []string
}

func (s *fakeImageStore) Put(
	_ context.Context, key, _ string, body io.Reader,
) (string, error) {
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	s.keys = append(s.keys, key)
	return "https://img.test/" + key, nil
}

func (s *fakeImageStore) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

// fakeCache counts invalidations.
type fakeCache struct {
	calls int
}

func (c *fakeCache) Invalidate(_ context.Context) error {
	c.calls++
	return nil
}
