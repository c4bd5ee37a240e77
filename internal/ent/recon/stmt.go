package recon

// Op is the kind of write a Stmt performs.
type Op int

const (
	OpInsert Op = iota
	OpUpdate
	OpDelete
)

// Stmt is a single parameterized write against the store. Planners build
// statements sparsely: only columns present and non-empty in the source row
// are set, so an update never nulls a previously stored value.
//
// ChainColumns take their value from the identifier generated by the most
// recent insert on the same transaction. The coordinator must apply a
// statement list in order and without interleaving other inserts, or the
// chained identifiers would not be the ones intended.
type Stmt struct {
	Table        string
	Op           Op
	Columns      []string
	Values       []any
	KeyColumn    string
	KeyValue     any
	ChainColumns []string
}

// NewInsert creates an empty INSERT statement for a table.
func NewInsert(table string) Stmt {
	return Stmt{Table: table, Op: OpInsert}
}

// NewUpdate creates an empty UPDATE statement keyed by one column.
func NewUpdate(table, keyColumn string, keyValue any) Stmt {
	return Stmt{Table: table, Op: OpUpdate, KeyColumn: keyColumn, KeyValue: keyValue}
}

// NewDelete creates a DELETE statement. With an empty keyColumn it clears
// the whole table.
func NewDelete(table, keyColumn string, keyValue any) Stmt {
	return Stmt{Table: table, Op: OpDelete, KeyColumn: keyColumn, KeyValue: keyValue}
}

// Set adds a column with an explicit value.
func (s *Stmt) Set(column string, value any) {
	s.Columns = append(s.Columns, column)
	s.Values = append(s.Values, value)
}

// SetChain adds a column whose value is the last generated insert id.
func (s *Stmt) SetChain(column string) {
	s.ChainColumns = append(s.ChainColumns, column)
}

// Empty reports whether the statement would write nothing. An insert with no
// columns is not empty: it still creates a row whose generated id the next
// statement may chain.
func (s *Stmt) Empty() bool {
	return s.Op == OpUpdate && len(s.Columns) == 0 && len(s.ChainColumns) == 0
}
