package storeio

import (
	"strings"

	"github.com/springsdata/springsync/internal/ent/recon"
)

// buildSQL turns a Stmt into a parameterized MySQL statement. Chain columns
// are bound to lastID, the identifier generated by the immediately preceding
// insert on the same transaction.
func buildSQL(st recon.Stmt, lastID int64) (string, []any) {
	switch st.Op {
	case recon.OpInsert:
		return buildInsert(st, lastID)
	case recon.OpUpdate:
		return buildUpdate(st, lastID)
	default:
		return buildDelete(st)
	}
}

func buildInsert(st recon.Stmt, lastID int64) (string, []any) {
	cols := make([]string, 0, len(st.Columns)+len(st.ChainColumns))
	args := make([]any, 0, cap(cols))
	for i, c := range st.Columns {
		cols = append(cols, quoteIdent(c))
		args = append(args, st.Values[i])
	}
	for _, c := range st.ChainColumns {
		cols = append(cols, quoteIdent(c))
		args = append(args, lastID)
	}
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(quoteIdent(st.Table))
	b.WriteString(" (")
	b.WriteString(strings.Join(cols, ","))
	b.WriteString(") VALUES (")
	b.WriteString(strings.TrimSuffix(strings.Repeat("?,", len(cols)), ","))
	b.WriteString(")")
	return b.String(), args
}

func buildUpdate(st recon.Stmt, lastID int64) (string, []any) {
	sets := make([]string, 0, len(st.Columns)+len(st.ChainColumns))
	args := make([]any, 0, cap(sets)+1)
	for i, c := range st.Columns {
		sets = append(sets, quoteIdent(c)+"=?")
		args = append(args, st.Values[i])
	}
	for _, c := range st.ChainColumns {
		sets = append(sets, quoteIdent(c)+"=?")
		args = append(args, lastID)
	}
	args = append(args, st.KeyValue)
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(quoteIdent(st.Table))
	b.WriteString(" SET ")
	b.WriteString(strings.Join(sets, ","))
	b.WriteString(" WHERE ")
	b.WriteString(quoteIdent(st.KeyColumn))
	b.WriteString("=?")
	return b.String(), args
}

func buildDelete(st recon.Stmt) (string, []any) {
	var b strings.Builder
	b.WriteString("DELETE FROM ")
	b.WriteString(quoteIdent(st.Table))
	if st.KeyColumn == "" {
		return b.String(), nil
	}
	b.WriteString(" WHERE ")
	b.WriteString(quoteIdent(st.KeyColumn))
	b.WriteString("=?")
	return b.String(), []any{st.KeyValue}
}

func quoteIdent(s string) string {
	return "`" + s + "`"
}
