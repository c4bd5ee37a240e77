// Package row extracts ordered column-name to value maps from the
// tab-delimited exports produced by the field tablet app.
package row

import (
	"bufio"
	"io"
	"strings"

	"github.com/springsdata/springsync/internal/ent/recon"
	"github.com/springsdata/springsync/internal/str"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Row is one record keyed by the header columns, with the header order
// preserved.
type Row struct {
	Columns []string
	Values  map[string]string
}

// Get returns a trimmed value and whether the column is present and
// non-empty.
func (r Row) Get(column string) (string, bool) {
	v, ok := r.Values[column]
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Extract reads a tab-delimited source: one header line of column names,
// then one record per non-blank line. Values keep their source order and are
// stripped of surrounding quotes added by spreadsheet editors. An empty
// source has no header line and fails with a ParseError.
func Extract(r io.Reader) ([]Row, error) {
	// Tablet exports sometimes carry a UTF-8 byte-order mark.
	sc := bufio.NewScanner(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, &recon.ParseError{Msg: "cannot read header line", Err: err}
		}
		return nil, recon.NewParseError("missing header line")
	}
	header := strings.Split(strings.TrimRight(sc.Text(), "\r\n"), "\t")
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		values := make(map[string]string, len(header))
		for i, name := range header {
			if i >= len(fields) {
				break
			}
			values[name] = str.Unquote(strings.TrimSpace(fields[i]))
		}
		rows = append(rows, Row{Columns: header, Values: values})
	}
	if err := sc.Err(); err != nil {
		return nil, &recon.ParseError{Msg: "cannot read records", Err: err}
	}
	return rows, nil
}
