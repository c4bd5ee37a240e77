// Package seq reads DNA-sequence files: records delimited by '>OTU_<n>'
// header lines, with the following lines concatenated into the sequence.
package seq

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

var headerRe = regexp.MustCompile(`^>\s*(OTU_\d+)\s*$`)

// Record is one OTU's sequence.
type Record struct {
	OTUID    string
	Sequence string
}

// Read extracts all sequence records from a source. Lines before the first
// header are ignored; a header with no following sequence lines yields a
// record with an empty sequence.
func Read(r io.Reader) ([]Record, error) {
	var res []Record
	var cur *Record
	var buf strings.Builder

	flush := func() {
		if cur != nil {
			cur.Sequence = buf.String()
			res = append(res, *cur)
		}
		buf.Reset()
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if m := headerRe.FindStringSubmatch(line); m != nil {
			flush()
			cur = &Record{OTUID: m[1]}
			continue
		}
		if cur != nil {
			buf.WriteString(strings.TrimSpace(line))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return res, nil
}
