// Package detect classifies untyped workbook grids into the known source
// schemas. Detection operates purely on cell content and position, never on
// the originating file's name.
package detect

import (
	"strings"

	"github.com/springsdata/springsync/internal/ent/recon"
	"github.com/springsdata/springsync/internal/ent/sheet"
	"github.com/springsdata/springsync/internal/ent/value"
)

// Kind is the detected schema of a workbook.
type Kind int

const (
	// KindUnknown marks an unrelated spreadsheet; an expected outcome, not
	// an error.
	KindUnknown Kind = iota
	// KindGeochemNZGAL is the NZ Geothermal Analytical Laboratory layout:
	// parameters down column 0, samples across the data columns.
	KindGeochemNZGAL
	// KindGeochemUoW is the University of Waikato layout, transposed:
	// samples down column 0, analytes across row 0.
	KindGeochemUoW
	// KindTaxonomy is the OTU classification table with per-sample
	// read-count columns.
	KindTaxonomy
)

func (k Kind) String() string {
	switch k {
	case KindGeochemNZGAL:
		return "geochemistry (NZGAL)"
	case KindGeochemUoW:
		return "geochemistry (UoW)"
	case KindTaxonomy:
		return "taxonomy"
	}
	return "unknown"
}

// Detect decides what schema a grid holds. Detection order matters: the
// NZGAL sentinel is checked first, the UoW heuristic second, the taxonomy
// header set last.
func Detect(g sheet.Grid) Kind {
	if isNZGAL(g) {
		return KindGeochemNZGAL
	}
	if isUoW(g) {
		return KindGeochemUoW
	}
	if isTaxonomy(g) {
		return KindTaxonomy
	}
	return KindUnknown
}

func isNZGAL(g sheet.Grid) bool {
	return g.CellType(0, 0) == sheet.Text &&
		g.CellValue(0, 0) == recon.GeochemSentinel
}

// isUoW requires a sample number in column 0, a known analyte header in
// row 0, and a first intersection that interprets as a result. The last
// check keeps metadata sheets that merely mention sample numbers out.
func isUoW(g sheet.Grid) bool {
	sampleRow := -1
	for r := 0; r < g.Rows(); r++ {
		if _, ok := recon.NormalizeSampleNumber(g.CellValue(r, 0)); ok {
			sampleRow = r
			break
		}
	}
	if sampleRow < 0 {
		return false
	}
	analyteCol := -1
	for c := 0; c < g.Cols(); c++ {
		h := strings.TrimSpace(g.CellValue(0, c))
		if _, ok := recon.UoWAnalytes[h]; ok {
			analyteCol = c
			break
		}
	}
	if analyteCol < 0 {
		return false
	}
	_, ok := value.Result(
		g.CellValue(sampleRow, analyteCol),
		g.CellFormat(sampleRow, analyteCol),
	)
	return ok
}

func isTaxonomy(g sheet.Grid) bool {
	headers := make(map[string]struct{})
	readCount := false
	for c := 0; c < g.Cols(); c++ {
		h := strings.TrimSpace(g.CellValue(0, c))
		if h == "" {
			continue
		}
		headers[h] = struct{}{}
		if recon.ReadCountColRe.MatchString(h) {
			readCount = true
		}
	}
	if !readCount {
		return false
	}
	if _, ok := headers[recon.TaxonomyOTUColumn]; !ok {
		return false
	}
	for _, rank := range recon.TaxonomyRanks {
		if _, ok := headers[rank]; !ok {
			return false
		}
		if _, ok := headers[rank+"Conf"]; !ok {
			return false
		}
	}
	return true
}
