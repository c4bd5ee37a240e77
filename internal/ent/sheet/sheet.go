// Package sheet defines the reader-agnostic cell-grid contract that format
// detection and value interpretation operate on. Adapters over concrete
// workbook readers live in internal/io/sheetio.
package sheet

// CellType classifies a cell's content.
type CellType int

const (
	Empty CellType = iota
	Text
	Number
)

// Grid is a two-dimensional grid of typed cells. CellFormat returns the
// display-format string of a cell ("" when none); only legacy workbook
// formats carry one.
type Grid interface {
	Rows() int
	Cols() int
	CellType(row, col int) CellType
	CellValue(row, col int) string
	CellFormat(row, col int) string
}

// Cell is one typed cell of an in-memory grid.
type Cell struct {
	Type   CellType
	Value  string
	Format string
}

// MemGrid is an in-memory Grid, used by tests and by readers that load a
// whole worksheet up front.
type MemGrid struct {
	cells [][]Cell
	cols  int
}

// NewMemGrid builds a MemGrid from rows of cells. Short rows are padded
// with empty cells on access.
func NewMemGrid(cells [][]Cell) *MemGrid {
	var cols int
	for _, r := range cells {
		if len(r) > cols {
			cols = len(r)
		}
	}
	return &MemGrid{cells: cells, cols: cols}
}

func (g *MemGrid) Rows() int { return len(g.cells) }
func (g *MemGrid) Cols() int { return g.cols }

func (g *MemGrid) cell(row, col int) Cell {
	if row < 0 || row >= len(g.cells) {
		return Cell{}
	}
	r := g.cells[row]
	if col < 0 || col >= len(r) {
		return Cell{}
	}
	return r[col]
}

func (g *MemGrid) CellType(row, col int) CellType {
	return g.cell(row, col).Type
}

func (g *MemGrid) CellValue(row, col int) string {
	return g.cell(row, col).Value
}

func (g *MemGrid) CellFormat(row, col int) string {
	return g.cell(row, col).Format
}
