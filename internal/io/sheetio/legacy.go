package sheetio

import (
	"strconv"
	"strings"

	"github.com/shakinm/xlsReader/xls"

	"github.com/springsdata/springsync/internal/ent/recon"
	"github.com/springsdata/springsync/internal/ent/sheet"
)

// biffMaxCols is the column limit of a BIFF8 worksheet.
const biffMaxCols = 256

// legacySheet and legacyRow cover the slice of the BIFF reader the grid
// builder touches. rowCount is the highest row index the sheet may hold;
// rows and cells the reader cannot return read as empty.
type legacySheet interface {
	rowCount() int
	row(i int) (legacyRow, bool)
}

type legacyRow interface {
	cell(j int) (string, bool)
}

func openLegacy(path string) (sheet.Grid, error) {
	wb, err := xls.OpenFile(path)
	if err != nil {
		return nil, recon.NewFormatError("cannot read workbook: %v", err)
	}
	sh, err := wb.GetSheet(0)
	if err != nil {
		return nil, recon.NewFormatError("cannot read worksheet: %v", err)
	}
	return legacyGrid(sheetFuncs{
		rows: sh.GetNumberRows(),
		rowFn: func(i int) (legacyRow, bool) {
			r, err := sh.GetRow(i)
			if err != nil {
				return nil, false
			}
			return rowFunc(func(j int) (string, bool) {
				c, err := r.GetCol(j)
				if err != nil {
					return "", false
				}
				return c.GetString(), true
			}), true
		},
	}), nil
}

type sheetFuncs struct {
	rows  int
	rowFn func(i int) (legacyRow, bool)
}

func (s sheetFuncs) rowCount() int { return s.rows }

func (s sheetFuncs) row(i int) (legacyRow, bool) { return s.rowFn(i) }

type rowFunc func(j int) (string, bool)

func (f rowFunc) cell(j int) (string, bool) { return f(j) }

// legacyGrid loads a whole BIFF worksheet into an in-memory grid. The
// reader surfaces cell values as text only, so a value that parses as a
// number counts as numeric, the same fallback the OOXML path uses for
// untyped cells.
func legacyGrid(ls legacySheet) sheet.Grid {
	var cells [][]sheet.Cell
	for i := 0; i <= ls.rowCount(); i++ {
		r, ok := ls.row(i)
		if !ok {
			cells = append(cells, nil)
			continue
		}
		row := make([]sheet.Cell, 0, biffMaxCols)
		for j := 0; j < biffMaxCols; j++ {
			row = append(row, legacyCell(r, j))
		}
		cells = append(cells, trimRow(row))
	}
	return sheet.NewMemGrid(trimRows(cells))
}

func legacyCell(r legacyRow, j int) sheet.Cell {
	v, ok := r.cell(j)
	if !ok || strings.TrimSpace(v) == "" {
		return sheet.Cell{}
	}
	cell := sheet.Cell{Type: sheet.Text, Value: v}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		cell.Type = sheet.Number
	}
	return cell
}

func trimRow(r []sheet.Cell) []sheet.Cell {
	n := len(r)
	for n > 0 && r[n-1].Type == sheet.Empty {
		n--
	}
	return r[:n]
}

func trimRows(rows [][]sheet.Cell) [][]sheet.Cell {
	n := len(rows)
	for n > 0 && len(rows[n-1]) == 0 {
		n--
	}
	return rows[:n]
}
