// Package sheetio adapts workbook readers to the cell-grid contract of
// internal/ent/sheet: OOXML workbooks through excelize, legacy BIFF
// workbooks through xlsReader. The whole first worksheet is loaded up
// front; the reconciliation engine never touches the reader again after
// that.
package sheetio

import (
	"bytes"
	"io"
	"os"
	"strconv"

	"github.com/springsdata/springsync/internal/ent/recon"
	"github.com/springsdata/springsync/internal/ent/sheet"
	"github.com/xuri/excelize/v2"
)

// Display formats of the builtin number-format ids the tablet-era workbooks
// actually use. Custom formats are read from the style directly.
var builtinNumFmt = map[int]string{
	1: "0",
	2: "0.00",
}

// ole2Signature starts every compound document file. The labs return
// geochemistry results as BIFF workbooks, which are compound documents;
// OOXML workbooks are zip archives and never start with these bytes.
var ole2Signature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Open loads the first worksheet of a workbook into an in-memory grid.
// Legacy BIFF files are told apart from OOXML by file signature, not by
// extension: the tablet app and the labs are not consistent about either.
// A file neither reader can parse is a format mismatch, not an error:
// unrelated binaries are expected alongside the recognized files.
func Open(path string) (sheet.Grid, error) {
	if isLegacyWorkbook(path) {
		return openLegacy(path)
	}
	return openOOXML(path)
}

func isLegacyWorkbook(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	sig := make([]byte, len(ole2Signature))
	if _, err := io.ReadFull(f, sig); err != nil {
		return false
	}
	return bytes.Equal(sig, ole2Signature)
}

func openOOXML(path string) (sheet.Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, recon.NewFormatError("cannot read workbook: %v", err)
	}
	defer f.Close()

	name := f.GetSheetName(0)
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, recon.NewFormatError("cannot read worksheet %q: %v", name, err)
	}

	cells := make([][]sheet.Cell, len(rows))
	for r, row := range rows {
		cells[r] = make([]sheet.Cell, len(row))
		for c, val := range row {
			cells[r][c] = makeCell(f, name, r, c, val)
		}
	}
	return sheet.NewMemGrid(cells), nil
}

func makeCell(f *excelize.File, sheetName string, r, c int, val string) sheet.Cell {
	if val == "" {
		return sheet.Cell{}
	}
	cell := sheet.Cell{Value: val, Type: cellType(f, sheetName, r, c, val)}

	axis, err := excelize.CoordinatesToCellName(c+1, r+1)
	if err != nil {
		return cell
	}
	if styleID, err := f.GetCellStyle(sheetName, axis); err == nil {
		cell.Format = formatOf(f, styleID)
	}
	return cell
}

// cellType classifies a cell. Number cells in xlsx carry no type attribute,
// so an untyped cell that parses as a number counts as numeric.
func cellType(f *excelize.File, sheetName string, r, c int, val string) sheet.CellType {
	axis, err := excelize.CoordinatesToCellName(c+1, r+1)
	if err != nil {
		return sheet.Text
	}
	ct, err := f.GetCellType(sheetName, axis)
	if err != nil {
		return sheet.Text
	}
	switch ct {
	case excelize.CellTypeNumber, excelize.CellTypeDate:
		return sheet.Number
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return sheet.Text
	}
	if _, err := strconv.ParseFloat(val, 64); err == nil {
		return sheet.Number
	}
	return sheet.Text
}

func formatOf(f *excelize.File, styleID int) string {
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return ""
	}
	if style.CustomNumFmt != nil {
		return *style.CustomNumFmt
	}
	return builtinNumFmt[style.NumFmt]
}
