package reconio

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/springsdata/springsync/internal/ent/detect"
	"github.com/springsdata/springsync/internal/ent/recon"
	"github.com/springsdata/springsync/internal/ent/sheet"
	"github.com/springsdata/springsync/internal/ent/value"
	"github.com/springsdata/springsync/internal/io/scanio"
)

// processWorkbooks detects each workbook's schema and routes it to the
// geochemistry or taxonomy processor. Unrecognized workbooks land in the
// geochemistry report as skipped; unrelated spreadsheets are expected next
// to the recognized ones.
func (r *reconio) processWorkbooks(
	ctx context.Context,
	man scanio.Manifest,
	grids map[string]gridResult,
) (geo, tax recon.CategoryReport, err error) {
	geo = recon.CategoryReport{Category: recon.CatGeochem}
	tax = recon.CategoryReport{Category: recon.CatTaxonomy}

	for _, rel := range man.Workbooks {
		gr := grids[rel]
		if gr.err != nil {
			geo.Add(fileResult(rel, 0, gr.err))
			continue
		}

		var res recon.FileResult
		switch kind := detect.Detect(gr.grid); kind {
		case detect.KindGeochemNZGAL:
			res = r.processFile(ctx, recon.CatGeochem, rel, r.uploadNZGAL(gr.grid))
			geo.Add(res)
		case detect.KindGeochemUoW:
			res = r.processFile(ctx, recon.CatGeochem, rel, r.uploadUoW(gr.grid))
			geo.Add(res)
		case detect.KindTaxonomy:
			res = r.processFile(ctx, recon.CatTaxonomy, rel,
				r.uploadTaxonomy(fileBase(rel), gr.grid))
			tax.Add(res)
			if res.Outcome == recon.Uploaded {
				r.invalidateCache(ctx)
			}
		default:
			res = recon.FileResult{
				Path: rel, Outcome: recon.Skipped, Reason: "unrecognized format",
			}
			slog.Info("Skipped workbook", "file", rel, "reason", res.Reason)
			geo.Add(res)
		}
		if res.Err != nil && r.batchFatal(ctx, res.Err) {
			return geo, tax, res.Err
		}
	}
	return geo, tax, nil
}

func (r *reconio) invalidateCache(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Invalidate(ctx); err != nil {
		slog.Warn("Cannot invalidate downstream cache", "error", err)
		return
	}
	slog.Info("Invalidated downstream cache")
}

// sampleAnalytes is one sample's interpreted analyte set, in sheet order.
type sampleAnalytes struct {
	sampleNumber string
	vals         []colval
}

// uploadNZGAL reads an NZGAL results sheet: parameter labels down column 0,
// one sample per data column starting at column 2, with the sample number
// embedded somewhere in the column.
func (r *reconio) uploadNZGAL(g sheet.Grid) uploadFn {
	return func(ctx context.Context, tx recon.Tx) (int, error) {
		var all []sampleAnalytes
		seen := make(map[string]bool)
		for c := 2; c < g.Cols(); c++ {
			sa, err := nzgalColumn(g, c)
			if err != nil {
				return 0, err
			}
			if sa.sampleNumber == "" || len(sa.vals) == 0 {
				continue
			}
			if seen[sa.sampleNumber] {
				slog.Warn("Duplicate sample column, first occurrence wins",
					"sample", sa.sampleNumber, "column", c)
				continue
			}
			seen[sa.sampleNumber] = true
			all = append(all, sa)
		}
		return r.applyGeochem(ctx, tx, all)
	}
}

func nzgalColumn(g sheet.Grid, c int) (sampleAnalytes, error) {
	var sa sampleAnalytes
	sampleRow := -1
	for row := 0; row < g.Rows(); row++ {
		if g.CellType(row, c) != sheet.Text {
			continue
		}
		num, ok := recon.NormalizeSampleNumber(
			strings.TrimSpace(g.CellValue(row, c)))
		if ok {
			sa.sampleNumber = num
			sampleRow = row
			break
		}
	}
	if sampleRow < 0 {
		return sa, nil
	}
	for row := sampleRow + 1; row < g.Rows(); row++ {
		if g.CellType(row, 0) != sheet.Text {
			continue
		}
		param := strings.TrimSpace(g.CellValue(row, 0))
		dbCol, ok := recon.NZGALAnalytes[param]
		if !ok {
			continue
		}
		if g.CellType(row, c) == sheet.Empty {
			continue
		}
		raw := g.CellValue(row, c)
		v, ok := value.Result(raw, g.CellFormat(row, c))
		if !ok {
			return sa, recon.NewParseError(
				"cannot interpret %q as %s result of %s",
				raw, param, sa.sampleNumber)
		}
		sa.vals = append(sa.vals, colval{dbCol, v})
	}
	return sa, nil
}

// uploadUoW reads the transposed University of Waikato layout: one sample
// per row, analyte headers across row 0.
func (r *reconio) uploadUoW(g sheet.Grid) uploadFn {
	return func(ctx context.Context, tx recon.Tx) (int, error) {
		type analyte struct {
			col   int
			dbCol string
		}
		var analytes []analyte
		for c := 1; c < g.Cols(); c++ {
			h := strings.TrimSpace(g.CellValue(0, c))
			if dbCol, ok := recon.UoWAnalytes[h]; ok {
				analytes = append(analytes, analyte{col: c, dbCol: dbCol})
			}
		}

		var all []sampleAnalytes
		seen := make(map[string]bool)
		for row := 1; row < g.Rows(); row++ {
			num, ok := recon.NormalizeSampleNumber(
				strings.TrimSpace(g.CellValue(row, 0)))
			if !ok {
				continue
			}
			if seen[num] {
				slog.Warn("Duplicate sample row, first occurrence wins",
					"sample", num, "row", row)
				continue
			}
			seen[num] = true

			sa := sampleAnalytes{sampleNumber: num}
			for _, a := range analytes {
				if g.CellType(row, a.col) == sheet.Empty {
					continue
				}
				raw := g.CellValue(row, a.col)
				v, ok := value.Result(raw, g.CellFormat(row, a.col))
				if !ok {
					return 0, recon.NewParseError(
						"cannot interpret %q as %s result of %s",
						raw, a.dbCol, num)
				}
				sa.vals = append(sa.vals, colval{a.dbCol, v})
			}
			if len(sa.vals) == 0 {
				continue
			}
			all = append(all, sa)
		}
		return r.applyGeochem(ctx, tx, all)
	}
}

func (r *reconio) applyGeochem(
	ctx context.Context, tx recon.Tx, all []sampleAnalytes,
) (int, error) {
	for _, sa := range all {
		sts, err := planGeochem(ctx, tx, sa.sampleNumber, sa.vals)
		if err != nil {
			return 0, err
		}
		for _, st := range sts {
			if _, err = tx.Apply(ctx, st); err != nil {
				return 0, err
			}
		}
	}
	return len(all), nil
}

func fileBase(rel string) string {
	base := filepath.Base(rel)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
