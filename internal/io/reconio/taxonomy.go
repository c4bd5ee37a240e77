package reconio

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/springsdata/springsync/internal/ent/recon"
	"github.com/springsdata/springsync/internal/ent/sheet"
)

// uploadTaxonomy applies one taxonomy snapshot. The file is the complete
// current classification, so the transaction first clears the taxonomy and
// sample_taxonomy tables, then reinserts the whole new set; no reader ever
// observes a mix of two file versions.
func (r *reconio) uploadTaxonomy(fileBase string, g sheet.Grid) uploadFn {
	return func(ctx context.Context, tx recon.Tx) (int, error) {
		otuCol, rankCols, sampleCols := taxonomyHeader(g)
		if otuCol < 0 {
			return 0, recon.NewFormatError("no %s column", recon.TaxonomyOTUColumn)
		}

		// Resolve or create every referenced sample before the first
		// taxonomy insert: a dummy-sample insert in the middle of the row
		// loop would steal the insert id the join rows chain from.
		for i := range sampleCols {
			smp, err := tx.ResolveSample(ctx, sampleCols[i].num)
			if err != nil {
				return 0, err
			}
			if smp != nil {
				sampleCols[i].id = smp.ID
				continue
			}
			st := dummySampleStmt(sampleCols[i].num)
			if _, err = tx.Apply(ctx, st); err != nil {
				return 0, err
			}
			sampleCols[i].id = tx.LastInsertID()
		}

		if _, err := tx.Apply(ctx,
			recon.NewDelete(recon.TblSampleTaxonomy, "", nil)); err != nil {
			return 0, err
		}
		if _, err := tx.Apply(ctx,
			recon.NewDelete(recon.TblTaxonomy, "", nil)); err != nil {
			return 0, err
		}

		var count int
		for row := 1; row < g.Rows(); row++ {
			otu := strings.TrimSpace(g.CellValue(row, otuCol))
			if otu == "" {
				continue
			}
			ins := recon.NewInsert(recon.TblTaxonomy)
			ins.Set("data_file_name", fileBase)
			ins.Set("otu_id", otu)
			for c := 0; c < g.Cols(); c++ {
				dbCol, ok := rankCols[c]
				if !ok {
					continue
				}
				if v := strings.TrimSpace(g.CellValue(row, c)); v != "" {
					ins.Set(dbCol, v)
				}
			}
			if _, err := tx.Apply(ctx, ins); err != nil {
				return 0, err
			}
			taxID := tx.LastInsertID()

			if err := applyReadCounts(ctx, tx, g, row, otu, taxID, sampleCols); err != nil {
				return 0, err
			}
			count++
		}
		return count, nil
	}
}

type taxSampleCol struct {
	col int
	num string
	id  int64
}

// taxonomyHeader locates the OTU, rank and per-sample read-count columns.
// Duplicate sample-number headers keep the first occurrence; later ones are
// logged and ignored.
func taxonomyHeader(g sheet.Grid) (int, map[int]string, []taxSampleCol) {
	otuCol := -1
	rankCols := make(map[int]string)
	var sampleCols []taxSampleCol
	seen := make(map[string]bool)

	for c := 0; c < g.Cols(); c++ {
		h := strings.TrimSpace(g.CellValue(0, c))
		if h == recon.TaxonomyOTUColumn {
			if otuCol < 0 {
				otuCol = c
			}
			continue
		}
		if dbCol, ok := recon.TaxonomyRankColumns[h]; ok {
			rankCols[c] = dbCol
			continue
		}
		if num := recon.ReadCountColRe.FindString(h); num != "" {
			if seen[num] {
				slog.Warn("Duplicate sample column, first occurrence wins",
					"sample", num, "column", c)
				continue
			}
			seen[num] = true
			sampleCols = append(sampleCols, taxSampleCol{col: c, num: num})
		}
	}
	return otuCol, rankCols, sampleCols
}

// applyReadCounts links one OTU row to every sample with a nonzero read
// count. The taxonomy id is captured before the loop: the join inserts
// themselves advance the last-insert id.
func applyReadCounts(
	ctx context.Context,
	tx recon.Tx,
	g sheet.Grid,
	row int,
	otu string,
	taxID int64,
	sampleCols []taxSampleCol,
) error {
	for _, sc := range sampleCols {
		raw := strings.TrimSpace(g.CellValue(row, sc.col))
		if raw == "" {
			continue
		}
		reads, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return recon.NewParseError(
				"bad read count %q for %s in %s", raw, otu, sc.num)
		}
		if reads <= 0 {
			continue
		}
		link := recon.NewInsert(recon.TblSampleTaxonomy)
		link.Set("sample_id", sc.id)
		link.Set("taxonomy_id", taxID)
		link.Set("read_count", int(reads))
		if _, err := tx.Apply(ctx, link); err != nil {
			return err
		}
	}
	return nil
}
