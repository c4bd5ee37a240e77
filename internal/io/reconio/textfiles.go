package reconio

import (
	"context"
	"os"

	"github.com/springsdata/springsync/internal/ent/recon"
	"github.com/springsdata/springsync/internal/ent/row"
	"github.com/springsdata/springsync/internal/io/scanio"
)

// processTextFiles reconciles the tab-delimited feature or sample files, one
// transaction per file, files in ascending name order. Rows apply in source
// order; the first malformed row aborts the whole file.
func (r *reconio) processTextFiles(
	ctx context.Context,
	man scanio.Manifest,
	cat recon.Category,
	files []string,
) (recon.CategoryReport, error) {
	rep := recon.CategoryReport{Category: cat}
	for _, rel := range files {
		res := r.processFile(ctx, cat, rel, r.uploadRows(man.Abs(rel), cat))
		rep.Add(res)
		if res.Err != nil && r.batchFatal(ctx, res.Err) {
			return rep, res.Err
		}
	}
	return rep, nil
}

func (r *reconio) uploadRows(path string, cat recon.Category) uploadFn {
	return func(ctx context.Context, tx recon.Tx) (int, error) {
		f, err := os.Open(path)
		if err != nil {
			return 0, &recon.ParseError{Msg: "cannot open file", Err: err}
		}
		defer f.Close()

		rows, err := row.Extract(f)
		if err != nil {
			return 0, err
		}
		for _, rw := range rows {
			if err = r.applyRow(ctx, tx, cat, rw); err != nil {
				return 0, err
			}
		}
		return len(rows), nil
	}
}

func (r *reconio) applyRow(
	ctx context.Context, tx recon.Tx, cat recon.Category, rw row.Row,
) error {
	if cat == recon.CatFeature {
		st, err := planFeature(ctx, tx, rw)
		if err != nil {
			return err
		}
		_, err = tx.Apply(ctx, st)
		return err
	}

	sts, err := planSample(ctx, tx, rw)
	if err != nil {
		return err
	}
	for _, st := range sts {
		if _, err = tx.Apply(ctx, st); err != nil {
			return err
		}
	}
	return nil
}
