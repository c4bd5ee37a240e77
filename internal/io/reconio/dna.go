package reconio

import (
	"context"
	"log/slog"
	"os"

	"github.com/springsdata/springsync/internal/ent/recon"
	"github.com/springsdata/springsync/internal/ent/seq"
	"github.com/springsdata/springsync/internal/io/scanio"
)

// processSequences attaches DNA sequences to already-reconciled taxonomy
// rows, matched by data-file-name prefix plus OTU id. Sequences without a
// matching row are not errors; the file just affects fewer rows.
func (r *reconio) processSequences(
	ctx context.Context, man scanio.Manifest,
) (recon.CategoryReport, error) {
	rep := recon.CategoryReport{Category: recon.CatDNA}
	for _, rel := range man.Sequences {
		res := r.processFile(ctx, recon.CatDNA, rel,
			r.uploadSequences(man.Abs(rel), fileBase(rel)))
		rep.Add(res)
		if res.Err != nil && r.batchFatal(ctx, res.Err) {
			return rep, res.Err
		}
	}
	return rep, nil
}

func (r *reconio) uploadSequences(path, base string) uploadFn {
	return func(ctx context.Context, tx recon.Tx) (int, error) {
		f, err := os.Open(path)
		if err != nil {
			return 0, &recon.ParseError{Msg: "cannot open file", Err: err}
		}
		defer f.Close()

		records, err := seq.Read(f)
		if err != nil {
			return 0, &recon.ParseError{Msg: "cannot read sequences", Err: err}
		}

		var count int
		for _, rec := range records {
			tax, err := tx.ResolveTaxonomy(ctx, base, rec.OTUID)
			if err != nil {
				return 0, err
			}
			if tax == nil {
				slog.Debug("No taxonomy row for sequence",
					"file", base, "otu", rec.OTUID)
				continue
			}
			up := recon.NewUpdate(recon.TblTaxonomy, "id", tax.ID)
			up.Set("sequence", rec.Sequence)
			if _, err = tx.Apply(ctx, up); err != nil {
				return 0, err
			}
			count++
		}
		return count, nil
	}
}
