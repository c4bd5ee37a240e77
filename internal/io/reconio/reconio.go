// Package reconio implements the reconciliation transaction coordinator: it
// sequences parse, plan, apply and commit per file, in strict category and
// filename order, and merges per-category results into one run report.
package reconio

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/springsdata/springsync/internal/ent/kv"
	"github.com/springsdata/springsync/internal/ent/recon"
	"github.com/springsdata/springsync/internal/ent/sheet"
	"github.com/springsdata/springsync/internal/io/scanio"
	"github.com/springsdata/springsync/internal/io/sheetio"
	"github.com/springsdata/springsync/pkg/config"
	"golang.org/x/sync/errgroup"
)

type reconio struct {
	cfg      config.Config
	st       recon.Store
	ledger   kv.Ledger
	images   recon.ImageStore
	cache    recon.CacheInvalidator
	openGrid func(path string) (sheet.Grid, error)
}

// Option allows to change settings for the coordinator.
type Option func(*reconio)

// OptLedger sets the processed-file ledger.
func OptLedger(l kv.Ledger) Option {
	return func(r *reconio) {
		r.ledger = l
	}
}

// OptImageStore sets the object store for sample images.
func OptImageStore(s recon.ImageStore) Option {
	return func(r *reconio) {
		r.images = s
	}
}

// OptCacheInvalidator sets the endpoint invalidated after taxonomy uploads.
func OptCacheInvalidator(c recon.CacheInvalidator) Option {
	return func(r *reconio) {
		r.cache = c
	}
}

// OptGridOpener replaces the workbook reader.
func OptGridOpener(fn func(path string) (sheet.Grid, error)) Option {
	return func(r *reconio) {
		r.openGrid = fn
	}
}

// New returns a new instance of Reconciler.
func New(cfg config.Config, st recon.Store, opts ...Option) recon.Reconciler {
	res := &reconio{cfg: cfg, st: st, openGrid: sheetio.Open}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Run reconciles every new file under the import root. Categories apply in
// a fixed order: features, then samples, then geochemistry and taxonomy
// workbooks, then DNA sequences, then images. Later categories may create
// dummy rows that earlier categories populate authoritatively, so the order
// is a correctness mechanism, not a convenience.
func (r *reconio) Run(ctx context.Context) (recon.Report, error) {
	rep := recon.Report{Started: time.Now()}

	man, err := scanio.Scan(r.cfg.ImportDir)
	if err != nil {
		slog.Error("Cannot scan import directory", "error", err)
		rep.Failure = err.Error()
		rep.Finished = time.Now()
		return rep, err
	}
	slog.Info("Scanned import directory", "dir", r.cfg.ImportDir,
		"features", len(man.Features), "samples", len(man.Samples),
		"workbooks", len(man.Workbooks), "sequences", len(man.Sequences),
		"images", len(man.Images))

	if r.ledger != nil {
		if err = r.ledger.Open(); err != nil {
			slog.Warn("Cannot open ledger, files may be reprocessed", "error", err)
			r.ledger = nil
		} else {
			defer r.ledger.Close()
		}
	}

	grids := r.prefetch(ctx, man)

	feat, err := r.processTextFiles(ctx, man, recon.CatFeature, man.Features)
	rep.Merge(feat)
	if err != nil {
		return r.batchAbort(rep, err)
	}

	smp, err := r.processTextFiles(ctx, man, recon.CatSample, man.Samples)
	rep.Merge(smp)
	if err != nil {
		return r.batchAbort(rep, err)
	}

	geo, tax, err := r.processWorkbooks(ctx, man, grids)
	rep.Merge(geo)
	rep.Merge(tax)
	if err != nil {
		return r.batchAbort(rep, err)
	}

	dna, err := r.processSequences(ctx, man)
	rep.Merge(dna)
	if err != nil {
		return r.batchAbort(rep, err)
	}

	img, err := r.processImages(ctx, man)
	rep.Merge(img)
	if err != nil {
		return r.batchAbort(rep, err)
	}

	rep.Finished = time.Now()
	return rep, nil
}

func (r *reconio) batchAbort(rep recon.Report, err error) (recon.Report, error) {
	slog.Error("Aborting run", "error", err)
	rep.Failure = err.Error()
	rep.Finished = time.Now()
	return rep, err
}

type gridResult struct {
	grid sheet.Grid
	err  error
}

// prefetch reads all workbooks ahead of the apply phase. Source files are
// immutable inputs, so reading them concurrently is safe; the plan-and-apply
// phase stays strictly sequential.
func (r *reconio) prefetch(
	ctx context.Context, man scanio.Manifest,
) map[string]gridResult {
	res := make(map[string]gridResult, len(man.Workbooks))
	var mu sync.Mutex

	jobs := r.cfg.JobsNum
	if jobs < 1 {
		jobs = 1
	}
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, rel := range man.Workbooks {
		g.Go(func() error {
			grid, err := r.openGrid(man.Abs(rel))
			mu.Lock()
			res[rel] = gridResult{grid: grid, err: err}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return res
}

type uploadFn func(ctx context.Context, tx recon.Tx) (int, error)

// transact runs one reconciliation unit as a single transaction. Any failure
// before commit rolls everything back: a single malformed record never
// leaves partially-written state behind.
func (r *reconio) transact(ctx context.Context, fn uploadFn) (int, error) {
	tx, err := r.st.Begin(ctx)
	if err != nil {
		return 0, err
	}
	n, err := fn(ctx, tx)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.Warn("Rollback failed", "error", rbErr)
		}
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

// processFile runs one unit and maps its end state to the three-way
// uploaded/error/skipped outcome.
func (r *reconio) processFile(
	ctx context.Context, cat recon.Category, rel string, fn uploadFn,
) recon.FileResult {
	if r.alreadyUploaded(cat, rel) {
		slog.Info("File already uploaded, skipping", "file", rel)
		return recon.FileResult{
			Path: rel, Outcome: recon.Skipped, Reason: "already uploaded",
		}
	}

	n, err := r.transact(ctx, fn)
	res := fileResult(rel, n, err)
	switch res.Outcome {
	case recon.Uploaded:
		slog.Info("Uploaded file", "category", cat, "file", rel,
			"records", humanize.Comma(int64(n)))
		r.recordUpload(cat, rel)
	case recon.Skipped:
		slog.Info("Skipped file", "category", cat, "file", rel,
			"reason", res.Reason)
	case recon.Errored:
		slog.Error("Cannot upload file", "category", cat, "file", rel,
			"error", err)
	}
	return res
}

func fileResult(rel string, n int, err error) recon.FileResult {
	var fmtErr *recon.FormatError
	switch {
	case errors.As(err, &fmtErr):
		return recon.FileResult{
			Path: rel, Outcome: recon.Skipped, Reason: fmtErr.Msg,
		}
	case err != nil:
		return recon.FileResult{
			Path: rel, Outcome: recon.Errored, Reason: err.Error(), Err: err,
		}
	case n == 0:
		return recon.FileResult{
			Path: rel, Outcome: recon.Skipped, Reason: "no qualifying records",
		}
	}
	return recon.FileResult{Path: rel, Outcome: recon.Uploaded, Records: n}
}

// batchFatal reports whether a file-scoped failure actually lost the store
// connection, which aborts the remaining run.
func (r *reconio) batchFatal(ctx context.Context, err error) bool {
	var pe *recon.PersistenceError
	if !errors.As(err, &pe) {
		return false
	}
	return r.st.Ping(ctx) != nil
}

func (r *reconio) alreadyUploaded(cat recon.Category, rel string) bool {
	if r.ledger == nil {
		return false
	}
	v, err := r.ledger.Get(ledgerKey(cat, rel))
	if err != nil {
		slog.Warn("Cannot read ledger", "file", rel, "error", err)
		return false
	}
	return v == "uploaded"
}

func (r *reconio) recordUpload(cat recon.Category, rel string) {
	if r.ledger == nil {
		return
	}
	if err := r.ledger.Set(ledgerKey(cat, rel), "uploaded"); err != nil {
		slog.Warn("Cannot write ledger", "file", rel, "error", err)
	}
}

func ledgerKey(cat recon.Category, rel string) string {
	return string(cat) + ":" + rel
}
