package springsync

import (
	"context"

	"github.com/springsdata/springsync/internal/ent/recon"
)

// SpringSync is an interface for reconciling field-survey data files with
// the springs database.
type SpringSync interface {
	// Upload runs one reconciliation pass over the import directory and
	// returns the merged run report.
	Upload(context.Context, recon.Reconciler) (recon.Report, error)
}
