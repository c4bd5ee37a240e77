package springsync

import (
	"context"

	"github.com/springsdata/springsync/internal/ent/recon"
	"github.com/springsdata/springsync/pkg/config"
)

// springsync is an implementation of SpringSync interface.
type springsync struct {
	cfg config.Config
}

// New creates a new instance of SpringSync.
func New(
	cfg config.Config,
) SpringSync {
	res := springsync{
		cfg: cfg}
	return &res
}

// Upload runs one reconciliation pass over the import directory.
func (s *springsync) Upload(
	ctx context.Context, r recon.Reconciler,
) (recon.Report, error) {
	return r.Run(ctx)
}
