package recon

import (
	"context"
	"database/sql"
	"io"
)

// Location is a resolved geothermal feature row.
type Location struct {
	ID            int64
	ObservationID string
	FeatureName   string
}

// Sample is a resolved sample row with its ownership links.
type Sample struct {
	ID           int64
	SampleNumber string
	PhysID       sql.NullInt64
	ChemID       sql.NullInt64
	LocationID   sql.NullInt64
}

// Taxonomy is a resolved OTU classification row.
type Taxonomy struct {
	ID           int64
	OTUID        string
	DataFileName string
}

// Resolver maps natural keys to existing store rows. A nil row with a nil
// error means the key is absent. Resolution is deterministic within a run:
// the same key resolves to the same row until an intervening write.
type Resolver interface {
	// ResolveLocation looks a feature up by the observation id derived from
	// its name.
	ResolveLocation(ctx context.Context, featureName string) (*Location, error)

	// ResolveSample looks a sample up by exact sample number.
	ResolveSample(ctx context.Context, sampleNumber string) (*Sample, error)

	// ResolveTaxonomy looks an OTU up where the stored data-file name is a
	// prefix of fileBase and the OTU id matches exactly.
	ResolveTaxonomy(ctx context.Context, fileBase, otuID string) (*Taxonomy, error)
}

// Tx is one open reconciliation transaction. Statements are applied strictly
// in order on a single connection; LastInsertID exposes the identifier
// generated by the most recent insert so dependent writes can chain it.
type Tx interface {
	Resolver

	// Apply executes one statement and returns the number of affected rows.
	Apply(ctx context.Context, st Stmt) (int64, error)

	// LastInsertID returns the id generated by the most recent insert
	// applied on this transaction.
	LastInsertID() int64

	Commit() error
	Rollback() error
}

// Store is the persistent relational store.
type Store interface {
	Resolver

	// Begin opens the transaction for one file (or one taxonomy snapshot).
	Begin(ctx context.Context) (Tx, error)

	// Ping verifies the store connection; used to tell a file-scoped write
	// failure from a batch-fatal connectivity loss.
	Ping(ctx context.Context) error

	Close() error
}

// ImageStore uploads sample images to object storage and returns a public
// URL for the stored object.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// CacheInvalidator tells downstream caches that taxonomy data changed.
// Fire-and-forget: failures are logged, never fatal.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Notifier delivers the run report.
type Notifier interface {
	Send(ctx context.Context, rep Report) error
}

// Reconciler runs one full reconciliation batch.
type Reconciler interface {
	Run(ctx context.Context) (Report, error)
}
