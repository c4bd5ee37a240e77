package storeio

import (
	"context"
	"database/sql"
	"errors"

	"github.com/springsdata/springsync/internal/ent/recon"
	"github.com/springsdata/springsync/internal/str"
)

// queryer is satisfied by both *sql.DB and *sql.Tx, so resolution inside an
// open transaction sees that transaction's own uncommitted writes.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type resolver struct {
	q queryer
}

func (r resolver) ResolveLocation(
	ctx context.Context, featureName string,
) (*recon.Location, error) {
	obsID := str.ObservationID(featureName)
	row := r.q.QueryRowContext(ctx,
		`SELECT id, observation_id, feature_name
		   FROM location WHERE observation_id = ?`, obsID)
	var loc recon.Location
	err := row.Scan(&loc.ID, &loc.ObservationID, &loc.FeatureName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &recon.PersistenceError{Op: "resolve location", Err: err}
	}
	return &loc, nil
}

func (r resolver) ResolveSample(
	ctx context.Context, sampleNumber string,
) (*recon.Sample, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, sample_number, phys_id, chem_id, location_id
		   FROM sample WHERE sample_number = ?`, sampleNumber)
	var smp recon.Sample
	err := row.Scan(&smp.ID, &smp.SampleNumber,
		&smp.PhysID, &smp.ChemID, &smp.LocationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &recon.PersistenceError{Op: "resolve sample", Err: err}
	}
	return &smp, nil
}

// ResolveTaxonomy tolerates data-file names that differ by a trailing
// qualifier: the stored name only has to be a prefix of the queried one.
func (r resolver) ResolveTaxonomy(
	ctx context.Context, fileBase, otuID string,
) (*recon.Taxonomy, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, otu_id, data_file_name
		   FROM taxonomy
		  WHERE ? LIKE CONCAT(data_file_name, '%') AND otu_id = ?
		  LIMIT 1`, fileBase, otuID)
	var tax recon.Taxonomy
	err := row.Scan(&tax.ID, &tax.OTUID, &tax.DataFileName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &recon.PersistenceError{Op: "resolve taxonomy", Err: err}
	}
	return &tax, nil
}
