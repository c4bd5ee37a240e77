package reconio

import (
	"context"
	"time"

	"github.com/springsdata/springsync/internal/ent/recon"
	"github.com/springsdata/springsync/internal/ent/row"
	"github.com/springsdata/springsync/internal/ent/value"
	"github.com/springsdata/springsync/internal/str"
)

const dateLayout = "2006-01-02 15:04:05"

// colval is one sparse column assignment, ordered as in the source.
type colval struct {
	col string
	val string
}

// planFeature decides insert against update for one feature row. Identity is
// the observation id derived from the feature name, so a corrected display
// name updates the same location row it was first inserted under.
func planFeature(
	ctx context.Context, tx recon.Tx, rw row.Row,
) (recon.Stmt, error) {
	name, ok := rw.Get(recon.FeatureNameColumn)
	if !ok {
		return recon.Stmt{}, recon.NewParseError(
			"feature row has no %s", recon.FeatureNameColumn)
	}
	loc, err := tx.ResolveLocation(ctx, name)
	if err != nil {
		return recon.Stmt{}, err
	}

	var st recon.Stmt
	if loc == nil {
		st = recon.NewInsert(recon.TblLocation)
		st.Set("observation_id", str.ObservationID(name))
	} else {
		st = recon.NewUpdate(recon.TblLocation, "id", loc.ID)
	}
	st.Set("feature_name", name)
	for _, col := range rw.Columns {
		dbCol, ok := recon.FeatureColumns[col]
		if !ok {
			continue
		}
		if v, ok := rw.Get(col); ok {
			st.Set(dbCol, v)
		}
	}
	return st, nil
}

// planSample builds the physical_data write followed by the sample write for
// one sample row. When the physical row is freshly inserted, the sample
// write chains its generated id into phys_id; the two statements must run
// back to back on the same transaction with nothing in between.
func planSample(
	ctx context.Context, tx recon.Tx, rw row.Row,
) ([]recon.Stmt, error) {
	rawNum, ok := rw.Get("SampleNumber")
	if !ok {
		return nil, recon.NewParseError("sample row has no SampleNumber")
	}
	sampleNumber, ok := recon.NormalizeSampleNumber(rawNum)
	if !ok {
		return nil, recon.NewParseError("invalid sample number %q", rawNum)
	}
	smp, err := tx.ResolveSample(ctx, sampleNumber)
	if err != nil {
		return nil, err
	}
	comments, _ := rw.Get("Comments")

	freshPhys := smp == nil || !smp.PhysID.Valid
	var phys recon.Stmt
	if freshPhys {
		phys = recon.NewInsert(recon.TblPhysicalData)
	} else {
		phys = recon.NewUpdate(recon.TblPhysicalData, "id", smp.PhysID.Int64)
	}
	for _, cv := range physicalValues(rw, comments) {
		phys.Set(cv.col, cv.val)
	}

	var smpSt recon.Stmt
	if smp == nil {
		smpSt = recon.NewInsert(recon.TblSample)
	} else {
		smpSt = recon.NewUpdate(recon.TblSample, "id", smp.ID)
	}
	if freshPhys {
		smpSt.SetChain("phys_id")
	}
	smpSt.Set("sample_number", sampleNumber)
	for _, col := range rw.Columns {
		dbCol, ok := recon.SampleColumns[col]
		if !ok || col == "SampleNumber" {
			continue
		}
		v, ok := rw.Get(col)
		if !ok {
			continue
		}
		if col == "SurveyDate" {
			v = value.CanonicalDate(v)
		}
		smpSt.Set(dbCol, v)
	}
	if featureName, ok := rw.Get(recon.FeatureNameColumn); ok {
		loc, err := tx.ResolveLocation(ctx, featureName)
		if err != nil {
			return nil, err
		}
		if loc != nil {
			smpSt.Set("location_id", loc.ID)
		}
	}
	return []recon.Stmt{phys, smpSt}, nil
}

// physicalValues collects the sparse physical_data columns of a sample row.
// The collection flags fall back to comment inference even when their
// columns are missing from the header entirely.
func physicalValues(rw row.Row, comments string) []colval {
	var res []colval
	for _, col := range rw.Columns {
		dbCol, ok := recon.PhysicalColumns[col]
		if !ok {
			continue
		}
		switch col {
		case "SoilCollected", "WaterColumnCollected":
			// handled below, header presence not required
		case "ColourRgbHex":
			if raw, ok := rw.Get(col); ok {
				if hex, ok := value.ColourHex(raw); ok {
					res = append(res, colval{dbCol, hex})
				}
			}
		default:
			if v, ok := rw.Get(col); ok {
				res = append(res, colval{dbCol, v})
			}
		}
	}
	soil, _ := rw.Get("SoilCollected")
	if v, ok := value.SoilCollected(soil, comments); ok {
		res = append(res, colval{"soilCollected", v})
	}
	water, _ := rw.Get("WaterColumnCollected")
	if v, ok := value.WaterColumnCollected(water, comments); ok {
		res = append(res, colval{"waterColumnCollected", v})
	}
	return res
}

// planGeochem targets chemical_data through the owning sample's chem_id.
// When no sample exists yet a dummy one is created first; when no chemical
// row exists the fresh insert's id chains into chem_id, again relying on the
// immediately-prior-insert contract.
func planGeochem(
	ctx context.Context, tx recon.Tx, sampleNumber string, vals []colval,
) ([]recon.Stmt, error) {
	smp, err := tx.ResolveSample(ctx, sampleNumber)
	if err != nil {
		return nil, err
	}

	var sts []recon.Stmt
	switch {
	case smp == nil:
		ins := recon.NewInsert(recon.TblChemicalData)
		setAll(&ins, vals)
		link := recon.NewUpdate(recon.TblSample, "sample_number", sampleNumber)
		link.SetChain("chem_id")
		sts = append(sts, dummySampleStmt(sampleNumber), ins, link)
	case smp.ChemID.Valid:
		up := recon.NewUpdate(recon.TblChemicalData, "id", smp.ChemID.Int64)
		setAll(&up, vals)
		sts = append(sts, up)
	default:
		ins := recon.NewInsert(recon.TblChemicalData)
		setAll(&ins, vals)
		link := recon.NewUpdate(recon.TblSample, "id", smp.ID)
		link.SetChain("chem_id")
		sts = append(sts, ins, link)
	}
	return sts, nil
}

func setAll(st *recon.Stmt, vals []colval) {
	for _, cv := range vals {
		st.Set(cv.col, cv.val)
	}
}

// dummySampleStmt creates the placeholder sample row referenced by
// geochemistry or taxonomy data arriving before its sample file. A later
// sample file enriches the row through the normal update path.
func dummySampleStmt(sampleNumber string) recon.Stmt {
	st := recon.NewInsert(recon.TblSample)
	st.Set("sample_number", sampleNumber)
	st.Set("sampler", "Unknown")
	st.Set("date_gathered", time.Now().Format(dateLayout))
	return st
}
