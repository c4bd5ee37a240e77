package recon

import "regexp"

// Store table names.
const (
	TblLocation       = "location"
	TblSample         = "sample"
	TblPhysicalData   = "physical_data"
	TblChemicalData   = "chemical_data"
	TblTaxonomy       = "taxonomy"
	TblSampleTaxonomy = "sample_taxonomy"
	TblImage          = "image"
)

// FeatureNameColumn is the natural-key column of feature files.
const FeatureNameColumn = "#FeatureName"

// FeatureColumns maps feature-file columns to location table columns.
var FeatureColumns = map[string]string{
	"GeothermalField":   "feature_system",
	"LocationLatitude":  "lat",
	"LocationLongitude": "lng",
	"Description":       "description",
	"AccessType":        "access",
	"District":          "district",
	"FeatureType":       "feature_type",
}

// SampleColumns maps sample-file columns to sample table columns.
var SampleColumns = map[string]string{
	"SampleNumber":     "sample_number",
	"SurveyDate":       "date_gathered",
	"LeadObserverName": "sampler",
	"Comments":         "comments",
}

// PhysicalColumns maps sample-file columns to physical_data table columns.
var PhysicalColumns = map[string]string{
	"SampleTemperature":           "sampleTemp",
	"pH":                          "pH",
	"OxidationReductionPotential": "redox",
	"Conductivity":                "conductivity",
	"DissolvedOxygen":             "dO",
	"Turbidity":                   "turbidity",
	"DnaVolume":                   "dnaVolume",
	"FerrousIronAbs":              "ferrousIronAbs",
	"GasVolume":                   "gasVolume",
	"FeatureSize":                 "size",
	"ColourRgbHex":                "colour",
	"Ebullition":                  "ebullition",
	"FeatureTemperature":          "initialTemp",
	"SoilCollected":               "soilCollected",
	"WaterColumnCollected":        "waterColumnCollected",
}

// GeochemSentinel marks the top-left cell of an NZGAL results sheet.
const GeochemSentinel = "Geochemistry Results"

// NZGALAnalytes maps NZGAL parameter labels to chemical_data columns.
var NZGALAnalytes = map[string]string{
	"Bicarbonate (Total)":     "bicarbonate",
	"Chloride":                "chloride",
	"Sulphate":                "sulfate",
	"Sulphide (total as H2S)": "H2S",
}

// UoWAnalytes maps University-of-Waikato element headers to chemical_data
// columns. The layout is transposed relative to NZGAL sheets: samples down
// column 0, analytes across row 0.
var UoWAnalytes = map[string]string{
	"Lithium":     "lithium",
	"Boron":       "boron",
	"Sodium":      "sodium",
	"Potassium":   "potassium",
	"Calcium":     "calcium",
	"Magnesium":   "magnesium",
	"Iron":        "iron",
	"Aluminium":   "aluminium",
	"Arsenic":     "arsenic",
	"Caesium":     "caesium",
	"Rubidium":    "rubidium",
	"Manganese":   "manganese",
	"Ammonium":    "ammonium",
	"Nitrate":     "nitrate",
	"Bromide":     "bromide",
	"Silica":      "silica",
	"Chloride":    "chloride",
	"Sulphate":    "sulfate",
	"Bicarbonate": "bicarbonate",
}

// TaxonomyOTUColumn is the OTU id header of taxonomy sheets.
const TaxonomyOTUColumn = "OTUId"

// TaxonomyRanks lists the classification ranks of a taxonomy sheet, each
// paired with a "<Rank>Conf" confidence header.
var TaxonomyRanks = []string{
	"Domain", "Phylum", "Class", "Order", "Family", "Genus", "Species",
}

// TaxonomyRankColumns maps rank headers to taxonomy table columns.
var TaxonomyRankColumns = map[string]string{
	"Domain":      "domain",
	"DomainConf":  "domain_conf",
	"Phylum":      "phylum",
	"PhylumConf":  "phylum_conf",
	"Class":       "class",
	"ClassConf":   "class_conf",
	"Order":       "order_",
	"OrderConf":   "order_conf",
	"Family":      "family",
	"FamilyConf":  "family_conf",
	"Genus":       "genus",
	"GenusConf":   "genus_conf",
	"Species":     "species",
	"SpeciesConf": "species_conf",
}

var (
	// sampleNumberRe matches 'P1.0023', 'p1-0023' and similar variants.
	sampleNumberRe = regexp.MustCompile(`(?i)^P1[.-](\d{4})$`)

	// ReadCountColRe matches per-sample read-count headers of a taxonomy
	// sheet, which start with a sample number and may carry a qualifier.
	ReadCountColRe = regexp.MustCompile(`^P1\.\d{4}`)
)

// NormalizeSampleNumber canonicalizes sample-number spellings to the
// 'P1.NNNN' form. ok is false when the string is not a sample number.
func NormalizeSampleNumber(raw string) (string, bool) {
	m := sampleNumberRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return "P1." + m[1], true
}
