// Package model declares the store schema for geothermal sampling
// observations. The models drive schema migration; the reconciliation engine
// writes through parameterized statements, not through the ORM.
package model

import (
	"database/sql"
	"time"
)

// Location is a geothermal feature where samples are gathered.
type Location struct {
	ID int64 `gorm:"primary_key"`

	// ObservationID is the stable identity of the feature, derived from the
	// feature name at first sight. The display name may be corrected later;
	// the observation id never changes.
	ObservationID string `gorm:"column:observation_id;type:varchar(80);unique_index"`

	// FeatureName is the display name as entered in the field.
	FeatureName string `gorm:"type:varchar(255)"`

	// FeatureSystem is the geothermal field the feature belongs to.
	FeatureSystem string `gorm:"type:varchar(255)"`

	Lat float64 `gorm:"type:decimal(10,6)"`
	Lng float64 `gorm:"type:decimal(10,6)"`

	Description string `gorm:"type:text"`

	// Access describes how the feature is reached (public, permit, etc).
	Access      string `gorm:"type:varchar(100)"`
	District    string `gorm:"type:varchar(100)"`
	FeatureType string `gorm:"type:varchar(100)"`
}

// TableName keeps the historical singular table name.
func (Location) TableName() string { return "location" }

// Sample is one field-sampling event at a location.
type Sample struct {
	ID int64 `gorm:"primary_key"`

	// SampleNumber is the natural key, e.g. 'P1.0023'.
	SampleNumber string `gorm:"type:varchar(20);unique_index"`

	DateGathered time.Time `gorm:"type:datetime"`

	// Sampler is 'Unknown' on dummy rows created as a side effect of
	// geochemistry or taxonomy uploads; a later sample file fills it in.
	Sampler  string `gorm:"type:varchar(255)"`
	Comments string `gorm:"type:text"`

	// PhysID and ChemID are either null or owned exclusively by this sample.
	PhysID     sql.NullInt64 `gorm:"column:phys_id"`
	ChemID     sql.NullInt64 `gorm:"column:chem_id"`
	LocationID sql.NullInt64 `gorm:"column:location_id"`
}

func (Sample) TableName() string { return "sample" }

// PhysicalData holds the field measurements taken with a sample.
type PhysicalData struct {
	ID int64 `gorm:"primary_key"`

	SampleTemp     sql.NullFloat64 `gorm:"column:sampleTemp"`
	PH             sql.NullFloat64 `gorm:"column:pH"`
	Redox          sql.NullFloat64 `gorm:"column:redox"`
	Conductivity   sql.NullFloat64 `gorm:"column:conductivity"`
	DO             sql.NullFloat64 `gorm:"column:dO"`
	Turbidity      sql.NullFloat64 `gorm:"column:turbidity"`
	DnaVolume      sql.NullFloat64 `gorm:"column:dnaVolume"`
	FerrousIronAbs sql.NullFloat64 `gorm:"column:ferrousIronAbs"`
	GasVolume      sql.NullFloat64 `gorm:"column:gasVolume"`
	Size           sql.NullString  `gorm:"column:size;type:varchar(100)"`

	// Colour is the RGB hex of the water colour chart reading.
	Colour      sql.NullString  `gorm:"column:colour;type:varchar(6)"`
	Ebullition  sql.NullString  `gorm:"column:ebullition;type:varchar(100)"`
	InitialTemp sql.NullFloat64 `gorm:"column:initialTemp"`

	SoilCollected        sql.NullBool `gorm:"column:soilCollected"`
	WaterColumnCollected sql.NullBool `gorm:"column:waterColumnCollected"`
}

func (PhysicalData) TableName() string { return "physical_data" }

// ChemicalData holds laboratory analyte concentrations. Columns are sparse:
// only measured analytes are ever written, and a below-detection-limit
// result is stored as the negated detection threshold.
type ChemicalData struct {
	ID int64 `gorm:"primary_key"`

	Bicarbonate sql.NullFloat64 `gorm:"column:bicarbonate"`
	Chloride    sql.NullFloat64 `gorm:"column:chloride"`
	Sulfate     sql.NullFloat64 `gorm:"column:sulfate"`
	H2S         sql.NullFloat64 `gorm:"column:H2S"`
	Lithium     sql.NullFloat64 `gorm:"column:lithium"`
	Boron       sql.NullFloat64 `gorm:"column:boron"`
	Sodium      sql.NullFloat64 `gorm:"column:sodium"`
	Potassium   sql.NullFloat64 `gorm:"column:potassium"`
	Calcium     sql.NullFloat64 `gorm:"column:calcium"`
	Magnesium   sql.NullFloat64 `gorm:"column:magnesium"`
	Iron        sql.NullFloat64 `gorm:"column:iron"`
	Aluminium   sql.NullFloat64 `gorm:"column:aluminium"`
	Arsenic     sql.NullFloat64 `gorm:"column:arsenic"`
	Caesium     sql.NullFloat64 `gorm:"column:caesium"`
	Rubidium    sql.NullFloat64 `gorm:"column:rubidium"`
	Manganese   sql.NullFloat64 `gorm:"column:manganese"`
	Ammonium    sql.NullFloat64 `gorm:"column:ammonium"`
	Nitrate     sql.NullFloat64 `gorm:"column:nitrate"`
	Bromide     sql.NullFloat64 `gorm:"column:bromide"`
	Silica      sql.NullFloat64 `gorm:"column:silica"`
}

func (ChemicalData) TableName() string { return "chemical_data" }

// Taxonomy is one OTU classification from a taxonomy upload. The table is a
// replace-all snapshot: each successful upload clears it and reinserts the
// complete new set.
type Taxonomy struct {
	ID int64 `gorm:"primary_key"`

	OTUID string `gorm:"column:otu_id;type:varchar(50);index"`

	// DataFileName records which upload produced the row; DNA-sequence files
	// are matched back by prefix of this name.
	DataFileName string `gorm:"type:varchar(255);index"`

	Domain      string  `gorm:"type:varchar(255)"`
	DomainConf  float64 `gorm:"column:domain_conf"`
	Phylum      string  `gorm:"type:varchar(255)"`
	PhylumConf  float64 `gorm:"column:phylum_conf"`
	Class       string  `gorm:"type:varchar(255)"`
	ClassConf   float64 `gorm:"column:class_conf"`
	Order       string  `gorm:"column:order_;type:varchar(255)"`
	OrderConf   float64 `gorm:"column:order_conf"`
	Family      string  `gorm:"type:varchar(255)"`
	FamilyConf  float64 `gorm:"column:family_conf"`
	Genus       string  `gorm:"type:varchar(255)"`
	GenusConf   float64 `gorm:"column:genus_conf"`
	Species     string  `gorm:"type:varchar(255)"`
	SpeciesConf float64 `gorm:"column:species_conf"`

	Sequence string `gorm:"type:text"`
}

func (Taxonomy) TableName() string { return "taxonomy" }

// SampleTaxonomy links a sample to an OTU with its read count. One row per
// sample-with-nonzero-reads per OTU.
type SampleTaxonomy struct {
	SampleID   int64 `gorm:"column:sample_id;primary_key;auto_increment:false"`
	TaxonomyID int64 `gorm:"column:taxonomy_id;primary_key;auto_increment:false"`
	ReadCount  int   `gorm:"column:read_count"`
}

func (SampleTaxonomy) TableName() string { return "sample_taxonomy" }

// Image is an uploaded sample photograph.
type Image struct {
	ID       int64 `gorm:"primary_key"`
	SampleID int64 `gorm:"column:sample_id;index"`

	// ImagePath is the public object-storage URL.
	ImagePath string `gorm:"type:varchar(255)"`

	// ImageType is the tag embedded in the image file name.
	ImageType string `gorm:"type:varchar(20)"`
}

func (Image) TableName() string { return "image" }
