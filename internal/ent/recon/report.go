package recon

import "time"

// Outcome is the terminal state of one reconciliation unit.
type Outcome int

const (
	Uploaded Outcome = iota
	Errored
	Skipped
)

// Category names a class of source files with its own report section.
type Category string

const (
	CatFeature  Category = "features"
	CatSample   Category = "samples"
	CatGeochem  Category = "geochemistry"
	CatTaxonomy Category = "taxonomy"
	CatDNA      Category = "dna"
	CatImage    Category = "images"
)

// Categories lists report sections in processing order.
var Categories = []Category{
	CatFeature, CatSample, CatGeochem, CatTaxonomy, CatDNA, CatImage,
}

// FileResult is the outcome of one file, relative to the import root.
type FileResult struct {
	Path    string  `json:"path"`
	Outcome Outcome `json:"-"`
	Records int     `json:"records,omitempty"`
	Reason  string  `json:"reason,omitempty"`
	Err     error   `json:"-"`
}

// CategoryReport partitions one category's files into the three outcome sets.
type CategoryReport struct {
	Category Category     `json:"category"`
	Uploaded []FileResult `json:"uploaded,omitempty"`
	Errors   []FileResult `json:"errors,omitempty"`
	Skipped  []FileResult `json:"skipped,omitempty"`
}

// Add files a result into the matching outcome set.
func (c *CategoryReport) Add(res FileResult) {
	switch res.Outcome {
	case Uploaded:
		c.Uploaded = append(c.Uploaded, res)
	case Errored:
		c.Errors = append(c.Errors, res)
	case Skipped:
		c.Skipped = append(c.Skipped, res)
	}
}

// Records sums the record counts of the uploaded files.
func (c *CategoryReport) Records() int {
	var res int
	for _, f := range c.Uploaded {
		res += f.Records
	}
	return res
}

// Report is the merged result of one run. Each category processor returns
// its own CategoryReport; the coordinator merges them here instead of
// mutating shared state.
type Report struct {
	Started    time.Time        `json:"started"`
	Finished   time.Time        `json:"finished"`
	Categories []CategoryReport `json:"categories"`
	// Failure carries a batch-level failure that happened outside any one
	// file's scope; empty on a normal run.
	Failure string `json:"failure,omitempty"`
}

// Merge appends a category report.
func (r *Report) Merge(c CategoryReport) {
	r.Categories = append(r.Categories, c)
}

// HasErrors reports whether any file errored or the batch itself failed.
func (r *Report) HasErrors() bool {
	if r.Failure != "" {
		return true
	}
	for _, c := range r.Categories {
		if len(c.Errors) > 0 {
			return true
		}
	}
	return false
}
