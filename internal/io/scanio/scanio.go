// Package scanio walks the import root and classifies new files by name
// pattern. Classification by name only decides which parser tries a file;
// workbook content is still schema-detected cell by cell.
package scanio

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
)

var (
	featureFileRe  = regexp.MustCompile(`^data-features-\d+\.xls$`)
	sampleFileRe   = regexp.MustCompile(`^data-samples-\d+\.xls$`)
	workbookFileRe = regexp.MustCompile(`(?i)\.xlsx?$`)
	sequenceFileRe = regexp.MustCompile(`(?i)\.(fasta|fa|txt)$`)
	imageFileRe    = regexp.MustCompile(`^(P1\.\d{4})_([A-Z]*)_\d+\.jpg$`)
)

// ImageFile is a sample photograph with the sample number and type tag
// embedded in its name.
type ImageFile struct {
	Path         string
	SampleNumber string
	ImageType    string
}

// Manifest lists one run's input files, paths relative to Root. Each
// category is sorted ascending: later files' updates must apply after
// earlier files' inserts for the same natural key.
type Manifest struct {
	Root      string
	Features  []string
	Samples   []string
	Workbooks []string
	Sequences []string
	Images    []ImageFile
}

// Abs joins a manifest-relative path back onto the import root.
func (m Manifest) Abs(rel string) string {
	return filepath.Join(m.Root, rel)
}

// Scan walks root and classifies every regular file. The tablet app exports
// feature and sample files with an .xls extension even though they are
// tab-delimited text, so those two patterns take precedence over the
// workbook pattern.
func Scan(root string) (Manifest, error) {
	man := Manifest{Root: root}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name := d.Name()
		switch {
		case featureFileRe.MatchString(name):
			man.Features = append(man.Features, rel)
		case sampleFileRe.MatchString(name):
			man.Samples = append(man.Samples, rel)
		case workbookFileRe.MatchString(name):
			man.Workbooks = append(man.Workbooks, rel)
		case sequenceFileRe.MatchString(name):
			man.Sequences = append(man.Sequences, rel)
		default:
			if m := imageFileRe.FindStringSubmatch(name); m != nil {
				man.Images = append(man.Images, ImageFile{
					Path:         rel,
					SampleNumber: m[1],
					ImageType:    m[2],
				})
			}
		}
		return nil
	})
	if err != nil {
		return man, err
	}

	sort.Strings(man.Features)
	sort.Strings(man.Samples)
	sort.Strings(man.Workbooks)
	sort.Strings(man.Sequences)
	sort.Slice(man.Images, func(i, j int) bool {
		return man.Images[i].Path < man.Images[j].Path
	})
	return man, nil
}
