package sheetio

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/springsdata/springsync/internal/ent/recon"
	"github.com/springsdata/springsync/internal/ent/sheet"
)

func TestSheetio(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SheetIO Suite")
}

// memBiffSheet is an in-memory legacySheet; rowCount reports the highest
// row index, the way the BIFF reader does.
type memBiffSheet [][]string

func (s memBiffSheet) rowCount() int { return len(s) - 1 }

func (s memBiffSheet) row(i int) (legacyRow, bool) {
	if i < 0 || i >= len(s) || s[i] == nil {
		return nil, false
	}
	return memBiffRow(s[i]), true
}

type memBiffRow []string

func (r memBiffRow) cell(j int) (string, bool) {
	if j < 0 || j >= len(r) {
		return "", false
	}
	return r[j], true
}

var _ = Describe("Open", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "sheetio")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("recognizes the compound-file signature of legacy workbooks", func() {
		path := filepath.Join(dir, "results.xls")
		data := append(append([]byte{}, ole2Signature...), make([]byte, 512)...)
		Expect(os.WriteFile(path, data, 0644)).To(Succeed())
		Expect(isLegacyWorkbook(path)).To(BeTrue())

		zipPath := filepath.Join(dir, "results.xlsx")
		Expect(os.WriteFile(zipPath, []byte("PK\x03\x04junk"), 0644)).To(Succeed())
		Expect(isLegacyWorkbook(zipPath)).To(BeFalse())
	})

	It("reports unreadable files as format mismatches", func() {
		path := filepath.Join(dir, "truncated.xls")
		Expect(os.WriteFile(path, ole2Signature, 0644)).To(Succeed())

		_, err := Open(path)
		Expect(err).To(HaveOccurred())
		Expect(err).To(BeAssignableToTypeOf(&recon.FormatError{}))

		_, err = Open(filepath.Join(dir, "missing.xlsx"))
		Expect(err).To(BeAssignableToTypeOf(&recon.FormatError{}))
	})
})

var _ = Describe("legacyGrid", func() {
	It("builds a typed grid from a legacy worksheet", func() {
		g := legacyGrid(memBiffSheet{
			{"Geochemistry Results"},
			{"", "", "P1.0023"},
			{"Chloride", "mg/L", "104"},
			{"Sulphide (total as H2S)", "mg/L", "<0.01"},
		})

		Expect(g.Rows()).To(Equal(4))
		Expect(g.Cols()).To(Equal(3))
		Expect(g.CellType(2, 2)).To(Equal(sheet.Number))
		Expect(g.CellValue(2, 2)).To(Equal("104"))
		Expect(g.CellType(1, 2)).To(Equal(sheet.Text))
		Expect(g.CellType(3, 2)).To(Equal(sheet.Text))
		Expect(g.CellValue(3, 2)).To(Equal("<0.01"))
		Expect(g.CellType(0, 1)).To(Equal(sheet.Empty))
	})

	It("reads rows the reader cannot return as empty", func() {
		g := legacyGrid(memBiffSheet{
			{"Sample", "Lithium"},
			nil,
			{"P1.0023", "0.42"},
		})

		Expect(g.Rows()).To(Equal(3))
		Expect(g.CellType(1, 0)).To(Equal(sheet.Empty))
		Expect(g.CellValue(2, 1)).To(Equal("0.42"))
	})

	It("trims trailing empty rows and columns", func() {
		g := legacyGrid(memBiffSheet{
			{"Sample", "", "  "},
			{"P1.0023"},
			nil,
			nil,
		})

		Expect(g.Rows()).To(Equal(2))
		Expect(g.Cols()).To(Equal(1))
	})

	It("carries no display formats", func() {
		g := legacyGrid(memBiffSheet{{"1.235"}})
		Expect(g.CellType(0, 0)).To(Equal(sheet.Number))
		Expect(g.CellFormat(0, 0)).To(Equal(""))
	})
})
