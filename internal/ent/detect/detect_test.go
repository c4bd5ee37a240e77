package detect_test

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/springsdata/springsync/internal/ent/detect"
	"github.com/springsdata/springsync/internal/ent/sheet"
)

func TestDetect(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Detect Suite")
}

func txt(s string) sheet.Cell {
	return sheet.Cell{Type: sheet.Text, Value: s}
}

func num(s string) sheet.Cell {
	return sheet.Cell{Type: sheet.Number, Value: s}
}

var empty = sheet.Cell{Type: sheet.Empty}

var _ = Describe("Detect", func() {
	It("recognizes the NZGAL layout by its sentinel", func() {
		g := sheet.NewMemGrid([][]sheet.Cell{
			{txt("Geochemistry Results"), empty, empty},
			{empty, empty, txt("P1.0023")},
			{txt("Chloride"), empty, num("104")},
		})
		Expect(detect.Detect(g)).To(Equal(detect.KindGeochemNZGAL))
	})

	It("recognizes the transposed UoW layout", func() {
		g := sheet.NewMemGrid([][]sheet.Cell{
			{txt("Sample"), txt("Lithium"), txt("Boron")},
			{txt("P1.0023"), num("0.42"), num("1.1")},
		})
		Expect(detect.Detect(g)).To(Equal(detect.KindGeochemUoW))
	})

	It("rejects a metadata sheet that merely mentions samples", func() {
		g := sheet.NewMemGrid([][]sheet.Cell{
			{txt("Sample"), txt("Lithium")},
			{txt("P1.0023"), txt("awaiting analysis")},
		})
		Expect(detect.Detect(g)).To(Equal(detect.KindUnknown))
	})

	It("recognizes a taxonomy sheet by its full header set", func() {
		header := []sheet.Cell{txt("OTUId")}
		for _, rank := range []string{
			"Domain", "Phylum", "Class", "Order", "Family", "Genus", "Species",
		} {
			header = append(header, txt(rank), txt(rank+"Conf"))
		}
		header = append(header, txt("P1.0023"), txt("P1.0099.repeat"))
		g := sheet.NewMemGrid([][]sheet.Cell{
			header,
			{txt("OTU_1"), txt("Bacteria")},
		})
		Expect(detect.Detect(g)).To(Equal(detect.KindTaxonomy))
	})

	It("rejects a taxonomy sheet missing a confidence column", func() {
		g := sheet.NewMemGrid([][]sheet.Cell{
			{txt("OTUId"), txt("Domain"), txt("P1.0023")},
		})
		Expect(detect.Detect(g)).To(Equal(detect.KindUnknown))
	})

	It("rejects a taxonomy header without read-count columns", func() {
		header := []sheet.Cell{txt("OTUId")}
		for _, rank := range []string{
			"Domain", "Phylum", "Class", "Order", "Family", "Genus", "Species",
		} {
			header = append(header, txt(rank), txt(rank+"Conf"))
		}
		g := sheet.NewMemGrid([][]sheet.Cell{header})
		Expect(detect.Detect(g)).To(Equal(detect.KindUnknown))
	})

	It("classifies an unrelated sheet as unknown", func() {
		g := sheet.NewMemGrid([][]sheet.Cell{
			{txt("Invoice"), txt("Amount")},
			{txt("Lab processing"), num("120.00")},
		})
		Expect(detect.Detect(g)).To(Equal(detect.KindUnknown))
	})
})
