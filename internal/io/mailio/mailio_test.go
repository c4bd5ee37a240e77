package mailio

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/springsdata/springsync/internal/ent/recon"
)

func TestMailio(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "MailIO Suite")
}

func sampleReport() recon.Report {
	rep := recon.Report{
		Started:  time.Date(2014, 2, 3, 9, 0, 0, 0, time.UTC),
		Finished: time.Date(2014, 2, 3, 9, 5, 0, 0, time.UTC),
	}
	cat := recon.CategoryReport{Category: recon.CatSample}
	cat.Add(recon.FileResult{
		Path: "data-samples-20140203.xls", Outcome: recon.Uploaded, Records: 3,
	})
	rep.Merge(cat)
	return rep
}

var _ = Describe("subject", func() {
	It("reports a clean run as ok", func() {
		Expect(subject(sampleReport())).To(Equal("Springs data upload: ok"))
	})

	It("flags file errors", func() {
		rep := sampleReport()
		cat := recon.CategoryReport{Category: recon.CatGeochem}
		cat.Add(recon.FileResult{Path: "lab/bad.xlsx", Outcome: recon.Errored})
		rep.Merge(cat)
		Expect(subject(rep)).To(Equal("Springs data upload: errors"))
	})

	It("flags an aborted batch", func() {
		rep := sampleReport()
		rep.Failure = "store connection lost"
		Expect(subject(rep)).To(Equal("Springs data upload: FAILED"))
	})
})

var _ = Describe("body", func() {
	It("summarizes categories and appends the full report", func() {
		b := body(sampleReport())
		Expect(b).To(ContainSubstring("samples: 1 uploaded, 0 errors, 0 skipped"))
		Expect(b).To(ContainSubstring("data-samples-20140203.xls"))
	})

	It("names a batch failure", func() {
		rep := sampleReport()
		rep.Failure = "store connection lost"
		Expect(body(rep)).To(ContainSubstring("store connection lost"))
	})
})
