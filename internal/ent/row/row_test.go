package row_test

import (
	"strings"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/springsdata/springsync/internal/ent/recon"
	"github.com/springsdata/springsync/internal/ent/row"
)

func TestRow(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Row Suite")
}

var _ = Describe("Extract", func() {
	It("maps records to header columns in source order", func() {
		src := "#FeatureName\tDistrict\tTemp\n" +
			"Champagne Pool\tRotorua\t74.5\n" +
			"Inferno Crater\tTaupo\t63\n"
		rows, err := row.Extract(strings.NewReader(src))
		Expect(err).ToNot(HaveOccurred())
		Expect(rows).To(HaveLen(2))
		Expect(rows[0].Columns).
			To(Equal([]string{"#FeatureName", "District", "Temp"}))

		v, ok := rows[0].Get("#FeatureName")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("Champagne Pool"))

		v, ok = rows[1].Get("Temp")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("63"))
	})

	It("strips a UTF-8 byte-order mark from the header", func() {
		src := "\uFEFF#FeatureName\tTemp\nChampagne Pool\t74.5\n"
		rows, err := row.Extract(strings.NewReader(src))
		Expect(err).ToNot(HaveOccurred())
		_, ok := rows[0].Get("#FeatureName")
		Expect(ok).To(BeTrue())
	})

	It("unquotes values and skips blank lines", func() {
		src := "#FeatureName\tComments\n" +
			"\n" +
			"Frying Pan Lake\t\"very turbid, steaming\"\n" +
			"   \n"
		rows, err := row.Extract(strings.NewReader(src))
		Expect(err).ToNot(HaveOccurred())
		Expect(rows).To(HaveLen(1))
		v, _ := rows[0].Get("Comments")
		Expect(v).To(Equal("very turbid, steaming"))
	})

	It("tolerates records shorter than the header", func() {
		src := "#FeatureName\tDistrict\tTemp\nEcho Crater\n"
		rows, err := row.Extract(strings.NewReader(src))
		Expect(err).ToNot(HaveOccurred())
		Expect(rows).To(HaveLen(1))
		_, ok := rows[0].Get("District")
		Expect(ok).To(BeFalse())
	})

	It("treats empty values as absent", func() {
		src := "#FeatureName\tDistrict\nEcho Crater\t  \n"
		rows, err := row.Extract(strings.NewReader(src))
		Expect(err).ToNot(HaveOccurred())
		_, ok := rows[0].Get("District")
		Expect(ok).To(BeFalse())
	})

	It("fails on an empty source", func() {
		_, err := row.Extract(strings.NewReader(""))
		Expect(err).To(HaveOccurred())
		var pe *recon.ParseError
		Expect(err).To(BeAssignableToTypeOf(pe))
	})
})
