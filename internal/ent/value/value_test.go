package value_test

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/springsdata/springsync/internal/ent/value"
)

func TestValue(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Value Suite")
}

var _ = Describe("Interpret", func() {
	It("stores below-detection-limit results as negated thresholds", func() {
		res, ok := value.Interpret("<0.01")
		Expect(ok).To(BeTrue())
		Expect(res).To(Equal("-0.01"))

		res, ok = value.Interpret("< 5")
		Expect(ok).To(BeTrue())
		Expect(res).To(Equal("-5"))
	})

	It("keeps positive numbers unchanged", func() {
		res, ok := value.Interpret("7.25")
		Expect(ok).To(BeTrue())
		Expect(res).To(Equal("7.25"))
	})

	It("canonicalizes zero and negative numbers to 0.0", func() {
		for _, raw := range []string{"0", "0.00", "-3.2"} {
			res, ok := value.Interpret(raw)
			Expect(ok).To(BeTrue())
			Expect(res).To(Equal("0.0"))
		}
	})

	It("rejects non-numeric content", func() {
		for _, raw := range []string{"", "n/a", "pending", "<abc"} {
			_, ok := value.Interpret(raw)
			Expect(ok).To(BeFalse())
		}
	})
})

var _ = Describe("Round", func() {
	It("rounds half-up to the format's decimal places", func() {
		Expect(value.Round("1.2345", "0.00")).To(Equal("1.23"))
		Expect(value.Round("1.235", "0.00")).To(Equal("1.24"))
		Expect(value.Round("2.5", "0")).To(Equal("3"))
	})

	It("keeps already-rounded values stable", func() {
		res := value.Round("1.23", "0.00")
		Expect(value.Round(res, "0.00")).To(Equal(res))
	})

	It("normalizes trailing zeros to the displayed value", func() {
		Expect(value.Round("1.23000", "0.00")).To(Equal("1.23"))
		r1, _ := value.Result("1.23000", "0.00")
		r2, _ := value.Result("1.23", "")
		Expect(r1).To(Equal(r2))
	})

	It("ignores formats it does not recognize", func() {
		Expect(value.Round("1.2345", "#,##0.00")).To(Equal("1.2345"))
		Expect(value.Round("1.2345", "")).To(Equal("1.2345"))
	})

	It("passes non-numeric values through", func() {
		Expect(value.Round("<0.01", "0.00")).To(Equal("<0.01"))
	})
})

var _ = Describe("Result", func() {
	It("rounds before interpreting", func() {
		res, ok := value.Result("0.004", "0.00")
		Expect(ok).To(BeTrue())
		Expect(res).To(Equal("0.0"))
	})

	It("interprets thresholds regardless of format", func() {
		res, ok := value.Result("<0.05", "0.00")
		Expect(ok).To(BeTrue())
		Expect(res).To(Equal("-0.05"))
	})
})

var _ = Describe("SoilCollected", func() {
	It("prefers the explicit flag over the comment", func() {
		res, ok := value.SoilCollected("true", "no soil")
		Expect(ok).To(BeTrue())
		Expect(res).To(Equal("1"))

		res, ok = value.SoilCollected("false", "soil taken")
		Expect(ok).To(BeTrue())
		Expect(res).To(Equal("0"))
	})

	It("infers the flag from the comment", func() {
		res, ok := value.SoilCollected("", "Lots of soil around the vent")
		Expect(ok).To(BeTrue())
		Expect(res).To(Equal("1"))

		res, ok = value.SoilCollected("", "No soil, bare sinter")
		Expect(ok).To(BeTrue())
		Expect(res).To(Equal("0"))
	})

	It("stays absent without explicit flag or matching comment", func() {
		_, ok := value.SoilCollected("", "clear water, strong smell")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("WaterColumnCollected", func() {
	It("infers the flag from the comment", func() {
		res, ok := value.WaterColumnCollected("", "Water column taken at 1m")
		Expect(ok).To(BeTrue())
		Expect(res).To(Equal("1"))

		res, ok = value.WaterColumnCollected("",
			"Not deep enough for water column")
		Expect(ok).To(BeTrue())
		Expect(res).To(Equal("0"))
	})
})

var _ = Describe("ColourHex", func() {
	It("strips the leading alpha channel", func() {
		res, ok := value.ColourHex("ff00ff88")
		Expect(ok).To(BeTrue())
		Expect(res).To(Equal("00ff88"))
	})

	It("drops values that are not tablet colours", func() {
		for _, raw := range []string{"00ff88", "red", "", "ffgg0011"} {
			_, ok := value.ColourHex(raw)
			Expect(ok).To(BeFalse())
		}
	})
})

var _ = Describe("CanonicalDate", func() {
	It("rewrites the legacy tablet format", func() {
		Expect(value.CanonicalDate("3/2/2014 9:45")).
			To(Equal("2014-02-03 09:45:00"))
	})

	It("keeps canonical dates unchanged", func() {
		Expect(value.CanonicalDate("2014-02-03 09:45:00")).
			To(Equal("2014-02-03 09:45:00"))
	})

	It("keeps unparseable values unchanged", func() {
		Expect(value.CanonicalDate("yesterday")).To(Equal("yesterday"))
	})
})
