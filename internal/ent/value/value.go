// Package value canonicalizes raw spreadsheet cell content into storable
// scalars: numeric results, below-detection-limit thresholds, comment-derived
// booleans and legacy fixed-decimal display rounding.
package value

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	bdlRe        = regexp.MustCompile(`^<\s*(\d+(?:\.\d+)?)$`)
	fixedFmtRe   = regexp.MustCompile(`^0(?:\.(0+))?$`)
	colourRe     = regexp.MustCompile(`(?i)^ff([a-f0-9]{6})$`)
	legacyDateRe = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4} \d{1,2}:\d{1,2}$`)
)

const (
	legacyDateLayout = "2/1/2006 15:4"
	dateLayout       = "2006-01-02 15:04:05"
)

// Round applies legacy fixed-decimal display rounding: when format is '0'
// followed by N zeros after a decimal point, the value is parsed as an exact
// decimal and rounded half-up to N places. Any other format, and any value
// that does not parse, passes through unchanged; the legacy writer produced
// both and neither is fatal.
func Round(raw, format string) string {
	m := fixedFmtRe.FindStringSubmatch(strings.TrimSpace(format))
	if m == nil {
		return raw
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		slog.Debug("Value not a decimal, skipping display rounding",
			"value", raw, "format", format)
		return raw
	}
	return d.Round(int32(len(m[1]))).String()
}

// Interpret canonicalizes a single result string:
//
//   - '<N' becomes '-N', storing a below-detection-limit result as the
//     negated threshold;
//   - a number > 0 is kept as is;
//   - a number <= 0 is canonicalized to '0.0';
//   - anything else yields no value (ok=false); the caller decides whether
//     that aborts the row, since many non-data cells legitimately fail here.
func Interpret(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if m := bdlRe.FindStringSubmatch(s); m != nil {
		return "-" + m[1], true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", false
	}
	if f > 0 {
		return s, true
	}
	return "0.0", true
}

// Result rounds under the optional display format and interprets.
func Result(raw, format string) (string, bool) {
	return Interpret(Round(raw, format))
}

// The soil and water-column collection flags were not recorded by early
// tablet builds; the field teams noted them in the comments instead.
var (
	soilYesRe  = regexp.MustCompile(`(?i)(soil taken)|(lots of soil)`)
	soilNoRe   = regexp.MustCompile(`(?i)no soil`)
	waterYesRe = regexp.MustCompile(`(?i)water column taken`)
	waterNoRe  = regexp.MustCompile(
		`(?i)(no water column)` +
			`|(not deep enough for water column)` +
			`|(Too fast flowing for water sampler)` +
			`|(no column, too fast flowing)`)
)

// Bool canonicalizes an explicit true/false value, or infers one from the
// comment text via the paired regexes. ok=false means the flag stays absent,
// which is 'no update', not 'false'.
func Bool(explicit, comment string, yes, no *regexp.Regexp) (string, bool) {
	if explicit != "" {
		if explicit == "true" {
			return "1", true
		}
		return "0", true
	}
	if yes.MatchString(comment) {
		return "1", true
	}
	if no.MatchString(comment) {
		return "0", true
	}
	return "", false
}

// SoilCollected resolves the soil-collection flag.
func SoilCollected(explicit, comment string) (string, bool) {
	return Bool(explicit, comment, soilYesRe, soilNoRe)
}

// WaterColumnCollected resolves the water-column-collection flag.
func WaterColumnCollected(explicit, comment string) (string, bool) {
	return Bool(explicit, comment, waterYesRe, waterNoRe)
}

// ColourHex extracts the RGB part of the tablet's 'ffRRGGBB' colour values.
// Anything else is dropped rather than stored.
func ColourHex(raw string) (string, bool) {
	m := colourRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// CanonicalDate rewrites the old tablet date format 'd/m/yyyy h:m' to
// 'yyyy-mm-dd hh:mm:ss'. Dates already canonical pass through unchanged.
func CanonicalDate(raw string) string {
	s := strings.TrimSpace(raw)
	if !legacyDateRe.MatchString(s) {
		return raw
	}
	t, err := time.Parse(legacyDateLayout, s)
	if err != nil {
		return raw
	}
	return t.Format(dateLayout)
}
