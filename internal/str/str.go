package str

import (
	"encoding/base64"
	"strings"
)

// ObservationID derives the stable identifier of a geothermal feature from
// its display name. The identifier is computed once at first sight and never
// recalculated, so later corrections of the name do not change identity.
func ObservationID(featureName string) string {
	id := base64.StdEncoding.EncodeToString([]byte(featureName))
	if len(id) > 80 {
		id = id[:80]
	}
	return id
}

// Unquote strips one layer of surrounding double quotes that spreadsheet
// editors add around tab-delimited values.
func Unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
