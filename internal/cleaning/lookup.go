package cleaning

//
// Normalization of cell values.
//

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Synonyms maps normalized strings to their canonical value.
var Synonyms = map[string]any{
	"reaction time": "rt",
	"reaction_time": "rt",
	"true":          1,
	"false":         0,
}

var lowerCaser = cases.Lower(language.Und)

// LookupValue normalizes a cell value. Strings are trimmed, converted to
// lower case and to the NFC form, then replaced using [Synonyms]. Other
// values are returned unchanged.
func LookupValue(value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}
	s = lowerCaser.String(norm.NFC.String(strings.TrimSpace(s)))
	if canonical, found := Synonyms[s]; found {
		return canonical
	}
	return s
}
