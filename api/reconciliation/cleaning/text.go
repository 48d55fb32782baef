package cleaning

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	stripAccents  = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	whitespaceRun = regexp.MustCompile(`\s+`)

	// Cell artifacts carried over from spreadsheet escapes.
	markupArtifacts = strings.NewReplacer("_x000D_", " ", "\r", " ", "\n", " ")
)

// nullMarkers are the textual null representations the upstream
// exports produce. Matched case-insensitively after trimming.
var nullMarkers = map[string]struct{}{
	"nan":  {},
	"none": {},
	"nat":  {},
}

// NormalizeText upper-cases, strips diacritics and collapses
// whitespace runs. Header resolution and description matching both
// compare on this form.
func NormalizeText(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	out = strings.ToUpper(out)
	out = whitespaceRun.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// StripArtifacts removes embedded CR/LF escapes from a header cell and
// collapses the leftover whitespace.
func StripArtifacts(s string) string {
	out := markupArtifacts.Replace(s)
	out = whitespaceRun.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// CleanCell trims a raw cell and maps the textual null markers to the
// empty string.
func CleanCell(s string) string {
	out := strings.TrimSpace(s)
	if _, null := nullMarkers[strings.ToLower(out)]; null {
		return ""
	}
	return out
}
