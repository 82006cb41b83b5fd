// Package canonical builds and maintains the canonical financial snapshot:
// one merged, normalized document per company reporting cycle, keyed by
// canonical line-item label.
package canonical

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Dash variants that appear in statement exports: en dash, em dash, minus.
var dashVariants = []string{"–", "—", "−"}

// aliasLabels maps known alternate spellings onto one canonical phrasing so
// line items from different extraction passes merge onto the same key.
var aliasLabels = map[string]string{
	"Fair value changes on investments, net":                   "Fair value changes on investments, net (OCI)",
	"Trade payables - Micro enterprises and small enterprises": "Trade payables - Total outstanding dues of micro enterprises and small enterprises",
	"Trade payables - Other creditors":                         "Trade payables - Total outstanding dues of creditors other than micro enterprises and small enterprises",
}

// Label canonicalizes a line-item label: Unicode NFKC normalization, dash
// unification to ASCII hyphen, space-padded hyphens, single internal spaces,
// then alias substitution. Label(Label(x)) == Label(x).
func Label(s string) string {
	s = norm.NFKC.String(s)
	for _, d := range dashVariants {
		s = strings.ReplaceAll(s, d, "-")
	}
	s = strings.ReplaceAll(s, " -", " - ")
	s = strings.ReplaceAll(s, "- ", " - ")
	s = strings.Join(strings.Fields(s), " ")
	if canon, ok := aliasLabels[s]; ok {
		return canon
	}
	return s
}
