package canonical

import (
	"strconv"

	"credit_appraisal/pkg/core/normalize"
)

// Finalize applies the document-level rules that run once the snapshot is
// complete, right before it is persisted:
//
//  1. blank units get the configured default (e.g. "₹ crore");
//  2. negative monetary amounts are rewritten as parenthesized-negative
//     tokens, matching how the source statements print outflows. Cells
//     already in parenthesized form are left untouched.
func Finalize(s Snapshot, defaultUnit string, years []string) {
	for _, rec := range s {
		if rec.Unit == "" {
			rec.Unit = defaultUnit
		}
		for _, year := range years {
			cell, ok := rec.Values[year]
			if !ok {
				continue
			}
			if v, isMonetary := cell.MonetaryValue(); isMonetary && v < 0 {
				rec.Values[year] = normalize.ParenNegative(strconv.FormatInt(-v, 10))
			}
		}
	}
}
