package ratio

import (
	"strconv"
	"strings"
)

// Breached evaluates a threshold expression ("<1.2", ">90", "<10%") against
// a computed value. An empty or "N/A" threshold never flags; an expression
// without a leading comparator never flags either. Both comparisons are
// strict, so a value exactly on the threshold does not breach it.
func Breached(value float64, threshold string) bool {
	thr := strings.TrimSpace(threshold)
	if thr == "" || thr == "N/A" {
		return false
	}
	num := strings.TrimSuffix(strings.TrimLeft(thr, "<>"), "%")
	limit, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return false
	}
	switch {
	case strings.HasPrefix(thr, "<"):
		return value < limit
	case strings.HasPrefix(thr, ">"):
		return value > limit
	default:
		return false
	}
}
