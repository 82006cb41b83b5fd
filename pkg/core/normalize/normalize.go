package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// Options controls the policies that differ between deployments.
type Options struct {
	// SuppressZero treats a bare zero (string "0", numeric 0, or a
	// parenthesized "(0)") as the missing sentinel instead of a valid
	// amount. Statement extractions that zero-suppress blank rows use
	// this; deployments where a genuine zero matters keep it off.
	SuppressZero bool
}

var (
	nonDigitRe    = regexp.MustCompile(`[^\d]`)
	nonMonetaryRe = regexp.MustCompile(`[^\d\-]`)
	nonPerShareRe = regexp.MustCompile(`[^0-9.\-]`)
)

// degenerate residues left after stripping that cannot be parsed.
func degenerate(s string) bool {
	switch s {
	case "", "-", "--", ".":
		return true
	}
	return false
}

// perShareMetric reports whether the unit or label marks a per-unit measure.
func perShareMetric(unit, label string) bool {
	return strings.Contains(strings.ToLower(unit), "per share") ||
		strings.Contains(strings.ToLower(label), "per share")
}

// Value normalizes one raw cell. Extraction output is imperfect OCR/LLM
// text, so every malformed input degrades to the missing sentinel rather
// than erroring.
//
// Precedence:
//  1. nil -> missing
//  2. "null" (any case), "-", "--" -> missing
//  3. "(…)" -> parenthesized-negative token, commas and symbols stripped
//  4. per-share metrics -> float, decimals and sign preserved
//  5. everything else -> whole integer amount at the printed scale
//  6. already-numeric input follows the same per-share/monetary branch
func Value(raw interface{}, unit, label string, opts Options) Cell {
	switch v := raw.(type) {
	case nil:
		return Missing()
	case string:
		return stringValue(v, unit, label, opts)
	case float64:
		return numberValue(v, unit, label, opts)
	case float32:
		return numberValue(float64(v), unit, label, opts)
	case int:
		return numberValue(float64(v), unit, label, opts)
	case int64:
		return numberValue(float64(v), unit, label, opts)
	default:
		return Missing()
	}
}

func stringValue(raw, unit, label string, opts Options) Cell {
	s := strings.TrimSpace(raw)
	if strings.EqualFold(s, "null") || s == "-" || s == "--" {
		return Missing()
	}
	if s == "0" && opts.SuppressZero {
		return Missing()
	}
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		inner := nonDigitRe.ReplaceAllString(s[1:len(s)-1], "")
		if inner == "" || (opts.SuppressZero && inner == "0") {
			return Missing()
		}
		return ParenNegative(inner)
	}
	if perShareMetric(unit, label) {
		cleaned := nonPerShareRe.ReplaceAllString(s, "")
		if degenerate(cleaned) || (opts.SuppressZero && cleaned == "0") {
			return Missing()
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return Missing()
		}
		return PerShare(f)
	}
	cleaned := nonMonetaryRe.ReplaceAllString(s, "")
	if degenerate(cleaned) || (opts.SuppressZero && cleaned == "0") {
		return Missing()
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return Missing()
	}
	return Monetary(n)
}

func numberValue(f float64, unit, label string, opts Options) Cell {
	if f == 0 {
		if opts.SuppressZero {
			return Missing()
		}
		return Monetary(0)
	}
	if perShareMetric(unit, label) {
		return PerShare(f)
	}
	return Monetary(int64(f))
}

// Unit trims the printed unit string; non-strings become empty. The
// configured default unit is applied at document finalization, not here,
// so later passes can still fill a genuinely printed unit.
func Unit(raw interface{}) string {
	s, ok := raw.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// Statement-of-origin tags carried on every line item.
const (
	SourceBalanceSheet = "bs"
	SourceProfitLoss   = "pl"
	SourceCashFlow     = "cf"
)

// Source restricts the statement tag to the allowed set. The transitional
// "pf" tag some extractions emit maps to profit-and-loss; anything else is
// cleared to empty rather than rejected.
func Source(raw interface{}) string {
	s, _ := raw.(string)
	switch s {
	case SourceBalanceSheet, SourceProfitLoss, SourceCashFlow:
		return s
	case "pf":
		return SourceProfitLoss
	default:
		return ""
	}
}
