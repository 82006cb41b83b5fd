// Package normalize converts raw extraction payload cells (strings with
// currency symbols, commas, accounting parentheses, or the literal "null")
// into canonical typed values used by the rest of the appraisal pipeline.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MissingSentinel is the literal written for absent, unreadable, or
// zero-suppressed values. It is distinct from every valid numeric string.
const MissingSentinel = "-"

// CellKind identifies the normalized form a cell ended up in.
type CellKind int

const (
	// KindMissing marks an absent or unreadable value.
	KindMissing CellKind = iota
	// KindMonetary is a whole monetary amount at the printed unit scale.
	KindMonetary
	// KindPerShare is a per-share/per-unit value with decimals preserved.
	KindPerShare
	// KindParenNegative preserves accounting negative notation, e.g. "(3699)".
	// It is never implicitly converted to a signed number; consumers that
	// need arithmetic must strip the parentheses themselves.
	KindParenNegative
)

// Cell is the result of normalizing one raw value. Exactly one of the
// backing fields is meaningful, selected by kind.
type Cell struct {
	kind     CellKind
	monetary int64
	perShare float64
	paren    string // digits only, no parentheses or commas
}

// Missing returns the missing-value sentinel cell.
func Missing() Cell { return Cell{kind: KindMissing} }

// Monetary returns a whole monetary amount cell.
func Monetary(v int64) Cell { return Cell{kind: KindMonetary, monetary: v} }

// PerShare returns a per-share/per-unit cell.
func PerShare(v float64) Cell { return Cell{kind: KindPerShare, perShare: v} }

// ParenNegative returns a parenthesized-negative cell from its digit string.
func ParenNegative(digits string) Cell { return Cell{kind: KindParenNegative, paren: digits} }

// Kind reports which form the cell holds.
func (c Cell) Kind() CellKind { return c.kind }

// IsMissing reports whether the cell is the missing sentinel.
func (c Cell) IsMissing() bool { return c.kind == KindMissing }

// MonetaryValue returns the integer amount; ok is false for other kinds.
func (c Cell) MonetaryValue() (int64, bool) { return c.monetary, c.kind == KindMonetary }

// PerShareValue returns the float amount; ok is false for other kinds.
func (c Cell) PerShareValue() (float64, bool) { return c.perShare, c.kind == KindPerShare }

// ParenDigits returns the digit string of a parenthesized-negative cell.
func (c Cell) ParenDigits() (string, bool) { return c.paren, c.kind == KindParenNegative }

// String renders the cell the way it appears in the canonical JSON document.
func (c Cell) String() string {
	switch c.kind {
	case KindMonetary:
		return strconv.FormatInt(c.monetary, 10)
	case KindPerShare:
		return strconv.FormatFloat(c.perShare, 'f', -1, 64)
	case KindParenNegative:
		return "(" + c.paren + ")"
	default:
		return MissingSentinel
	}
}

// MarshalJSON writes monetary cells as JSON integers, per-share cells as
// JSON numbers with decimals, parenthesized cells as "(digits)" strings and
// the sentinel as its literal string.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case KindMonetary:
		return []byte(strconv.FormatInt(c.monetary, 10)), nil
	case KindPerShare:
		return json.Marshal(c.perShare)
	case KindParenNegative:
		return json.Marshal("(" + c.paren + ")")
	default:
		return json.Marshal(MissingSentinel)
	}
}

// UnmarshalJSON reverses MarshalJSON. Numbers without a fractional part load
// as monetary integers, numbers with one as per-share floats, "(digits)"
// strings as parenthesized cells, and every other string as the sentinel.
func (c *Cell) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("decode cell: %w", err)
	}
	switch t := v.(type) {
	case nil:
		*c = Missing()
	case json.Number:
		s := t.String()
		if !strings.ContainsAny(s, ".eE") {
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return fmt.Errorf("decode cell integer %q: %w", s, err)
			}
			*c = Monetary(n)
			return nil
		}
		f, err := t.Float64()
		if err != nil {
			return fmt.Errorf("decode cell float %q: %w", s, err)
		}
		*c = PerShare(f)
	case string:
		if digits, ok := parenInterior(t); ok {
			*c = ParenNegative(digits)
			return nil
		}
		*c = Missing()
	default:
		*c = Missing()
	}
	return nil
}

// parenInterior reports whether s is a well-formed "(digits)" token and
// returns the interior digits.
func parenInterior(s string) (string, bool) {
	if len(s) < 3 || s[0] != '(' || s[len(s)-1] != ')' {
		return "", false
	}
	inner := s[1 : len(s)-1]
	for _, r := range inner {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return inner, true
}
