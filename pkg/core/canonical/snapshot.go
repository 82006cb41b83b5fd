package canonical

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"credit_appraisal/pkg/core/normalize"
)

// yearKeyPrefix is how year fields are spelled in the serialized document,
// e.g. "value_2025".
const yearKeyPrefix = "value_"

// LineItem is one financial statement line item across the tracked years.
type LineItem struct {
	// Values maps a year tag ("2025") to its normalized cell. Years not
	// observed are absent; they are never fabricated.
	Values map[string]normalize.Cell
	// Source is the statement-of-origin tag ("bs", "pl", "cf") or empty.
	Source string
	// Unit is the unit exactly as printed, defaulted only at finalization.
	Unit string
}

// NewLineItem returns an item with an empty year map.
func NewLineItem() *LineItem {
	return &LineItem{Values: make(map[string]normalize.Cell)}
}

// Value returns the cell for a year, or the missing sentinel when absent.
func (li *LineItem) Value(year string) normalize.Cell {
	if li == nil {
		return normalize.Missing()
	}
	if c, ok := li.Values[year]; ok {
		return c
	}
	return normalize.Missing()
}

// MarshalJSON writes the document shape consumed downstream:
//
//	{"value_2025": 1000, "value_2024": "(81)", "source": "pl", "unit": "₹ crore"}
//
// Keys are emitted in encoding/json's sorted-map order, which keeps repeated
// runs byte-identical.
func (li *LineItem) MarshalJSON() ([]byte, error) {
	m := make(map[string]json.RawMessage, len(li.Values)+2)
	for year, cell := range li.Values {
		b, err := json.Marshal(cell)
		if err != nil {
			return nil, err
		}
		m[yearKeyPrefix+year] = b
	}
	src, _ := json.Marshal(li.Source)
	unit, _ := json.Marshal(li.Unit)
	m["source"] = src
	m["unit"] = unit
	return json.Marshal(m)
}

// UnmarshalJSON reverses MarshalJSON, accepting any set of value_<year> keys.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("decode line item: %w", err)
	}
	li.Values = make(map[string]normalize.Cell)
	for k, raw := range m {
		switch {
		case strings.HasPrefix(k, yearKeyPrefix):
			var c normalize.Cell
			if err := json.Unmarshal(raw, &c); err != nil {
				return fmt.Errorf("decode %s: %w", k, err)
			}
			li.Values[strings.TrimPrefix(k, yearKeyPrefix)] = c
		case k == "source":
			if err := json.Unmarshal(raw, &li.Source); err != nil {
				return fmt.Errorf("decode source: %w", err)
			}
		case k == "unit":
			if err := json.Unmarshal(raw, &li.Unit); err != nil {
				return fmt.Errorf("decode unit: %w", err)
			}
		}
	}
	return nil
}

// Snapshot is the canonical financial-facts document for one company and
// reporting cycle: canonical label -> line item. It is mutated only by
// merge operations, which extend but never shrink it.
type Snapshot map[string]*LineItem

// Labels returns the canonical labels in sorted order.
func (s Snapshot) Labels() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// RawPayload is the shape the extraction boundary hands over: label ->
// record with value_<year>, source and unit fields still untyped.
type RawPayload map[string]map[string]interface{}

// Build normalizes a raw extraction payload into a snapshot: values typed
// per the normalizer rules, labels canonicalized, unit and source cleaned.
// Label collisions introduced by canonicalization merge fill-if-blank
// rather than overwriting.
func Build(payload RawPayload, years []string, opts normalize.Options) Snapshot {
	out := make(Snapshot, len(payload))
	for rawLabel, rec := range payload {
		if rec == nil {
			continue
		}
		unit := normalize.Unit(rec["unit"])
		if strings.Contains(strings.ToLower(rawLabel), "weighted average equity shares") {
			unit = "in shares"
		}
		item := NewLineItem()
		for _, year := range years {
			item.Values[year] = normalize.Value(rec[yearKeyPrefix+year], unit, rawLabel, opts)
		}
		item.Source = normalize.Source(rec["source"])
		item.Unit = unit

		label := Label(rawLabel)
		if existing, ok := out[label]; ok {
			out[label] = MergeLineItems(existing, item, years)
		} else {
			out[label] = item
		}
	}
	return out
}
