package canonical

// MergeLineItems extends a with b's data per-field. An existing populated
// value is never overwritten by another populated value: later passes fill
// gaps, they do not correct earlier data. Unit and source follow the same
// fill-if-blank rule.
func MergeLineItems(a, b *LineItem, years []string) *LineItem {
	out := NewLineItem()
	if a != nil {
		for y, c := range a.Values {
			out.Values[y] = c
		}
		out.Source = a.Source
		out.Unit = a.Unit
	}
	if b == nil {
		return out
	}
	for _, y := range years {
		incoming, ok := b.Values[y]
		if !ok || incoming.IsMissing() {
			continue
		}
		if existing, ok := out.Values[y]; !ok || existing.IsMissing() {
			out.Values[y] = incoming
		}
	}
	if out.Unit == "" && b.Unit != "" {
		out.Unit = b.Unit
	}
	if out.Source == "" && b.Source != "" {
		out.Source = b.Source
	}
	return out
}

// Merge extends base with add. Labels only in add are copied over; shared
// labels merge fill-if-blank. The result is first-writer-wins per field,
// so Merge(a, b) and Merge(b, a) may legitimately differ.
func Merge(base, add Snapshot, years []string) Snapshot {
	out := make(Snapshot, len(base)+len(add))
	for k, v := range base {
		out[k] = MergeLineItems(v, nil, years)
	}
	for k, v := range add {
		if existing, ok := out[k]; ok {
			out[k] = MergeLineItems(existing, v, years)
		} else {
			out[k] = MergeLineItems(v, nil, years)
		}
	}
	return out
}

// InjectYear backfills a single historical year column into base from a
// lower-confidence pass. Only labels that already exist in base and whose
// source is in allowedSources receive the injected value; labels appearing
// only in the injected payload are discarded. A label the payload misses
// gets the missing sentinel for that year so the column is always present.
func InjectYear(base, injected Snapshot, year string, allowedSources ...string) {
	allowed := make(map[string]bool, len(allowedSources))
	for _, s := range allowedSources {
		allowed[s] = true
	}
	for label, rec := range base {
		if !allowed[rec.Source] {
			continue
		}
		rec.Values[year] = injected[label].Value(year)
	}
}
