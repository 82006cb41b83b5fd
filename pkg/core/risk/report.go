package risk

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RatioScore is one ratio's scoring entry in the report: its threshold,
// the per-ratio maximum, and per-year value/flag/score triples.
type RatioScore struct {
	Threshold string
	Max       float64
	Values    map[string]float64
	RedFlags  map[string]bool
	Scores    map[string]float64
}

// MarshalJSON writes the flat per-year shape the report stores:
//
//	{"threshold": "<1.2", "max": 3.85,
//	 "value_2025": 9.58, "red_flag_2025": false, "score_2025": 3.85, ...}
func (r *RatioScore) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, 2+3*len(r.Values))
	thr, _ := json.Marshal(r.Threshold)
	max, _ := json.Marshal(r.Max)
	out["threshold"] = thr
	out["max"] = max
	for year, v := range r.Values {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out["value_"+year] = b
	}
	for year, f := range r.RedFlags {
		out["red_flag_"+year] = []byte(strconv.FormatBool(f))
	}
	for year, s := range r.Scores {
		b, err := json.Marshal(s)
		if err != nil {
			return nil, err
		}
		out["score_"+year] = b
	}
	return json.Marshal(out)
}

// UnmarshalJSON reverses MarshalJSON.
func (r *RatioScore) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Values = make(map[string]float64)
	r.RedFlags = make(map[string]bool)
	r.Scores = make(map[string]float64)
	for k, v := range raw {
		switch {
		case k == "threshold":
			if err := json.Unmarshal(v, &r.Threshold); err != nil {
				return err
			}
		case k == "max":
			if err := json.Unmarshal(v, &r.Max); err != nil {
				return err
			}
		case strings.HasPrefix(k, "value_"):
			var f float64
			if err := json.Unmarshal(v, &f); err != nil {
				return err
			}
			r.Values[strings.TrimPrefix(k, "value_")] = f
		case strings.HasPrefix(k, "red_flag_"):
			var b bool
			if err := json.Unmarshal(v, &b); err != nil {
				return err
			}
			r.RedFlags[strings.TrimPrefix(k, "red_flag_")] = b
		case strings.HasPrefix(k, "score_"):
			var f float64
			if err := json.Unmarshal(v, &f); err != nil {
				return err
			}
			r.Scores[strings.TrimPrefix(k, "score_")] = f
		}
	}
	return nil
}
