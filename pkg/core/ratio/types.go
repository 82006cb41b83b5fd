// Package ratio computes the fixed catalogue of credit ratios over a
// canonical financial snapshot. All computations are pure and recomputed
// from scratch each run.
package ratio

import (
	"encoding/json"
	"strconv"
)

// The 13 ratio names, spelled exactly as they appear in the ratios
// document and the risk report.
const (
	NameDSCR             = "DSCR"
	NameDebtEquity       = "Debt/Equity"
	NamePATMargin        = "PAT Margin"
	NameCurrentRatio     = "Current Ratio"
	NameQuickRatio       = "Quick Ratio"
	NameInterestCoverage = "Interest Coverage"
	NameNetProfitMargin  = "Net profit Margin"
	NameReturnOnAssets   = "Return on Assets"
	NameReturnOnEquity   = "Return on equity"
	NameEBITDAMargin     = "EBITDA Margin"
	NameReceivableDays   = "Accounts Receivable Days"
	NamePayableDays      = "Accounts payable days"
	NameAssetTurnover    = "Asset Turnover Ratio"
)

// Names lists the catalogue in presentation order.
var Names = []string{
	NameDSCR,
	NameDebtEquity,
	NamePATMargin,
	NameCurrentRatio,
	NameQuickRatio,
	NameInterestCoverage,
	NameNetProfitMargin,
	NameReturnOnAssets,
	NameReturnOnEquity,
	NameEBITDAMargin,
	NameReceivableDays,
	NamePayableDays,
	NameAssetTurnover,
}

// Result is one ratio for one year.
type Result struct {
	Value     float64 `json:"value"`
	Threshold string  `json:"threshold"`
	RedFlag   bool    `json:"red_flag"`
}

// MultiYear is one ratio across all computed years, the shape stored in the
// merged ratios document.
type MultiYear struct {
	Threshold string
	Values    map[string]float64
	RedFlags  map[string]bool
}

// NewMultiYear returns an empty multi-year record with the given threshold.
func NewMultiYear(threshold string) *MultiYear {
	return &MultiYear{
		Threshold: threshold,
		Values:    make(map[string]float64),
		RedFlags:  make(map[string]bool),
	}
}

// MarshalJSON writes the merged document shape:
//
//	{"threshold": "<1.2", "value_2025": 9.58, "red_flag_2025": false, ...}
func (m *MultiYear) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, 1+2*len(m.Values))
	thr, _ := json.Marshal(m.Threshold)
	out["threshold"] = thr
	for year, v := range m.Values {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out["value_"+year] = b
		out["red_flag_"+year] = []byte(strconv.FormatBool(m.RedFlags[year]))
	}
	return json.Marshal(out)
}

// UnmarshalJSON reverses MarshalJSON.
func (m *MultiYear) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Values = make(map[string]float64)
	m.RedFlags = make(map[string]bool)
	for k, v := range raw {
		switch {
		case k == "threshold":
			if err := json.Unmarshal(v, &m.Threshold); err != nil {
				return err
			}
		case len(k) > len("value_") && k[:len("value_")] == "value_":
			var f float64
			if err := json.Unmarshal(v, &f); err != nil {
				return err
			}
			m.Values[k[len("value_"):]] = f
		case len(k) > len("red_flag_") && k[:len("red_flag_")] == "red_flag_":
			var b bool
			if err := json.Unmarshal(v, &b); err != nil {
				return err
			}
			m.RedFlags[k[len("red_flag_"):]] = b
		}
	}
	return nil
}
