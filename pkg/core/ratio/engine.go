package ratio

import (
	"math"
	"sort"
	"strconv"

	"credit_appraisal/pkg/core/canonical"
	"credit_appraisal/pkg/core/normalize"
)

// Canonical labels the formulas bind to.
const (
	labelPAT            = "Profit for the year"
	labelFinanceCost    = "Finance cost"
	labelDepreciation   = "Depreciation and amortization expenses"
	labelLeasePayments  = "Payment of lease liabilities"
	labelLeaseLiabNC    = "Financial liabilities - Lease liabilities (Non-current)"
	labelLeaseLiabC     = "Financial liabilities - Lease liabilities (Current)"
	labelTotalEquity    = "Total equity"
	labelRevenue        = "Revenue from operations"
	labelCurrentAssets  = "Total current assets"
	labelCurrentLiab    = "Total current liabilities"
	labelInventories    = "Inventories"
	labelPBT            = "Profit before tax"
	labelTotalAssets    = "Total assets"
	labelReceivables    = "Trade receivables"
	labelTradePayables  = "Financial liabilities - Trade payables - Total outstanding dues of creditors other than micro enterprises and small enterprises"
	labelSubcontractors = "Cost of technical sub-contractors"
	labelTravel         = "Travel expenses"
	labelSoftware       = "Cost of software packages and others"
	labelCommunication  = "Communication expenses"
	labelConsultancy    = "Consultancy and professional charges"
	labelOtherExpenses  = "Other expenses"
)

// Threshold expressions for the catalogue.
const (
	thrDSCR             = "<1.2"
	thrDebtEquity       = ">2.0"
	thrPATMargin        = "<10%"
	thrCurrentRatio     = "<1.0"
	thrQuickRatio       = "<1.0"
	thrInterestCoverage = "<1.5"
	thrNetProfitMargin  = "<5%"
	thrReturnOnAssets   = "<5%"
	thrReturnOnEquity   = "<8%"
	thrEBITDAMargin     = "<10%"
	thrReceivableDays   = ">90"
	thrPayableDays      = ">30"
	thrAssetTurnover    = "<1.0"
)

// Config selects the per-deployment numeric policy.
type Config struct {
	// Precision is the rounding precision for ratio values, 2 or 4.
	Precision int
}

// SafeDiv returns n/d, or 0 when the denominator is zero. Missing line
// items normalize to zero on the way in, so a zero here can mean either a
// genuinely zero denominator or an absent input; the caller cannot tell
// the two apart. That ambiguity is accepted rather than hidden behind an
// error, and the zero result may flag as misleadingly "healthy".
func SafeDiv(n, d float64) float64 {
	if d == 0 {
		return 0
	}
	return n / d
}

func round(x float64, precision int) float64 {
	p := math.Pow10(precision)
	return math.Round(x*p) / p
}

// numeric converts a snapshot cell into the float used by the formulas.
// Parenthesized-negative tokens become their absolute magnitude here: the
// statements print cash outflows in parentheses as a positive outflow
// amount, not an algebraically negative one. This is the only place the
// tokens are consumed numerically. Missing cells contribute zero.
func numeric(snap canonical.Snapshot, label, year string) float64 {
	cell := snap[label].Value(year)
	switch cell.Kind() {
	case normalize.KindMonetary:
		v, _ := cell.MonetaryValue()
		return float64(v)
	case normalize.KindPerShare:
		v, _ := cell.PerShareValue()
		return v
	case normalize.KindParenNegative:
		digits, _ := cell.ParenDigits()
		v, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			return 0
		}
		return v
	default:
		return 0
	}
}

// priorYear returns the year tag immediately before year in ascending
// order, or "" when year is the earliest tracked year.
func priorYear(year string, years []string) string {
	asc := make([]string, len(years))
	copy(asc, years)
	sort.Strings(asc)
	for i, y := range asc {
		if y == year && i > 0 {
			return asc[i-1]
		}
	}
	return ""
}

// Compute evaluates the 13-ratio catalogue for one year. It never errors:
// missing inputs contribute zero through SafeDiv. The returned map holds
// exactly the 13 catalogue names.
func Compute(snap canonical.Snapshot, year string, years []string, cfg Config) map[string]Result {
	pat := numeric(snap, labelPAT, year)
	financeCost := numeric(snap, labelFinanceCost, year)
	depreciation := numeric(snap, labelDepreciation, year)
	leasePayments := math.Abs(numeric(snap, labelLeasePayments, year))
	totalEquity := numeric(snap, labelTotalEquity, year)
	revenue := numeric(snap, labelRevenue, year)
	currentAssets := numeric(snap, labelCurrentAssets, year)
	currentLiab := numeric(snap, labelCurrentLiab, year)
	inventory := numeric(snap, labelInventories, year)
	pbt := numeric(snap, labelPBT, year)
	totalAssets := numeric(snap, labelTotalAssets, year)

	out := make(map[string]Result, len(Names))
	add := func(name string, value float64, threshold string) {
		v := round(value, cfg.Precision)
		out[name] = Result{Value: v, Threshold: threshold, RedFlag: Breached(v, threshold)}
	}

	// DSCR = (PAT + Depreciation + Finance cost) / (Finance cost + |Lease payments|)
	add(NameDSCR, SafeDiv(pat+depreciation+financeCost, financeCost+leasePayments), thrDSCR)

	// Debt/Equity = (Lease liabilities NC + C) / Total equity
	leaseLiabilities := numeric(snap, labelLeaseLiabNC, year) + numeric(snap, labelLeaseLiabC, year)
	add(NameDebtEquity, SafeDiv(leaseLiabilities, totalEquity), thrDebtEquity)

	// PAT Margin (%) = PAT / Revenue * 100
	add(NamePATMargin, SafeDiv(pat, revenue)*100, thrPATMargin)

	// Current Ratio = Current assets / Current liabilities
	add(NameCurrentRatio, SafeDiv(currentAssets, currentLiab), thrCurrentRatio)

	// Quick Ratio = max(Current assets - Inventory, 0) / Current liabilities
	add(NameQuickRatio, SafeDiv(math.Max(currentAssets-inventory, 0), currentLiab), thrQuickRatio)

	// Interest Coverage = PBT / Finance cost
	add(NameInterestCoverage, SafeDiv(pbt, financeCost), thrInterestCoverage)

	// Net profit Margin (%) = PAT / Revenue * 100 (same formula as PAT
	// Margin, tighter threshold, per the appraisal workbook)
	add(NameNetProfitMargin, SafeDiv(pat, revenue)*100, thrNetProfitMargin)

	// Return on Assets (%) = PAT / Total assets * 100
	add(NameReturnOnAssets, SafeDiv(pat, totalAssets)*100, thrReturnOnAssets)

	// Return on Equity (%) = PAT / Total equity * 100
	add(NameReturnOnEquity, SafeDiv(pat, totalEquity)*100, thrReturnOnEquity)

	// EBITDA Margin (%) = (PBT + Depreciation) / Revenue * 100
	add(NameEBITDAMargin, SafeDiv(pbt+depreciation, revenue)*100, thrEBITDAMargin)

	// Accounts Receivable Days = Trade receivables / Revenue * 365
	add(NameReceivableDays, SafeDiv(numeric(snap, labelReceivables, year), revenue)*365, thrReceivableDays)

	// Accounts Payable Days = average trade payables / purchase proxy * 365.
	// The purchase proxy sums the expense lines that approximate purchases
	// for a services business. For the earliest tracked year there is no
	// prior column, so the average degrades to that year's payables.
	purchaseProxy := numeric(snap, labelSubcontractors, year) +
		numeric(snap, labelTravel, year) +
		numeric(snap, labelSoftware, year) +
		numeric(snap, labelCommunication, year) +
		numeric(snap, labelConsultancy, year) +
		numeric(snap, labelOtherExpenses, year)
	avgPayables := numeric(snap, labelTradePayables, year)
	if prior := priorYear(year, years); prior != "" {
		avgPayables = (avgPayables + numeric(snap, labelTradePayables, prior)) / 2
	}
	add(NamePayableDays, SafeDiv(avgPayables, purchaseProxy)*365, thrPayableDays)

	// Asset Turnover = Revenue / Total assets
	add(NameAssetTurnover, SafeDiv(revenue, totalAssets), thrAssetTurnover)

	return out
}

// ComputeAll runs the catalogue once per tracked year and reshapes the
// results into one record per ratio holding all years side by side.
func ComputeAll(snap canonical.Snapshot, years []string, cfg Config) map[string]*MultiYear {
	merged := make(map[string]*MultiYear, len(Names))
	for _, year := range years {
		results := Compute(snap, year, years, cfg)
		for _, name := range Names {
			r := results[name]
			rec, ok := merged[name]
			if !ok {
				rec = NewMultiYear(r.Threshold)
				merged[name] = rec
			}
			rec.Values[year] = r.Value
			rec.RedFlags[year] = r.RedFlag
		}
	}
	return merged
}
