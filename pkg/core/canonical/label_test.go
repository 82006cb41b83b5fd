package canonical

import "testing"

func TestLabel(t *testing.T) {
	cases := map[string]string{
		// whitespace collapse
		"Revenue  from   operations": "Revenue from operations",
		"  Total assets ":            "Total assets",
		// dash variants unify and get space padding
		"Trade receivables – current": "Trade receivables - current",
		"Trade receivables — current": "Trade receivables - current",
		"Trade receivables −current":  "Trade receivables - current",
		"Earnings per share -Basic":   "Earnings per share - Basic",
		"Earnings per share- Diluted": "Earnings per share - Diluted",
		// alias substitution happens after normalization
		"Fair value changes on investments, net": "Fair value changes on investments, net (OCI)",
		"Trade payables – Other creditors":       "Trade payables - Total outstanding dues of creditors other than micro enterprises and small enterprises",
	}
	for in, want := range cases {
		if got := Label(in); got != want {
			t.Errorf("Label(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLabelIdempotent(t *testing.T) {
	inputs := []string{
		"Revenue  from   operations",
		"Trade receivables – current",
		"Earnings per share -Basic",
		"Trade payables - Micro enterprises and small enterprises",
	}
	for _, in := range inputs {
		once := Label(in)
		if twice := Label(once); twice != once {
			t.Errorf("Label not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}
