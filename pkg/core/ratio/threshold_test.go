package ratio

import "testing"

func TestBreached(t *testing.T) {
	cases := []struct {
		value     float64
		threshold string
		want      bool
	}{
		// strict comparison: exactly on the limit does not breach
		{1.2, "<1.2", false},
		{1.1999, "<1.2", true},
		{90, ">90", false},
		{90.01, ">90", true},
		// percent thresholds compare the bare number
		{9.99, "<10%", true},
		{10.0, "<10%", false},
		{4.99, "<5%", true},
		// degenerate thresholds never flag
		{0, "", false},
		{0, "N/A", false},
		{0, "abc", false},
		{5, "1.2", false},
	}
	for _, c := range cases {
		if got := Breached(c.value, c.threshold); got != c.want {
			t.Errorf("Breached(%v, %q) = %v, want %v", c.value, c.threshold, got, c.want)
		}
	}
}
