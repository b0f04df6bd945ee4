package isoduration

import "testing"

func TestMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"PT1H30M0S", 90.0},
		{"PT45M", 45.0},
		{"PT30S", 0.5},
		{"PT2H", 120.0},
		{"PT1H0M40S", 60.7},
		{"PT0S", 0},
		{"", 0},
		{"garbage", 0},
		{"1H30M", 0},
		{"PT", 0},
	}

	for _, c := range cases {
		if got := Minutes(c.in); got != c.want {
			t.Errorf("Minutes(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
