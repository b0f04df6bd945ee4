// Package isoduration parses the ISO-8601 time durations emitted by the
// transit journey planner (PT1H30M15S and friends).
package isoduration

import (
	"math"
	"regexp"
	"strconv"
)

var durationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// Minutes converts an ISO-8601 duration string to fractional minutes,
// rounded to one decimal place. Unparsable input yields 0 — the planner
// treats a bad duration as unknown rather than failing the whole journey.
func Minutes(s string) float64 {
	m := durationRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}

	hours := atoi(m[1])
	minutes := atoi(m[2])
	seconds := atoi(m[3])

	total := float64(hours)*60 + float64(minutes) + float64(seconds)/60
	return math.Round(total*10) / 10
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
