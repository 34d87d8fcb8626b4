package video

import (
	"fmt"
	"regexp"
	"strconv"
)

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// FormatDuration converts an ISO 8601 duration ("PT1H2M3S") into the
// familiar clock form ("1:02:03", "4:05").
func FormatDuration(iso string) string {
	m := durationPattern.FindStringSubmatch(iso)
	if m == nil {
		return "N/A"
	}
	hours, _ := strconv.Atoi(zeroDefault(m[1]))
	minutes, _ := strconv.Atoi(zeroDefault(m[2]))
	seconds, _ := strconv.Atoi(zeroDefault(m[3]))
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// FormatCount renders a numeric count with K/M suffixes above a thousand
// and a million.
func FormatCount(raw string) string {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "N/A"
	}
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	}
	return strconv.FormatInt(n, 10)
}

func zeroDefault(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
