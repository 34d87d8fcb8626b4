package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is the fallback event-fetch window used when none is
// provided. Six weeks covers a full month grid plus the surrounding
// partial weeks.
const DefaultWindow = "6w"

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	windowUnits   = map[string]time.Duration{
		"h":     time.Hour,
		"hr":    time.Hour,
		"hrs":   time.Hour,
		"hour":  time.Hour,
		"hours": time.Hour,
		"d":     24 * time.Hour,
		"day":   24 * time.Hour,
		"days":  24 * time.Hour,
		"w":     7 * 24 * time.Hour,
		"wk":    7 * 24 * time.Hour,
		"wks":   7 * 24 * time.Hour,
		"week":  7 * 24 * time.Hour,
		"weeks": 7 * 24 * time.Hour,
	}
)

// ParseWindow parses a human-friendly window string (for example "6w",
// "30d", or "1w2d") and returns the equivalent duration along with a
// canonical compact representation. Empty input yields DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		trimmed = DefaultWindow
	}

	remaining := strings.ToLower(trimmed)
	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := windowPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("timeutil: invalid window segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("timeutil: invalid window value %q: %w", matches[1], err)
		}
		base, ok := windowUnits[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("timeutil: unsupported window unit %q", matches[2])
		}
		total += time.Duration(value) * base
		remaining = remaining[len(matches[0]):]
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("timeutil: window must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders a duration using week/day/hour tokens.
func FormatWindow(d time.Duration) string {
	if d <= 0 {
		return "0h"
	}
	type unit struct {
		label string
		value time.Duration
	}
	units := []unit{
		{"w", 7 * 24 * time.Hour},
		{"d", 24 * time.Hour},
		{"h", time.Hour},
	}
	var parts []string
	remaining := d
	for _, u := range units {
		if remaining < u.value {
			continue
		}
		count := remaining / u.value
		remaining -= count * u.value
		parts = append(parts, fmt.Sprintf("%d%s", count, u.label))
	}
	if len(parts) == 0 {
		return "0h"
	}
	return strings.Join(parts, "")
}
