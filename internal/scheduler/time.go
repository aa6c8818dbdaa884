package scheduler

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// NormalizeTimeLimit converts operator input in [days-]hours[:minutes[:seconds]]
// form into canonical [D-]HH:MM:SS. A bare number is hours, not Slurm's minutes,
// so "25" becomes "1-01:00:00".
func NormalizeTimeLimit(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !TimeValid(s) {
		return "", NewValidationError("time limit", s, "use days-hours:minutes:seconds (e.g. 1-00:00:00, 12:30, 4)")
	}

	var days int64
	hms := s
	if dayPart, rest, ok := strings.Cut(s, "-"); ok {
		d, err := strconv.ParseInt(dayPart, 10, 64)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrInvalidTimeFormat, s)
		}
		days = d
		hms = rest
	}

	var units [3]int64 // hours, minutes, seconds
	for i, part := range strings.Split(hms, ":") {
		v, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrInvalidTimeFormat, s)
		}
		units[i] = v
	}
	if units[1] >= 60 || units[2] >= 60 {
		return "", NewValidationError("time limit", s, "minutes and seconds must be below 60")
	}

	total, ok := totalSeconds(days, units[0], units[1], units[2])
	if !ok {
		return "", NewValidationError("time limit", s,
			fmt.Sprintf("must not exceed %d days", maxTimeSeconds/secondsPerDay))
	}
	if total <= 0 {
		return "", NewValidationError("time limit", s, "must be greater than zero")
	}
	return FormatSlurmTime(time.Duration(total) * time.Second), nil
}

// ParseSlurmTime parses a time limit as Slurm prints it:
// "minutes", "minutes:seconds", "hours:minutes:seconds", "days-hours",
// "days-hours:minutes" and "days-hours:minutes:seconds".
// UNLIMITED, infinite and n/a return ErrUnlimitedTime.
func ParseSlurmTime(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "unlimited", "infinite", "n/a", "none":
		return 0, ErrUnlimitedTime
	case "":
		return 0, fmt.Errorf("%w: empty", ErrInvalidTimeFormat)
	}

	var days int64
	hms := s
	hasDays := false
	if dayPart, rest, ok := strings.Cut(s, "-"); ok {
		d, err := strconv.ParseInt(dayPart, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrInvalidTimeFormat, s)
		}
		days = d
		hms = rest
		hasDays = true
	}

	parts := strings.Split(hms, ":")
	values := make([]int64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrInvalidTimeFormat, s)
		}
		values[i] = v
	}

	var hours, minutes, seconds int64
	switch {
	case len(values) == 3:
		hours, minutes, seconds = values[0], values[1], values[2]
	case len(values) == 2 && hasDays:
		hours, minutes = values[0], values[1]
	case len(values) == 2:
		minutes, seconds = values[0], values[1]
	case len(values) == 1 && hasDays:
		hours = values[0]
	case len(values) == 1:
		minutes = values[0]
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidTimeFormat, s)
	}

	total, ok := totalSeconds(days, hours, minutes, seconds)
	if !ok {
		return 0, fmt.Errorf("%w: %s is out of range", ErrInvalidTimeFormat, s)
	}
	return time.Duration(total) * time.Second, nil
}

const secondsPerDay = 24 * 3600

// maxTimeSeconds is the longest span a time.Duration can hold, in seconds
const maxTimeSeconds = math.MaxInt64 / int64(time.Second)

// totalSeconds sums the parts into seconds. ok is false when a part is
// negative or the sum exceeds maxTimeSeconds.
func totalSeconds(days, hours, minutes, seconds int64) (total int64, ok bool) {
	parts := []struct{ n, unit int64 }{
		{days, secondsPerDay},
		{hours, 3600},
		{minutes, 60},
		{seconds, 1},
	}
	for _, p := range parts {
		if p.n < 0 || p.n > (maxTimeSeconds-total)/p.unit {
			return 0, false
		}
		total += p.n * p.unit
	}
	return total, true
}

// FormatSlurmTime renders d as [D-]HH:MM:SS
func FormatSlurmTime(d time.Duration) string {
	if d <= 0 {
		return "00:00:00"
	}
	total := int64(d.Seconds())
	days := total / (24 * 3600)
	rem := total % (24 * 3600)
	hours := rem / 3600
	rem %= 3600
	minutes := rem / 60
	seconds := rem % 60
	if days > 0 {
		return fmt.Sprintf("%d-%02d:%02d:%02d", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// DescribeTimeLimit turns a node's time limit into words for prompts,
// e.g. "1-12:00:00" -> "1 days 12 hours". Unparseable limits are returned as-is.
func DescribeTimeLimit(limit string) string {
	d, err := ParseSlurmTime(limit)
	if errors.Is(err, ErrUnlimitedTime) {
		return "unlimited"
	}
	if err != nil {
		return limit
	}

	total := int64(d.Seconds())
	segments := []struct {
		size int64
		unit string
	}{
		{24 * 3600, "days"},
		{3600, "hours"},
		{60, "minutes"},
		{1, "seconds"},
	}

	var words []string
	for _, seg := range segments {
		if n := total / seg.size; n > 0 {
			words = append(words, fmt.Sprintf("%d %s", n, seg.unit))
			total %= seg.size
		}
	}
	if len(words) == 0 {
		return "0 seconds"
	}
	return strings.Join(words, " ")
}

// ExceedsTimeLimit reports whether a canonical requested time is longer than
// the node's limit. Unlimited or unparseable node limits never exceed.
func ExceedsTimeLimit(requested string, node Node) bool {
	limit, err := ParseSlurmTime(node.TimeLimit)
	if err != nil {
		return false
	}
	want, err := ParseSlurmTime(requested)
	if err != nil {
		return false
	}
	return want > limit
}
