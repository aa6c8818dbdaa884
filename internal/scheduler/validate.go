package scheduler

import (
	"fmt"
	"math"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	memoryRe = regexp.MustCompile(`^(\d+)([MG])$`)
	timeRe   = regexp.MustCompile(`^(\d+-)?\d{1,2}(:\d{1,2}(:\d{1,2})?)?$`)
)

// NotifyTypes lists the accepted --mail-type values
var NotifyTypes = []string{"BEGIN", "END", "FAIL", "ALL"}

// CPUsValid reports whether n lies in [1, node.TotalCPUs]
func CPUsValid(n int, node Node) bool {
	return n >= 1 && n <= node.TotalCPUs
}

// ValidateCPUs is CPUsValid with a reportable error
func ValidateCPUs(n int, node Node) error {
	if !CPUsValid(n, node) {
		return NewValidationError("CPU count", strconv.Itoa(n),
			fmt.Sprintf("must be between 1 and %d", node.TotalCPUs))
	}
	return nil
}

// MemoryValid reports whether s is an acceptable --mem value for node
func MemoryValid(s string, node Node) bool {
	_, err := NormalizeMemory(s, node)
	return err == nil
}

// NormalizeMemory strips whitespace and uppercases a memory request, then
// checks it is "<count>M" or "<count>G" with an MB-equivalent between 1
// and the node's total memory. Returns the normalized string.
func NormalizeMemory(s string, node Node) (string, error) {
	mem := strings.ToUpper(stripSpace(s))
	m := memoryRe.FindStringSubmatch(mem)
	if m == nil {
		return "", NewValidationError("memory", s, "use a whole number followed by M or G (e.g. 500M, 4G)")
	}

	mb, err := MemoryToMB(mem)
	if err != nil {
		return "", NewValidationError("memory", s, err.Error())
	}
	if mb < 1 || mb > node.TotalMemoryMB {
		return "", NewValidationError("memory", s,
			fmt.Sprintf("must be between 1M and %dM", node.TotalMemoryMB))
	}
	return mem, nil
}

// MemoryToMB converts a normalized "<count>M" or "<count>G" string to MB
func MemoryToMB(mem string) (int64, error) {
	m := memoryRe.FindStringSubmatch(mem)
	if m == nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidMemoryFormat, mem)
	}
	value, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidMemoryFormat, mem)
	}
	if m[2] == "G" {
		if value > math.MaxInt64/1024 {
			return 0, fmt.Errorf("%w: %s is out of range", ErrInvalidMemoryFormat, mem)
		}
		return value * 1024, nil
	}
	return value, nil
}

// TimeValid reports whether s matches [days-]hours[:minutes[:seconds]]
func TimeValid(s string) bool {
	return timeRe.MatchString(s)
}

// NotifyTypeValid reports whether s is a known --mail-type after uppercasing
func NotifyTypeValid(s string) bool {
	_, err := NormalizeNotifyType(s)
	return err == nil
}

// NormalizeNotifyType uppercases s and checks it against NotifyTypes
func NormalizeNotifyType(s string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	for _, known := range NotifyTypes {
		if t == known {
			return t, nil
		}
	}
	return "", NewValidationError("notification type", s,
		"must be one of "+strings.Join(NotifyTypes, ", "))
}

// JobNameValid reports whether s can be used as a job name and script file stem
func JobNameValid(s string) bool {
	return ValidateJobName(s) == nil
}

// ValidateJobName rejects empty names and names containing whitespace or "/"
func ValidateJobName(s string) error {
	if s == "" {
		return NewValidationError("job name", s, "must not be empty")
	}
	if strings.ContainsFunc(s, unicode.IsSpace) || strings.Contains(s, "/") {
		return NewValidationError("job name", s, "must not contain spaces or slashes")
	}
	return nil
}

// EmailValid reports whether s is a single bare email address
func EmailValid(s string) bool {
	return ValidateEmail(s) == nil
}

// ValidateEmail is EmailValid with a reportable error
func ValidateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return NewValidationError("email", s, "an address is required for notifications")
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return NewValidationError("email", s, "not a valid email address")
	}
	return nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
