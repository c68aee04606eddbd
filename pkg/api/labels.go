package api

import (
	"fmt"
	"strings"
)

// maxLabelLen is the maximum length of a label key or value.
const maxLabelLen = 63

type labelRule struct {
	check func(string) bool
	msg   string
}

var labelRules = []labelRule{
	{isASCII, "must be ASCII"},
	{func(s string) bool { return len(s) <= maxLabelLen }, fmt.Sprintf("must be %d characters or less", maxLabelLen)},
	{func(s string) bool { return s != "" && isAlphanumeric(s[0]) }, "must begin with an alphanumeric character"},
	{func(s string) bool { return s != "" && isAlphanumeric(s[len(s)-1]) }, "must end with an alphanumeric character"},
	{onlyLabelChars, "must contain only alphanumeric characters, dashes, underscores, and dots"},
}

// ValidateLabelKey checks key against the label rules. Every failing rule is
// reported in a single error.
func ValidateLabelKey(key string) error {
	if failed := failedRules(key); len(failed) > 0 {
		return fmt.Errorf("label key invalid - %s - found key : %q", strings.Join(failed, ", "), key)
	}
	return nil
}

// ValidateLabelValue checks value against the label rules. The empty value is
// accepted.
func ValidateLabelValue(value string) error {
	if value == "" {
		return nil
	}
	if failed := failedRules(value); len(failed) > 0 {
		return fmt.Errorf("label value invalid - %s - found value : %q", strings.Join(failed, ", "), value)
	}
	return nil
}

// ParseLabel splits a raw "key:value" pair. It checks the shape only; use
// ValidateLabel to also apply the key and value rules.
func ParseLabel(raw string) (key, value string, err error) {
	var failed []string
	n := strings.Count(raw, ":")
	if n < 1 {
		failed = append(failed, "must have a ':' character")
	}
	if n > 1 {
		failed = append(failed, "must have only one ':' character")
	}
	if len(failed) > 0 {
		return "", "", fmt.Errorf("query invalid - %s - raw : %q", strings.Join(failed, ", "), raw)
	}
	key, value, _ = strings.Cut(raw, ":")
	return key, value, nil
}

// ValidateLabel parses raw and validates both halves.
func ValidateLabel(raw string) (key, value string, err error) {
	key, value, err = ParseLabel(raw)
	if err != nil {
		return "", "", err
	}
	if err := ValidateLabelKey(key); err != nil {
		return "", "", err
	}
	if err := ValidateLabelValue(value); err != nil {
		return "", "", err
	}
	return key, value, nil
}

// ParseLabels validates a list of raw "key:value" pairs into a map. A key
// given twice is an error.
func ParseLabels(raw []string) (map[string]string, error) {
	labels := make(map[string]string, len(raw))
	for _, r := range raw {
		key, value, err := ValidateLabel(r)
		if err != nil {
			return nil, err
		}
		if _, dup := labels[key]; dup {
			return nil, fmt.Errorf("duplicate label key %q", key)
		}
		labels[key] = value
	}
	return labels, nil
}

func failedRules(s string) []string {
	var failed []string
	for _, r := range labelRules {
		if !r.check(s) {
			failed = append(failed, r.msg)
		}
	}
	return failed
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return false
		}
	}
	return true
}

func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func onlyLabelChars(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isAlphanumeric(c) && c != '-' && c != '_' && c != '.' {
			return false
		}
	}
	return true
}
