package telemetry

import "strings"

// RedactedValue is the replacement string for sensitive property values.
const RedactedValue = "***REDACTED***"

var sensitiveKeyPatterns = []string{"password", "token", "secret", "apikey", "api_key", "credential", "authorization"}

// IsSensitiveKey reports whether a field key indicates a sensitive value.
// The check is case-insensitive.
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, p := range sensitiveKeyPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// RedactSensitiveProperties returns a copy of props with sensitive values
// replaced by RedactedValue. Nested objects are redacted recursively.
func RedactSensitiveProperties(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		switch {
		case IsSensitiveKey(k):
			out[k] = RedactedValue
		default:
			if nested, ok := v.(map[string]any); ok {
				out[k] = RedactSensitiveProperties(nested)
				continue
			}
			out[k] = v
		}
	}
	return out
}
