// Package tenancy resolves and validates the namespace a command operates in.
package tenancy

import (
	"fmt"
	"regexp"
)

// DefaultNamespace is used when no namespace is configured.
const DefaultNamespace = "default"

// maxNamespaceLen is the maximum length for a namespace.
const maxNamespaceLen = 63

// namespaceRe validates namespace format: alphanumerics, dashes, underscores
// and dots, starting and ending with an alphanumeric character.
var namespaceRe = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// Resolve returns the first non-empty candidate, or DefaultNamespace when all
// are empty, after validating it. Candidates are given in priority order,
// e.g. flag value then environment value.
func Resolve(candidates ...string) (string, error) {
	ns := DefaultNamespace
	for _, c := range candidates {
		if c != "" {
			ns = c
			break
		}
	}
	if err := Validate(ns); err != nil {
		return "", err
	}
	return ns, nil
}

// Validate checks that ns is a well-formed namespace name.
func Validate(ns string) error {
	if ns == "" {
		return fmt.Errorf("namespace is required")
	}
	if len(ns) > maxNamespaceLen {
		return fmt.Errorf("namespace %q exceeds maximum length of %d characters", ns, maxNamespaceLen)
	}
	if !namespaceRe.MatchString(ns) {
		return fmt.Errorf("namespace %q is invalid: must consist of alphanumeric characters, dashes, underscores or dots, and must start and end with an alphanumeric character", ns)
	}
	return nil
}
