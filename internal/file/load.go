// Package file loads structured input files such as extraction graph
// definitions.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupported is returned for files whose extension is not a known format.
var ErrUnsupported = errors.New("unsupported file type")

// Load decodes the JSON or YAML document at path into a T. The format is
// taken from the file extension. YAML documents are converted to JSON before
// decoding so the json tags of T apply to both formats.
func Load[T any](path string) (T, error) {
	var zero T

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return zero, fmt.Errorf("file type not detected for %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch ext {
	case "json":
		return decodeJSON[T](data, "invalid JSON in "+path)
	case "yaml", "yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return zero, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return zero, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
		return decodeJSON[T](converted, "invalid YAML in "+path)
	default:
		return zero, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
}

func decodeJSON[T any](data []byte, prefix string) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return v, fmt.Errorf("%s: field %s: %w", prefix, typeErr.Field, err)
		}
		return v, fmt.Errorf("%s: %w", prefix, err)
	}
	return v, nil
}
