package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	mapset "github.com/deckarep/golang-set/v2"
)

// LabelsFilter matches content whose labels equal every entry. Values are
// json.Number, bool or nil when the raw text is exactly such a JSON literal,
// strings otherwise.
type LabelsFilter map[string]any

var errEmptyFilter = errors.New("must have at least one label - if you want to match on no labels, remove the labels_eq filter entirely")

var filterLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comma", Pattern: `,`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Word", Pattern: `[^,:]+`},
})

// filterAST is the flat token stream of "k1:v1,k2:v2". Grouping into entries
// happens in ParseLabelsFilter so malformed entries get label-specific errors
// instead of generic parse errors.
type filterAST struct {
	Tokens []*filterToken `parser:"@@*"`
}

type filterToken struct {
	Comma bool   `parser:"  @Comma"`
	Colon bool   `parser:"| @Colon"`
	Word  string `parser:"| @Word"`
}

var filterParser = participle.MustBuild[filterAST](participle.Lexer(filterLexer))

// ParseLabelsFilter parses the "key1:value1,key2:value2" form.
func ParseLabelsFilter(raw string) (LabelsFilter, error) {
	if raw == "" {
		return nil, invalidFilter("query invalid", errEmptyFilter)
	}

	ast, err := filterParser.ParseString("labels_eq", raw)
	if err != nil {
		return nil, invalidFilter("query invalid", err)
	}

	filter := LabelsFilter{}
	seen := mapset.NewSet[string]()
	for _, entry := range splitEntries(ast.Tokens) {
		key, value, err := ParseLabel(entry)
		if err != nil {
			return nil, invalidFilter("query invalid", err)
		}
		if !seen.Add(key) {
			return nil, invalidFilter("query has duplicate key", errors.New(entry))
		}
		if err := ValidateLabelKey(key); err != nil {
			return nil, invalidFilter("key invalid", err)
		}
		if err := ValidateLabelValue(value); err != nil {
			return nil, invalidFilter("value invalid", err)
		}
		filter[key] = scalarValue(value)
	}
	return filter, nil
}

// splitEntries regroups the token stream into raw entries, keeping empty
// entries such as the middle of "a:1,,b:2".
func splitEntries(tokens []*filterToken) []string {
	entries := []string{""}
	for _, tok := range tokens {
		switch {
		case tok.Comma:
			entries = append(entries, "")
		case tok.Colon:
			entries[len(entries)-1] += ":"
		default:
			entries[len(entries)-1] += tok.Word
		}
	}
	return entries
}

// scalarValue types raw as a JSON number, boolean or null when it is exactly
// that literal. Numbers stay json.Number so String reproduces raw.
func scalarValue(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err == nil {
		if n, ok := v.(json.Number); ok && n.String() == raw {
			return n
		}
	}
	return raw
}

func invalidFilter(reason string, err error) error {
	return fmt.Errorf("invalid labels_eq filter - %s: %w", reason, err)
}

// String renders the filter in its "k:v,k:v" form with keys sorted.
func (f LabelsFilter) String() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+":"+formatScalar(f[k]))
	}
	return strings.Join(parts, ",")
}

func formatScalar(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// UnmarshalJSON accepts the string form, null, or an already decoded object.
func (f *LabelsFilter) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = nil
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		var m map[string]any
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if objErr := dec.Decode(&m); objErr != nil {
			return err
		}
		*f = m
		return nil
	}
	parsed, err := ParseLabelsFilter(raw)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
