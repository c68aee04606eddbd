package api

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Table views. Each displayable type reports its column headers and the cells
// of its row; fields that do not fit a table cell are left out.

func (DataNamespace) Headers() []string { return []string{"name", "extraction graphs"} }

func (n DataNamespace) Row() []string {
	names := make([]string, 0, len(n.ExtractionGraphs))
	for _, g := range n.ExtractionGraphs {
		names = append(names, g.Name)
	}
	return []string{n.Name, joinSorted(names)}
}

func (ExtractionGraph) Headers() []string {
	return []string{"name", "description", "extraction policies"}
}

func (g ExtractionGraph) Row() []string {
	names := make([]string, 0, len(g.ExtractionPolicies))
	for _, p := range g.ExtractionPolicies {
		names = append(names, p.Name)
	}
	return []string{g.Name, optional(g.Description), joinSorted(names)}
}

func (ExtractionGraphResponse) Headers() []string { return []string{"indexes"} }

func (r ExtractionGraphResponse) Row() []string {
	return []string{joinSorted(r.Indexes)}
}

func (ExtractionPolicy) Headers() []string {
	return []string{"id", "extractor", "name", "filters", "content source", "graph"}
}

func (p ExtractionPolicy) Row() []string {
	return []string{p.ID, p.Extractor, p.Name, p.FiltersEq.String(), optional(p.ContentSource), p.GraphName}
}

func (ExtractorDescription) Headers() []string {
	return []string{"name", "input mime types", "description", "outputs"}
}

func (e ExtractorDescription) Row() []string {
	outputs := make([]string, 0, len(e.Outputs))
	for name, schema := range e.Outputs {
		outputs = append(outputs, name+"="+schema.String())
	}
	return []string{e.Name, joinSorted(e.InputMimeTypes), e.Description, joinSorted(outputs)}
}

func (Index) Headers() []string { return []string{"name", "embedding schema"} }

func (i Index) Row() []string {
	return []string{i.Name, i.EmbeddingSchema.String()}
}

func (ContentMetadata) Headers() []string {
	return []string{"id", "name", "mime type", "extraction graphs", "created at", "source", "size"}
}

func (c ContentMetadata) Row() []string {
	return []string{
		c.ID,
		c.Name,
		c.MimeType,
		joinSorted(c.ExtractionGraphNames),
		formatUnix(c.CreatedAt),
		c.Source,
		humanize.Bytes(c.Size),
	}
}

// joinSorted renders a multi-valued cell. The input is not modified.
func joinSorted(values []string) string {
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatUnix(sec int64) string {
	if sec <= 0 {
		return strconv.FormatInt(sec, 10)
	}
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}
