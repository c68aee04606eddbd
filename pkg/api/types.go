// Package api holds the wire types exchanged with the indexify server.
package api

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DataNamespace is a namespace together with the extraction graphs bound to it.
type DataNamespace struct {
	Name             string            `json:"name"`
	ExtractionGraphs []ExtractionGraph `json:"extraction_graphs"`
}

// ListNamespacesResponse is the body of GET /namespaces.
type ListNamespacesResponse struct {
	Namespaces []DataNamespace `json:"namespaces"`
}

// GetNamespaceResponse is the body of GET /namespaces/{name}.
type GetNamespaceResponse struct {
	Namespace DataNamespace `json:"namespace"`
}

// CreateNamespace is the body of POST /namespaces.
type CreateNamespace struct {
	Name             string            `json:"name"`
	ExtractionGraphs []ExtractionGraph `json:"extraction_graphs"`
	Labels           map[string]string `json:"labels"`
}

// ExtractionGraph is a named set of extraction policies within a namespace.
type ExtractionGraph struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Namespace          string             `json:"namespace"`
	Description        *string            `json:"description"`
	ExtractionPolicies []ExtractionPolicy `json:"extraction_policies"`
}

// ExtractionGraphResponse is the body returned when a graph is created.
type ExtractionGraphResponse struct {
	Indexes []string `json:"indexes"`
}

// ExtractionPolicy binds an extractor to a content source inside a graph.
type ExtractionPolicy struct {
	ID            string          `json:"id"`
	Extractor     string          `json:"extractor"`
	Name          string          `json:"name"`
	FiltersEq     LabelsFilter    `json:"filters_eq,omitempty"`
	InputParams   json.RawMessage `json:"input_params,omitempty"`
	ContentSource *string         `json:"content_source"`
	GraphName     string          `json:"graph_name"`
}

// ExtractorDescription describes an extractor registered with the server.
type ExtractorDescription struct {
	Name           string                           `json:"name"`
	InputMimeTypes []string                         `json:"input_mime_types"`
	Description    string                           `json:"description"`
	InputParams    json.RawMessage                  `json:"input_params,omitempty"`
	Outputs        map[string]ExtractorOutputSchema `json:"outputs"`
}

// ListExtractorsResponse is the body of GET /extractors.
type ListExtractorsResponse struct {
	Extractors []ExtractorDescription `json:"extractors"`
}

// ExtractorOutputSchema is either an embedding or a metadata output. On the
// wire it is an object with exactly one of the "embedding" or "metadata" keys.
type ExtractorOutputSchema struct {
	Embedding *EmbeddingSchema `json:"embedding,omitempty"`
	Metadata  json.RawMessage  `json:"metadata,omitempty"`
}

func (s *ExtractorOutputSchema) UnmarshalJSON(data []byte) error {
	type plain ExtractorOutputSchema
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if (p.Embedding == nil) == (p.Metadata == nil) {
		return fmt.Errorf("extractor output must be one of embedding or metadata")
	}
	*s = ExtractorOutputSchema(p)
	return nil
}

func (s ExtractorOutputSchema) String() string {
	if s.Embedding != nil {
		return "embedding(" + s.Embedding.String() + ")"
	}
	return "metadata"
}

// EmbeddingSchema describes the vectors stored in an index.
type EmbeddingSchema struct {
	Dim      int           `json:"dim"`
	Distance IndexDistance `json:"distance"`
}

func (s EmbeddingSchema) String() string {
	return strconv.Itoa(s.Dim) + "-" + string(s.Distance)
}

// IndexDistance is the similarity metric of an index.
type IndexDistance string

const (
	DistanceDot       IndexDistance = "dot"
	DistanceCosine    IndexDistance = "cosine"
	DistanceEuclidean IndexDistance = "euclidean"
)

// ParseIndexDistance validates s as a known distance metric.
func ParseIndexDistance(s string) (IndexDistance, error) {
	switch d := IndexDistance(s); d {
	case DistanceDot, DistanceCosine, DistanceEuclidean:
		return d, nil
	}
	return "", fmt.Errorf("unknown index distance %q (use dot, cosine or euclidean)", s)
}

func (d *IndexDistance) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseIndexDistance(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Index is a vector index produced by an extraction policy.
type Index struct {
	Name            string          `json:"name"`
	EmbeddingSchema EmbeddingSchema `json:"embedding_schema"`
}

// ListIndexesResponse is the body of GET /namespaces/{ns}/indexes.
type ListIndexesResponse struct {
	Indexes []Index `json:"indexes"`
}

// ListContentResponse is the body of GET /namespaces/{ns}/content.
type ListContentResponse struct {
	ContentList []ContentMetadata `json:"content_list"`
	Total       uint64            `json:"total"`
}

// GetContentMetadataResponse is the body of GET /namespaces/{ns}/content/{id}.
type GetContentMetadataResponse struct {
	ContentMetadata ContentMetadata `json:"content_metadata"`
}

// DeleteContentRequest is the body of DELETE /namespaces/{ns}/content.
type DeleteContentRequest struct {
	ContentIDs []string `json:"content_ids"`
}

// ContentMetadata describes a content object stored by the server.
type ContentMetadata struct {
	ID                   string         `json:"id"`
	ParentID             string         `json:"parent_id"`
	RootContentID        string         `json:"root_content_id"`
	Namespace            string         `json:"namespace"`
	Name                 string         `json:"name"`
	MimeType             string         `json:"mime_type"`
	Labels               map[string]any `json:"labels"`
	ExtractionGraphNames []string       `json:"extraction_graph_names"`
	StorageURL           string         `json:"storage_url"`
	CreatedAt            int64          `json:"created_at"`
	Source               string         `json:"source"`
	Size                 uint64         `json:"size"`
	Hash                 string         `json:"hash"`
}
