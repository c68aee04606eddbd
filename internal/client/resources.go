package client

import (
	"context"
	"net/http"

	"github.com/tensorlakeai/indexify-cli/pkg/api"
)

// ListNamespaces returns every namespace known to the server.
func (c *Client) ListNamespaces(ctx context.Context) ([]api.DataNamespace, error) {
	var resp api.ListNamespacesResponse
	if err := c.getJSON(ctx, c.url(nil, "namespaces"), &resp); err != nil {
		return nil, err
	}
	return resp.Namespaces, nil
}

// GetNamespace returns a single namespace by name.
func (c *Client) GetNamespace(ctx context.Context, name string) (api.DataNamespace, error) {
	var resp api.GetNamespaceResponse
	if err := c.getJSON(ctx, c.url(nil, "namespaces", name), &resp); err != nil {
		return api.DataNamespace{}, err
	}
	return resp.Namespace, nil
}

// CreateNamespace creates a namespace.
func (c *Client) CreateNamespace(ctx context.Context, req api.CreateNamespace) error {
	return c.sendJSON(ctx, http.MethodPost, c.url(nil, "namespaces"), req, nil)
}

// ListExtractors returns the extractors registered with the server.
func (c *Client) ListExtractors(ctx context.Context) ([]api.ExtractorDescription, error) {
	var resp api.ListExtractorsResponse
	if err := c.getJSON(ctx, c.url(nil, "extractors"), &resp); err != nil {
		return nil, err
	}
	return resp.Extractors, nil
}

// CreateExtractionGraph creates graph in the bound namespace and returns the
// names of the indexes it produces.
func (c *Client) CreateExtractionGraph(ctx context.Context, graph api.ExtractionGraph) (api.ExtractionGraphResponse, error) {
	elem, err := c.namespaced("extraction graphs", "extraction_graphs")
	if err != nil {
		return api.ExtractionGraphResponse{}, err
	}
	var resp api.ExtractionGraphResponse
	if err := c.sendJSON(ctx, http.MethodPost, c.url(nil, elem...), graph, &resp); err != nil {
		return api.ExtractionGraphResponse{}, err
	}
	return resp, nil
}

// ListIndexes returns the indexes of the bound namespace.
func (c *Client) ListIndexes(ctx context.Context) ([]api.Index, error) {
	elem, err := c.namespaced("indexes", "indexes")
	if err != nil {
		return nil, err
	}
	var resp api.ListIndexesResponse
	if err := c.getJSON(ctx, c.url(nil, elem...), &resp); err != nil {
		return nil, err
	}
	return resp.Indexes, nil
}
