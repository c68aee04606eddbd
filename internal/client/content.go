package client

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tensorlakeai/indexify-cli/pkg/api"
)

const defaultContentType = "application/octet-stream"

// ListContent returns the content of the bound namespace, restricted to
// objects matching filter when it is non-empty.
func (c *Client) ListContent(ctx context.Context, filter api.LabelsFilter) ([]api.ContentMetadata, error) {
	elem, err := c.namespaced("content", "content")
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	if len(filter) > 0 {
		query.Set("labels_eq", filter.String())
	}
	var resp api.ListContentResponse
	if err := c.getJSON(ctx, c.url(query, elem...), &resp); err != nil {
		return nil, err
	}
	return resp.ContentList, nil
}

// GetContent returns the metadata of one content object.
func (c *Client) GetContent(ctx context.Context, id string) (api.ContentMetadata, error) {
	elem, err := c.namespaced("content", "content", id)
	if err != nil {
		return api.ContentMetadata{}, err
	}
	var resp api.GetContentMetadataResponse
	if err := c.getJSON(ctx, c.url(nil, elem...), &resp); err != nil {
		return api.ContentMetadata{}, err
	}
	return resp.ContentMetadata, nil
}

// DeleteContent deletes the given content objects.
func (c *Client) DeleteContent(ctx context.Context, ids ...string) error {
	elem, err := c.namespaced("content", "content")
	if err != nil {
		return err
	}
	return c.sendJSON(ctx, http.MethodDelete, c.url(nil, elem...), api.DeleteContentRequest{ContentIDs: ids}, nil)
}

// UploadContent streams r as a multipart upload named filename and runs it
// through the given extraction graphs. The part's content type is derived
// from the file name.
func (c *Client) UploadContent(ctx context.Context, filename string, r io.Reader, graphs []string) error {
	elem, err := c.namespaced("upload", "upload_file")
	if err != nil {
		return err
	}
	if len(graphs) == 0 {
		return fmt.Errorf("at least one extraction graph is required for upload")
	}

	query := url.Values{}
	query.Set("extraction_graph_names", strings.Join(graphs, ","))

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeFilePart(mw, filename, r))
	}()

	resp, err := c.do(ctx, request{
		method:      http.MethodPost,
		url:         c.url(query, elem...),
		body:        pr,
		contentType: mw.FormDataContentType(),
	})
	// Unblock the writer if the request ended before the body was consumed.
	pr.Close()
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func writeFilePart(mw *multipart.Writer, filename string, r io.Reader) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     "file",
		"filename": filepath.Base(filename),
	}))
	header.Set("Content-Type", ContentTypeFor(filename))

	part, err := mw.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return err
	}
	return mw.Close()
}

// ContentTypeFor guesses the MIME type of filename from its extension.
func ContentTypeFor(filename string) string {
	if t := mime.TypeByExtension(filepath.Ext(filename)); t != "" {
		return t
	}
	return defaultContentType
}

// DownloadContent opens the raw bytes of a content object. The caller must
// close the returned reader. size is -1 when the server does not report it.
func (c *Client) DownloadContent(ctx context.Context, id string) (size int64, body io.ReadCloser, err error) {
	elem, err := c.namespaced("content", "content", id, "download")
	if err != nil {
		return 0, nil, err
	}
	resp, err := c.do(ctx, request{method: http.MethodGet, url: c.url(nil, elem...)})
	if err != nil {
		return 0, nil, err
	}
	return resp.ContentLength, resp.Body, nil
}
