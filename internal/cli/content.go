package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/tensorlakeai/indexify-cli/internal/output"
	"github.com/tensorlakeai/indexify-cli/pkg/api"
	"github.com/tensorlakeai/indexify-cli/pkg/dispatch"
)

// Content groups the commands working with content objects.
//
//dispatch:command
type Content struct {
	dispatch.Base

	Cmd ContentCmd `dispatch:"subcommand"`
}

//dispatch:selector
type ContentCmd struct {
	Delete   *ContentDelete
	Download *ContentDownload
	Get      *ContentGet
	List     *ContentList
	Upload   *ContentUpload
}

// ContentDelete deletes one content object.
//
//dispatch:command
type ContentDelete struct {
	dispatch.Base
	*Globals

	ID string
}

func (c *ContentDelete) Run(ctx context.Context) error {
	activity("content::delete", zap.String("id", c.ID))

	if err := c.Client.DeleteContent(ctx, c.ID); err != nil {
		return err
	}
	if c.Format == output.FormatTable {
		fmt.Fprintf(c.Out, "Deleted content %s\n", c.ID)
	}
	return nil
}

// ContentDownload streams the bytes of a content object to a file or to the
// output writer.
//
//dispatch:command
type ContentDownload struct {
	dispatch.Base
	*Globals

	ID string
	// File is the destination path. Empty means Out.
	File string
}

func (c *ContentDownload) Run(ctx context.Context) error {
	activity("content::download", zap.String("id", c.ID))

	size, body, err := c.Client.DownloadContent(ctx, c.ID)
	if err != nil {
		return err
	}
	defer body.Close()

	if c.File == "" {
		return c.copy(c.Out, body, size)
	}

	f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.File, err)
	}
	if err := c.copy(f, body, size); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.File, err)
	}
	return nil
}

func (c *ContentDownload) copy(dst io.Writer, src io.Reader, size int64) error {
	n, err := io.Copy(dst, src)
	if err != nil {
		return fmt.Errorf("failed to download content %s: %w", c.ID, err)
	}
	if size >= 0 && n != size {
		return fmt.Errorf("download of content %s truncated: got %d of %d bytes", c.ID, n, size)
	}
	zap.L().Debug("content downloaded", zap.String("id", c.ID), zap.Int64("bytes", n))
	return nil
}

// ContentGet shows the metadata of one content object.
//
//dispatch:command
type ContentGet struct {
	dispatch.Base
	*Globals

	ID string
}

func (c *ContentGet) Run(ctx context.Context) error {
	activity("content::get", zap.String("id", c.ID))

	meta, err := c.Client.GetContent(ctx, c.ID)
	if err != nil {
		return err
	}
	return output.Item(c.Out, c.Format, meta)
}

// ContentList lists the content of the namespace.
//
//dispatch:command
type ContentList struct {
	dispatch.Base
	*Globals

	// LabelsEq restricts the listing to content whose labels match.
	LabelsEq api.LabelsFilter
}

func (c *ContentList) Run(ctx context.Context) error {
	activity("content::list")

	content, err := c.Client.ListContent(ctx, c.LabelsEq)
	if err != nil {
		return err
	}
	return output.List(c.Out, c.Format, content)
}

// ContentUpload uploads a local file into the namespace.
//
//dispatch:command
type ContentUpload struct {
	dispatch.Base
	*Globals

	Path   string
	Graphs []string
}

func (c *ContentUpload) Run(ctx context.Context) error {
	activity("content::upload", zap.Strings("graphs", c.Graphs))

	f, err := os.Open(c.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.Path, err)
	}
	defer f.Close()

	if err := c.Client.UploadContent(ctx, c.Path, f, c.Graphs); err != nil {
		return err
	}
	if c.Format == output.FormatTable {
		fmt.Fprintf(c.Out, "Uploaded %s\n", c.Path)
	}
	return nil
}
