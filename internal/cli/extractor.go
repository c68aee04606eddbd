package cli

import (
	"context"

	"github.com/tensorlakeai/indexify-cli/internal/output"
	"github.com/tensorlakeai/indexify-cli/pkg/dispatch"
)

// Extractor groups the extractor commands.
//
//dispatch:command
type Extractor struct {
	dispatch.Base

	Cmd ExtractorCmd `dispatch:"subcommand"`
}

//dispatch:selector
type ExtractorCmd struct {
	List *ExtractorList
}

// ExtractorList lists the extractors registered with the server.
//
//dispatch:command
type ExtractorList struct {
	dispatch.Base
	*Globals
}

func (c *ExtractorList) Run(ctx context.Context) error {
	activity("extractor::list")

	extractors, err := c.Client.ListExtractors(ctx)
	if err != nil {
		return err
	}
	return output.List(c.Out, c.Format, extractors)
}
