package cli

import (
	"context"

	"github.com/tensorlakeai/indexify-cli/internal/output"
	"github.com/tensorlakeai/indexify-cli/pkg/dispatch"
)

// Index groups the index commands.
//
//dispatch:command
type Index struct {
	dispatch.Base

	Cmd IndexCmd `dispatch:"subcommand"`
}

//dispatch:selector
type IndexCmd struct {
	List *IndexList
}

// IndexList lists the indexes of the namespace.
//
//dispatch:command
type IndexList struct {
	dispatch.Base
	*Globals
}

func (c *IndexList) Run(ctx context.Context) error {
	activity("index::list")

	indexes, err := c.Client.ListIndexes(ctx)
	if err != nil {
		return err
	}
	return output.List(c.Out, c.Format, indexes)
}
