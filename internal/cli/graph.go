package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tensorlakeai/indexify-cli/internal/output"
	"github.com/tensorlakeai/indexify-cli/pkg/api"
	"github.com/tensorlakeai/indexify-cli/pkg/dispatch"
)

// Graph groups the extraction graph commands.
//
//dispatch:command
type Graph struct {
	dispatch.Base

	Cmd GraphCmd `dispatch:"subcommand"`
}

//dispatch:selector
type GraphCmd struct {
	Create *GraphCreate
	Get    *GraphGet
	List   *GraphList
}

// GraphCreate creates an extraction graph from a definition file. The request
// always targets the global namespace; the definition's namespace field is
// only filled in when empty.
//
//dispatch:command
type GraphCreate struct {
	dispatch.Base
	*Globals

	Graph api.ExtractionGraph
}

func (c *GraphCreate) Run(ctx context.Context) error {
	activity("graph::create", zap.String("graph", c.Graph.Name))

	graph := c.Graph
	if graph.Namespace == "" {
		graph.Namespace = c.Namespace
	}

	resp, err := c.Client.CreateExtractionGraph(ctx, graph)
	if err != nil {
		return err
	}
	return output.Item(c.Out, c.Format, resp)
}

// GraphGet shows one extraction graph of the namespace.
//
//dispatch:command
type GraphGet struct {
	dispatch.Base
	*Globals

	Name string
}

func (c *GraphGet) Run(ctx context.Context) error {
	activity("graph::get", zap.String("graph", c.Name))

	graphs, err := namespaceGraphs(ctx, c.Globals)
	if err != nil {
		return err
	}
	for _, g := range graphs {
		if g.Name == c.Name {
			return output.Item(c.Out, c.Format, g)
		}
	}
	return fmt.Errorf("graph not found: %s", c.Name)
}

// GraphList lists the extraction graphs of the namespace.
//
//dispatch:command
type GraphList struct {
	dispatch.Base
	*Globals
}

func (c *GraphList) Run(ctx context.Context) error {
	activity("graph::list")

	graphs, err := namespaceGraphs(ctx, c.Globals)
	if err != nil {
		return err
	}
	return output.List(c.Out, c.Format, graphs)
}

// namespaceGraphs returns the graphs of the global namespace. The server has
// no per-namespace graph listing, so the namespace is looked up in the full
// namespace list.
func namespaceGraphs(ctx context.Context, g *Globals) ([]api.ExtractionGraph, error) {
	namespaces, err := g.Client.ListNamespaces(ctx)
	if err != nil {
		return nil, err
	}
	for _, ns := range namespaces {
		if ns.Name == g.Namespace {
			return ns.ExtractionGraphs, nil
		}
	}
	return nil, fmt.Errorf("namespace not found: %s", g.Namespace)
}
