package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tensorlakeai/indexify-cli/internal/client"
	"github.com/tensorlakeai/indexify-cli/internal/output"
	"github.com/tensorlakeai/indexify-cli/pkg/api"
	"github.com/tensorlakeai/indexify-cli/pkg/dispatch"
	"github.com/tensorlakeai/indexify-cli/pkg/tenancy"
)

// Namespace groups the namespace commands.
//
//dispatch:command
type Namespace struct {
	dispatch.Base

	Cmd NamespaceCmd `dispatch:"subcommand"`
}

//dispatch:selector
type NamespaceCmd struct {
	Create *NamespaceCreate
	Get    *NamespaceGet
	List   *NamespaceList
}

// NamespaceCreate creates a namespace, either by name or from a definition
// file. A name given alongside a file overrides the file's name.
//
//dispatch:command
type NamespaceCreate struct {
	dispatch.Base
	*Globals

	Name       string
	Definition *api.CreateNamespace
	Labels     map[string]string
}

func (c *NamespaceCreate) PreRun() error {
	if c.Name == "" && c.Definition == nil {
		return fmt.Errorf("no namespace provided: pass a name or --file")
	}
	return nil
}

func (c *NamespaceCreate) Run(ctx context.Context) error {
	var req api.CreateNamespace
	if c.Definition != nil {
		req = *c.Definition
	}
	if c.Name != "" {
		req.Name = c.Name
	}
	if err := tenancy.Validate(req.Name); err != nil {
		return err
	}
	if len(c.Labels) > 0 {
		merged := make(map[string]string, len(req.Labels)+len(c.Labels))
		for k, v := range req.Labels {
			merged[k] = v
		}
		for k, v := range c.Labels {
			merged[k] = v
		}
		req.Labels = merged
	}
	for k, v := range req.Labels {
		if err := api.ValidateLabelKey(k); err != nil {
			return err
		}
		if err := api.ValidateLabelValue(v); err != nil {
			return err
		}
	}
	if req.ExtractionGraphs == nil {
		req.ExtractionGraphs = []api.ExtractionGraph{}
	}
	if req.Labels == nil {
		req.Labels = map[string]string{}
	}

	activity("namespace::create", zap.String("name", req.Name))

	if err := c.Client.CreateNamespace(ctx, req); err != nil {
		return err
	}
	if c.Format == output.FormatTable {
		fmt.Fprintf(c.Out, "Created namespace %s\n", req.Name)
	}
	return nil
}

// NamespaceGet shows one namespace.
//
//dispatch:command
type NamespaceGet struct {
	dispatch.Base
	*Globals

	Name string
}

func (c *NamespaceGet) Run(ctx context.Context) error {
	activity("namespace::get", zap.String("name", c.Name))

	ns, err := c.Client.GetNamespace(ctx, c.Name)
	if err != nil {
		if client.IsNotFound(err) {
			return fmt.Errorf("namespace not found: %s: %w", c.Name, err)
		}
		return err
	}
	return output.Item(c.Out, c.Format, ns)
}

// NamespaceList lists every namespace.
//
//dispatch:command
type NamespaceList struct {
	dispatch.Base
	*Globals
}

func (c *NamespaceList) Run(ctx context.Context) error {
	activity("namespace::list")

	namespaces, err := c.Client.ListNamespaces(ctx)
	if err != nil {
		return err
	}
	return output.List(c.Out, c.Format, namespaces)
}
