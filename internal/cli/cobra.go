package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tensorlakeai/indexify-cli/internal/client"
	"github.com/tensorlakeai/indexify-cli/internal/config"
	"github.com/tensorlakeai/indexify-cli/internal/file"
	"github.com/tensorlakeai/indexify-cli/internal/logging"
	"github.com/tensorlakeai/indexify-cli/internal/output"
	"github.com/tensorlakeai/indexify-cli/pkg/api"
	"github.com/tensorlakeai/indexify-cli/pkg/dispatch"
	"github.com/tensorlakeai/indexify-cli/pkg/tenancy"
)

// app carries the state shared by the cobra commands of one process.
type app struct {
	v          *viper.Viper
	rt         *logging.Runtime
	configPath string
}

// NewRootCommand builds the indexify command line. Each leaf's RunE builds
// one node chain and hands it to dispatch.Execute.
func NewRootCommand(rt *logging.Runtime) *cobra.Command {
	a := &app{v: config.NewViper(), rt: rt}

	cmd := &cobra.Command{
		Use:   AppName,
		Short: "CLI for the indexify server",
		Long: `indexify manages namespaces, extraction graphs, content and indexes on an
indexify server.

Global settings resolve from flags, then INDEXIFY_* environment variables,
then the config file, then defaults.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.ReadFile(a.v, a.configPath)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String(config.KeyAPIServer, config.DefaultAPIServer, "URL of the indexify server")
	flags.StringP(config.KeyOutput, "o", config.DefaultOutput, "Output format: table, json, yaml")
	flags.StringP(config.KeyNamespace, "n", config.DefaultNamespace, "Namespace to operate in")
	flags.CountP(config.KeyVerbose, "v", "Increase log verbosity (repeatable)")
	flags.Bool(config.KeyTelemetry, true, "Send anonymous usage telemetry")
	flags.StringVar(&a.configPath, "config", "", "Config file (default "+config.DefaultFile()+" when present)")
	cobra.CheckErr(config.BindFlags(a.v, flags))

	cmd.AddCommand(
		a.contentCmd(),
		a.extractorCmd(),
		a.graphCmd(),
		a.indexCmd(),
		a.namespaceCmd(),
	)
	return cmd
}

// execute resolves the global settings and walks the chain built by build.
func (a *app) execute(cmd *cobra.Command, build func(g *Globals) RootCmd) error {
	settings := config.Load(a.v)
	if settings.Namespace == "" {
		settings.Namespace = tenancy.DefaultNamespace
	}

	format, err := output.ParseFormat(settings.Output)
	if err != nil {
		return err
	}
	c, err := client.New(settings.APIServer, client.WithUserAgent(AppName+"-cli/"+Version))
	if err != nil {
		return err
	}
	tel, err := config.LoadTelemetry()
	if err != nil {
		return err
	}

	g := &Globals{
		Client:    c.WithNamespace(settings.Namespace),
		Format:    format,
		Namespace: settings.Namespace,
		Out:       cmd.OutOrStdout(),
	}
	root := &Root{
		Cmd:       build(g),
		Runtime:   a.rt,
		Settings:  settings,
		Telemetry: tel,
	}
	return dispatch.Execute(cmd.Context(), root)
}

func (a *app) contentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Manage content in a namespace",
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a content object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, func(g *Globals) RootCmd {
				return RootCmd{Content: &Content{Cmd: ContentCmd{
					Delete: &ContentDelete{Globals: g, ID: args[0]},
				}}}
			})
		},
	}

	var outFile string
	downloadCmd := &cobra.Command{
		Use:   "download <id>",
		Short: "Download the bytes of a content object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, func(g *Globals) RootCmd {
				return RootCmd{Content: &Content{Cmd: ContentCmd{
					Download: &ContentDownload{Globals: g, ID: args[0], File: outFile},
				}}}
			})
		},
	}
	downloadCmd.Flags().StringVarP(&outFile, "file", "f", "", "Write to this file instead of stdout")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show the metadata of a content object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, func(g *Globals) RootCmd {
				return RootCmd{Content: &Content{Cmd: ContentCmd{
					Get: &ContentGet{Globals: g, ID: args[0]},
				}}}
			})
		},
	}

	var labelsEq string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the content of the namespace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter api.LabelsFilter
			if cmd.Flags().Changed("labels-eq") {
				f, err := api.ParseLabelsFilter(labelsEq)
				if err != nil {
					return err
				}
				filter = f
			}
			return a.execute(cmd, func(g *Globals) RootCmd {
				return RootCmd{Content: &Content{Cmd: ContentCmd{
					List: &ContentList{Globals: g, LabelsEq: filter},
				}}}
			})
		},
	}
	listCmd.Flags().StringVar(&labelsEq, "labels-eq", "", "Only list content whose labels match, e.g. source:web,lang:en")

	var graphs []string
	uploadCmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a file into the namespace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, func(g *Globals) RootCmd {
				return RootCmd{Content: &Content{Cmd: ContentCmd{
					Upload: &ContentUpload{Globals: g, Path: args[0], Graphs: graphs},
				}}}
			})
		},
	}
	uploadCmd.Flags().StringSliceVarP(&graphs, "graph", "g", nil, "Extraction graph to run on the upload (repeatable)")
	_ = uploadCmd.MarkFlagRequired("graph")

	cmd.AddCommand(deleteCmd, downloadCmd, getCmd, listCmd, uploadCmd)
	return cmd
}

func (a *app) extractorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extractor",
		Short: "Inspect extractors",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the extractors registered with the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, func(g *Globals) RootCmd {
				return RootCmd{Extractor: &Extractor{Cmd: ExtractorCmd{
					List: &ExtractorList{Globals: g},
				}}}
			})
		},
	})
	return cmd
}

func (a *app) graphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Manage extraction graphs",
	}

	createCmd := &cobra.Command{
		Use:   "create <file>",
		Short: "Create an extraction graph from a JSON or YAML definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, err := file.Load[api.ExtractionGraph](args[0])
			if err != nil {
				return err
			}
			return a.execute(cmd, func(g *Globals) RootCmd {
				return RootCmd{Graph: &Graph{Cmd: GraphCmd{
					Create: &GraphCreate{Globals: g, Graph: graph},
				}}}
			})
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Show an extraction graph of the namespace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, func(g *Globals) RootCmd {
				return RootCmd{Graph: &Graph{Cmd: GraphCmd{
					Get: &GraphGet{Globals: g, Name: args[0]},
				}}}
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the extraction graphs of the namespace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, func(g *Globals) RootCmd {
				return RootCmd{Graph: &Graph{Cmd: GraphCmd{
					List: &GraphList{Globals: g},
				}}}
			})
		},
	}

	cmd.AddCommand(createCmd, getCmd, listCmd)
	return cmd
}

func (a *app) indexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Inspect indexes",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the indexes of the namespace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, func(g *Globals) RootCmd {
				return RootCmd{Index: &Index{Cmd: IndexCmd{
					List: &IndexList{Globals: g},
				}}}
			})
		},
	})
	return cmd
}

func (a *app) namespaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "namespace",
		Short: "Manage namespaces",
	}

	var (
		defFile string
		labels  []string
	)
	createCmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a namespace by name or from a JSON or YAML definition",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			create := &NamespaceCreate{}
			if len(args) == 1 {
				create.Name = args[0]
			}
			if defFile != "" {
				def, err := file.Load[api.CreateNamespace](defFile)
				if err != nil {
					return err
				}
				create.Definition = &def
			}
			if len(labels) > 0 {
				parsed, err := api.ParseLabels(labels)
				if err != nil {
					return fmt.Errorf("invalid --label: %w", err)
				}
				create.Labels = parsed
			}
			return a.execute(cmd, func(g *Globals) RootCmd {
				create.Globals = g
				return RootCmd{Namespace: &Namespace{Cmd: NamespaceCmd{Create: create}}}
			})
		},
	}
	createCmd.Flags().StringVarP(&defFile, "file", "f", "", "Namespace definition file (JSON or YAML)")
	createCmd.Flags().StringArrayVarP(&labels, "label", "l", nil, "Label as key:value (repeatable)")

	getCmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Show a namespace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, func(g *Globals) RootCmd {
				return RootCmd{Namespace: &Namespace{Cmd: NamespaceCmd{
					Get: &NamespaceGet{Globals: g, Name: args[0]},
				}}}
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List namespaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, func(g *Globals) RootCmd {
				return RootCmd{Namespace: &Namespace{Cmd: NamespaceCmd{
					List: &NamespaceList{Globals: g},
				}}}
			})
		},
	}

	cmd.AddCommand(createCmd, getCmd, listCmd)
	return cmd
}
