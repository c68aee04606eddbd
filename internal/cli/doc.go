// Package cli holds the indexify command tree.
//
// Every command is a node of a typed tree walked by dispatch.Execute:
//
//	Root -> RootCmd -> {Content, Extractor, Graph, Index, Namespace} -> *Cmd -> leaf
//
// Composites carry their subcommand in the field tagged dispatch:"subcommand"
// and selectors hold one pointer per alternative. The Next methods are
// generated; run go generate after changing any node type.
package cli

//go:generate go run ../../cmd/dispatch-gen --package-path github.com/tensorlakeai/indexify-cli/pkg/dispatch .
