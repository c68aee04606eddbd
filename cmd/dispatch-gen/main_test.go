package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const treeSource = `package tree

import (
	"context"

	"example.com/dispatch"
)

// Root is the entry point.
//
//dispatch:command
type Root struct {
	dispatch.Base

	Verbose bool
	Cmd     RootCmd ` + "`dispatch:\"subcommand\"`" + `
}

//dispatch:selector
type RootCmd struct {
	Add  *Add
	List *List
}

//dispatch:command
type Add struct {
	dispatch.Base

	Name string
}

func (a *Add) Run(ctx context.Context) error { return nil }

//dispatch:command
type List struct {
	dispatch.Base
	Sub *Item ` + "`json:\"sub\" dispatch:\"subcommand\"`" + `
}

//dispatch:command
type Item struct {
	dispatch.Base
}

// helper is not part of the tree.
type helper struct {
	n int
}
`

func writePackage(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0644))
	}
	return dir
}

func runGen(t *testing.T, dir string) string {
	t.Helper()
	require.NoError(t, run(dir, defaultOutput, "example.com/dispatch"))
	out, err := os.ReadFile(filepath.Join(dir, defaultOutput))
	require.NoError(t, err)
	return string(out)
}

func TestGenerate_Tree(t *testing.T) {
	dir := writePackage(t, map[string]string{"tree.go": treeSource})
	out := runGen(t, dir)

	assert.Contains(t, out, "// Code generated by dispatch-gen. DO NOT EDIT.")
	assert.Contains(t, out, "package tree")
	assert.Contains(t, out, `import "example.com/dispatch"`)

	// composite over a selector delegates
	assert.Contains(t, out, "func (c *Root) Next() dispatch.Command {\n\treturn c.Cmd.Next()\n}")

	// selector picks the first set alternative
	assert.Contains(t, out, "func (c *RootCmd) Next() dispatch.Command {\n\tswitch {\n\tcase c.Add != nil:\n\t\treturn c.Add\n\tcase c.List != nil:\n\t\treturn c.List\n\t}\n\treturn nil\n}")

	// pointer subcommand is nil checked
	assert.Contains(t, out, "func (c *List) Next() dispatch.Command {\n\tif c.Sub == nil {\n\t\treturn nil\n\t}\n\treturn c.Sub\n}")

	// leaves
	assert.Contains(t, out, "func (c *Add) Next() dispatch.Command {\n\treturn nil\n}")
	assert.Contains(t, out, "func (c *Item) Next() dispatch.Command {\n\treturn nil\n}")

	assert.NotContains(t, out, "helper")
	assert.NotContains(t, out, "(*RootCmd)(nil)")
	for _, name := range []string{"Root", "Add", "List", "Item"} {
		assert.Contains(t, out, "_ dispatch.Command = (*"+name+")(nil)")
	}
	assert.Contains(t, out, "var _ = RootCmd(struct {")
}

func TestGenerate_ValueSubcommand(t *testing.T) {
	src := `package tree

import "example.com/dispatch"

//dispatch:command
type Root struct {
	dispatch.Base
	Leaf Leaf ` + "`dispatch:\"subcommand\"`" + `
}

//dispatch:command
type Leaf struct {
	dispatch.Base
}
`
	out := runGen(t, writePackage(t, map[string]string{"tree.go": src}))
	assert.Contains(t, out, "func (c *Root) Next() dispatch.Command {\n\treturn &c.Leaf\n}")
}

func TestGenerate_Deterministic(t *testing.T) {
	files := map[string]string{
		"tree.go": treeSource,
		"more.go": "package tree\n\n//dispatch:command\ntype Extra struct{}\n",
	}
	out1 := runGen(t, writePackage(t, files))
	out2 := runGen(t, writePackage(t, files))
	assert.Equal(t, out1, out2)

	// more.go sorts before tree.go
	assert.Less(t, strings.Index(out1, "(c *Extra)"), strings.Index(out1, "(c *Root)"))
}

func TestGenerate_IgnoresOutputAndTests(t *testing.T) {
	dir := writePackage(t, map[string]string{
		"tree.go":      treeSource,
		"tree_test.go": "package tree\n\n//dispatch:command\ntype TestOnly struct{}\n",
		defaultOutput:  "package tree\n\n//dispatch:command\ntype Stale struct{}\n",
	})
	out := runGen(t, dir)
	assert.NotContains(t, out, "TestOnly")
	assert.NotContains(t, out, "Stale")
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name: "two subcommand fields",
			src: "package tree\n\n//dispatch:command\ntype Root struct {\n\tA A `dispatch:\"subcommand\"`\n\tB B `dispatch:\"subcommand\"`\n}\n" +
				"\n//dispatch:command\ntype A struct{}\n\n//dispatch:command\ntype B struct{}\n",
			wantErr: "more than one subcommand field (A, B)",
		},
		{
			name:    "interface marked",
			src:     "package tree\n\n//dispatch:command\ntype Root interface{}\n",
			wantErr: "dispatch can only be generated for command structs or closed selector structs",
		},
		{
			name:    "generic marked",
			src:     "package tree\n\n//dispatch:command\ntype Root[T any] struct{ v T }\n",
			wantErr: "dispatch can only be generated for command structs or closed selector structs",
		},
		{
			name:    "empty selector",
			src:     "package tree\n\n//dispatch:selector\ntype Pick struct{}\n",
			wantErr: "selector Pick has no alternatives",
		},
		{
			name:    "value alternative",
			src:     "package tree\n\n//dispatch:selector\ntype Pick struct {\n\tA A\n}\n\n//dispatch:command\ntype A struct{}\n",
			wantErr: "alternative A must be a pointer",
		},
		{
			name:    "embedded alternative",
			src:     "package tree\n\n//dispatch:selector\ntype Pick struct {\n\t*A\n}\n\n//dispatch:command\ntype A struct{}\n",
			wantErr: "embedded field *A is not allowed",
		},
		{
			name:    "foreign alternative",
			src:     "package tree\n\nimport \"example.com/other\"\n\n//dispatch:selector\ntype Pick struct {\n\tA *other.A\n}\n",
			wantErr: "alternative A must be declared in this package",
		},
		{
			name:    "both directives",
			src:     "package tree\n\n//dispatch:command\n//dispatch:selector\ntype Root struct{}\n",
			wantErr: "both //dispatch:command and //dispatch:selector given",
		},
		{
			name:    "unnamed subcommand type",
			src:     "package tree\n\n//dispatch:command\ntype Root struct {\n\tCmd []int `dispatch:\"subcommand\"`\n}\n",
			wantErr: "field Cmd must be a named type",
		},
		{
			name:    "no marked types",
			src:     "package tree\n\ntype Root struct{}\n",
			wantErr: "no //dispatch:command or //dispatch:selector types found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writePackage(t, map[string]string{"tree.go": tt.src})
			err := run(dir, defaultOutput, "example.com/dispatch")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			_, statErr := os.Stat(filepath.Join(dir, defaultOutput))
			assert.True(t, os.IsNotExist(statErr), "nothing should be written on error")
		})
	}
}

func TestGenerate_MixedPackages(t *testing.T) {
	dir := writePackage(t, map[string]string{
		"a.go": "package one\n\n//dispatch:command\ntype A struct{}\n",
		"b.go": "package two\n\n//dispatch:command\ntype B struct{}\n",
	})
	err := run(dir, defaultOutput, "example.com/dispatch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package two, expected one")
}

func TestNewRootCmd_Flags(t *testing.T) {
	dir := writePackage(t, map[string]string{"tree.go": treeSource})

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--output", "links_gen.go", "--package-path", "example.com/x/dispatch", dir})
	require.NoError(t, cmd.Execute())

	out, err := os.ReadFile(filepath.Join(dir, "links_gen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(out), `import "example.com/x/dispatch"`)
}
