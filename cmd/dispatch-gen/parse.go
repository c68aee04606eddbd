package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

const (
	directiveCommand  = "//dispatch:command"
	directiveSelector = "//dispatch:selector"

	tagKey        = "dispatch"
	tagSubcommand = "subcommand"
)

type nodeKind int

const (
	kindCommand nodeKind = iota + 1
	kindSelector
)

// field is a struct field relevant to generation.
type field struct {
	Name string
	// Type is the field's type expression as written.
	Type string
	// TypeName is the unqualified named type, without the pointer.
	TypeName string
	Pointer  bool
}

// node is a marked type of the package.
type node struct {
	Name string
	Kind nodeKind
	// Sub is the subcommand field of a composite; nil for a leaf.
	Sub *field
	// Alternatives are the choices of a selector.
	Alternatives []field
}

type pkgInfo struct {
	Name  string
	Nodes []*node
}

// parsePackage collects the marked types of the package in dir. Test files
// and the generated output are ignored. Nodes are returned in file name
// order, then declaration order.
func parsePackage(dir, outputName string) (*pkgInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || name == outputName {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)

	fset := token.NewFileSet()
	pkg := &pkgInfo{}
	for _, name := range files {
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments)
		if err != nil {
			return nil, err
		}
		if pkg.Name == "" {
			pkg.Name = f.Name.Name
		} else if f.Name.Name != pkg.Name {
			return nil, fmt.Errorf("%s: package %s, expected %s", name, f.Name.Name, pkg.Name)
		}

		nodes, err := fileNodes(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		pkg.Nodes = append(pkg.Nodes, nodes...)
	}

	if len(pkg.Nodes) == 0 {
		return nil, fmt.Errorf("no %s or %s types found in %s", directiveCommand, directiveSelector, dir)
	}
	return pkg, nil
}

func fileNodes(f *ast.File) ([]*node, error) {
	var nodes []*node
	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)

			doc := ts.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			kind, err := directiveKind(ts.Name.Name, doc)
			if err != nil {
				return nil, err
			}
			if kind == 0 {
				continue
			}

			st, ok := ts.Type.(*ast.StructType)
			if !ok || ts.TypeParams != nil {
				return nil, fmt.Errorf("type %s: dispatch can only be generated for command structs or closed selector structs", ts.Name.Name)
			}

			var n *node
			if kind == kindSelector {
				n, err = selectorNode(ts.Name.Name, st)
			} else {
				n, err = commandNode(ts.Name.Name, st)
			}
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

func directiveKind(typeName string, doc *ast.CommentGroup) (nodeKind, error) {
	if doc == nil {
		return 0, nil
	}
	var kind nodeKind
	for _, c := range doc.List {
		var k nodeKind
		switch strings.TrimSpace(c.Text) {
		case directiveCommand:
			k = kindCommand
		case directiveSelector:
			k = kindSelector
		default:
			continue
		}
		if kind != 0 && kind != k {
			return 0, fmt.Errorf("type %s: both %s and %s given", typeName, directiveCommand, directiveSelector)
		}
		kind = k
	}
	return kind, nil
}

func commandNode(name string, st *ast.StructType) (*node, error) {
	n := &node{Name: name, Kind: kindCommand}
	for _, f := range st.Fields.List {
		if !isSubcommand(f) {
			continue
		}
		if len(f.Names) != 1 {
			return nil, fmt.Errorf("type %s: the subcommand field must be a single named field", name)
		}
		if n.Sub != nil {
			return nil, fmt.Errorf("type %s: more than one subcommand field (%s, %s)", name, n.Sub.Name, f.Names[0].Name)
		}
		fld, err := newField(name, f.Names[0].Name, f.Type)
		if err != nil {
			return nil, err
		}
		n.Sub = &fld
	}
	return n, nil
}

func selectorNode(name string, st *ast.StructType) (*node, error) {
	n := &node{Name: name, Kind: kindSelector}
	for _, f := range st.Fields.List {
		if len(f.Names) == 0 {
			return nil, fmt.Errorf("selector %s: embedded field %s is not allowed", name, types.ExprString(f.Type))
		}
		if isSubcommand(f) {
			return nil, fmt.Errorf("selector %s: alternatives must not be tagged %s:%q", name, tagKey, tagSubcommand)
		}
		for _, ident := range f.Names {
			fld, err := newField(name, ident.Name, f.Type)
			if err != nil {
				return nil, err
			}
			if !fld.Pointer {
				return nil, fmt.Errorf("selector %s: alternative %s must be a pointer", name, ident.Name)
			}
			if fld.TypeName == "" {
				return nil, fmt.Errorf("selector %s: alternative %s must be declared in this package", name, ident.Name)
			}
			n.Alternatives = append(n.Alternatives, fld)
		}
	}
	if len(n.Alternatives) == 0 {
		return nil, fmt.Errorf("selector %s has no alternatives", name)
	}
	return n, nil
}

func isSubcommand(f *ast.Field) bool {
	if f.Tag == nil {
		return false
	}
	raw, err := strconv.Unquote(f.Tag.Value)
	if err != nil {
		return false
	}
	return reflect.StructTag(raw).Get(tagKey) == tagSubcommand
}

func newField(owner, name string, expr ast.Expr) (field, error) {
	fld := field{Name: name, Type: types.ExprString(expr)}
	if star, ok := expr.(*ast.StarExpr); ok {
		fld.Pointer = true
		expr = star.X
	}
	switch t := expr.(type) {
	case *ast.Ident:
		fld.TypeName = t.Name
	case *ast.SelectorExpr:
		// Declared in another package, never a local selector.
		fld.TypeName = ""
	default:
		return field{}, fmt.Errorf("type %s: field %s must be a named type or a pointer to one", owner, name)
	}
	return fld, nil
}
