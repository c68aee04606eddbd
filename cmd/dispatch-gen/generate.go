package main

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"text/template"

	"golang.org/x/tools/imports"
)

const tmplDispatch = "templates/dispatch.go.tmpl"

//go:embed templates/*.tmpl
var templateFS embed.FS

type typeView struct {
	Name         string
	IsSelector   bool
	Sub          *field
	SubSelector  bool
	Alternatives []field
}

type templateData struct {
	Package      string
	DispatchPath string
	DispatchName string
	Types        []typeView
	Commands     []string
	Selectors    []typeView
}

// generate renders the Next methods and compile-time assertions for pkg.
// filename is only used to resolve formatting.
func generate(pkg *pkgInfo, dispatchPath, filename string) ([]byte, error) {
	selectors := make(map[string]bool)
	for _, n := range pkg.Nodes {
		if n.Kind == kindSelector {
			selectors[n.Name] = true
		}
	}

	data := templateData{
		Package:      pkg.Name,
		DispatchPath: dispatchPath,
		DispatchName: path.Base(dispatchPath),
	}
	for _, n := range pkg.Nodes {
		v := typeView{
			Name:         n.Name,
			IsSelector:   n.Kind == kindSelector,
			Sub:          n.Sub,
			Alternatives: n.Alternatives,
		}
		if n.Sub != nil {
			v.SubSelector = n.Sub.TypeName != "" && selectors[n.Sub.TypeName]
		}
		data.Types = append(data.Types, v)
		if v.IsSelector {
			data.Selectors = append(data.Selectors, v)
		} else {
			data.Commands = append(data.Commands, n.Name)
		}
	}

	content, err := templateFS.ReadFile(tmplDispatch)
	if err != nil {
		return nil, fmt.Errorf("failed to read dispatch template: %w", err)
	}
	tmpl, err := template.New("dispatch").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse dispatch template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute dispatch template: %w", err)
	}

	src, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w\n%s", err, buf.String())
	}
	return src, nil
}
