// Package arch_test checks the package structure of golive: the layer order
// of internal packages, the absence of catalog singletons, the purity of the
// scheduling core and GoDoc on exported symbols.
package arch_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"testing"
)

const internalPrefix = "github.com/papapumpkin/golive/internal/"

// sourceFile is one parsed non-test Go file.
type sourceFile struct {
	Path string // relative to the repository root
	AST  *ast.File
	Fset *token.FileSet
}

// rootDir returns the repository root, found by walking up from this file
// to the directory holding go.mod.
func rootDir(t *testing.T) string {
	t.Helper()
	_, here, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	for dir := filepath.Dir(here); ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		if filepath.Dir(dir) == dir {
			t.Fatal("go.mod not found above " + here)
		}
	}
}

// internalPackages lists the package directories under internal/, without
// arch_test.
func internalPackages(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(rootDir(t), "internal"))
	if err != nil {
		t.Fatal(err)
	}
	var pkgs []string
	for _, e := range entries {
		if e.IsDir() && e.Name() != "arch_test" {
			pkgs = append(pkgs, e.Name())
		}
	}
	return pkgs
}

// parseDir parses the non-test Go files of dir, which is relative to the
// repository root.
func parseDir(t *testing.T, dir string) []sourceFile {
	t.Helper()
	root := rootDir(t)
	matches, err := filepath.Glob(filepath.Join(root, dir, "*.go"))
	if err != nil {
		t.Fatal(err)
	}
	var files []sourceFile
	for _, path := range matches {
		if strings.HasSuffix(path, "_test.go") {
			continue
		}
		fset := token.NewFileSet()
		f, err := parser.ParseFile(fset, path, nil, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			t.Fatalf("parse %s: %v", path, err)
		}
		rel, _ := filepath.Rel(root, path)
		files = append(files, sourceFile{Path: rel, AST: f, Fset: fset})
	}
	return files
}

// imports returns the import paths of files, deduplicated and sorted.
func imports(files []sourceFile) []string {
	var out []string
	for _, f := range files {
		for _, spec := range f.AST.Imports {
			p, err := strconv.Unquote(spec.Path.Value)
			if err == nil && !slices.Contains(out, p) {
				out = append(out, p)
			}
		}
	}
	slices.Sort(out)
	return out
}

// internalImports returns the internal packages imported by files, by
// directory name.
func internalImports(files []sourceFile) []string {
	var out []string
	for _, p := range imports(files) {
		if name, ok := strings.CutPrefix(p, internalPrefix); ok {
			out = append(out, name)
		}
	}
	return out
}

// packageVars yields every package-level var spec of files.
func packageVars(files []sourceFile, fn func(f sourceFile, decl *ast.GenDecl, spec *ast.ValueSpec)) {
	for _, f := range files {
		for _, d := range f.AST.Decls {
			gd, ok := d.(*ast.GenDecl)
			if !ok || gd.Tok != token.VAR {
				continue
			}
			for _, s := range gd.Specs {
				fn(f, gd, s.(*ast.ValueSpec))
			}
		}
	}
}

func (f sourceFile) line(n ast.Node) int {
	return f.Fset.Position(n.Pos()).Line
}
