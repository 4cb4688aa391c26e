package arch_test

import (
	"go/ast"
	"slices"
	"strings"
	"testing"
)

// catalogValues names the catalog identifiers whose presence in a
// package-level var means a process-wide catalog: its types and the
// functions that produce one.
var catalogValues = []string{
	"Catalog", "PhaseDefinition", "StageDefinition", "File",
	"Default", "DefaultPhases", "DefaultFile", "New", "MustNew", "Load",
}

// corePackages compute over values they are handed and keep nothing between
// calls.
var corePackages = []string{"civil", "schedule", "variance", "metrics", "phase", "timeline"}

// TestNoCatalogSingletons checks that no package keeps a catalog or phase
// list in a package-level var. Catalogs travel as arguments so that a
// reloaded file reaches every computation.
func TestNoCatalogSingletons(t *testing.T) {
	t.Parallel()

	dirs := []string{"cmd", "cmd/golive"}
	for _, pkg := range internalPackages(t) {
		dirs = append(dirs, "internal/"+pkg)
	}
	for _, dir := range dirs {
		inCatalog := dir == "internal/catalog"
		packageVars(parseDir(t, dir), func(f sourceFile, _ *ast.GenDecl, spec *ast.ValueSpec) {
			var exprs []ast.Expr
			if spec.Type != nil {
				exprs = append(exprs, spec.Type)
			}
			exprs = append(exprs, spec.Values...)
			for _, e := range exprs {
				if name, ok := mentionsCatalog(e, inCatalog); ok {
					t.Errorf("%s:%d: package-level var %s holds catalog.%s", f.Path, f.line(spec), spec.Names[0].Name, name)
				}
			}
		})
	}
}

// TestCoreHoldsNoState checks that the scheduling core declares no
// package-level vars other than error sentinels.
func TestCoreHoldsNoState(t *testing.T) {
	t.Parallel()

	for _, pkg := range corePackages {
		packageVars(parseDir(t, "internal/"+pkg), func(f sourceFile, _ *ast.GenDecl, spec *ast.ValueSpec) {
			for i, name := range spec.Names {
				if name.Name == "_" || (i < len(spec.Values) && isSentinel(spec.Values[i])) {
					continue
				}
				t.Errorf("%s:%d: var %s in core package %s; pass it as an argument instead", f.Path, f.line(name), name.Name, pkg)
			}
		})
	}
}

// TestPackageVarsAreConstantLike checks that the remaining packages only
// declare vars that are never reassigned: error sentinels, literal lookup
// tables, embedded files and the viewer's lipgloss styles.
func TestPackageVarsAreConstantLike(t *testing.T) {
	t.Parallel()

	for _, pkg := range internalPackages(t) {
		if slices.Contains(corePackages, pkg) {
			continue
		}
		packageVars(parseDir(t, "internal/"+pkg), func(f sourceFile, decl *ast.GenDecl, spec *ast.ValueSpec) {
			for i, name := range spec.Names {
				var val ast.Expr
				if i < len(spec.Values) {
					val = spec.Values[i]
				}
				switch {
				case name.Name == "_",
					isSentinel(val),
					isLiteralTable(val),
					isEmbedded(decl, spec),
					pkg == "tui" && (strings.HasPrefix(name.Name, "style") || strings.HasPrefix(name.Name, "color")):
					continue
				}
				t.Errorf("%s:%d: mutable package-level var %s", f.Path, f.line(name), name.Name)
			}
		})
	}
}

// mentionsCatalog reports the first catalog identifier referenced by e.
// Inside the catalog package the identifiers appear unqualified.
func mentionsCatalog(e ast.Expr, inCatalog bool) (string, bool) {
	var found string
	ast.Inspect(e, func(n ast.Node) bool {
		if found != "" {
			return false
		}
		switch x := n.(type) {
		case *ast.SelectorExpr:
			if id, ok := x.X.(*ast.Ident); ok && id.Name == "catalog" && slices.Contains(catalogValues, x.Sel.Name) {
				found = x.Sel.Name
			}
			return false
		case *ast.Ident:
			if inCatalog && slices.Contains(catalogValues, x.Name) {
				found = x.Name
			}
		}
		return true
	})
	return found, found != ""
}

func isSentinel(e ast.Expr) bool {
	call, ok := e.(*ast.CallExpr)
	if !ok {
		return false
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && ((pkg.Name == "errors" && sel.Sel.Name == "New") || (pkg.Name == "fmt" && sel.Sel.Name == "Errorf"))
}

func isLiteralTable(e ast.Expr) bool {
	if u, ok := e.(*ast.UnaryExpr); ok {
		e = u.X
	}
	_, ok := e.(*ast.CompositeLit)
	return ok
}

// isEmbedded reports whether spec is filled by a //go:embed directive.
func isEmbedded(decl *ast.GenDecl, spec *ast.ValueSpec) bool {
	for _, cg := range []*ast.CommentGroup{spec.Doc, decl.Doc} {
		if cg == nil {
			continue
		}
		for _, c := range cg.List {
			if strings.HasPrefix(c.Text, "//go:embed ") {
				return true
			}
		}
	}
	return false
}
