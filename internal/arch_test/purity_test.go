package arch_test

import (
	"go/ast"
	"slices"
	"testing"
)

// ioImports are packages the scheduling core must not reach for: it reads
// no files, opens no connections and keeps no clock.
var ioImports = []string{
	"database/sql",
	"io/fs",
	"net",
	"net/http",
	"os",
	"os/exec",
	"time",
	"github.com/fsnotify/fsnotify",
}

// TestCoreDoesNoIO checks the imports of the pure scheduling packages.
// civil wraps time.Time and is exempt from the time rule.
func TestCoreDoesNoIO(t *testing.T) {
	t.Parallel()

	for _, pkg := range corePackages {
		for _, imp := range imports(parseDir(t, "internal/"+pkg)) {
			if pkg == "civil" && imp == "time" {
				continue
			}
			if slices.Contains(ioImports, imp) {
				t.Errorf("core package %s imports %s", pkg, imp)
			}
		}
	}
}

// TestCoreTakesTodayAsInput checks that no core package outside civil asks
// for the current date. Open bars and elapsed SLA are measured against a
// caller-supplied date so that results are reproducible.
func TestCoreTakesTodayAsInput(t *testing.T) {
	t.Parallel()

	for _, pkg := range corePackages {
		if pkg == "civil" {
			continue
		}
		for _, f := range parseDir(t, "internal/"+pkg) {
			ast.Inspect(f.AST, func(n ast.Node) bool {
				sel, ok := n.(*ast.SelectorExpr)
				if !ok {
					return true
				}
				id, ok := sel.X.(*ast.Ident)
				if !ok {
					return true
				}
				if (id.Name == "civil" && sel.Sel.Name == "Today") || (id.Name == "time" && sel.Sel.Name == "Now") {
					t.Errorf("%s:%d: %s.%s in core package %s", f.Path, f.line(sel), id.Name, sel.Sel.Name, pkg)
				}
				return true
			})
		}
	}
}

// TestCoreIsBelowPersistence checks that no core package depends on the
// store, planner or presentation packages, even indirectly through a layer
// map mistake.
func TestCoreIsBelowPersistence(t *testing.T) {
	t.Parallel()

	upper := []string{"store", "planner", "planning", "telemetry", "config", "ui", "tui"}
	for _, pkg := range corePackages {
		for _, dep := range internalImports(parseDir(t, "internal/"+pkg)) {
			if slices.Contains(upper, dep) {
				t.Errorf("core package %s imports %s", pkg, dep)
			}
		}
	}
}
