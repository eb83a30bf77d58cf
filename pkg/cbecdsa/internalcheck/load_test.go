package internalcheck

import (
	"go/ast"
	"go/token"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const enginePattern = "github.com/coinbase/cb-ecdsa-go/pkg/cbecdsa/..."

// loadEngine returns the non-test engine packages with syntax and type info.
func loadEngine(t *testing.T) []*packages.Package {
	t.Helper()
	cfg := &packages.Config{
		Mode: packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedFiles | packages.NeedName,
	}
	pkgs, err := packages.Load(cfg, enginePattern)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		t.Fatalf("packages under %s contain errors", enginePattern)
	}
	if len(pkgs) == 0 {
		t.Fatalf("no packages matched %s", enginePattern)
	}
	return pkgs
}

// inspect calls fn for every node in every non-test file of pkgs.
func inspect(pkgs []*packages.Package, fn func(pkg *packages.Package, fset *token.FileSet, n ast.Node)) {
	for _, pkg := range pkgs {
		for i, file := range pkg.Syntax {
			if i < len(pkg.CompiledGoFiles) && strings.HasSuffix(pkg.CompiledGoFiles[i], "_test.go") {
				continue
			}
			ast.Inspect(file, func(n ast.Node) bool {
				if n != nil {
					fn(pkg, pkg.Fset, n)
				}
				return true
			})
		}
	}
}

func report(t *testing.T, policy string, findings []string) {
	t.Helper()
	if len(findings) > 0 {
		t.Fatalf("%s policy violation:\n%s", policy, strings.Join(findings, "\n"))
	}
}
