package internalcheck

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strconv"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestNoHexFormattingOfKeyMaterial rejects %x and %X verbs whose operand is a
// byte slice, byte array or *big.Int. Single bytes such as an encoding prefix
// are fine.
func TestNoHexFormattingOfKeyMaterial(t *testing.T) {
	pkgs := loadEngine(t)
	var findings []string

	inspect(pkgs, func(pkg *packages.Package, fset *token.FileSet, n ast.Node) {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return
		}
		obj := pkg.TypesInfo.Uses[sel.Sel]
		if obj == nil || obj.Pkg() == nil {
			return
		}
		formatIdx, ok := formatIndex(obj.Pkg().Path(), obj.Name())
		if !ok || len(call.Args) <= formatIdx {
			return
		}
		lit, ok := call.Args[formatIdx].(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return
		}
		format, err := strconv.Unquote(lit.Value)
		if err != nil {
			return
		}

		args := call.Args[formatIdx+1:]
		for i, verb := range formatVerbs(format) {
			if verb != 'x' && verb != 'X' {
				continue
			}
			if i >= len(args) || isKeyMaterial(pkg.TypesInfo.TypeOf(args[i])) {
				findings = append(findings, fmt.Sprintf("%s: avoid %%%c formatting of key material", fset.Position(lit.Pos()), verb))
			}
		}
	})

	report(t, "secret formatting", findings)
}

func formatIndex(pkgPath, name string) (int, bool) {
	switch pkgPath {
	case "fmt":
		switch name {
		case "Errorf", "Printf", "Sprintf":
			return 0, true
		case "Fprintf":
			return 1, true
		}
	case "log":
		switch name {
		case "Printf", "Fatalf", "Panicf":
			return 0, true
		}
	}
	return 0, false
}

// formatVerbs returns the verb letter of each operand-consuming directive in
// format, in order. Explicit argument indexes are not supported and end the
// scan.
func formatVerbs(format string) []rune {
	var verbs []rune
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		for i < len(format) && isFlagOrWidth(format[i]) {
			if format[i] == '*' {
				verbs = append(verbs, '*')
			}
			i++
		}
		if i >= len(format) || format[i] == '[' {
			return verbs
		}
		if format[i] == '%' {
			continue
		}
		verbs = append(verbs, rune(format[i]))
	}
	return verbs
}

func isFlagOrWidth(b byte) bool {
	return b == '+' || b == '-' || b == '#' || b == ' ' || b == '0' || b == '.' || b == '*' || (b >= '1' && b <= '9')
}

func isKeyMaterial(typ types.Type) bool {
	if typ == nil {
		return false
	}
	if ptr, ok := typ.(*types.Pointer); ok {
		if named, ok := ptr.Elem().(*types.Named); ok {
			o := named.Obj()
			if o.Pkg() != nil && o.Pkg().Path() == "math/big" && o.Name() == "Int" {
				return true
			}
		}
	}
	switch tt := typ.Underlying().(type) {
	case *types.Slice:
		basic, ok := tt.Elem().(*types.Basic)
		return ok && basic.Kind() == types.Byte
	case *types.Array:
		basic, ok := tt.Elem().(*types.Basic)
		return ok && basic.Kind() == types.Byte
	}
	return false
}

func TestFormatVerbs(t *testing.T) {
	cases := map[string]string{
		"%w: unknown prefix 0x%02x": "wx",
		"100%% of %d and %s":        "ds",
		"%*d %-8.3f":                "*df",
		"%[1]x":                     "",
	}
	for format, want := range cases {
		if got := string(formatVerbs(format)); got != want {
			t.Errorf("formatVerbs(%q) = %q, want %q", format, got, want)
		}
	}
}
