// Package analyzer implements the shortener's project lint rules.
package analyzer

import (
	"go/ast"
	"go/types"
	"strconv"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const (
	analyzerName = "forbiddencalls"
	analyzerDoc  = "reports panic anywhere, process exits outside func main, and math/rand imports"
)

// Analyzer reports calls that would take down the server from library code
// and imports of predictable random sources.
var Analyzer = &analysis.Analyzer{
	Name:     analyzerName,
	Doc:      analyzerDoc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// exitFuncs lists functions allowed only directly inside func main.
var exitFuncs = map[string]map[string]bool{
	"log": {"Fatal": true, "Fatalf": true, "Fatalln": true},
	"os":  {"Exit": true},
}

var insecureRandPackages = map[string]bool{
	"math/rand":    true,
	"math/rand/v2": true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.CallExpr)(nil),
		(*ast.ImportSpec)(nil),
	}

	insp.WithStack(nodeFilter, func(node ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}

		switch n := node.(type) {
		case *ast.ImportSpec:
			checkImport(pass, n)
		case *ast.CallExpr:
			checkCall(pass, n, enclosingFunc(stack))
		}
		return true
	})

	return nil, nil
}

func checkImport(pass *analysis.Pass, spec *ast.ImportSpec) {
	path, err := strconv.Unquote(spec.Path.Value)
	if err != nil {
		return
	}

	if insecureRandPackages[path] {
		pass.Reportf(spec.Pos(), "%s is forbidden, use crypto/rand", path)
	}
}

func checkCall(pass *analysis.Pass, call *ast.CallExpr, fn *ast.FuncDecl) {
	switch f := call.Fun.(type) {
	case *ast.Ident:
		if b, ok := pass.TypesInfo.Uses[f].(*types.Builtin); ok && b.Name() == "panic" {
			pass.Reportf(call.Pos(), "panic is forbidden")
		}
	case *ast.SelectorExpr:
		obj, ok := pass.TypesInfo.Uses[f.Sel].(*types.Func)
		if !ok || obj.Pkg() == nil {
			return
		}

		pkgPath := obj.Pkg().Path()
		if !exitFuncs[pkgPath][obj.Name()] {
			return
		}

		if !isMainFunc(pass, fn) {
			pass.Reportf(call.Pos(), "%s.%s is forbidden outside main function", obj.Pkg().Name(), obj.Name())
		}
	}
}

// enclosingFunc returns the innermost top-level function declaration on the stack.
func enclosingFunc(stack []ast.Node) *ast.FuncDecl {
	for i := len(stack) - 1; i >= 0; i-- {
		if fn, ok := stack[i].(*ast.FuncDecl); ok {
			return fn
		}
	}
	return nil
}

func isMainFunc(pass *analysis.Pass, fn *ast.FuncDecl) bool {
	return fn != nil && fn.Recv == nil && fn.Name.Name == "main" && pass.Pkg.Name() == "main"
}
