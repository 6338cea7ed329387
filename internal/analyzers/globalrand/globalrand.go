// Package globalrand содержит статический анализатор, запрещающий функции
// пакета math/rand, которые обращаются к общему глобальному источнику.
// Случайность передается явно через numtheory.Source.
package globalrand

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

var Analyzer = &analysis.Analyzer{
	Name:     "globalrand",
	Doc:      "reports use of the global math/rand source, randomness must be injected",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// конструкторы не трогают глобальный источник
var allowed = map[string]bool{
	"New":       true,
	"NewSource": true,
	"NewZipf":   true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	ins := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	ins.Preorder([]ast.Node{(*ast.SelectorExpr)(nil)}, func(node ast.Node) {
		sel := node.(*ast.SelectorExpr)
		fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
		if !ok || fn.Pkg() == nil {
			return
		}
		if path := fn.Pkg().Path(); path != "math/rand" && path != "math/rand/v2" {
			return
		}
		// методы *rand.Rand работают со своим источником
		if fn.Type().(*types.Signature).Recv() != nil {
			return
		}
		if !allowed[fn.Name()] {
			pass.Reportf(sel.Pos(), "rand.%s uses the global source, inject a numtheory.Source instead", fn.Name())
		}
	})
	return nil, nil
}
