// Package exitcall содержит статический анализатор,
// запрещающий прямой вызов os.Exit в функции main пакета main.
// Бинарники завершаются через log.Fatal или возвратом из main,
// чтобы отложенные вызовы успели закрыть логи и сервер.
package exitcall

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

var Analyzer = &analysis.Analyzer{
	Name:     "exitcall",
	Doc:      "checks call of os.Exit in function main of package main",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}

	ins := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	ins.Nodes([]ast.Node{(*ast.FuncDecl)(nil), (*ast.CallExpr)(nil)}, func(node ast.Node, push bool) bool {
		if !push {
			return false
		}
		switch x := node.(type) {
		case *ast.FuncDecl:
			return x.Recv == nil && x.Name.Name == "main"
		case *ast.CallExpr:
			if isOsExit(pass, x) {
				pass.Reportf(x.Pos(), "call os.Exit() in main function of main package")
			}
		}
		return true
	})
	return nil, nil
}

func isOsExit(pass *analysis.Pass, call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
	if !ok || fn.Pkg() == nil {
		return false
	}
	return fn.Pkg().Path() == "os" && fn.Name() == "Exit"
}
