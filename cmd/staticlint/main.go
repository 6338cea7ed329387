// Staticlint запускает набор статических анализаторов для модуля.
//
// В набор входят:
//   - стандартные анализаторы golang.org/x/tools/go/analysis/passes;
//   - все анализаторы класса SA из staticcheck.io и выбранные ST и S;
//   - go-critic, nilerr и unused;
//   - exitcall, запрещающий os.Exit в функции main;
//   - globalrand, запрещающий глобальный источник math/rand.
//
// Запуск: staticlint ./...
package main

import (
	"strings"

	"github.com/go-critic/go-critic/checkers/analyzer"
	"github.com/gostaticanalysis/nilerr"
	"github.com/gostaticanalysis/unused"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/asmdecl"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/shift"
	"golang.org/x/tools/go/analysis/passes/stdmethods"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/tests"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"

	"github.com/xrymbos/rsa/internal/analyzers/exitcall"
	"github.com/xrymbos/rsa/internal/analyzers/globalrand"
)

var extraChecks = map[string]bool{
	"ST1005": true, // текст ошибки с маленькой буквы и без точки
	"ST1016": true, // одинаковое имя получателя методов
	"S1002":  true, // сравнение bool с константой
	"S1021":  true, // объявление и присваивание функции
}

func main() {
	checks := []*analysis.Analyzer{
		asmdecl.Analyzer,
		assign.Analyzer,
		atomic.Analyzer,
		bools.Analyzer,
		copylock.Analyzer,
		errorsas.Analyzer,
		httpresponse.Analyzer,
		loopclosure.Analyzer,
		lostcancel.Analyzer,
		nilfunc.Analyzer,
		printf.Analyzer,
		shadow.Analyzer,
		shift.Analyzer,
		stdmethods.Analyzer,
		structtag.Analyzer,
		tests.Analyzer,
		unmarshal.Analyzer,
		unreachable.Analyzer,
		unusedresult.Analyzer,

		analyzer.Analyzer,
		nilerr.Analyzer,
		unused.Analyzer,

		exitcall.Analyzer,
		globalrand.Analyzer,
	}

	for name, a := range staticcheck.Analyzers {
		if strings.HasPrefix(name, "SA") {
			checks = append(checks, a)
		}
	}
	for _, analyzers := range []map[string]*analysis.Analyzer{simple.Analyzers, stylecheck.Analyzers} {
		for name, a := range analyzers {
			if extraChecks[name] {
				checks = append(checks, a)
			}
		}
	}

	multichecker.Main(checks...)
}
