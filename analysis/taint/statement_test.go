// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package taint

import (
	"testing"

	"github.com/awslabs/ar-php-tools/analysis/phpast"
	"github.com/awslabs/ar-php-tools/analysis/risk"
)

func TestEcho(t *testing.T) {
	f := newFixture(t, risk.All())
	tainted := v("name")
	r := f.stmts.Analyze(echo(4, &phpast.Append{Value: str("Hello "), Next: &phpast.Append{Value: tainted}}))
	if r.Risks != risk.All() || r.Witness != tainted {
		t.Errorf("echo should return the result of its expression, got %s", r)
	}
	got := findingLines(f.results.Findings())
	if len(got) != 1 || got[0] != testFile+":4 echo [XSS] $name" {
		t.Errorf("unexpected findings %v", got)
	}

	f.stmts.Analyze(echo(5, call(5, "htmlspecialchars", tainted)))
	if len(f.results.Findings()) != 1 {
		t.Errorf("mitigated echo should not be reported, got %v", f.results.Findings())
	}
}

func TestStatementResults(t *testing.T) {
	f := newFixture(t, risk.All())
	tainted := v("x")
	if r := f.stmts.Analyze(&phpast.ExprStmt{Expr: tainted}); r.Witness != tainted {
		t.Errorf("expression statement should return the expression result, got %s", r)
	}
	if r := f.stmts.Analyze(&phpast.Return{Expr: tainted}); r.Risks != risk.All() {
		t.Errorf("return should return the expression result, got %s", r)
	}
	if r := f.stmts.Analyze(&phpast.ReturnRef{Expr: tainted}); r.Risks != risk.All() {
		t.Errorf("return by reference should return the expression result, got %s", r)
	}
	for _, st := range []phpast.Stmt{
		&phpast.Return{},
		&phpast.Throw{Expr: tainted},
		&phpast.Text{Value: "<html>"},
		&phpast.NullStmt{},
		&phpast.Global{Names: []string{"db"}},
		&phpast.If{Test: tainted, True: &phpast.ExprStmt{Expr: tainted}},
		block(&phpast.ExprStmt{Expr: tainted}),
		nil,
	} {
		if r := f.stmts.Analyze(st); !r.Risks.IsEmpty() || r.Witness != nil {
			t.Errorf("%s should have no risk, got %s", phpast.Sprint(st), r)
		}
	}
}

func TestLoopsAreWalkedOnce(t *testing.T) {
	query := func(line int) phpast.Expr { return call(line, "mysql_query", v("q")) }
	for _, test := range []struct {
		name string
		stmt phpast.Stmt
		want int
	}{
		{"while tests before the body", &phpast.While{Test: query(1), Body: assign("q", str("safe"))}, 1},
		{"do tests before the body", &phpast.Do{Body: assign("q", str("safe")), Test: query(1)}, 1},
		{"for runs init before the test", &phpast.For{
			Init: &phpast.Assign{Var: v("q"), Value: str("safe")},
			Test: query(1),
			Incr: query(2),
			Body: &phpast.ExprStmt{Expr: query(3)},
		}, 0},
		{"for body runs after the increment", &phpast.For{
			Test: &phpast.Binary{Op: "<", Left: v("i"), Right: &phpast.LiteralLong{Value: 3}},
			Incr: query(2),
			Body: assign("q", str("safe")),
		}, 1},
		{"foreach does not bind its value", &phpast.Foreach{
			Object: v("rows"),
			Value:  v("q"),
			Body:   &phpast.ExprStmt{Expr: query(1)},
		}, 1},
		{"loop bodies are walked once", &phpast.While{
			Test: &phpast.Literal{Text: "true"},
			Body: block(&phpast.ExprStmt{Expr: query(1)}, assign("q", str("safe"))),
		}, 1},
	} {
		t.Run(test.name, func(t *testing.T) {
			f := newFixture(t, risk.All())
			f.stmts.Analyze(test.stmt)
			if got := len(f.results.Findings()); got != test.want {
				t.Errorf("got %d findings, want %d: %v", got, test.want, findingLines(f.results.Findings()))
			}
		})
	}
}

func TestBranchesShareTheScope(t *testing.T) {
	f := newFixture(t, risk.All())
	f.stmts.Analyze(block(
		assign("q", str("safe")),
		&phpast.If{
			Test:  v("cond"),
			True:  assign("q", v("input")),
			False: &phpast.ExprStmt{Expr: call(3, "mysql_query", v("q"))},
		},
	))
	if len(f.results.Findings()) != 1 {
		t.Errorf("the else branch should see the assignment of the then branch, got %v",
			findingLines(f.results.Findings()))
	}
}

func TestSwitchIsWalkedInSourceOrder(t *testing.T) {
	f := newFixture(t, risk.All())
	f.stmts.Analyze(&phpast.Switch{
		Value: call(1, "mysql_query", v("subject")),
		Cases: []phpast.Case{
			{Exprs: []phpast.Expr{call(2, "exec", v("label"))}, Body: []phpast.Stmt{assign("label", str("safe"))}},
			{Exprs: []phpast.Expr{call(3, "exec", v("label"))}, Body: []phpast.Stmt{echo(4, v("out"))}},
			{Default: true, Body: []phpast.Stmt{&phpast.Break{Target: call(5, "exec", v("level"))}}},
		},
	})
	want := []string{
		testFile + ":1 mysql_query [SQL_INJECTION] $subject",
		testFile + ":2 exec [COMMAND_INJECTION] $label",
		testFile + ":4 echo [XSS] $out",
		testFile + ":5 exec [COMMAND_INJECTION] $level",
	}
	got := findingLines(f.results.Findings())
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("finding %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTryCatchFinally(t *testing.T) {
	f := newFixture(t, risk.All())
	f.stmts.Analyze(&phpast.Try{
		Body:    echo(1, v("a")),
		Catches: []phpast.Catch{{Types: []string{"Exception"}, Var: "e", Body: echo(2, v("b"))}},
		Finally: echo(3, v("c")),
	})
	f.stmts.Analyze(&phpast.Continue{Target: call(4, "exec", v("d"))})
	if got := len(f.results.Findings()); got != 4 {
		t.Errorf("every block of the try statement should be walked, got %v", findingLines(f.results.Findings()))
	}
}

func TestStaticInitializers(t *testing.T) {
	f := newFixture(t, risk.All())
	f.stmts.Analyze(&phpast.Static{Name: "cache", Init: call(1, "mysql_query", v("q"))})
	f.stmts.Analyze(&phpast.ClassStatic{ClassName: "Foo", Name: "cache", Init: call(2, "mysql_query", v("q"))})
	f.stmts.Analyze(&phpast.Static{Name: "empty"})
	if len(f.results.Findings()) != 2 {
		t.Errorf("static initializers should be analyzed, got %v", findingLines(f.results.Findings()))
	}
	if _, ok := f.exprs.Variable("cache"); ok {
		t.Errorf("static variables should not be bound")
	}
}

func TestNestedDeclarationsGetFreshScopes(t *testing.T) {
	f := newFixture(t, risk.All())
	inner := &phpast.Function{
		Location: at(2),
		Name:     "render",
		Body:     block(echo(3, v("q"))),
	}
	closure := &phpast.Function{
		Location: at(5),
		Name:     phpast.ClosureName,
		Body:     block(echo(6, v("q"))),
	}
	f.stmts.Analyze(block(
		assign("q", str("safe")),
		&phpast.FunctionDefStmt{Location: at(2), Function: inner},
		&phpast.ExprStmt{Expr: &phpast.Closure{Location: at(5), Function: closure, Uses: []string{"q"}}},
		echo(8, v("q")),
	))
	got := findingLines(f.results.Findings())
	want := []string{testFile + ":3 echo [XSS] $q", testFile + ":6 echo [XSS] $q"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("nested functions should not see the variables of the enclosing scope, got %v", got)
	}
	if r, _ := f.exprs.Variable("q"); !r.Risks.IsEmpty() {
		t.Errorf("nested scopes should not modify the enclosing scope, got %s", r)
	}
}

func TestUnknownStatementPanics(t *testing.T) {
	f := newFixture(t, risk.All())
	defer func() {
		cerr, ok := recover().(*CoverageError)
		if !ok {
			t.Fatalf("expected a coverage error")
		}
		if cerr.Kind != "bogus_stmt" {
			t.Errorf("unexpected coverage error %s", cerr)
		}
	}()
	f.stmts.Analyze(block(bogusStmt{&phpast.NullStmt{}}))
}
