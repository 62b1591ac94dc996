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
	"fmt"
	"testing"

	"github.com/awslabs/ar-php-tools/analysis/config"
	"github.com/awslabs/ar-php-tools/analysis/deadcode"
	"github.com/awslabs/ar-php-tools/analysis/phpast"
	"github.com/awslabs/ar-php-tools/analysis/risk"
)

const testFile = "/srv/app/index.php"

var testDangerous = map[string]string{
	"echo":             "XSS",
	"exit":             "XSS",
	"die":              "XSS",
	"include":          "FILE_INCLUSION",
	"include_once":     "FILE_INCLUSION",
	"mysql_query":      "SQL_INJECTION",
	"exec":             "COMMAND_INJECTION",
	"eval":             "CODE_EVALUATION",
	"query":            "SQL_INJECTION",
	SinkCallVar:        "CODE_EVALUATION",
	SinkNewVar:         "CODE_EVALUATION",
	SinkClassMethodVar: "CODE_EVALUATION",
}

var testMitigating = map[string]string{
	"intval":           "SQL_INJECTION, XSS, COMMAND_INJECTION, FILE_INCLUSION, CODE_EVALUATION",
	"htmlspecialchars": "XSS",
	"escapeshellarg":   "COMMAND_INJECTION",
}

// fixture is one scope of a program analyzer, with its collectors
type fixture struct {
	results *ResultCollector
	usage   *deadcode.Collector
	program *ProgramAnalyzer
	stmts   *StatementAnalyzer
	exprs   *ExpressionAnalyzer
}

func newFixture(t *testing.T, interest risk.Set) *fixture {
	t.Helper()
	methods, err := NewMethodInformation(testDangerous, testMitigating)
	if err != nil {
		t.Fatalf("invalid test catalog: %v", err)
	}
	logger := config.NewDiscardLogGroup(config.TraceLevel)
	results := NewResultCollector(logger, methods, interest)
	usage := deadcode.NewCollector(logger, []string{"/srv/app/"})
	program := NewProgramAnalyzer(logger, results, usage)
	stmts := program.newScope()
	return &fixture{results: results, usage: usage, program: program, stmts: stmts, exprs: stmts.Expressions()}
}

func at(line int) phpast.Location {
	return phpast.Location{File: testFile, Line: line}
}

func v(name string) *phpast.Var {
	return &phpast.Var{Name: name}
}

func str(s string) *phpast.LiteralString {
	return &phpast.LiteralString{Value: s}
}

func call(line int, name string, args ...phpast.Expr) *phpast.Call {
	return &phpast.Call{Location: at(line), Name: name, Args: args}
}

func assign(name string, value phpast.Expr) *phpast.ExprStmt {
	return &phpast.ExprStmt{Expr: &phpast.Assign{Var: v(name), Value: value}}
}

func echo(line int, e phpast.Expr) *phpast.Echo {
	return &phpast.Echo{Location: at(line), Expr: e}
}

func block(stmts ...phpast.Stmt) *phpast.Block {
	return &phpast.Block{Stmts: stmts}
}

// findingLine renders a finding the way the golden files of the scenarios do
func findingLine(f Finding) string {
	return fmt.Sprintf("%s:%d %s %s %s", f.Location.File, f.Location.Line, f.Sink, f.Risks, phpast.Sprint(f.Witness))
}

func findingLines(findings []Finding) []string {
	var res []string
	for _, f := range findings {
		res = append(res, findingLine(f))
	}
	return res
}

// bogusExpr is an expression type the analysis does not know
type bogusExpr struct {
	*phpast.LiteralNull
}

func (bogusExpr) Kind() string { return "bogus" }

// bogusStmt is a statement type the analysis does not know
type bogusStmt struct {
	*phpast.NullStmt
}

func (bogusStmt) Kind() string { return "bogus_stmt" }
