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

package phpast

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func decodeString(t *testing.T, doc string) *Program {
	t.Helper()
	prog, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return prog
}

func TestDecodeFile(t *testing.T) {
	prog, err := DecodeFile(filepath.Join("testdata", "program.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prog.File != "/srv/app/page.php" {
		t.Errorf("file: got %q", prog.File)
	}
	stmts := prog.Body.Stmts
	if len(stmts) != 5 {
		t.Fatalf("expected 5 top-level statements, got %d", len(stmts))
	}

	if text, ok := stmts[0].(*Text); !ok || text.Value != "<html>" || text.Line != 1 {
		t.Errorf("statement 0: got %#v", stmts[0])
	}

	assign := stmts[1].(*ExprStmt).Expr.(*Assign)
	cond, ok := assign.Value.(*Conditional)
	if !ok {
		t.Fatalf("expected a conditional, got %s", assign.Value.Kind())
	}
	if _, ok := cond.Test.(*IsSet); !ok {
		t.Errorf("conditional test: got %s", cond.Test.Kind())
	}
	if lit, ok := cond.False.(*LiteralString); !ok || lit.Value != "Home" {
		t.Errorf("conditional false branch: got %#v", cond.False)
	}
	if !cond.True.Pos().IsUnknown() {
		t.Errorf("node without line should have the unknown location, got %s", cond.True.Pos())
	}

	class := stmts[2].(*ClassDefStmt).Class
	if class.Name != "Page" || class.Parent != "Base" || len(class.Interfaces) != 1 || len(class.Functions) != 2 {
		t.Fatalf("unexpected class %#v", class)
	}
	render, layout := class.Functions[0], class.Functions[1]
	if render.ClassName != "Page" || render.Location.Class != "Page" || render.Location.Function != "render" {
		t.Errorf("method location should carry the scope names, got %s", render.Location)
	}
	if len(render.Params) != 2 || render.Params[0].Name != "title" || render.Params[1].Default == nil {
		t.Errorf("unexpected params %#v", render.Params)
	}
	if render.Body == nil || len(render.Body.Stmts) != 2 {
		t.Fatalf("unexpected body for render")
	}
	ifStmt := render.Body.Stmts[0].(*If)
	if ifStmt.Pos().Class != "Page" || ifStmt.Pos().Function != "render" {
		t.Errorf("statements inside a method should carry its scope, got %s", ifStmt.Pos())
	}
	if _, ok := ifStmt.True.(*Block); !ok {
		t.Errorf("a list of statements should be decoded as a block, got %s", ifStmt.True.Kind())
	}
	if _, ok := ifStmt.False.(*NullStmt); !ok {
		t.Errorf("else branch: got %s", ifStmt.False.Kind())
	}
	chain := render.Body.Stmts[1].(*Echo).Expr.(*Append)
	n := 0
	for link := chain; link != nil; link = link.Next {
		n++
	}
	if n != 3 {
		t.Errorf("flat concatenation should give 3 links, got %d", n)
	}
	if layout.Body != nil || !layout.Abstract || layout.Visibility != Protected {
		t.Errorf("unexpected abstract method %#v", layout)
	}

	sw := stmts[3].(*Switch)
	if len(sw.Cases) != 2 || !sw.Cases[1].Default || len(sw.Cases[0].Body) != 2 || len(sw.Cases[1].Body) != 1 {
		t.Errorf("unexpected switch %#v", sw)
	}
	if sw.Cases[0].Body[0].Pos().Class != "" {
		t.Errorf("the class scope should end with the class, got %s", sw.Cases[0].Body[0].Pos())
	}

	try := stmts[4].(*Try)
	if len(try.Catches) != 1 || try.Catches[0].Var != "e" || try.Finally == nil {
		t.Errorf("unexpected try %#v", try)
	}
	include := try.Body.(*Block).Stmts[0].(*ExprStmt).Expr.(*Include)
	if !include.Once || !include.Require {
		t.Errorf("unexpected include %#v", include)
	}
	if next := include.Expr.(*Append).Next; next == nil || next.Value.Kind() != "literal_string" {
		t.Errorf("a plain expression should end the linked concatenation")
	}

	if len(prog.Functions) != 1 {
		t.Fatalf("expected one function record, got %d", len(prog.Functions))
	}
	ret := prog.Functions[0].Body.Stmts[0].(*Return)
	closure := ret.Expr.(*Closure)
	if !closure.Function.IsClosure() || len(closure.Uses) != 1 || closure.Function.Body == nil {
		t.Errorf("unexpected closure %#v", closure)
	}
	if closure.Function.Location.Function != ClosureName {
		t.Errorf("closure location should be named after the closure, got %s", closure.Function.Location)
	}
}

func TestDecodeJSON(t *testing.T) {
	prog, err := DecodeFile(filepath.Join("testdata", "program.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := prog.Body.Stmts[0].(*ExprStmt).Expr.(*Call)
	if c.Name != "mysql_query" || c.NsName != `db\mysql_query` || len(c.Args) != 1 {
		t.Fatalf("unexpected call %#v", c)
	}
	bin := c.Args[0].(*Binary)
	if bin.Op != OpAdd {
		t.Errorf("unexpected operator %q", bin.Op)
	}
	if cast := bin.Right.(*Cast); cast.Type != CastInt || !cast.Type.IsScalar() {
		t.Errorf("unexpected cast %#v", cast)
	}
	loop := prog.Body.Stmts[1].(*Foreach)
	if loop.Key == nil || loop.Value == nil {
		t.Errorf("foreach key and value should be decoded")
	}
	if _, ok := loop.Body.(*Echo); !ok {
		t.Errorf("a single statement body should be kept as is, got %s", loop.Body.Kind())
	}
}

func TestDecodeFileNamesProgram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anonymous.yaml")
	if err := os.WriteFile(path, []byte("statements: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	prog, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prog.File != path || prog.Body == nil || len(prog.Body.Stmts) != 0 {
		t.Errorf("unexpected program %#v", prog)
	}
	if _, err := DecodeFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("missing file should be an error")
	}
}

func TestDecodeEmptyProgram(t *testing.T) {
	prog := decodeString(t, "file: a.php\n")
	if prog.Body == nil || len(prog.Body.Stmts) != 0 || len(prog.Functions) != 0 {
		t.Errorf("unexpected program %#v", prog)
	}
}

func TestDecodeLocationOverrides(t *testing.T) {
	prog := decodeString(t, `
file: a.php
statements:
  - {kind: echo, line: 4, class: Foo, function: bar, expr: {kind: var, name: x, line: 4}}
`)
	loc := prog.Body.Stmts[0].Pos()
	want := Location{File: "a.php", Line: 4, Class: "Foo", Function: "bar"}
	if loc != want {
		t.Errorf("got %s, want %s", loc, want)
	}
	if got := prog.Body.Stmts[0].(*Echo).Expr.Pos(); got.Class != "" {
		t.Errorf("overrides should not leak to other nodes, got %s", got)
	}
}

func TestDecodeListAssignment(t *testing.T) {
	prog := decodeString(t, `
statements:
  - kind: expr
    expr:
      kind: assign_list
      list: [{kind: var, name: a}, null, {kind: var, name: b}]
      value: {kind: var, name: row}
  - kind: expr
    expr:
      kind: assign_list_each
      list: {kind: list_head, vars: [{kind: var, name: k}]}
      value: {kind: var, name: rows}
`)
	list := prog.Body.Stmts[0].(*ExprStmt).Expr.(*AssignList).List
	if list == nil || len(list.Vars) != 3 || list.Vars[1] != nil {
		t.Errorf("unexpected list %#v", list)
	}
	each := prog.Body.Stmts[1].(*ExprStmt).Expr.(*AssignListEach).List
	if each == nil || len(each.Vars) != 1 {
		t.Errorf("unexpected list %#v", each)
	}
}

func TestDecodeUnknownKinds(t *testing.T) {
	prog := decodeString(t, `
file: a.php
statements:
  - {kind: goto, line: 2, label: end}
  - kind: echo
    line: 3
    expr: {kind: match, line: 3, subject: {kind: var, name: x}}
`)
	st, ok := prog.Body.Stmts[0].(*UnknownStmt)
	if !ok || st.Kind() != "goto" || st.Pos().Line != 2 {
		t.Errorf("unknown statement should keep its kind and line, got %#v", prog.Body.Stmts[0])
	}
	e, ok := prog.Body.Stmts[1].(*Echo).Expr.(*UnknownExpr)
	if !ok || e.Kind() != "match" || e.Pos().Line != 3 {
		t.Errorf("unknown expression should keep its kind and line, got %#v", prog.Body.Stmts[1].(*Echo).Expr)
	}
	if got := Sprint(e); got != "<match>" {
		t.Errorf("unknown expression printed as %q", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		doc  string
		msg  string
	}{
		{"not a mapping", "- a\n- b\n", "must be a mapping"},
		{"missing kind", "statements: [{line: 3}]\n", "statement without kind"},
		{"missing expression kind", "statements: [{kind: expr, expr: {line: 3}}]\n", "expression without kind"},
		{"bad operator", "statements: [{kind: expr, expr: {kind: binary, op: '.'}}]\n", "unknown binary operator"},
		{"bad cast", "statements: [{kind: expr, expr: {kind: cast, type: float}}]\n", "unknown cast type"},
		{"bad visibility", "functions: [{name: f, visibility: internal}]\n", "unknown visibility"},
		{"bad line", "statements: [{kind: echo, line: three}]\n", `bad value for "line"`},
		{"not a list", "statements: [{kind: expr, expr: {kind: call, name: f, args: 3}}]\n", `"args" must be a list`},
		{"bad list target", "statements: [{kind: expr, expr: {kind: assign_list, list: {kind: var, name: a}}}]\n",
			"must be list_head"},
		{"invalid yaml", "statements: [\n", "could not parse"},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(test.doc))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), test.msg) {
				t.Errorf("error %q should contain %q", err, test.msg)
			}
		})
	}
}

func TestDecodeErrorHasDocumentLine(t *testing.T) {
	_, err := Decode(strings.NewReader("file: a.php\nstatements:\n  - kind: echo\n  - line: 7\n"))
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected a decode error, got %v", err)
	}
	if derr.Line != 4 || derr.File != "a.php" {
		t.Errorf("unexpected error position: %s", derr)
	}
}
