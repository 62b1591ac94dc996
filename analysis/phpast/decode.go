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
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DecodeError is returned when a tree document is not well-formed. Line refers to the document, not to PHP sources.
type DecodeError struct {
	File string
	Line int
	Msg  string
}

func (e *DecodeError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: tree line %d: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("tree line %d: %s", e.Line, e.Msg)
}

// DecodeFile reads the tree document at path. When the document does not name its PHP file, path is used.
func DecodeFile(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open tree file: %w", err)
	}
	defer f.Close()
	prog, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if prog.File == "" {
		prog.File = path
	}
	return prog, nil
}

// Decode reads one program document. Documents are YAML; JSON documents are accepted since JSON is a subset of YAML.
//
// Every node is a mapping with a "kind" key holding the kind tag returned by [Node.Kind], an optional "line" key,
// and kind-specific children. A node whose kind is not part of this package is decoded as an [UnknownExpr] or
// [UnknownStmt] without children; a node without kind is an error.
func Decode(r io.Reader) (*Program, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not parse tree document: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, &DecodeError{Line: root.Line, Msg: "program document must be a mapping"}
	}

	d := &decoder{}
	d.file = d.str(root, "file")
	prog := &Program{File: d.file}
	prog.Body = d.block(root, "statements")
	if prog.Body == nil {
		prog.Body = &Block{}
	}
	for _, fn := range d.seq(root, "functions") {
		if f := d.function(fn, ""); f != nil {
			prog.Functions = append(prog.Functions, f)
		}
	}
	if d.err != nil {
		return nil, d.err
	}
	return prog, nil
}

// decoder keeps the enclosing scope names while walking the document. Only the first error is kept.
type decoder struct {
	file     string
	class    string
	funcName string
	err      error
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...any) {
	if d.err != nil {
		return
	}
	line := 0
	if n != nil {
		line = n.Line
	}
	d.err = &DecodeError{File: d.file, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// field returns the value for key in mapping n, or nil.
func field(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func (d *decoder) scalar(n *yaml.Node, key string, v any) {
	f := field(n, key)
	if isNull(f) {
		return
	}
	if err := f.Decode(v); err != nil {
		d.errorf(f, "bad value for %q: %v", key, err)
	}
}

func (d *decoder) str(n *yaml.Node, key string) string {
	var s string
	d.scalar(n, key, &s)
	return s
}

func (d *decoder) integer(n *yaml.Node, key string) int64 {
	var i int64
	d.scalar(n, key, &i)
	return i
}

func (d *decoder) boolean(n *yaml.Node, key string) bool {
	var b bool
	d.scalar(n, key, &b)
	return b
}

func (d *decoder) strs(n *yaml.Node, key string) []string {
	var s []string
	d.scalar(n, key, &s)
	return s
}

func (d *decoder) seq(n *yaml.Node, key string) []*yaml.Node {
	f := field(n, key)
	if isNull(f) {
		return nil
	}
	if f.Kind != yaml.SequenceNode {
		d.errorf(f, "%q must be a list", key)
		return nil
	}
	return f.Content
}

// loc returns the location of node n. Nodes without a line get the unknown location.
func (d *decoder) loc(n *yaml.Node) Location {
	line := int(d.integer(n, "line"))
	if line <= 0 {
		return Location{}
	}
	l := Location{File: d.file, Line: line, Class: d.class, Function: d.funcName}
	if c := d.str(n, "class"); c != "" {
		l.Class = c
	}
	if f := d.str(n, "function"); f != "" {
		l.Function = f
	}
	return l
}

func (d *decoder) child(n *yaml.Node, key string) Expr {
	return d.expr(field(n, key))
}

func (d *decoder) children(n *yaml.Node, key string) []Expr {
	var res []Expr
	for _, c := range d.seq(n, key) {
		res = append(res, d.expr(c))
	}
	return res
}

func (d *decoder) args(n *yaml.Node) []Expr {
	return d.children(n, "args")
}

func (d *decoder) expr(n *yaml.Node) Expr {
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		d.errorf(n, "expression must be a mapping")
		return nil
	}
	kind := d.str(n, "kind")
	loc := d.loc(n)
	switch kind {
	case "literal_string":
		return &LiteralString{Location: loc, Value: d.str(n, "value")}
	case "literal_long":
		return &LiteralLong{Location: loc, Value: d.integer(n, "value")}
	case "literal":
		return &Literal{Location: loc, Text: d.str(n, "value")}
	case "literal_null":
		return &LiteralNull{Location: loc}
	case "var":
		return &Var{Location: loc, Name: d.str(n, "name")}
	case "var_var":
		return &VarVar{Location: loc, Expr: d.child(n, "expr")}
	case "this":
		return &This{Location: loc}
	case "ref":
		return &Ref{Location: loc, Expr: d.child(n, "expr")}
	case "array_get":
		return &ArrayGet{Location: loc, Expr: d.child(n, "expr"), Index: d.child(n, "index")}
	case "array_tail":
		return &ArrayTail{Location: loc, Expr: d.child(n, "expr")}
	case "array":
		a := &ArrayLit{Location: loc}
		for _, item := range d.seq(n, "items") {
			a.Items = append(a.Items, ArrayItem{Key: d.child(item, "key"), Value: d.child(item, "value")})
		}
		return a
	case "char_at":
		return &CharAt{Location: loc, Expr: d.child(n, "expr"), Index: d.child(n, "index")}
	case "object_field":
		return &ObjectField{Location: loc, Object: d.child(n, "object"), Name: d.str(n, "name")}
	case "object_field_var":
		return &ObjectFieldVar{Location: loc, Object: d.child(n, "object"), Name: d.child(n, "name")}
	case "this_field":
		return &ThisField{Location: loc, Name: d.str(n, "name")}
	case "this_field_var":
		return &ThisFieldVar{Location: loc, Name: d.child(n, "name")}
	case "class_field":
		return &ClassField{Location: loc, ClassName: d.str(n, "class_name"), Name: d.str(n, "name")}
	case "class_virtual_field":
		return &ClassVirtualField{Location: loc, Name: d.str(n, "name")}
	case "class_field_var":
		return &ClassFieldVar{Location: loc, ClassName: d.str(n, "class_name"), Name: d.child(n, "name")}
	case "class_var_field":
		return &ClassVarField{Location: loc, ClassExpr: d.child(n, "class_expr"), Name: d.str(n, "name")}
	case "const":
		return &Const{Location: loc, Name: d.str(n, "name")}
	case "const_file":
		return &ConstFile{Location: loc}
	case "const_dir":
		return &ConstDir{Location: loc}
	case "class_const":
		return &ClassConst{Location: loc, ClassName: d.str(n, "class_name"), Name: d.str(n, "name")}
	case "class_virtual_const":
		return &ClassVirtualConst{Location: loc, Name: d.str(n, "name")}
	case "class_var_const":
		return &ClassVarConst{Location: loc, ClassExpr: d.child(n, "class_expr"), Name: d.str(n, "name")}
	case "get_class":
		return &GetClass{Location: loc}
	case "get_called_class":
		return &GetCalledClass{Location: loc}
	case "binary":
		op := BinaryOp(d.str(n, "op"))
		if !op.Valid() {
			d.errorf(n, "unknown binary operator %q", op)
		}
		return &Binary{Location: loc, Op: op, Left: d.child(n, "left"), Right: d.child(n, "right")}
	case "append":
		if a := d.appendChain(n, loc); a != nil {
			return a
		}
		return nil
	case "unary":
		op := UnaryOp(d.str(n, "op"))
		if !op.Valid() {
			d.errorf(n, "unknown unary operator %q", op)
		}
		return &Unary{Location: loc, Op: op, Expr: d.child(n, "expr")}
	case "incdec":
		op := IncDecOp(d.str(n, "op"))
		if !op.Valid() {
			d.errorf(n, "unknown increment operator %q", op)
		}
		return &IncDec{Location: loc, Op: op, Prefix: d.boolean(n, "prefix"), Expr: d.child(n, "expr")}
	case "instanceof":
		return &InstanceOf{Location: loc, Expr: d.child(n, "expr"), ClassName: d.str(n, "class_name")}
	case "cast":
		t := CastType(d.str(n, "type"))
		if !t.Valid() {
			d.errorf(n, "unknown cast type %q", t)
		}
		return &Cast{Location: loc, Type: t, Expr: d.child(n, "expr")}
	case "suppress":
		return &Suppress{Location: loc, Expr: d.child(n, "expr")}
	case "clone":
		return &Clone{Location: loc, Expr: d.child(n, "expr")}
	case "conditional":
		return &Conditional{Location: loc, Test: d.child(n, "test"), True: d.child(n, "true"), False: d.child(n, "false")}
	case "conditional_short":
		return &ConditionalShort{Location: loc, Test: d.child(n, "test"), False: d.child(n, "false")}
	case "isset":
		return &IsSet{Location: loc, Exprs: d.children(n, "exprs")}
	case "unset":
		return &Unset{Location: loc, Expr: d.child(n, "expr")}
	case "list_head":
		return &ListHead{Location: loc, Vars: d.children(n, "vars")}
	case "assign":
		return &Assign{Location: loc, Var: d.child(n, "var"), Value: d.child(n, "value")}
	case "assign_ref":
		return &AssignRef{Location: loc, Var: d.child(n, "var"), Value: d.child(n, "value")}
	case "assign_list":
		return &AssignList{Location: loc, List: d.listHead(field(n, "list"), loc), Value: d.child(n, "value")}
	case "assign_list_each":
		return &AssignListEach{Location: loc, List: d.listHead(field(n, "list"), loc), Value: d.child(n, "value")}
	case "call":
		return &Call{Location: loc, Name: d.str(n, "name"), NsName: d.str(n, "ns_name"), Args: d.args(n)}
	case "call_var":
		return &CallVar{Location: loc, NameExpr: d.child(n, "name"), Args: d.args(n)}
	case "object_method":
		return &ObjectMethod{Location: loc, Object: d.child(n, "object"), Name: d.str(n, "name"), Args: d.args(n)}
	case "object_method_var":
		return &ObjectMethodVar{Location: loc, Object: d.child(n, "object"), Name: d.child(n, "name"), Args: d.args(n)}
	case "this_method":
		return &ThisMethod{Location: loc, Name: d.str(n, "name"), Args: d.args(n)}
	case "this_method_var":
		return &ThisMethodVar{Location: loc, Name: d.child(n, "name"), Args: d.args(n)}
	case "class_method":
		return &ClassMethod{Location: loc, ClassName: d.str(n, "class_name"), Name: d.str(n, "name"), Args: d.args(n)}
	case "class_virtual_method":
		return &ClassVirtualMethod{Location: loc, Name: d.str(n, "name"), Args: d.args(n)}
	case "class_var_method":
		return &ClassVarMethod{Location: loc, ClassExpr: d.child(n, "class_expr"), Name: d.str(n, "name"), Args: d.args(n)}
	case "class_method_var":
		return &ClassMethodVar{Location: loc, ClassName: d.str(n, "class_name"), Name: d.child(n, "name"), Args: d.args(n)}
	case "class_var_method_var":
		return &ClassVarMethodVar{Location: loc, ClassExpr: d.child(n, "class_expr"), Name: d.child(n, "name"),
			Args: d.args(n)}
	case "class_construct":
		return &ClassConstruct{Location: loc, ClassName: d.str(n, "class_name"), Args: d.args(n)}
	case "new":
		return &New{Location: loc, ClassName: d.str(n, "class_name"), Args: d.args(n)}
	case "new_var":
		return &NewVar{Location: loc, ClassExpr: d.child(n, "class_expr"), Args: d.args(n)}
	case "new_static":
		return &NewStatic{Location: loc, Args: d.args(n)}
	case "closure":
		return &Closure{Location: loc, Function: d.function(field(n, "definition"), ""), Uses: d.strs(n, "uses")}
	case "include":
		return &Include{Location: loc, Expr: d.child(n, "expr"), Once: d.boolean(n, "once"), Require: d.boolean(n, "require")}
	case "exit":
		return &Exit{Location: loc, Die: d.boolean(n, "die"), Value: d.child(n, "value")}
	case "":
		d.errorf(n, "expression without kind")
	default:
		return &UnknownExpr{Location: loc, Tag: kind}
	}
	return nil
}

// appendChain accepts either the linked form {value, next} or the flat form {parts: [...]}.
func (d *decoder) appendChain(n *yaml.Node, loc Location) *Append {
	if parts := d.seq(n, "parts"); parts != nil {
		var head, tail *Append
		for _, p := range parts {
			link := &Append{Location: loc, Value: d.expr(p)}
			if head == nil {
				head = link
			} else {
				tail.Next = link
			}
			tail = link
		}
		return head
	}
	a := &Append{Location: loc, Value: d.child(n, "value")}
	next := field(n, "next")
	if isNull(next) {
		return a
	}
	switch e := d.expr(next).(type) {
	case *Append:
		a.Next = e
	case nil:
	default:
		// a plain expression ends the chain
		a.Next = &Append{Location: e.Pos(), Value: e}
	}
	return a
}

// listHead accepts a list_head node or a bare list of targets.
func (d *decoder) listHead(n *yaml.Node, loc Location) *ListHead {
	if isNull(n) {
		return nil
	}
	if n.Kind == yaml.SequenceNode {
		l := &ListHead{Location: loc}
		for _, v := range n.Content {
			l.Vars = append(l.Vars, d.expr(v))
		}
		return l
	}
	switch e := d.expr(n).(type) {
	case *ListHead:
		return e
	case nil:
		return nil
	default:
		d.errorf(n, "list assignment target must be list_head, got %s", e.Kind())
		return nil
	}
}

func (d *decoder) stmt(n *yaml.Node) Stmt {
	if isNull(n) {
		return nil
	}
	if n.Kind == yaml.SequenceNode {
		b := &Block{}
		for _, s := range n.Content {
			if st := d.stmt(s); st != nil {
				b.Stmts = append(b.Stmts, st)
			}
		}
		return b
	}
	if n.Kind != yaml.MappingNode {
		d.errorf(n, "statement must be a mapping")
		return nil
	}
	kind := d.str(n, "kind")
	loc := d.loc(n)
	switch kind {
	case "block":
		b := &Block{Location: loc}
		for _, s := range d.seq(n, "stmts") {
			if st := d.stmt(s); st != nil {
				b.Stmts = append(b.Stmts, st)
			}
		}
		return b
	case "expr":
		return &ExprStmt{Location: loc, Expr: d.child(n, "expr")}
	case "echo":
		return &Echo{Location: loc, Expr: d.child(n, "expr")}
	case "if":
		return &If{Location: loc, Test: d.child(n, "test"), True: d.body(n, "true"), False: d.body(n, "false")}
	case "while":
		return &While{Location: loc, Test: d.child(n, "test"), Body: d.body(n, "body")}
	case "do":
		return &Do{Location: loc, Body: d.body(n, "body"), Test: d.child(n, "test")}
	case "for":
		return &For{Location: loc, Init: d.child(n, "init"), Test: d.child(n, "test"), Incr: d.child(n, "incr"),
			Body: d.body(n, "body")}
	case "foreach":
		return &Foreach{Location: loc, Object: d.child(n, "object"), Key: d.child(n, "key"),
			Value: d.child(n, "value"), Body: d.body(n, "body")}
	case "switch":
		s := &Switch{Location: loc, Value: d.child(n, "value")}
		for _, c := range d.seq(n, "cases") {
			s.Cases = append(s.Cases, Case{
				Default: d.boolean(c, "default"),
				Exprs:   d.children(c, "exprs"),
				Body:    d.stmtList(field(c, "body")),
			})
		}
		return s
	case "break":
		return &Break{Location: loc, Target: d.child(n, "target")}
	case "continue":
		return &Continue{Location: loc, Target: d.child(n, "target")}
	case "text":
		return &Text{Location: loc, Value: d.str(n, "value")}
	case "null":
		return &NullStmt{Location: loc}
	case "global":
		return &Global{Location: loc, Names: d.strs(n, "names")}
	case "return":
		return &Return{Location: loc, Expr: d.child(n, "expr")}
	case "return_ref":
		return &ReturnRef{Location: loc, Expr: d.child(n, "expr")}
	case "class_def":
		return &ClassDefStmt{Location: loc, Class: d.classDef(field(n, "definition"))}
	case "function_def":
		return &FunctionDefStmt{Location: loc, Function: d.function(field(n, "definition"), "")}
	case "throw":
		return &Throw{Location: loc, Expr: d.child(n, "expr")}
	case "try":
		t := &Try{Location: loc, Body: d.body(n, "body"), Finally: d.body(n, "finally")}
		for _, c := range d.seq(n, "catches") {
			t.Catches = append(t.Catches, Catch{Types: d.strs(c, "types"), Var: d.str(c, "var"), Body: d.body(c, "body")})
		}
		return t
	case "class_static":
		return &ClassStatic{Location: loc, ClassName: d.str(n, "class_name"), Name: d.str(n, "name"),
			Init: d.child(n, "init")}
	case "static":
		return &Static{Location: loc, Name: d.str(n, "name"), Init: d.child(n, "init")}
	case "":
		d.errorf(n, "statement without kind")
	default:
		return &UnknownStmt{Location: loc, Tag: kind}
	}
	return nil
}

func (d *decoder) body(n *yaml.Node, key string) Stmt {
	return d.stmt(field(n, key))
}

func (d *decoder) stmtList(n *yaml.Node) []Stmt {
	switch s := d.stmt(n).(type) {
	case nil:
		return nil
	case *Block:
		if s.IsUnknown() {
			return s.Stmts
		}
		return []Stmt{s}
	default:
		return []Stmt{s}
	}
}

// block decodes a statement list under key. Absent keys give nil.
func (d *decoder) block(n *yaml.Node, key string) *Block {
	switch s := d.body(n, key).(type) {
	case nil:
		return nil
	case *Block:
		return s
	default:
		return &Block{Location: s.Pos(), Stmts: []Stmt{s}}
	}
}

func (d *decoder) function(n *yaml.Node, class string) *Function {
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		d.errorf(n, "function record must be a mapping")
		return nil
	}
	if class == "" && d.class == "" {
		class = d.str(n, "class")
	}
	fn := &Function{
		Name:      d.str(n, "name"),
		ClassName: class,
		Static:    d.boolean(n, "static"),
		Abstract:  d.boolean(n, "abstract"),
	}
	if fn.Name == "" {
		fn.Name = ClosureName
	}
	switch v := d.str(n, "visibility"); v {
	case "", "public":
		fn.Visibility = Public
	case "protected":
		fn.Visibility = Protected
	case "private":
		fn.Visibility = Private
	default:
		d.errorf(n, "unknown visibility %q", v)
	}

	savedClass, savedFunction := d.class, d.funcName
	defer func() { d.class, d.funcName = savedClass, savedFunction }()
	if class != "" {
		d.class = class
	}
	d.funcName = fn.Name
	fn.Location = d.loc(n)

	for _, p := range d.seq(n, "params") {
		if p.Kind == yaml.ScalarNode {
			fn.Params = append(fn.Params, Param{Name: p.Value})
			continue
		}
		fn.Params = append(fn.Params, Param{Name: d.str(p, "name"), Default: d.child(p, "default")})
	}
	fn.Body = d.block(n, "body")
	return fn
}

func (d *decoder) classDef(n *yaml.Node) *ClassDef {
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		d.errorf(n, "class record must be a mapping")
		return nil
	}
	c := &ClassDef{
		Name:       d.str(n, "name"),
		Parent:     d.str(n, "parent"),
		Interfaces: d.strs(n, "interfaces"),
		Interface:  d.boolean(n, "interface"),
	}
	savedClass, savedFunction := d.class, d.funcName
	defer func() { d.class, d.funcName = savedClass, savedFunction }()
	d.class, d.funcName = c.Name, ""
	c.Location = d.loc(n)
	for _, f := range d.seq(n, "functions") {
		if fn := d.function(f, c.Name); fn != nil {
			c.Functions = append(c.Functions, fn)
		}
	}
	return c
}
