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

// Block is a statement sequence.
type Block struct {
	Location
	stmt
	Stmts []Stmt
}

// ExprStmt is an expression evaluated for its effects.
type ExprStmt struct {
	Location
	stmt
	Expr Expr
}

// Echo is echo expr or print expr.
type Echo struct {
	Location
	stmt
	Expr Expr
}

// If is if (test) true else false. False is nil when there is no else branch.
type If struct {
	Location
	stmt
	Test  Expr
	True  Stmt
	False Stmt
}

// While is while (test) body.
type While struct {
	Location
	stmt
	Test Expr
	Body Stmt
}

// Do is do body while (test).
type Do struct {
	Location
	stmt
	Body Stmt
	Test Expr
}

// For is for (init; test; incr) body. Any header part may be nil.
type For struct {
	Location
	stmt
	Init Expr
	Test Expr
	Incr Expr
	Body Stmt
}

// Foreach is foreach (object as key => value) body. Key may be nil.
type Foreach struct {
	Location
	stmt
	Object Expr
	Key    Expr
	Value  Expr
	Body   Stmt
}

// Case is one case of a switch statement. The default case has Default set and no labels.
type Case struct {
	Default bool
	Exprs   []Expr
	Body    []Stmt
}

// Switch is switch (value) { cases }.
type Switch struct {
	Location
	stmt
	Value Expr
	Cases []Case
}

// Break is break with an optional target level.
type Break struct {
	Location
	stmt
	Target Expr
}

// Continue is continue with an optional target level.
type Continue struct {
	Location
	stmt
	Target Expr
}

// Text is inline HTML outside of PHP tags.
type Text struct {
	Location
	stmt
	Value string
}

// NullStmt is the empty statement.
type NullStmt struct {
	Location
	stmt
}

// Global is global $a, $b.
type Global struct {
	Location
	stmt
	Names []string
}

// Return is return with an optional value.
type Return struct {
	Location
	stmt
	Expr Expr
}

// ReturnRef is a return from a function declared to return by reference.
type ReturnRef struct {
	Location
	stmt
	Expr Expr
}

// ClassDefStmt is a class definition appearing in a statement sequence.
type ClassDefStmt struct {
	Location
	stmt
	Class *ClassDef
}

// FunctionDefStmt is a function definition appearing in a statement sequence.
type FunctionDefStmt struct {
	Location
	stmt
	Function *Function
}

// Throw is throw expr.
type Throw struct {
	Location
	stmt
	Expr Expr
}

// Catch is one catch clause of a try statement.
type Catch struct {
	Types []string
	Var   string
	Body  Stmt
}

// Try is try body catches finally. Finally may be nil.
type Try struct {
	Location
	stmt
	Body    Stmt
	Catches []Catch
	Finally Stmt
}

// ClassStatic is a class-level static property declaration with an optional initializer.
type ClassStatic struct {
	Location
	stmt
	ClassName string
	Name      string
	Init      Expr
}

// Static is a function-local static variable declaration with an optional initializer.
type Static struct {
	Location
	stmt
	Name string
	Init Expr
}

// UnknownStmt is a statement whose kind tag is not one of the kinds above.
type UnknownStmt struct {
	Location
	stmt
	Tag string
}

func (*Block) Kind() string { return "block" }
func (*ExprStmt) Kind() string { return "expr" }
func (*Echo) Kind() string { return "echo" }
func (*If) Kind() string { return "if" }
func (*While) Kind() string { return "while" }
func (*Do) Kind() string { return "do" }
func (*For) Kind() string { return "for" }
func (*Foreach) Kind() string { return "foreach" }
func (*Switch) Kind() string { return "switch" }
func (*Break) Kind() string { return "break" }
func (*Continue) Kind() string { return "continue" }
func (*Text) Kind() string { return "text" }
func (*NullStmt) Kind() string { return "null" }
func (*Global) Kind() string { return "global" }
func (*Return) Kind() string { return "return" }
func (*ReturnRef) Kind() string { return "return_ref" }
func (*ClassDefStmt) Kind() string { return "class_def" }
func (*FunctionDefStmt) Kind() string { return "function_def" }
func (*Throw) Kind() string { return "throw" }
func (*Try) Kind() string { return "try" }
func (*ClassStatic) Kind() string { return "class_static" }
func (*Static) Kind() string { return "static" }
func (u *UnknownStmt) Kind() string { return u.Tag }
