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
	"strings"
)

// Location is the position of a node in the PHP sources. The zero value is the unknown location.
type Location struct {
	// File is the name of the PHP source file
	File string

	// Line is the 1-based line number. A line <= 0 means the location is unknown.
	Line int

	// Class is the name of the enclosing class, if any
	Class string

	// Function is the name of the enclosing function or method, if any
	Function string
}

// Pos returns the location itself. Nodes embed a Location and thereby implement [Node.Pos].
func (l Location) Pos() Location {
	return l
}

// IsUnknown returns true when the parser did not provide a position for the node.
func (l Location) IsUnknown() bool {
	return l.Line <= 0
}

func (l Location) String() string {
	if l.IsUnknown() {
		return "<unknown location>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d", l.File, l.Line)
	switch {
	case l.Class != "" && l.Function != "":
		fmt.Fprintf(&b, " (%s::%s)", l.Class, l.Function)
	case l.Class != "":
		fmt.Fprintf(&b, " (%s)", l.Class)
	case l.Function != "":
		fmt.Fprintf(&b, " (%s)", l.Function)
	}
	return b.String()
}

// Node is implemented by every expression and statement of the tree.
type Node interface {
	// Kind returns the stable kind tag of the node, as used in the interchange format
	Kind() string

	// Pos returns the location of the node
	Pos() Location
}

// Expr is an expression node. Only the types of this package implement Expr.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node. Only the types of this package implement Stmt.
type Stmt interface {
	Node
	stmtNode()
}

type expr struct{}

func (expr) exprNode() {}

type stmt struct{}

func (stmt) stmtNode() {}

// Visibility is the declared visibility of a class member.
type Visibility int

const (
	// Public is the default visibility
	Public Visibility = iota
	// Protected members are visible in the class hierarchy
	Protected
	// Private members are only visible in the declaring class
	Private
)

func (v Visibility) String() string {
	switch v {
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "public"
	}
}

// ClosureName is the name given to the function record of an anonymous function.
const ClosureName = "{closure}"

// Param is a formal parameter of a function.
type Param struct {
	Name    string
	Default Expr
}

// Function is a function, method or closure record. A function without body is an abstract or interface signature.
type Function struct {
	Location

	// Name is the declared name, or ClosureName for anonymous functions
	Name string

	// ClassName is the declaring class for methods, empty for free functions
	ClassName string

	Visibility Visibility
	Static     bool
	Abstract   bool
	Params     []Param

	// Body is nil for abstract and interface methods
	Body *Block
}

// IsClosure returns true when the function is an anonymous function.
func (f *Function) IsClosure() bool {
	return f.Name == "" || f.Name == ClosureName
}

// IsMethod returns true when the function is declared inside a class.
func (f *Function) IsMethod() bool {
	return f.ClassName != ""
}

func (f *Function) String() string {
	if f.ClassName != "" {
		return f.ClassName + "::" + f.Name
	}
	return f.Name
}

// ClassDef is a class or interface definition.
type ClassDef struct {
	Location

	Name       string
	Parent     string
	Interfaces []string
	Interface  bool

	// Functions lists the member functions in declaration order
	Functions []*Function
}

// Program is the tree of one PHP source file.
type Program struct {
	// File is the name of the PHP source file the tree was parsed from
	File string

	// Body is the top-level statement sequence
	Body *Block

	// Functions lists the top-level function records that are not part of Body
	Functions []*Function
}
