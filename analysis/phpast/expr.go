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

// Literals

// LiteralString is a string constant such as 'abc'.
type LiteralString struct {
	Location
	expr
	Value string
}

// LiteralLong is an integer constant.
type LiteralLong struct {
	Location
	expr
	Value int64
}

// Literal is any other literal: booleans and doubles. Text holds the source spelling.
type Literal struct {
	Location
	expr
	Text string
}

// LiteralNull is the null constant.
type LiteralNull struct {
	Location
	expr
}

// Variables

// Var is a read of the named variable, without the leading $.
type Var struct {
	Location
	expr
	Name string
}

// VarVar is a variable-variable $$expr.
type VarVar struct {
	Location
	expr
	Expr Expr
}

// This is $this.
type This struct {
	Location
	expr
}

// Ref is a reference-of &expr.
type Ref struct {
	Location
	expr
	Expr Expr
}

// Arrays and strings

// ArrayGet is an element read $expr[index].
type ArrayGet struct {
	Location
	expr
	Expr  Expr
	Index Expr
}

// ArrayTail is the append target $expr[].
type ArrayTail struct {
	Location
	expr
	Expr Expr
}

// ArrayItem is one entry of an array literal. Key is nil for positional entries.
type ArrayItem struct {
	Key   Expr
	Value Expr
}

// ArrayLit is an array construction array(...) or [...].
type ArrayLit struct {
	Location
	expr
	Items []ArrayItem
}

// CharAt is a single character index $expr{index}.
type CharAt struct {
	Location
	expr
	Expr  Expr
	Index Expr
}

// Properties

// ObjectField is a property read $obj->name.
type ObjectField struct {
	Location
	expr
	Object Expr
	Name   string
}

// ObjectFieldVar is a property read with a dynamic name $obj->$name.
type ObjectFieldVar struct {
	Location
	expr
	Object Expr
	Name   Expr
}

// ThisField is a property read $this->name.
type ThisField struct {
	Location
	expr
	Name string
}

// ThisFieldVar is a property read $this->$name.
type ThisFieldVar struct {
	Location
	expr
	Name Expr
}

// ClassField is a static property read Foo::$name.
type ClassField struct {
	Location
	expr
	ClassName string
	Name      string
}

// ClassVirtualField is a static property read static::$name.
type ClassVirtualField struct {
	Location
	expr
	Name string
}

// ClassFieldVar is a static property read with a dynamic name Foo::$$name.
type ClassFieldVar struct {
	Location
	expr
	ClassName string
	Name      Expr
}

// ClassVarField is a static property read through a class expression $class::$name.
type ClassVarField struct {
	Location
	expr
	ClassExpr Expr
	Name      string
}

// Constants

// Const is a global constant reference.
type Const struct {
	Location
	expr
	Name string
}

// ConstFile is __FILE__.
type ConstFile struct {
	Location
	expr
}

// ConstDir is __DIR__.
type ConstDir struct {
	Location
	expr
}

// ClassConst is a class constant Foo::NAME. Foo::class is represented with Name "class".
type ClassConst struct {
	Location
	expr
	ClassName string
	Name      string
}

// ClassVirtualConst is static::NAME.
type ClassVirtualConst struct {
	Location
	expr
	Name string
}

// ClassVarConst is $class::NAME.
type ClassVarConst struct {
	Location
	expr
	ClassExpr Expr
	Name      string
}

// GetClass is __CLASS__ or get_class() without argument.
type GetClass struct {
	Location
	expr
}

// GetCalledClass is get_called_class() or static::class.
type GetCalledClass struct {
	Location
	expr
}

// Operators

// Binary is a binary operation. Concatenation chains are represented by Append instead.
type Binary struct {
	Location
	expr
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// Append is one link of a string concatenation chain: Value . Next . ...
type Append struct {
	Location
	expr
	Value Expr
	// Next is the rest of the chain, nil for the last link
	Next *Append
}

// Unary is a unary operation.
type Unary struct {
	Location
	expr
	Op   UnaryOp
	Expr Expr
}

// IncDec is ++$v, $v++, --$v or $v--.
type IncDec struct {
	Location
	expr
	Op     IncDecOp
	Prefix bool
	Expr   Expr
}

// InstanceOf is $expr instanceof ClassName.
type InstanceOf struct {
	Location
	expr
	Expr      Expr
	ClassName string
}

// Cast is a type conversion (type)$expr.
type Cast struct {
	Location
	expr
	Type CastType
	Expr Expr
}

// Suppress is the error suppression @expr.
type Suppress struct {
	Location
	expr
	Expr Expr
}

// Clone is clone $expr.
type Clone struct {
	Location
	expr
	Expr Expr
}

// Conditional is the ternary test ? true : false.
type Conditional struct {
	Location
	expr
	Test  Expr
	True  Expr
	False Expr
}

// ConditionalShort is the elvis test ?: false.
type ConditionalShort struct {
	Location
	expr
	Test  Expr
	False Expr
}

// IsSet is isset($a, $b, ...).
type IsSet struct {
	Location
	expr
	Exprs []Expr
}

// Unset is unset($v) used as an expression.
type Unset struct {
	Location
	expr
	Expr Expr
}

// ListHead is the target list(...) of a list assignment. Skipped positions are nil.
type ListHead struct {
	Location
	expr
	Vars []Expr
}

// Assignments

// Assign is $var = value.
type Assign struct {
	Location
	expr
	Var   Expr
	Value Expr
}

// AssignRef is $var =& value.
type AssignRef struct {
	Location
	expr
	Var   Expr
	Value Expr
}

// AssignList is list(...) = value.
type AssignList struct {
	Location
	expr
	List  *ListHead
	Value Expr
}

// AssignListEach is list(...) = each(value).
type AssignListEach struct {
	Location
	expr
	List  *ListHead
	Value Expr
}

// Calls

// Call is a call of a named function. NsName is the namespace-qualified name when the parser resolved one.
type Call struct {
	Location
	expr
	Name   string
	NsName string
	Args   []Expr
}

// CallVar is a call through an expression $f(...).
type CallVar struct {
	Location
	expr
	NameExpr Expr
	Args     []Expr
}

// ObjectMethod is $obj->name(...).
type ObjectMethod struct {
	Location
	expr
	Object Expr
	Name   string
	Args   []Expr
}

// ObjectMethodVar is $obj->$name(...).
type ObjectMethodVar struct {
	Location
	expr
	Object Expr
	Name   Expr
	Args   []Expr
}

// ThisMethod is $this->name(...).
type ThisMethod struct {
	Location
	expr
	Name string
	Args []Expr
}

// ThisMethodVar is $this->$name(...).
type ThisMethodVar struct {
	Location
	expr
	Name Expr
	Args []Expr
}

// ClassMethod is Foo::name(...).
type ClassMethod struct {
	Location
	expr
	ClassName string
	Name      string
	Args      []Expr
}

// ClassVirtualMethod is static::name(...).
type ClassVirtualMethod struct {
	Location
	expr
	Name string
	Args []Expr
}

// ClassVarMethod is $class::name(...).
type ClassVarMethod struct {
	Location
	expr
	ClassExpr Expr
	Name      string
	Args      []Expr
}

// ClassMethodVar is Foo::$name(...).
type ClassMethodVar struct {
	Location
	expr
	ClassName string
	Name      Expr
	Args      []Expr
}

// ClassVarMethodVar is $class::$name(...).
type ClassVarMethodVar struct {
	Location
	expr
	ClassExpr Expr
	Name      Expr
	Args      []Expr
}

// ClassConstruct is an explicit constructor call parent::__construct(...) or Foo::__construct(...).
type ClassConstruct struct {
	Location
	expr
	ClassName string
	Args      []Expr
}

// New is new Foo(...).
type New struct {
	Location
	expr
	ClassName string
	Args      []Expr
}

// NewVar is new $class(...).
type NewVar struct {
	Location
	expr
	ClassExpr Expr
	Args      []Expr
}

// NewStatic is new static(...).
type NewStatic struct {
	Location
	expr
	Args []Expr
}

// Closure is an anonymous function value.
type Closure struct {
	Location
	expr
	Function *Function
	// Uses lists the variables imported with use (...)
	Uses []string
}

// Include is include, include_once, require or require_once.
type Include struct {
	Location
	expr
	Expr    Expr
	Once    bool
	Require bool
}

// Exit is exit(...) or die(...). Value may be nil.
type Exit struct {
	Location
	expr
	Die   bool
	Value Expr
}

// UnknownExpr is an expression whose kind tag is not one of the kinds above. It keeps the tag so that the
// analysis can report it.
type UnknownExpr struct {
	Location
	expr
	Tag string
}

func (*LiteralString) Kind() string { return "literal_string" }
func (*LiteralLong) Kind() string { return "literal_long" }
func (*Literal) Kind() string { return "literal" }
func (*LiteralNull) Kind() string { return "literal_null" }
func (*Var) Kind() string { return "var" }
func (*VarVar) Kind() string { return "var_var" }
func (*This) Kind() string { return "this" }
func (*Ref) Kind() string { return "ref" }
func (*ArrayGet) Kind() string { return "array_get" }
func (*ArrayTail) Kind() string { return "array_tail" }
func (*ArrayLit) Kind() string { return "array" }
func (*CharAt) Kind() string { return "char_at" }
func (*ObjectField) Kind() string { return "object_field" }
func (*ObjectFieldVar) Kind() string { return "object_field_var" }
func (*ThisField) Kind() string { return "this_field" }
func (*ThisFieldVar) Kind() string { return "this_field_var" }
func (*ClassField) Kind() string { return "class_field" }
func (*ClassVirtualField) Kind() string { return "class_virtual_field" }
func (*ClassFieldVar) Kind() string { return "class_field_var" }
func (*ClassVarField) Kind() string { return "class_var_field" }
func (*Const) Kind() string { return "const" }
func (*ConstFile) Kind() string { return "const_file" }
func (*ConstDir) Kind() string { return "const_dir" }
func (*ClassConst) Kind() string { return "class_const" }
func (*ClassVirtualConst) Kind() string { return "class_virtual_const" }
func (*ClassVarConst) Kind() string { return "class_var_const" }
func (*GetClass) Kind() string { return "get_class" }
func (*GetCalledClass) Kind() string { return "get_called_class" }
func (*Binary) Kind() string { return "binary" }
func (*Append) Kind() string { return "append" }
func (*Unary) Kind() string { return "unary" }
func (*IncDec) Kind() string { return "incdec" }
func (*InstanceOf) Kind() string { return "instanceof" }
func (*Cast) Kind() string { return "cast" }
func (*Suppress) Kind() string { return "suppress" }
func (*Clone) Kind() string { return "clone" }
func (*Conditional) Kind() string { return "conditional" }
func (*ConditionalShort) Kind() string { return "conditional_short" }
func (*IsSet) Kind() string { return "isset" }
func (*Unset) Kind() string { return "unset" }
func (*ListHead) Kind() string { return "list_head" }
func (*Assign) Kind() string { return "assign" }
func (*AssignRef) Kind() string { return "assign_ref" }
func (*AssignList) Kind() string { return "assign_list" }
func (*AssignListEach) Kind() string { return "assign_list_each" }
func (*Call) Kind() string { return "call" }
func (*CallVar) Kind() string { return "call_var" }
func (*ObjectMethod) Kind() string { return "object_method" }
func (*ObjectMethodVar) Kind() string { return "object_method_var" }
func (*ThisMethod) Kind() string { return "this_method" }
func (*ThisMethodVar) Kind() string { return "this_method_var" }
func (*ClassMethod) Kind() string { return "class_method" }
func (*ClassVirtualMethod) Kind() string { return "class_virtual_method" }
func (*ClassVarMethod) Kind() string { return "class_var_method" }
func (*ClassMethodVar) Kind() string { return "class_method_var" }
func (*ClassVarMethodVar) Kind() string { return "class_var_method_var" }
func (*ClassConstruct) Kind() string { return "class_construct" }
func (*New) Kind() string { return "new" }
func (*NewVar) Kind() string { return "new_var" }
func (*NewStatic) Kind() string { return "new_static" }
func (*Closure) Kind() string { return "closure" }
func (*Include) Kind() string { return "include" }
func (*Exit) Kind() string { return "exit" }
func (u *UnknownExpr) Kind() string { return u.Tag }
