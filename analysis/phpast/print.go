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
	"strconv"
	"strings"
)

// maxLiteral bounds the length of string literals in printed expressions
const maxLiteral = 40

// Sprint returns a compact PHP-like rendering of an expression, used to show witnesses in reports. Statements are
// rendered as their kind only. A nil node prints as the empty string.
func Sprint(n Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	p := printer{&b}
	switch x := n.(type) {
	case Expr:
		p.expr(x)
	default:
		b.WriteString("<" + n.Kind() + ">")
	}
	return b.String()
}

type printer struct {
	b *strings.Builder
}

func (p printer) w(s ...string) {
	for _, x := range s {
		p.b.WriteString(x)
	}
}

func (p printer) list(es []Expr) {
	for i, e := range es {
		if i > 0 {
			p.w(", ")
		}
		p.expr(e)
	}
}

func (p printer) call(es []Expr) {
	p.w("(")
	p.list(es)
	p.w(")")
}

func quote(s string) string {
	if len(s) > maxLiteral {
		s = s[:maxLiteral] + "..."
	}
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

//gocyclo:ignore
func (p printer) expr(e Expr) {
	switch x := e.(type) {
	case nil:
		return
	case *LiteralString:
		p.w(quote(x.Value))
	case *LiteralLong:
		p.w(strconv.FormatInt(x.Value, 10))
	case *Literal:
		p.w(x.Text)
	case *LiteralNull:
		p.w("null")
	case *Var:
		p.w("$", x.Name)
	case *VarVar:
		p.w("$")
		p.expr(x.Expr)
	case *This:
		p.w("$this")
	case *Ref:
		p.w("&")
		p.expr(x.Expr)
	case *ArrayGet:
		p.expr(x.Expr)
		p.w("[")
		p.expr(x.Index)
		p.w("]")
	case *ArrayTail:
		p.expr(x.Expr)
		p.w("[]")
	case *ArrayLit:
		p.w("[")
		for i, item := range x.Items {
			if i > 0 {
				p.w(", ")
			}
			if item.Key != nil {
				p.expr(item.Key)
				p.w(" => ")
			}
			p.expr(item.Value)
		}
		p.w("]")
	case *CharAt:
		p.expr(x.Expr)
		p.w("{")
		p.expr(x.Index)
		p.w("}")
	case *ObjectField:
		p.expr(x.Object)
		p.w("->", x.Name)
	case *ObjectFieldVar:
		p.expr(x.Object)
		p.w("->")
		p.expr(x.Name)
	case *ThisField:
		p.w("$this->", x.Name)
	case *ThisFieldVar:
		p.w("$this->")
		p.expr(x.Name)
	case *ClassField:
		p.w(x.ClassName, "::$", x.Name)
	case *ClassVirtualField:
		p.w("static::$", x.Name)
	case *ClassFieldVar:
		p.w(x.ClassName, "::$")
		p.expr(x.Name)
	case *ClassVarField:
		p.expr(x.ClassExpr)
		p.w("::$", x.Name)
	case *Const:
		p.w(x.Name)
	case *ConstFile:
		p.w("__FILE__")
	case *ConstDir:
		p.w("__DIR__")
	case *ClassConst:
		p.w(x.ClassName, "::", x.Name)
	case *ClassVirtualConst:
		p.w("static::", x.Name)
	case *ClassVarConst:
		p.expr(x.ClassExpr)
		p.w("::", x.Name)
	case *GetClass:
		p.w("__CLASS__")
	case *GetCalledClass:
		p.w("get_called_class()")
	case *Binary:
		p.expr(x.Left)
		p.w(" ", string(x.Op), " ")
		p.expr(x.Right)
	case *Append:
		for link := x; link != nil; link = link.Next {
			if link != x {
				p.w(" . ")
			}
			p.expr(link.Value)
		}
	case *Unary:
		p.w(string(x.Op))
		p.expr(x.Expr)
	case *IncDec:
		if x.Prefix {
			p.w(string(x.Op))
			p.expr(x.Expr)
		} else {
			p.expr(x.Expr)
			p.w(string(x.Op))
		}
	case *InstanceOf:
		p.expr(x.Expr)
		p.w(" instanceof ", x.ClassName)
	case *Cast:
		p.w("(", string(x.Type), ")")
		p.expr(x.Expr)
	case *Suppress:
		p.w("@")
		p.expr(x.Expr)
	case *Clone:
		p.w("clone ")
		p.expr(x.Expr)
	case *Conditional:
		p.expr(x.Test)
		p.w(" ? ")
		p.expr(x.True)
		p.w(" : ")
		p.expr(x.False)
	case *ConditionalShort:
		p.expr(x.Test)
		p.w(" ?: ")
		p.expr(x.False)
	case *IsSet:
		p.w("isset")
		p.call(x.Exprs)
	case *Unset:
		p.w("unset(")
		p.expr(x.Expr)
		p.w(")")
	case *ListHead:
		p.w("list")
		p.call(x.Vars)
	case *Assign:
		p.expr(x.Var)
		p.w(" = ")
		p.expr(x.Value)
	case *AssignRef:
		p.expr(x.Var)
		p.w(" =& ")
		p.expr(x.Value)
	case *AssignList:
		p.listHead(x.List)
		p.w(" = ")
		p.expr(x.Value)
	case *AssignListEach:
		p.listHead(x.List)
		p.w(" = each(")
		p.expr(x.Value)
		p.w(")")
	case *Call:
		p.w(x.Name)
		p.call(x.Args)
	case *CallVar:
		p.expr(x.NameExpr)
		p.call(x.Args)
	case *ObjectMethod:
		p.expr(x.Object)
		p.w("->", x.Name)
		p.call(x.Args)
	case *ObjectMethodVar:
		p.expr(x.Object)
		p.w("->")
		p.expr(x.Name)
		p.call(x.Args)
	case *ThisMethod:
		p.w("$this->", x.Name)
		p.call(x.Args)
	case *ThisMethodVar:
		p.w("$this->")
		p.expr(x.Name)
		p.call(x.Args)
	case *ClassMethod:
		p.w(x.ClassName, "::", x.Name)
		p.call(x.Args)
	case *ClassVirtualMethod:
		p.w("static::", x.Name)
		p.call(x.Args)
	case *ClassVarMethod:
		p.expr(x.ClassExpr)
		p.w("::", x.Name)
		p.call(x.Args)
	case *ClassMethodVar:
		p.w(x.ClassName, "::")
		p.expr(x.Name)
		p.call(x.Args)
	case *ClassVarMethodVar:
		p.expr(x.ClassExpr)
		p.w("::")
		p.expr(x.Name)
		p.call(x.Args)
	case *ClassConstruct:
		p.w(x.ClassName, "::__construct")
		p.call(x.Args)
	case *New:
		p.w("new ", x.ClassName)
		p.call(x.Args)
	case *NewVar:
		p.w("new ")
		p.expr(x.ClassExpr)
		p.call(x.Args)
	case *NewStatic:
		p.w("new static")
		p.call(x.Args)
	case *Closure:
		p.w("function() {...}")
	case *Include:
		switch {
		case x.Require && x.Once:
			p.w("require_once ")
		case x.Require:
			p.w("require ")
		case x.Once:
			p.w("include_once ")
		default:
			p.w("include ")
		}
		p.expr(x.Expr)
	case *Exit:
		if x.Die {
			p.w("die(")
		} else {
			p.w("exit(")
		}
		p.expr(x.Value)
		p.w(")")
	default:
		p.w("<", e.Kind(), ">")
	}
}

func (p printer) listHead(l *ListHead) {
	if l == nil {
		p.w("list()")
		return
	}
	p.expr(l)
}
