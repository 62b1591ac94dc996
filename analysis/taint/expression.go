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
	"github.com/awslabs/ar-php-tools/analysis/config"
	"github.com/awslabs/ar-php-tools/analysis/deadcode"
	"github.com/awslabs/ar-php-tools/analysis/phpast"
)

// scopeOwner analyzes the declarations nested in a scope, each in a scope of its own.
type scopeOwner interface {
	analyzeClass(def *phpast.ClassDef)
	analyzeFunction(fn *phpast.Function)
}

// ExpressionAnalyzer computes the taint of expressions within one scope. It owns the variable map of the scope:
// the taint of every variable assigned so far.
type ExpressionAnalyzer struct {
	logger    *config.LogGroup
	results   *ResultCollector
	usage     *deadcode.Collector
	owner     scopeOwner
	variables map[string]*Result

	// lastKnown is the last known location met in the scope. It locates nodes the parser did not position.
	lastKnown phpast.Location
}

func newExpressionAnalyzer(logger *config.LogGroup, results *ResultCollector, usage *deadcode.Collector,
	owner scopeOwner) *ExpressionAnalyzer {
	return &ExpressionAnalyzer{
		logger:    logger,
		results:   results,
		usage:     usage,
		owner:     owner,
		variables: map[string]*Result{},
	}
}

// Variable returns the taint recorded for the variable name, if the scope assigned it.
func (a *ExpressionAnalyzer) Variable(name string) (*Result, bool) {
	r, ok := a.variables[name]
	return r, ok
}

// location returns the location of n, or the last known location when the location of n is unknown.
func (a *ExpressionAnalyzer) location(n phpast.Node) phpast.Location {
	if loc := n.Pos(); !loc.IsUnknown() {
		return loc
	}
	return a.lastKnown
}

func (a *ExpressionAnalyzer) track(n phpast.Node) {
	if loc := n.Pos(); !loc.IsUnknown() {
		a.lastKnown = loc
	}
}

// Analyze returns the taint of e, recording on the way the findings of the sinks used inside e, the variables
// assigned by e and the usages of functions and classes. Analyze(nil) returns NoRisk(nil).
//
// Analyze panics with a *CoverageError if it meets an expression it does not know.
//
//gocyclo:ignore
func (a *ExpressionAnalyzer) Analyze(e phpast.Expr) *Result {
	if e == nil {
		return NoRisk(nil)
	}
	a.track(e)

	switch x := e.(type) {

	// Values that carry no risk
	case *phpast.LiteralString, *phpast.LiteralLong, *phpast.Literal, *phpast.LiteralNull,
		*phpast.This, *phpast.ConstFile, *phpast.ConstDir, *phpast.Const,
		*phpast.GetClass, *phpast.GetCalledClass, *phpast.ClassVirtualConst,
		*phpast.ClassField, *phpast.ClassVirtualField, *phpast.ArrayTail, *phpast.Unset:
		return NoRisk(e)

	case *phpast.ClassConst:
		a.usage.AddClassUsage(x.ClassName)
		return NoRisk(e)

	case *phpast.ClassVarConst:
		a.Analyze(x.ClassExpr)
		return NoRisk(e)

	case *phpast.ClassFieldVar:
		a.Analyze(x.Name)
		return NoRisk(e)

	case *phpast.ClassVarField:
		a.Analyze(x.ClassExpr)
		return NoRisk(e)

	// Operations whose value cannot carry injected text
	case *phpast.Binary:
		left := a.Analyze(x.Left)
		right := a.Analyze(x.Right)
		if x.Op == phpast.OpAdd {
			return Merge(left, right)
		}
		return NoRisk(e)

	case *phpast.Unary:
		a.Analyze(x.Expr)
		return NoRisk(e)

	case *phpast.IncDec:
		a.Analyze(x.Expr)
		return NoRisk(e)

	case *phpast.InstanceOf:
		a.usage.AddClassUsage(x.ClassName)
		a.Analyze(x.Expr)
		return NoRisk(e)

	case *phpast.IsSet:
		a.analyzeAll(x.Exprs)
		return NoRisk(e)

	case *phpast.ListHead:
		a.analyzeListHead(x)
		return NoRisk(e)

	case *phpast.Cast:
		r := a.Analyze(x.Expr)
		if x.Type.IsScalar() {
			return NoRisk(e)
		}
		return r.withWitness(e)

	// Values passed through
	case *phpast.Suppress:
		return a.Analyze(x.Expr).withWitness(e)

	case *phpast.Clone:
		return a.Analyze(x.Expr).withWitness(e)

	case *phpast.Append:
		r := a.Analyze(x.Value)
		if x.Next != nil {
			r = Merge(r, a.Analyze(x.Next))
		}
		return r

	case *phpast.Conditional:
		a.Analyze(x.Test)
		return Merge(a.Analyze(x.True), a.Analyze(x.False))

	case *phpast.ConditionalShort:
		return Merge(a.Analyze(x.Test), a.Analyze(x.False))

	// Variables
	case *phpast.Var:
		if r, ok := a.variables[x.Name]; ok {
			return r
		}
		return Unsafe(e)

	case *phpast.Assign:
		return a.assign(x.Var, x.Value)

	case *phpast.AssignRef:
		return a.assign(x.Var, x.Value)

	case *phpast.AssignList:
		a.analyzeListHead(x.List)
		return a.Analyze(x.Value)

	case *phpast.AssignListEach:
		a.analyzeListHead(x.List)
		return a.Analyze(x.Value)

	// Values the analysis does not track
	case *phpast.VarVar:
		a.Analyze(x.Expr)
		a.logger.Warnf("Found $$var-expression at %s", a.location(e))
		return Unsafe(e)

	case *phpast.Ref:
		a.Analyze(x.Expr)
		return Unsafe(e)

	case *phpast.ArrayGet:
		a.Analyze(x.Expr)
		a.Analyze(x.Index)
		return Unsafe(e)

	case *phpast.CharAt:
		a.Analyze(x.Expr)
		a.Analyze(x.Index)
		return Unsafe(e)

	case *phpast.ArrayLit:
		for _, item := range x.Items {
			a.Analyze(item.Key)
			a.Analyze(item.Value)
		}
		return Unsafe(e)

	case *phpast.ObjectField:
		a.Analyze(x.Object)
		return Unsafe(e)

	case *phpast.ObjectFieldVar:
		a.Analyze(x.Name)
		a.Analyze(x.Object)
		return Unsafe(e)

	case *phpast.ThisField:
		return Unsafe(e)

	case *phpast.ThisFieldVar:
		a.Analyze(x.Name)
		return Unsafe(e)

	case *phpast.Closure:
		if x.Function != nil {
			a.owner.analyzeFunction(x.Function)
		}
		return Unsafe(e)

	// Calls of named functions and methods
	case *phpast.Call:
		a.usage.AddFunctionUsage(x.Name)
		if x.NsName != "" && x.NsName != x.Name {
			a.usage.AddFunctionUsage(x.NsName)
		}
		return a.analyzeCall(e, x.Name, x.Args)

	case *phpast.ObjectMethod:
		a.usage.AddMethodUsage(x.Name)
		a.Analyze(x.Object)
		return a.analyzeCall(e, x.Name, x.Args)

	case *phpast.ThisMethod:
		a.usage.AddMethodUsage(x.Name)
		return a.analyzeCall(e, x.Name, x.Args)

	case *phpast.ClassMethod:
		a.usage.AddStaticMethodUsage(x.Name)
		a.usage.AddClassUsage(x.ClassName)
		return a.analyzeCall(e, x.Name, x.Args)

	case *phpast.ClassVirtualMethod:
		a.usage.AddStaticMethodUsage(x.Name)
		return a.analyzeCall(e, x.Name, x.Args)

	case *phpast.ClassVarMethod:
		a.usage.AddStaticMethodUsage(x.Name)
		r := a.Analyze(x.ClassExpr)
		return Merge(r, a.analyzeCall(e, x.Name, x.Args))

	// Calls whose target is computed at run time
	case *phpast.CallVar:
		a.Analyze(x.NameExpr)
		a.analyzeCall(e, SinkCallVar, x.Args)
		return Unsafe(e)

	case *phpast.ObjectMethodVar:
		a.Analyze(x.Object)
		a.Analyze(x.Name)
		a.analyzeCall(e, SinkObjectMethodVar, x.Args)
		return Unsafe(e)

	case *phpast.ThisMethodVar:
		a.Analyze(x.Name)
		a.analyzeCall(e, SinkThisMethodVar, x.Args)
		return Unsafe(e)

	case *phpast.ClassMethodVar:
		a.logger.Warnf("Found class::$method()-expression at %s", a.location(e))
		a.usage.AddClassUsage(x.ClassName)
		a.Analyze(x.Name)
		a.analyzeCall(e, SinkClassMethodVar, x.Args)
		return Unsafe(e)

	case *phpast.ClassVarMethodVar:
		a.logger.Warnf("Found class::$method()-expression at %s", a.location(e))
		a.Analyze(x.ClassExpr)
		a.Analyze(x.Name)
		a.analyzeCall(e, SinkClassVarMethodVar, x.Args)
		return Unsafe(e)

	// Object construction
	case *phpast.New:
		a.usage.AddClassUsage(x.ClassName)
		a.analyzeAll(x.Args)
		return NoRisk(e)

	case *phpast.ClassConstruct:
		a.usage.AddClassUsage(x.ClassName)
		a.analyzeCall(e, SinkConstruct, x.Args)
		return NoRisk(e)

	case *phpast.NewVar:
		a.Analyze(x.ClassExpr)
		a.analyzeCall(e, SinkNewVar, x.Args)
		return NoRisk(e)

	case *phpast.NewStatic:
		a.analyzeCall(e, SinkNewStatic, x.Args)
		return NoRisk(e)

	// Language constructs that are sinks
	case *phpast.Include:
		r := a.Analyze(x.Expr)
		name := SinkInclude
		if x.Once {
			name = SinkIncludeOnce
		}
		loc := a.location(e)
		a.results.CollectResult(loc, name, r)
		a.results.CollectInclude(includeSite(loc, x))
		return Unsafe(e)

	case *phpast.Exit:
		if x.Value != nil {
			r := a.Analyze(x.Value)
			name := SinkExit
			if x.Die {
				name = SinkDie
			}
			a.results.CollectResult(a.location(e), name, r)
		}
		return NoRisk(e)

	default:
		panic(&CoverageError{Kind: e.Kind(), Location: a.location(e)})
	}
}

func (a *ExpressionAnalyzer) analyzeAll(exprs []phpast.Expr) {
	for _, e := range exprs {
		a.Analyze(e)
	}
}

func (a *ExpressionAnalyzer) analyzeListHead(l *phpast.ListHead) {
	if l == nil {
		return
	}
	a.track(l)
	for _, v := range l.Vars {
		if v != nil {
			a.Analyze(v)
		}
	}
}

// assign analyzes value and binds its taint to target when target is a plain variable. The previous taint of the
// variable is kept: a variable is as risky as any value it has held in the scope.
func (a *ExpressionAnalyzer) assign(target phpast.Expr, value phpast.Expr) *Result {
	r := a.Analyze(value)
	if v, ok := target.(*phpast.Var); ok && v != nil {
		r = Merge(r, a.variables[v.Name])
		a.variables[v.Name] = r
	}
	return r
}

// analyzeCall analyzes the arguments of a call of name, reports them if name is a sink, and returns the taint of
// the value returned by the call: every risk, minus the risks the callee mitigates.
func (a *ExpressionAnalyzer) analyzeCall(call phpast.Expr, name string, args []phpast.Expr) *Result {
	aggregate := NoRisk(nil)
	for _, arg := range args {
		aggregate = Merge(aggregate, a.Analyze(arg))
	}
	a.results.CollectResult(a.location(call), name, aggregate)

	r := Unsafe(call)
	if mitigated, ok := a.results.Methods().Mitigations(name); ok {
		r.RemoveRisks(mitigated)
	}
	return r
}
