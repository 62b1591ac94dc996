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
	"github.com/awslabs/ar-php-tools/analysis/phpast"
)

// StatementAnalyzer walks the statements of one scope in source order. Expressions are delegated to the
// ExpressionAnalyzer of the scope; nested class and function declarations are handed to the scope owner.
type StatementAnalyzer struct {
	results *ResultCollector
	owner   scopeOwner
	exprs   *ExpressionAnalyzer
}

func newStatementAnalyzer(results *ResultCollector, owner scopeOwner, exprs *ExpressionAnalyzer) *StatementAnalyzer {
	return &StatementAnalyzer{results: results, owner: owner, exprs: exprs}
}

// Expressions returns the expression analyzer of the scope.
func (s *StatementAnalyzer) Expressions() *ExpressionAnalyzer {
	return s.exprs
}

// Analyze walks st. The result is the taint of the value of st for expression statements and echo statements,
// the taint of the returned value for return statements and no risk for every other statement.
//
// Analyze panics with a *CoverageError if it meets a statement it does not know.
//
//gocyclo:ignore
func (s *StatementAnalyzer) Analyze(st phpast.Stmt) *Result {
	if st == nil {
		return NoRisk(nil)
	}
	s.exprs.track(st)

	switch x := st.(type) {
	case *phpast.Block:
		s.analyzeAll(x.Stmts)

	case *phpast.ExprStmt:
		return s.exprs.Analyze(x.Expr)

	case *phpast.Echo:
		r := s.exprs.Analyze(x.Expr)
		s.results.CollectResult(s.exprs.location(st), SinkEcho, r)
		return r

	case *phpast.If:
		s.exprs.Analyze(x.Test)
		s.Analyze(x.True)
		s.Analyze(x.False)

	case *phpast.While:
		s.exprs.Analyze(x.Test)
		s.Analyze(x.Body)

	case *phpast.Do:
		// the test is visited first, like the while loop
		s.exprs.Analyze(x.Test)
		s.Analyze(x.Body)

	case *phpast.For:
		s.exprs.Analyze(x.Init)
		s.exprs.Analyze(x.Test)
		s.exprs.Analyze(x.Incr)
		s.Analyze(x.Body)

	case *phpast.Foreach:
		// the key and value targets are not bound: reads of them stay unsafe
		s.exprs.Analyze(x.Object)
		s.Analyze(x.Body)

	case *phpast.Switch:
		s.exprs.Analyze(x.Value)
		for _, c := range x.Cases {
			s.exprs.analyzeAll(c.Exprs)
			s.analyzeAll(c.Body)
		}

	case *phpast.Break:
		s.exprs.Analyze(x.Target)

	case *phpast.Continue:
		s.exprs.Analyze(x.Target)

	case *phpast.Return:
		return s.exprs.Analyze(x.Expr)

	case *phpast.ReturnRef:
		return s.exprs.Analyze(x.Expr)

	case *phpast.Throw:
		s.exprs.Analyze(x.Expr)

	case *phpast.Try:
		s.Analyze(x.Body)
		for _, c := range x.Catches {
			s.Analyze(c.Body)
		}
		s.Analyze(x.Finally)

	case *phpast.ClassStatic:
		s.exprs.Analyze(x.Init)

	case *phpast.Static:
		s.exprs.Analyze(x.Init)

	case *phpast.Text, *phpast.NullStmt, *phpast.Global:

	case *phpast.ClassDefStmt:
		if x.Class != nil {
			s.owner.analyzeClass(x.Class)
		}

	case *phpast.FunctionDefStmt:
		if x.Function != nil {
			s.owner.analyzeFunction(x.Function)
		}

	default:
		panic(&CoverageError{Kind: st.Kind(), Location: s.exprs.location(st)})
	}
	return NoRisk(nil)
}

func (s *StatementAnalyzer) analyzeAll(stmts []phpast.Stmt) {
	for _, st := range stmts {
		s.Analyze(st)
	}
}
