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

// functionKey identifies a named function across the statement sequence and the function list of a program.
type functionKey struct {
	class    string
	name     string
	location phpast.Location
}

// ProgramAnalyzer analyzes a program: its top-level statements, then its top-level functions. Every class
// member and every function body is analyzed in a fresh scope with an empty variable map.
type ProgramAnalyzer struct {
	logger   *config.LogGroup
	results  *ResultCollector
	usage    *deadcode.Collector
	analyzed map[*phpast.Function]bool
	declared map[functionKey]bool
}

// NewProgramAnalyzer returns an analyzer reporting to results and recording declarations and usages in usage.
// If usage is nil, usages are recorded in a collector that keeps no declarations.
func NewProgramAnalyzer(logger *config.LogGroup, results *ResultCollector, usage *deadcode.Collector) *ProgramAnalyzer {
	if usage == nil {
		usage = deadcode.NewCollector(logger, nil)
	}
	return &ProgramAnalyzer{
		logger:   logger,
		results:  results,
		usage:    usage,
		analyzed: map[*phpast.Function]bool{},
		declared: map[functionKey]bool{},
	}
}

// AnalyzeProgram analyzes prog. It returns a *CoverageError if prog contains a node the analysis does not know;
// the findings collected before that node are kept in the collector.
func (p *ProgramAnalyzer) AnalyzeProgram(prog *phpast.Program) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if cerr, ok := r.(*CoverageError); ok {
				p.logger.Errorf("Analysis of %s aborted: %s", prog.File, cerr)
				err = cerr
				return
			}
			panic(r)
		}
	}()

	p.logger.Debugf("Analyzing program %s", prog.File)
	if prog.Body != nil {
		p.newScope().Analyze(prog.Body)
	}
	for _, fn := range prog.Functions {
		if fn != nil && !fn.IsClosure() && p.declared[keyOf(fn)] {
			continue
		}
		p.analyzeFunction(fn)
	}
	return nil
}

func (p *ProgramAnalyzer) newScope() *StatementAnalyzer {
	exprs := newExpressionAnalyzer(p.logger, p.results, p.usage, p)
	return newStatementAnalyzer(p.results, p, exprs)
}

func (p *ProgramAnalyzer) analyzeClass(def *phpast.ClassDef) {
	if def == nil {
		return
	}
	p.logger.Tracef("Analyzing class %s at %s", def.Name, def.Location)
	p.usage.AddClass(def)
	for _, fn := range def.Functions {
		p.analyzeFunction(fn)
	}
}

func (p *ProgramAnalyzer) analyzeFunction(fn *phpast.Function) {
	if fn == nil || p.analyzed[fn] {
		return
	}
	p.analyzed[fn] = true
	if !fn.IsClosure() {
		p.declared[keyOf(fn)] = true
	}
	p.usage.AddFunction(fn)
	if fn.Body == nil {
		p.logger.Tracef("Skipping body of abstract function %s", fn)
		return
	}
	p.logger.Tracef("Analyzing function %s at %s", fn, fn.Location)
	p.newScope().Analyze(fn.Body)
}

func keyOf(fn *phpast.Function) functionKey {
	return functionKey{class: fn.ClassName, name: fn.Name, location: fn.Location}
}
