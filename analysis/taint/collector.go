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

	"github.com/awslabs/ar-php-tools/analysis/config"
	"github.com/awslabs/ar-php-tools/analysis/phpast"
	"github.com/awslabs/ar-php-tools/analysis/risk"
)

// Names under which language constructs are looked up in the catalog
const (
	SinkEcho        = "echo"
	SinkExit        = "exit"
	SinkDie         = "die"
	SinkInclude     = "include"
	SinkIncludeOnce = "include_once"
	SinkConstruct   = "__construct"
)

// Pseudo names under which the arguments of dynamic calls are looked up in the catalog
const (
	SinkCallVar           = "$variable"
	SinkObjectMethodVar   = "$var->$method"
	SinkThisMethodVar     = "$this->{$variable}"
	SinkNewVar            = "new $variable"
	SinkNewStatic         = "new static"
	SinkClassMethodVar    = "Class::$method"
	SinkClassVarMethodVar = "$class::$method"
)

// A Finding is an argument that reaches a sink with risks the sink is sensitive to, that the operator cares about
// and that have not been mitigated.
type Finding struct {
	// Location is the location of the sink use
	Location phpast.Location

	// Sink is the catalog name of the sink
	Sink string

	// Risks is never empty
	Risks risk.Set

	// Witness is the expression that carries the risks. It may be nil.
	Witness phpast.Expr
}

func (f Finding) String() string {
	return fmt.Sprintf("%s = %s, at %s, via expression: %s", f.Sink, f.Risks, f.Location, phpast.Sprint(f.Witness))
}

// An IncludeSite is an include or require construct. Target is the included path when it could be computed from
// literals and the magic constants __FILE__ and __DIR__.
type IncludeSite struct {
	Location phpast.Location
	Target   string
	Resolved bool
	Once     bool
	Require  bool
}

// From returns the file containing the include
func (s IncludeSite) From() string {
	return s.Location.File
}

// ResultCollector checks the results of the arguments of sink uses against the catalog and the risks of interest,
// and records the findings.
//
// A ResultCollector is not safe for concurrent use. Concurrent analyses each use their own collector, and the
// collectors are merged afterwards.
type ResultCollector struct {
	logger   *config.LogGroup
	methods  *MethodInformation
	interest risk.Set
	findings []Finding
	includes []IncludeSite
}

// NewResultCollector returns a collector reporting the risks in interest for the sinks in methods.
func NewResultCollector(logger *config.LogGroup, methods *MethodInformation, interest risk.Set) *ResultCollector {
	return &ResultCollector{
		logger:   logger,
		methods:  methods,
		interest: interest,
	}
}

// fork returns an empty collector with the same catalog and risks of interest
func (c *ResultCollector) fork() *ResultCollector {
	return NewResultCollector(c.logger, c.methods, c.interest)
}

// Methods returns the catalog used by the collector
func (c *ResultCollector) Methods() *MethodInformation {
	return c.methods
}

// Interest returns the risks that are reported
func (c *ResultCollector) Interest() risk.Set {
	return c.interest
}

// CollectResult checks result, the aggregated taint of the arguments passed to the sink name at loc.
func (c *ResultCollector) CollectResult(loc phpast.Location, name string, result *Result) {
	dangers, ok := c.methods.Dangers(name)
	if !ok {
		c.logger.Debugf("No risk information known for method: %s, at %s", name, loc)
		return
	}
	if result == nil {
		result = NoRisk(nil)
	}
	overlap := result.Risks.Intersect(c.interest).Intersect(dangers)
	if overlap.IsEmpty() {
		c.logger.Debugf("All risks for method mitigated: %s, at %s", name, loc)
		return
	}
	f := Finding{Location: loc, Sink: name, Risks: overlap, Witness: result.Witness}
	c.logger.Warnf("Unmitigated risks for method: %s", f)
	c.findings = append(c.findings, f)
}

// CollectInclude records an include site.
func (c *ResultCollector) CollectInclude(site IncludeSite) {
	if site.Resolved {
		c.logger.Tracef("Include of %s at %s", site.Target, site.Location)
	} else {
		c.logger.Debugf("Include with a dynamic target at %s", site.Location)
	}
	c.includes = append(c.includes, site)
}

// Findings returns the findings in the order they were collected.
func (c *ResultCollector) Findings() []Finding {
	return c.findings
}

// Includes returns the include sites in the order they were collected.
func (c *ResultCollector) Includes() []IncludeSite {
	return c.includes
}

// Merge appends the findings and include sites of other after the ones of c.
func (c *ResultCollector) Merge(other *ResultCollector) {
	if other == nil {
		return
	}
	c.findings = append(c.findings, other.findings...)
	c.includes = append(c.includes, other.includes...)
}
