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

package deadcode

import (
	"strings"

	"github.com/awslabs/ar-php-tools/analysis/config"
	"github.com/awslabs/ar-php-tools/analysis/phpast"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"
)

const (
	staticPrefix   = "static::"
	objectPrefix   = "$object->"
	functionSuffix = "()"
	classSuffix    = ".class"
	magicPrefix    = "__"
)

// FunctionName returns the identity of a free function.
func FunctionName(name string) string { return name + functionSuffix }

// StaticMethodName returns the identity of a static method. Methods are identified by name only.
func StaticMethodName(name string) string { return staticPrefix + name + functionSuffix }

// MethodName returns the identity of an instance method. Methods are identified by name only.
func MethodName(name string) string { return objectPrefix + name + functionSuffix }

// ClassName returns the identity of a class or interface.
func ClassName(name string) string { return name + classSuffix }

// Kind is the kind of a declaration.
type Kind int

const (
	Function Kind = iota
	StaticMethod
	Method
	Class
)

func (k Kind) String() string {
	switch k {
	case Function:
		return "function"
	case StaticMethod:
		return "static method"
	case Method:
		return "method"
	case Class:
		return "class"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind as its name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Declaration is a declaration whose usage is tracked.
type Declaration struct {
	Kind     Kind
	Location phpast.Location
	// Name is the identity of the declaration, as built by FunctionName, StaticMethodName, MethodName or ClassName
	Name string
}

func (d Declaration) String() string {
	return d.Name + " at " + d.Location.String()
}

// Usage counts the references to one identity.
type Usage struct {
	// Name is the identity as first seen
	Name  string
	Count int
}

// Collector collects declarations and usages. Declarations are only kept when their file is under one of the
// configured paths; usages are counted everywhere. Identities are compared case-insensitively.
//
// A Collector is not safe for concurrent use; give each goroutine its own collector and Merge them.
type Collector struct {
	logger       *config.LogGroup
	paths        []string
	fold         cases.Caser
	declarations map[string]Declaration
	usages       map[string]*Usage
}

// NewCollector returns an empty collector checking the declarations under paths. With no paths, no declaration is
// kept and AnalyzeUsage reports nothing.
func NewCollector(logger *config.LogGroup, paths []string) *Collector {
	return &Collector{
		logger:       logger,
		paths:        paths,
		fold:         cases.Fold(),
		declarations: map[string]Declaration{},
		usages:       map[string]*Usage{},
	}
}

// Fork returns an empty collector with the same logger and paths as c.
func (c *Collector) Fork() *Collector {
	return NewCollector(c.logger, c.paths)
}

// Enabled returns true when declarations can be kept.
func (c *Collector) Enabled() bool {
	return len(c.paths) > 0
}

func (c *Collector) key(name string) string {
	return c.fold.String(name)
}

// AddFunction registers a function or method declaration. Magic methods, closures, old-style constructors and
// non-public methods are never registered.
func (c *Collector) AddFunction(fn *phpast.Function) {
	if fn == nil || fn.IsClosure() || strings.HasPrefix(fn.Name, magicPrefix) {
		return
	}
	if !fn.IsMethod() {
		c.addDeclaration(Declaration{Kind: Function, Location: fn.Location, Name: FunctionName(fn.Name)})
		return
	}
	if fn.ClassName == fn.Name {
		c.logger.Debugf("Found old fashioned constructor: %s", fn)
		return
	}
	if fn.Visibility != phpast.Public {
		return
	}
	if fn.Static {
		c.addDeclaration(Declaration{Kind: StaticMethod, Location: fn.Location, Name: StaticMethodName(fn.Name)})
		return
	}
	c.addDeclaration(Declaration{Kind: Method, Location: fn.Location, Name: MethodName(fn.Name)})
}

// AddClass registers a class declaration, and records a usage of its parent class and of its interfaces.
func (c *Collector) AddClass(def *phpast.ClassDef) {
	if def == nil {
		return
	}
	c.addDeclaration(Declaration{Kind: Class, Location: def.Location, Name: ClassName(def.Name)})
	if def.Parent != "" {
		c.AddClassUsage(def.Parent)
	}
	for _, itf := range def.Interfaces {
		c.AddClassUsage(itf)
	}
}

func (c *Collector) addDeclaration(d Declaration) {
	if len(c.paths) == 0 || d.Location.IsUnknown() {
		return
	}
	if !c.underPaths(d.Location.File) {
		c.logger.Tracef("Skipping declaration on unallowed path: %s", d)
		return
	}
	k := c.key(d.Name)
	if _, ok := c.declarations[k]; ok {
		c.logger.Debugf("Collector already contains a declaration for %s", d.Name)
		return
	}
	c.logger.Tracef("Adding declaration of %s", d.Name)
	c.declarations[k] = d
}

func (c *Collector) underPaths(file string) bool {
	for _, p := range c.paths {
		if strings.HasPrefix(file, p) {
			return true
		}
	}
	return false
}

// AddFunctionUsage records a call of the free function name.
func (c *Collector) AddFunctionUsage(name string) {
	c.addUsage(FunctionName(name))
}

// AddStaticMethodUsage records a static call of the method name.
func (c *Collector) AddStaticMethodUsage(name string) {
	c.addUsage(StaticMethodName(name))
}

// AddMethodUsage records an instance call of the method name.
func (c *Collector) AddMethodUsage(name string) {
	c.addUsage(MethodName(name))
}

// AddClassUsage records a reference to the class name.
func (c *Collector) AddClassUsage(name string) {
	c.addUsage(ClassName(name))
}

func (c *Collector) addUsage(identity string) {
	k := c.key(identity)
	u, ok := c.usages[k]
	if !ok {
		u = &Usage{Name: identity}
		c.usages[k] = u
	}
	u.Count++
}

// UsageCount returns the number of recorded usages of identity.
func (c *Collector) UsageCount(identity string) int {
	if u, ok := c.usages[c.key(identity)]; ok {
		return u.Count
	}
	return 0
}

// Declarations returns the kept declarations sorted by file, line and name.
func (c *Collector) Declarations() []Declaration {
	decls := maps.Values(c.declarations)
	slices.SortFunc(decls, func(a, b Declaration) bool {
		if a.Location.File != b.Location.File {
			return a.Location.File < b.Location.File
		}
		if a.Location.Line != b.Location.Line {
			return a.Location.Line < b.Location.Line
		}
		return a.Name < b.Name
	})
	return decls
}

// AnalyzeUsage returns the kept declarations that have no usage, sorted by file and line, and logs each of them.
func (c *Collector) AnalyzeUsage() []Declaration {
	c.logger.Infof("Starting analysis of %d declarations", len(c.declarations))
	var unused []Declaration
	for _, d := range c.Declarations() {
		if _, used := c.usages[c.key(d.Name)]; used {
			continue
		}
		c.logger.Infof("Found unused declaration: %s", d)
		unused = append(unused, d)
	}
	return unused
}

// Merge adds the declarations and usages of other to c. Declarations already in c win; usage counts are summed.
// Merging the collectors of several files in input order gives the same result as collecting them sequentially.
func (c *Collector) Merge(other *Collector) {
	if other == nil {
		return
	}
	for k, d := range other.declarations {
		if _, ok := c.declarations[k]; !ok {
			c.declarations[k] = d
		}
	}
	for k, u := range other.usages {
		if mine, ok := c.usages[k]; ok {
			mine.Count += u.Count
		} else {
			c.usages[k] = &Usage{Name: u.Name, Count: u.Count}
		}
	}
}
