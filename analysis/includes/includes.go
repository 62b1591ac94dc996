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


// Package includes builds the static include graph of a set of PHP files from the include sites recorded during
// the taint analysis.
//
// Only include sites whose argument is a static string (a literal, or a concatenation of literals and the __FILE__
// and __DIR__ constants) become edges of the graph. Other sites are kept as unresolved.
package includes

import (
	"github.com/awslabs/ar-php-tools/analysis/taint"
	"github.com/awslabs/ar-php-tools/internal/graphutil"
	"golang.org/x/exp/slices"
)

// Graph is the include graph. A vertex is a file, and an edge a -> b means a includes or requires b.
type Graph struct {
	files      *graphutil.FileGraph
	sites      []taint.IncludeSite
	unresolved []taint.IncludeSite
}

// Build returns the include graph of sites. Every file containing an include site is a vertex of the graph, even
// when none of its includes could be resolved.
func Build(sites []taint.IncludeSite) *Graph {
	g := &Graph{files: graphutil.NewFileGraph()}
	for _, site := range sites {
		if site.From() == "" {
			continue
		}
		g.sites = append(g.sites, site)
		if !site.Resolved {
			g.files.AddVertex(site.From())
			g.unresolved = append(g.unresolved, site)
			continue
		}
		g.files.AddEdge(site.From(), site.Target)
	}
	return g
}

// Files returns the vertices of the graph, sorted.
func (g *Graph) Files() []string {
	names := g.files.Names()
	slices.Sort(names)
	return names
}

// Sites returns the include sites the graph was built from, in order.
func (g *Graph) Sites() []taint.IncludeSite {
	return g.sites
}

// Unresolved returns the include sites whose target is not statically known.
func (g *Graph) Unresolved() []taint.IncludeSite {
	return g.unresolved
}

// Included returns the files directly included by file, sorted.
func (g *Graph) Included(file string) []string {
	return g.files.Successors(file)
}

// IncludedBy returns the files that directly include file, sorted.
func (g *Graph) IncludedBy(file string) []string {
	return g.files.Predecessors(file)
}

// Includes returns true when from includes to, directly or transitively. A file includes itself only through an
// include cycle.
func (g *Graph) Includes(from, to string) bool {
	return g.files.PathExists(from, to)
}

// Cycles returns every elementary include cycle. Each cycle starts and ends with the same file.
func (g *Graph) Cycles() [][]string {
	return graphutil.FindAllElementaryCycles(g.files)
}

// CyclicGroups returns the groups of files that include each other, each group sorted.
func (g *Graph) CyclicGroups() [][]string {
	return graphutil.StronglyConnectedCycles(g.files)
}

// Roots returns the files that no other file includes, sorted. Entry points of an application are among them.
func (g *Graph) Roots() []string {
	var roots []string
	for _, f := range g.files.Names() {
		if len(g.IncludedBy(f)) == 0 {
			roots = append(roots, f)
		}
	}
	slices.Sort(roots)
	return roots
}

// EdgeCount returns the number of distinct include edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, f := range g.files.Names() {
		n += len(g.files.Successors(f))
	}
	return n
}
