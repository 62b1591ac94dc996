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


package graphutil

import (
	"github.com/yourbasic/graph"
	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"golang.org/x/exp/slices"
)

// FileGraph is a directed graph over named vertices. Vertex ids are assigned sequentially from 0 in insertion order,
// which makes the graph usable both as a yourbasic graph.Iterator and as a gonum graph.Directed.
//
// Gonum's simple graphs do not accept self edges; those are kept in a separate set.
type FileGraph struct {
	// ids maps vertex names to vertex ids
	ids map[string]int64

	// names[id] is the name of vertex id
	names []string

	// g holds all the edges except self-loops
	g *simple.DirectedGraph

	// loops is the set of vertices with an edge to themselves
	loops map[int64]bool
}

// NewFileGraph returns an empty graph.
func NewFileGraph() *FileGraph {
	return &FileGraph{
		ids:   map[string]int64{},
		g:     simple.NewDirectedGraph(),
		loops: map[int64]bool{},
	}
}

// AddVertex adds a vertex named name if it is not present, and returns its id.
func (fg *FileGraph) AddVertex(name string) int64 {
	if id, ok := fg.ids[name]; ok {
		return id
	}
	id := int64(len(fg.names))
	fg.ids[name] = id
	fg.names = append(fg.names, name)
	fg.g.AddNode(simple.Node(id))
	return id
}

// AddEdge adds a directed edge between from and to, adding the vertices if needed. Duplicate edges are ignored.
func (fg *FileGraph) AddEdge(from, to string) {
	u := fg.AddVertex(from)
	v := fg.AddVertex(to)
	if u == v {
		fg.loops[u] = true
		return
	}
	if !fg.g.HasEdgeFromTo(u, v) {
		fg.g.SetEdge(fg.g.NewEdge(simple.Node(u), simple.Node(v)))
	}
}

// ID returns the id of the vertex named name.
func (fg *FileGraph) ID(name string) (int64, bool) {
	id, ok := fg.ids[name]
	return id, ok
}

// Name returns the name of vertex id, or the empty string.
func (fg *FileGraph) Name(id int64) string {
	if id < 0 || id >= int64(len(fg.names)) {
		return ""
	}
	return fg.names[id]
}

// Names returns the vertex names in insertion order.
func (fg *FileGraph) Names() []string {
	return slices.Clone(fg.names)
}

// HasEdge returns true when there is an edge from -> to.
func (fg *FileGraph) HasEdge(from, to string) bool {
	u, ok1 := fg.ids[from]
	v, ok2 := fg.ids[to]
	if !ok1 || !ok2 {
		return false
	}
	if u == v {
		return fg.loops[u]
	}
	return fg.g.HasEdgeFromTo(u, v)
}

// Successors returns the names of the direct successors of name, sorted.
func (fg *FileGraph) Successors(name string) []string {
	id, ok := fg.ids[name]
	if !ok {
		return nil
	}
	res := fg.namesOf(fg.g.From(id))
	if fg.loops[id] {
		res = append(res, name)
	}
	slices.Sort(res)
	return res
}

// Predecessors returns the names of the direct predecessors of name, sorted.
func (fg *FileGraph) Predecessors(name string) []string {
	id, ok := fg.ids[name]
	if !ok {
		return nil
	}
	res := fg.namesOf(fg.g.To(id))
	if fg.loops[id] {
		res = append(res, name)
	}
	slices.Sort(res)
	return res
}

func (fg *FileGraph) namesOf(nodes gonum.Nodes) []string {
	var res []string
	for nodes.Next() {
		res = append(res, fg.names[nodes.Node().ID()])
	}
	return res
}

// PathExists returns true when there is a non-empty path from -> to. A vertex reaches itself only through a cycle.
func (fg *FileGraph) PathExists(from, to string) bool {
	u, ok1 := fg.ids[from]
	v, ok2 := fg.ids[to]
	if !ok1 || !ok2 {
		return false
	}
	if u != v {
		return topo.PathExistsIn(fg.g, simple.Node(u), simple.Node(v))
	}
	if fg.loops[u] {
		return true
	}
	succ := fg.g.From(u)
	for succ.Next() {
		if topo.PathExistsIn(fg.g, succ.Node(), simple.Node(u)) {
			return true
		}
	}
	return false
}

// Directed returns the gonum view of the graph, without self-loops.
func (fg *FileGraph) Directed() gonum.Directed {
	return fg.g
}

// Stats returns the yourbasic statistics of the graph (size, self-loops, isolated vertices).
func (fg *FileGraph) Stats() graph.Stats {
	return graph.Check(fg)
}

// Order implements the order of the graph.Iterator interface for the FileGraph
func (fg *FileGraph) Order() int {
	return len(fg.names)
}

// Visit implements the graph.Iterator interface for the FileGraph. Successors are visited in increasing id order.
func (fg *FileGraph) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	if v < 0 || v >= len(fg.names) {
		return false
	}
	for _, w := range fg.successorIDs(int64(v)) {
		if do(int(w), 1) {
			return true
		}
	}
	return false
}

func (fg *FileGraph) successorIDs(id int64) []int64 {
	var res []int64
	succ := fg.g.From(id)
	for succ.Next() {
		res = append(res, succ.Node().ID())
	}
	if fg.loops[id] {
		res = append(res, id)
	}
	slices.Sort(res)
	return res
}

// subgraph is the iterator over the vertices of a FileGraph with id at least min. Vertices below min are isolated,
// so vertex ids stay consistent across subgraphs.
type subgraph struct {
	g   *FileGraph
	min int
}

func (s subgraph) Order() int {
	return s.g.Order()
}

func (s subgraph) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	if v < s.min {
		return false
	}
	return s.g.Visit(v, func(w int, c int64) bool {
		if w < s.min {
			return false
		}
		return do(w, c)
	})
}
