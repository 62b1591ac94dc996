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
	"golang.org/x/exp/slices"
)

// StronglyConnectedCycles returns the strongly connected components of fg that contain a cycle: components with at
// least two vertices, and single vertices with a self-loop. Each component is sorted by name, and components are
// sorted by their first name.
func StronglyConnectedCycles(fg *FileGraph) [][]string {
	var res [][]string
	for _, component := range graph.StrongComponents(fg) {
		if len(component) < 2 && !fg.loops[int64(component[0])] {
			continue
		}
		names := make([]string, len(component))
		for i, id := range component {
			names[i] = fg.names[id]
		}
		slices.Sort(names)
		res = append(res, names)
	}
	slices.SortFunc(res, func(a, b []string) bool { return a[0] < b[0] })
	return res
}

// FindAllElementaryCycles finds all elementary cycles in the graph fg.
// This uses Donald B. Johnson's algorithm presented in
// "Finding All The Elementary Circuits of a Directed Graph", 1975
//
// Each cycle is returned as the path of vertex names starting at its least vertex id, with the first vertex repeated
// at the end.
func FindAllElementaryCycles(fg *FileGraph) [][]string {
	s := &state{g: fg}
	start := 0
	for start < fg.Order() {
		least, component := leastCyclicComponent(fg, subgraph{g: fg, min: start})
		if least < 0 {
			break
		}
		s.component = component
		s.stack = nil
		s.blocked = map[int]bool{}
		s.blist = map[int]map[int]bool{}
		s.circuit(least, least)
		start = least + 1
	}
	return s.cycles
}

// leastCyclicComponent returns the least vertex of the cyclic strong components of sub, and the component holding
// it. It returns -1 when sub is acyclic.
func leastCyclicComponent(fg *FileGraph, sub subgraph) (int, map[int]bool) {
	least := -1
	var found []int
	for _, component := range graph.StrongComponents(sub) {
		if component[0] < sub.min {
			continue
		}
		if len(component) < 2 && !fg.loops[int64(component[0])] {
			continue
		}
		for _, v := range component {
			if least < 0 || v < least {
				least = v
				found = component
			}
		}
	}
	if least < 0 {
		return -1, nil
	}
	component := make(map[int]bool, len(found))
	for _, v := range found {
		component[v] = true
	}
	return least, component
}

type state struct {
	g         *FileGraph
	component map[int]bool
	blocked   map[int]bool
	blist     map[int]map[int]bool
	stack     []int
	cycles    [][]string
}

func (s *state) unblock(u int) {
	s.blocked[u] = false
	for w := range s.blist[u] {
		delete(s.blist[u], w)
		if s.blocked[w] {
			s.unblock(w)
		}
	}
}

func (s *state) successors(v int) []int {
	var res []int
	s.g.Visit(v, func(w int, _ int64) bool {
		if s.component[w] {
			res = append(res, w)
		}
		return false
	})
	return res
}

func (s *state) circuit(v int, start int) bool {
	f := false
	s.stack = append(s.stack, v)
	s.blocked[v] = true
	for _, w := range s.successors(v) {
		if w == start {
			cycle := make([]string, 0, len(s.stack)+1)
			for _, x := range s.stack {
				cycle = append(cycle, s.g.names[x])
			}
			cycle = append(cycle, s.g.names[w])
			s.cycles = append(s.cycles, cycle)
			f = true
		} else if !s.blocked[w] {
			if s.circuit(w, start) {
				f = true
			}
		}
	}

	if f {
		s.unblock(v)
	} else {
		for _, w := range s.successors(v) {
			if s.blist[w] == nil {
				s.blist[w] = map[int]bool{}
			}
			s.blist[w][v] = true
		}
	}
	s.stack = s.stack[:len(s.stack)-1]
	return f
}
