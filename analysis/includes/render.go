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


package includes

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// edgeColor defines specific color for specific edges in the include graph
// - an edge between two files of the same include cycle will be colored with a red edge
// - all other edges will have a default color edge
func edgeColor(cyclic map[string]int, from, to string) string {
	g1, ok1 := cyclic[from]
	g2, ok2 := cyclic[to]
	if ok1 && ok2 && g1 == g2 {
		return " [color=red]"
	}
	return ""
}

// WriteGraphviz writes a graphviz representation of the include graph to w. Files with an unresolved include are
// drawn dashed.
func WriteGraphviz(g *Graph, w io.Writer) error {
	cyclic := map[string]int{}
	for i, group := range g.CyclicGroups() {
		for _, f := range group {
			cyclic[f] = i
		}
	}
	dynamic := map[string]bool{}
	for _, site := range g.Unresolved() {
		dynamic[site.From()] = true
	}

	if _, err := io.WriteString(w, "digraph includes {\n"); err != nil {
		return fmt.Errorf("error while writing graph: %w", err)
	}
	for _, f := range g.Files() {
		var line string
		if dynamic[f] {
			line = fmt.Sprintf("  %q [style=dashed];\n", f)
		} else {
			line = fmt.Sprintf("  %q;\n", f)
		}
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("error while writing graph: %w", err)
		}
	}
	for _, from := range g.Files() {
		for _, to := range g.Included(from) {
			s := fmt.Sprintf("  %q -> %q%s;\n", from, to, edgeColor(cyclic, from, to))
			if _, err := io.WriteString(w, s); err != nil {
				return fmt.Errorf("error while writing graph: %w", err)
			}
		}
	}
	if _, err := io.WriteString(w, "}\n"); err != nil {
		return fmt.Errorf("error while writing graph: %w", err)
	}
	return nil
}

// GraphvizToFile writes the graphviz representation of g in filename.
func GraphvizToFile(g *Graph, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := WriteGraphviz(g, w); err != nil {
		return err
	}
	return w.Flush()
}
