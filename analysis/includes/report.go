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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/awslabs/ar-php-tools/internal/formatutil"
)

// WriteTextReport writes a summary of g: the include cycles and the unresolved include sites.
func WriteTextReport(w io.Writer, g *Graph) error {
	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	printf("%s\n", formatutil.Bold(fmt.Sprintf("%d file(s), %d include edge(s), %d unresolved include(s)",
		len(g.Files()), g.EdgeCount(), len(g.Unresolved()))))

	cycles := g.Cycles()
	if len(cycles) == 0 {
		printf("%s\n", formatutil.Green("No include cycle found."))
	} else {
		printf("%s\n", formatutil.Bold(fmt.Sprintf("%d include cycle(s):", len(cycles))))
		for _, c := range cycles {
			printf(" ↻ %s\n", formatutil.Red(strings.Join(c, " -> ")))
		}
	}

	if len(g.Unresolved()) > 0 {
		printf("%s\n", formatutil.Bold("Unresolved includes:"))
		for _, site := range g.Unresolved() {
			printf(" - %s\n", formatutil.Yellow(site.Location))
		}
	}
	return err
}

type jsonEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type jsonSite struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Require bool   `json:"require"`
	Once    bool   `json:"once"`
}

type jsonReport struct {
	Files      []string   `json:"files"`
	Edges      []jsonEdge `json:"edges"`
	Cycles     [][]string `json:"cycles"`
	Unresolved []jsonSite `json:"unresolved"`
}

// WriteJSONReport writes g as one JSON document. Edges are sorted by origin then target.
func WriteJSONReport(w io.Writer, g *Graph) error {
	report := jsonReport{
		Files:      g.Files(),
		Edges:      []jsonEdge{},
		Cycles:     g.Cycles(),
		Unresolved: []jsonSite{},
	}
	if report.Files == nil {
		report.Files = []string{}
	}
	if report.Cycles == nil {
		report.Cycles = [][]string{}
	}
	for _, from := range report.Files {
		for _, to := range g.Included(from) {
			report.Edges = append(report.Edges, jsonEdge{From: from, To: to})
		}
	}
	for _, site := range g.Unresolved() {
		report.Unresolved = append(report.Unresolved, jsonSite{
			File:    site.Location.File,
			Line:    site.Location.Line,
			Require: site.Require,
			Once:    site.Once,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
