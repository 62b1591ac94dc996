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
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/awslabs/ar-php-tools/analysis/config"
	"github.com/awslabs/ar-php-tools/analysis/phpast"
	"github.com/awslabs/ar-php-tools/analysis/taint"
	"golang.org/x/exp/slices"
)

func site(from string, line int, target string) taint.IncludeSite {
	return taint.IncludeSite{
		Location: phpast.Location{File: from, Line: line},
		Target:   target,
		Resolved: target != "",
	}
}

func testSites() []taint.IncludeSite {
	return []taint.IncludeSite{
		site("/a.php", 1, "/b.php"),
		site("/b.php", 1, "/c.php"),
		site("/c.php", 1, "/a.php"),
		site("/a.php", 5, ""),
		site("/d.php", 2, "/b.php"),
		site("/a.php", 7, "/b.php"),
		site("", 0, "/e.php"),
	}
}

func TestBuild(t *testing.T) {
	g := Build(testSites())
	if got := g.Files(); !slices.Equal(got, []string{"/a.php", "/b.php", "/c.php", "/d.php"}) {
		t.Errorf("unexpected files %v", got)
	}
	if len(g.Sites()) != 6 {
		t.Errorf("sites without a file should be dropped, got %d sites", len(g.Sites()))
	}
	if len(g.Unresolved()) != 1 || g.Unresolved()[0].Location.Line != 5 {
		t.Errorf("unexpected unresolved sites %v", g.Unresolved())
	}
	if g.EdgeCount() != 4 {
		t.Errorf("duplicate includes should give one edge, got %d edges", g.EdgeCount())
	}
	if got := g.Included("/a.php"); !slices.Equal(got, []string{"/b.php"}) {
		t.Errorf("included by /a.php: got %v", got)
	}
	if got := g.IncludedBy("/b.php"); !slices.Equal(got, []string{"/a.php", "/d.php"}) {
		t.Errorf("including /b.php: got %v", got)
	}
	if got := g.Roots(); !slices.Equal(got, []string{"/d.php"}) {
		t.Errorf("unexpected roots %v", got)
	}
}

func TestIncludes(t *testing.T) {
	g := Build(testSites())
	for _, test := range []struct {
		from, to string
		want     bool
	}{
		{"/d.php", "/a.php", true},
		{"/a.php", "/c.php", true},
		{"/a.php", "/d.php", false},
		{"/a.php", "/a.php", true},
		{"/d.php", "/d.php", false},
		{"/d.php", "/nowhere.php", false},
	} {
		if got := g.Includes(test.from, test.to); got != test.want {
			t.Errorf("%s includes %s: got %v, want %v", test.from, test.to, got, test.want)
		}
	}
}

func TestCycles(t *testing.T) {
	g := Build(append(testSites(), site("/d.php", 3, "/d.php")))
	want := [][]string{
		{"/a.php", "/b.php", "/c.php", "/a.php"},
		{"/d.php", "/d.php"},
	}
	got := g.Cycles()
	if len(got) != len(want) {
		t.Fatalf("got cycles %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("cycle %d: got %v, want %v", i, got[i], want[i])
		}
	}
	groups := g.CyclicGroups()
	if len(groups) != 2 || !slices.Equal(groups[0], []string{"/a.php", "/b.php", "/c.php"}) {
		t.Errorf("unexpected groups %v", groups)
	}
}

func TestWriteTextReport(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTextReport(&buf, Build(testSites())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"4 file(s), 4 include edge(s), 1 unresolved include(s)",
		"1 include cycle(s):",
		"/a.php -> /b.php -> /c.php -> /a.php",
		"Unresolved includes:",
		" - /a.php:5",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report should contain %q, got:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := WriteTextReport(&buf, Build(nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "No include cycle found.") {
		t.Errorf("unexpected empty report: %s", buf.String())
	}
}

func TestWriteJSONReport(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSONReport(&buf, Build(testSites())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var report struct {
		Files      []string            `json:"files"`
		Edges      []map[string]string `json:"edges"`
		Cycles     [][]string          `json:"cycles"`
		Unresolved []map[string]any    `json:"unresolved"`
	}
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("invalid json %s: %v", buf.String(), err)
	}
	if len(report.Files) != 4 || len(report.Edges) != 4 || len(report.Cycles) != 1 || len(report.Unresolved) != 1 {
		t.Errorf("unexpected report %s", buf.String())
	}
	if report.Edges[0]["from"] != "/a.php" || report.Edges[0]["to"] != "/b.php" {
		t.Errorf("edges should be sorted, got %v", report.Edges)
	}

	buf.Reset()
	if err := WriteJSONReport(&buf, Build(nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "null") {
		t.Errorf("empty report should use empty lists, got %s", buf.String())
	}
}

func decode(t *testing.T, doc string) *phpast.Program {
	t.Helper()
	prog, err := phpast.Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("could not decode program: %v", err)
	}
	return prog
}

func TestBuildFromAnalysis(t *testing.T) {
	index := decode(t, `
file: /srv/app/index.php
statements:
  - kind: expr
    line: 2
    expr:
      kind: include
      line: 2
      require: true
      expr:
        kind: append
        value: {kind: const_dir}
        next: {kind: literal_string, value: /lib/db.php}
  - kind: expr
    line: 3
    expr: {kind: include, line: 3, expr: {kind: var, name: page}}
`)
	db := decode(t, `
file: /srv/app/lib/db.php
statements:
  - kind: expr
    line: 2
    expr: {kind: include, line: 2, once: true, expr: {kind: literal_string, value: ../index.php}}
`)
	res, err := taint.Analyze(config.NewDefault(), config.NewDiscardLogGroup(config.ErrLevel),
		[]*phpast.Program{index, db})
	if err != nil {
		t.Fatalf("analysis failed: %v", err)
	}
	g := Build(res.Includes)
	if !g.Includes("/srv/app/index.php", "/srv/app/lib/db.php") {
		t.Errorf("index.php should include lib/db.php, edges from index.php: %v", g.Included("/srv/app/index.php"))
	}
	if !g.Includes("/srv/app/index.php", "/srv/app/index.php") {
		t.Errorf("index.php should include itself through lib/db.php")
	}
	if len(g.Unresolved()) != 1 {
		t.Errorf("expected one unresolved include, got %v", g.Unresolved())
	}
}
