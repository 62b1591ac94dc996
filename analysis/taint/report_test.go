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
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/awslabs/ar-php-tools/analysis/config"
	"github.com/awslabs/ar-php-tools/analysis/deadcode"
	"github.com/awslabs/ar-php-tools/analysis/phpast"
	"github.com/awslabs/ar-php-tools/analysis/risk"
)

func testResult() AnalysisResult {
	loc := phpast.Location{File: testFile, Line: 7, Class: "Page", Function: "render"}
	return AnalysisResult{
		Findings: []Finding{
			{Location: loc, Sink: "echo", Risks: risk.NewSet(risk.CrossSiteScripting), Witness: v("title")},
			{Location: at(9), Sink: "mysql_query", Risks: risk.NewSet(risk.SQLInjection),
				Witness: &phpast.ArrayGet{Expr: v("_GET"), Index: str("id")}},
		},
		Unused: []deadcode.Declaration{
			{Kind: deadcode.Function, Location: at(20), Name: "never_called()"},
		},
	}
}

func TestJSONReport(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSONReport(&buf, testResult(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var report struct {
		Findings []map[string]any `json:"findings"`
		Unused   []map[string]any `json:"unused"`
	}
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("invalid json %s: %v", buf.String(), err)
	}
	if len(report.Findings) != 2 || len(report.Unused) != 1 {
		t.Fatalf("unexpected report %s", buf.String())
	}
	first := report.Findings[0]
	for key, want := range map[string]any{
		"file":     testFile,
		"line":     float64(7),
		"class":    "Page",
		"function": "render",
		"sink":     "echo",
		"witness":  "$title",
	} {
		if first[key] != want {
			t.Errorf("%s: got %v, want %v", key, first[key], want)
		}
	}
	if risks, ok := first["risks"].([]any); !ok || len(risks) != 1 || risks[0] != "XSS" {
		t.Errorf("risks: got %v", first["risks"])
	}
	if report.Findings[1]["witness"] != "$_GET['id']" {
		t.Errorf("witness: got %v", report.Findings[1]["witness"])
	}
	if report.Unused[0]["kind"] != "function" || report.Unused[0]["name"] != "never_called()" {
		t.Errorf("unused: got %v", report.Unused[0])
	}
}

func TestJSONReportIsNeverNull(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSONReport(&buf, AnalysisResult{}, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "null") {
		t.Errorf("empty report should use empty lists, got %s", buf.String())
	}
}

func TestFindingMarshalJSON(t *testing.T) {
	b, err := json.Marshal(testResult().Findings[1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"file":"/srv/app/index.php","line":9,"sink":"mysql_query","risks":["SQL_INJECTION"],` +
		`"witness":"$_GET['id']"}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}

func TestTextReport(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewDefault()
	cfg.MaxAlarms = 1
	if err := WriteReport(&buf, cfg, testResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"1 unmitigated risk(s):",
		"echo at " + testFile + ":7 (Page::render)",
		"risks:   [XSS]",
		"witness: $title",
		"(1 more not shown, max-alarms is 1)",
		"1 unused declaration(s):",
		"never_called() at " + testFile + ":20",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report should contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "mysql_query") {
		t.Errorf("findings beyond max-alarms should not be shown")
	}

	buf.Reset()
	if err := WriteTextReport(&buf, AnalysisResult{}, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "No unmitigated risk found.") {
		t.Errorf("unexpected empty report: %s", buf.String())
	}
}

func TestUnusedReport(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewDefault()
	if err := WriteUnusedReport(&buf, cfg, testResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "1 unused declaration(s):") || strings.Contains(out, "unmitigated") {
		t.Errorf("unexpected unused report:\n%s", out)
	}

	buf.Reset()
	if err := WriteUnusedReport(&buf, cfg, AnalysisResult{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "No unused declaration found.") {
		t.Errorf("unexpected empty report: %s", buf.String())
	}

	buf.Reset()
	cfg.ReportFormat = config.ReportFormatJSON
	if err := WriteUnusedReport(&buf, cfg, testResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var report struct {
		Findings []map[string]any `json:"findings"`
		Unused   []map[string]any `json:"unused"`
	}
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("invalid json %s: %v", buf.String(), err)
	}
	if len(report.Findings) != 0 || len(report.Unused) != 1 {
		t.Errorf("unexpected report %s", buf.String())
	}
}
