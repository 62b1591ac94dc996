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
	"strings"
	"testing"

	"github.com/awslabs/ar-php-tools/analysis/config"
	"github.com/awslabs/ar-php-tools/analysis/risk"
)

func TestNewMethodInformation(t *testing.T) {
	m, err := NewMethodInformation(testDangerous, testMitigating)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, ok := m.Dangers("mysql_query"); !ok || s != risk.NewSet(risk.SQLInjection) {
		t.Errorf("mysql_query: got %s, %v", s, ok)
	}
	if _, ok := m.Dangers("MYSQL_QUERY"); ok {
		t.Errorf("names should be matched exactly")
	}
	if s, ok := m.Mitigations("intval"); !ok || s != risk.All() {
		t.Errorf("intval: got %s, %v", s, ok)
	}
	if _, ok := m.Mitigations("strlen"); ok {
		t.Errorf("strlen has no entry")
	}

	if _, err := NewMethodInformation(map[string]string{"f": "SQL"}, nil); err == nil {
		t.Errorf("unknown risk name should be an error")
	}
	if _, err := NewMethodInformation(nil, map[string]string{"f": "XSS, HTML"}); err == nil {
		t.Errorf("unknown mitigated risk should be an error")
	}
}

func TestMethodInformationFromConfig(t *testing.T) {
	m, err := MethodInformationFromConfig(config.NewDefault())
	if err != nil {
		t.Fatalf("default catalog should be valid: %v", err)
	}
	if _, ok := m.Dangers(SinkEcho); !ok {
		t.Errorf("default catalog should know echo")
	}
}

func TestCollectResult(t *testing.T) {
	methods, _ := NewMethodInformation(testDangerous, testMitigating)
	var buf bytes.Buffer
	logger := config.NewDiscardLogGroup(config.DebugLevel)
	logger.SetAllOutput(&buf)
	c := NewResultCollector(logger, methods, risk.All().Without(risk.NewSet(risk.CodeEvaluation)))

	c.CollectResult(at(1), "unknown_function", Unsafe(v("a")))
	c.CollectResult(at(2), "mysql_query", &Result{Risks: risk.NewSet(risk.CrossSiteScripting), Witness: v("b")})
	c.CollectResult(at(3), "eval", Unsafe(v("c")))
	c.CollectResult(at(4), "mysql_query", Unsafe(v("d")))
	c.CollectResult(at(5), "echo", nil)

	findings := c.Findings()
	if len(findings) != 1 {
		t.Fatalf("expected one finding, got %v", findings)
	}
	f := findings[0]
	if f.Location != at(4) || f.Sink != "mysql_query" || f.Risks != risk.NewSet(risk.SQLInjection) {
		t.Errorf("unexpected finding %s", f)
	}
	if findingLine(f) != testFile+":4 mysql_query [SQL_INJECTION] $d" {
		t.Errorf("unexpected rendering %q", findingLine(f))
	}

	logs := buf.String()
	if !strings.Contains(logs, "[DEBUG] ") || !strings.Contains(logs, "No risk information known for method: unknown_function") {
		t.Errorf("missing catalog entry should be logged at debug level, got:\n%s", logs)
	}
	if !strings.Contains(logs, "[WARN] ") || !strings.Contains(logs, "Unmitigated risks for method: mysql_query") {
		t.Errorf("finding should be logged at warn level, got:\n%s", logs)
	}
	for _, line := range strings.Split(logs, "\n") {
		if strings.HasPrefix(line, "[WARN] ") && strings.Contains(line, "No risk information") {
			t.Errorf("missing catalog entry must not be a warning: %s", line)
		}
	}
}

func TestCollectorMerge(t *testing.T) {
	methods, _ := NewMethodInformation(testDangerous, testMitigating)
	logger := config.NewDiscardLogGroup(config.ErrLevel)
	first := NewResultCollector(logger, methods, risk.All())
	second := first.fork()
	first.CollectResult(at(1), "echo", Unsafe(v("a")))
	second.CollectResult(at(2), "echo", Unsafe(v("b")))
	second.CollectInclude(IncludeSite{Location: at(3), Target: "/srv/app/lib.php", Resolved: true})
	first.Merge(second)
	first.Merge(nil)

	lines := findingLines(first.Findings())
	if len(lines) != 2 || !strings.HasSuffix(lines[0], "$a") || !strings.HasSuffix(lines[1], "$b") {
		t.Errorf("merged findings should keep the order of the shards, got %v", lines)
	}
	if len(first.Includes()) != 1 || first.Includes()[0].From() != testFile {
		t.Errorf("include sites should be merged, got %v", first.Includes())
	}
	if first.Interest() != risk.All() || first.Methods() != methods {
		t.Errorf("fork should keep the catalog and the interest")
	}
}
