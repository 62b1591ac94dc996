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

// Package analysistest loads end-to-end test scenarios: a configuration, syntax tree files and the expected
// results, stored together in a txtar archive.
package analysistest

import (
	"bytes"
	"io/fs"
	"path"
	"strings"
	"testing"

	"github.com/awslabs/ar-php-tools/analysis/config"
	"github.com/awslabs/ar-php-tools/analysis/phpast"
	"golang.org/x/tools/txtar"
)

const (
	// ConfigFile is the archive member holding the configuration. When absent, the default configuration is used.
	ConfigFile = "config.yaml"

	goldenSuffix = ".golden"
)

// Scenario is a test case read from a txtar archive. The comment of the archive describes the scenario.
type Scenario struct {
	Name        string
	Description string
	Config      *config.Config

	// Programs are the syntax trees of the archive, in archive order
	Programs []*phpast.Program

	// Golden maps the name of each .golden member, without extension, to its non-empty lines
	Golden map[string][]string
}

// LoadScenario reads the archive name in fsys. Every member that is not the configuration or a golden file must
// be a syntax tree document; programs without a file name are named after their member.
func LoadScenario(t *testing.T, fsys fs.FS, name string) Scenario {
	t.Helper()
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		t.Fatalf("could not read scenario %s: %v", name, err)
	}
	archive := txtar.Parse(b)
	sc := Scenario{
		Name:        strings.TrimSuffix(path.Base(name), path.Ext(name)),
		Description: strings.TrimSpace(string(archive.Comment)),
		Config:      config.NewDefault(),
		Golden:      map[string][]string{},
	}
	for _, f := range archive.Files {
		switch {
		case f.Name == ConfigFile:
			cfg, err := config.Parse(name, f.Data)
			if err != nil {
				t.Fatalf("scenario %s: invalid config: %v", name, err)
			}
			sc.Config = cfg
		case strings.HasSuffix(f.Name, goldenSuffix):
			sc.Golden[strings.TrimSuffix(f.Name, goldenSuffix)] = Lines(f.Data)
		default:
			prog, err := phpast.Decode(bytes.NewReader(f.Data))
			if err != nil {
				t.Fatalf("scenario %s: member %s: %v", name, f.Name, err)
			}
			if prog.File == "" {
				prog.File = f.Name
			}
			sc.Programs = append(sc.Programs, prog)
		}
	}
	return sc
}

// Lines returns the non-empty lines of data, trimmed, skipping lines starting with #.
func Lines(data []byte) []string {
	var res []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		res = append(res, line)
	}
	return res
}

// CheckLines reports an error for every line of want missing from got and every line of got missing from want,
// then checks that the lines appear in the same order.
func CheckLines(t *testing.T, what string, got []string, want []string) {
	t.Helper()
	gotSet := map[string]bool{}
	for _, l := range got {
		gotSet[l] = true
	}
	wantSet := map[string]bool{}
	for _, l := range want {
		wantSet[l] = true
	}
	missing := false
	for _, l := range want {
		if !gotSet[l] {
			t.Errorf("%s: expected %q, not found", what, l)
			missing = true
		}
	}
	for _, l := range got {
		if !wantSet[l] {
			t.Errorf("%s: unexpected %q", what, l)
			missing = true
		}
	}
	if missing {
		return
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("%s: order differs\ngot:\n%s\nwant:\n%s", what, strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}
