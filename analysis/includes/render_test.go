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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteGraphviz(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGraphviz(Build(testSites()), &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := buf.String()
	want := `digraph includes {
  "/a.php" [style=dashed];
  "/b.php";
  "/c.php";
  "/d.php";
  "/a.php" -> "/b.php" [color=red];
  "/b.php" -> "/c.php" [color=red];
  "/c.php" -> "/a.php" [color=red];
  "/d.php" -> "/b.php";
}
`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestGraphvizToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "includes.dot")
	if err := GraphvizToFile(Build(testSites()), file); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(b), "digraph includes {") {
		t.Errorf("unexpected file content %s", b)
	}
	if err := GraphvizToFile(Build(nil), filepath.Join(t.TempDir(), "missing", "x.dot")); err == nil {
		t.Errorf("expected an error for a missing directory")
	}
}
