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
	"path"
	"strings"

	"github.com/awslabs/ar-php-tools/analysis/phpast"
)

func includeSite(loc phpast.Location, inc *phpast.Include) IncludeSite {
	site := IncludeSite{Location: loc, Once: inc.Once, Require: inc.Require}
	target, ok := staticPath(inc.Expr, loc.File)
	if !ok {
		return site
	}
	if !path.IsAbs(target) && loc.File != "" {
		target = path.Join(path.Dir(loc.File), target)
	}
	site.Target = path.Clean(target)
	site.Resolved = true
	return site
}

// staticPath computes the value of e when it only depends on string literals, __FILE__, __DIR__ and
// dirname(__FILE__), file being the file containing e.
func staticPath(e phpast.Expr, file string) (string, bool) {
	switch x := e.(type) {
	case *phpast.LiteralString:
		return x.Value, true
	case *phpast.ConstFile:
		return file, file != ""
	case *phpast.ConstDir:
		return path.Dir(file), file != ""
	case *phpast.Call:
		if strings.EqualFold(x.Name, "dirname") && len(x.Args) == 1 {
			if inner, ok := staticPath(x.Args[0], file); ok && inner != "" {
				return path.Dir(inner), true
			}
		}
		return "", false
	case *phpast.Append:
		var b strings.Builder
		for link := x; link != nil; link = link.Next {
			s, ok := staticPath(link.Value, file)
			if !ok {
				return "", false
			}
			b.WriteString(s)
		}
		return b.String(), b.Len() > 0
	default:
		return "", false
	}
}
