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

/*
Package phpast defines the PHP syntax tree consumed by the analyses.

The tree is produced by an external PHP parser. A [Program] holds the top-level statements of one source file and the
top-level function records. Every node has a stable kind tag ([Node.Kind]) and a source [Location]; nodes for which
the parser could not give a position carry the unknown location.

Expressions and statements are closed sets: [Expr] and [Stmt] can only be implemented by the types of this package,
so that analyses can switch exhaustively over node types.

Trees are exchanged as YAML or JSON documents, see [Decode]. A program document looks like:

	file: /srv/app/index.php
	statements:
	  - kind: expr
	    line: 3
	    expr:
	      kind: assign
	      line: 3
	      var: {kind: var, name: a}
	      value:
	        kind: array_get
	        expr: {kind: var, name: _GET}
	        index: {kind: literal_string, value: x}
	  - kind: echo
	    line: 4
	    expr: {kind: var, name: a, line: 4}
	functions:
	  - name: helper
	    line: 8
	    body: []
*/
package phpast
