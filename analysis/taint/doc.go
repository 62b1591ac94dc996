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
Package taint implements a flow-insensitive, intra-procedural taint analysis of PHP syntax trees. The main entry
points are [Analyze] and [AnalyzeFiles], which return an [AnalysisResult] containing the findings, the include sites
and, when enabled, the unused declarations.

Every expression is given a [Result]: the set of risks its value may carry, and a witness expression. Values the
analysis cannot track (variables never assigned in the scope, properties, array elements, return values of calls)
carry every risk. A call removes from its return value the risks its callee mitigates according to the
[MethodInformation] catalog; the arguments do not flow into the return value. When a sink is called, the merged
result of its arguments is checked by the [ResultCollector]: the risks that the sink is sensitive to and that the
operator is interested in are reported as a [Finding].

Each function and method body is analyzed once, in its own scope, in source order. Loops are walked once and both
branches of a conditional are walked one after the other, sharing the variable map of the scope. A variable keeps
the union of the risks of all the values it has been assigned.

The analyzers panic with a [CoverageError] when they meet a node they do not know; [ProgramAnalyzer.AnalyzeProgram]
recovers it and returns it as an error.
*/
package taint
