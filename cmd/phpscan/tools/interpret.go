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


package tools

import "regexp"

// Captures errors happening before any analysis starts (tree files could not be found)
var regexNoTreeFile = regexp.MustCompile("could not find tree files|no tree file to analyze")

// Captures the kind of error that happen when a flag is placed after the paths
var flagAfterPaths = regexp.MustCompile("could not find tree files: stat -(\\w)")

// Captures the error returned when every risk is ignored
var noRisks = regexp.MustCompile("no risks to analyze")

// Captures coverage errors of the analysis
var unknownNode = regexp.MustCompile("unknown node kind")

// HintForErrorMessage looks for specific error message and returns some other message that might help the user
// resolve the problem.
func HintForErrorMessage(errMsg string) string {
	if regexNoTreeFile.MatchString(errMsg) {
		if flagAfterPaths.MatchString(errMsg) {
			return "all command line flags should be before the paths to the tree files to analyze"
		}
		return "make sure the paths exist and that the file-pattern option matches the tree files"
	}
	if noRisks.MatchString(errMsg) {
		return "every risk is ignored; remove some -ignore-risk flags or ignored-risks entries"
	}
	if unknownNode.MatchString(errMsg) {
		return "the syntax tree contains a construct the analysis does not handle; the tree may come from a newer parser"
	}
	return ""
}
