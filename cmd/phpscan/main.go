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


package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/awslabs/ar-php-tools/analysis"
	"github.com/awslabs/ar-php-tools/analysis/taint"
	"github.com/awslabs/ar-php-tools/cmd/phpscan/includes"
	taintcmd "github.com/awslabs/ar-php-tools/cmd/phpscan/taint"
	"github.com/awslabs/ar-php-tools/cmd/phpscan/tools"
	"github.com/awslabs/ar-php-tools/cmd/phpscan/unused"
)

const usage = `phpscan: static analysis of PHP syntax trees
Usage:
  phpscan [tool] [options] <tree file or directory>...
Tools:
  - taint: reports arguments of dangerous operations carrying unmitigated risks
  - unused: reports functions, methods and classes that are declared but never used
  - includes: prints the include graph, its cycles and the includes with a dynamic target
Examples:
  Run the taint analysis: phpscan taint -config config.yaml trees/
  List unused declarations: phpscan unused -path /srv/app/ trees/`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "error: expected subcommand\n%s\n", usage)
		os.Exit(2)
	}

	// hardcode help flag
	if snd := os.Args[1]; snd == "-help" || snd == "--help" {
		fmt.Println(usage)
		return
	}

	// hardcode version flag
	if snd := os.Args[1]; snd == "-version" || snd == "--version" {
		fmt.Println(analysis.Version)
		return
	}

	args := os.Args[2:]
	switch cmd := os.Args[1]; cmd {
	case "taint":
		flags, err := taintcmd.NewFlags(args)
		if err != nil {
			errExit(err)
		}
		if err := taintcmd.Run(flags); err != nil {
			errExit(err)
		}
	case "unused":
		flags, err := unused.NewFlags(args)
		if err != nil {
			errExit(err)
		}
		if err := unused.Run(flags); err != nil {
			errExit(err)
		}
	case "includes":
		flags, err := includes.NewFlags(args)
		if err != nil {
			errExit(err)
		}
		if err := includes.Run(flags); err != nil {
			errExit(err)
		}
	default:
		fmt.Fprintf(os.Stderr, "error: unexpected command: %v\n", cmd)
		fmt.Fprintf(os.Stderr, "usage:\n%s\n", usage)
		os.Exit(2)
	}
}

// errExit prints err and exits. A syntax tree the analysis does not fully handle exits with status 1, other errors
// with status 2.
func errExit(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	hint := tools.HintForErrorMessage(err.Error())
	if hint != "" {
		fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
	}
	var coverageErr *taint.CoverageError
	if errors.As(err, &coverageErr) {
		os.Exit(1)
	}
	os.Exit(2)
}
