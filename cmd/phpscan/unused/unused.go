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


// Package unused implements the phpscan unused sub-command.
package unused

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/awslabs/ar-php-tools/analysis/taint"
	"github.com/awslabs/ar-php-tools/cmd/phpscan/tools"
)

// Usage is the help message of the sub-command
const Usage = ` Report the functions, methods and classes declared under some paths that are never used.
Usage:
  phpscan unused [options] <tree file or directory>...
Examples:
  % phpscan unused -path /srv/app/ trees/
`

// ErrNoPaths is returned when neither the config nor the flags give the paths of the declarations to check
var ErrNoPaths = errors.New("no declaration paths to check; use -path or unused-declaration-paths")

// Flags represents the parsed flags for the unused declarations analysis.
type Flags struct {
	tools.CommonFlags
	paths []string
}

type pathList []string

func (p *pathList) String() string {
	if p == nil {
		return "[]"
	}
	return fmt.Sprintf("%v", []string(*p))
}

func (p *pathList) Set(value string) error {
	*p = append(*p, value)
	return nil
}

// NewFlags returns the parsed flags for the unused declarations analysis with args.
func NewFlags(args []string) (Flags, error) {
	flags := tools.NewUnparsedCommonFlags("unused")
	var paths pathList
	flags.FlagSet.Var(&paths, "path", "path prefix of the declarations to check (repeatable)")
	tools.SetUsage(flags.FlagSet, Usage)
	common, err := flags.Parse(args)
	if err != nil {
		return Flags{}, err
	}
	return Flags{CommonFlags: common, paths: paths}, nil
}

// Run runs the unused declarations analysis with flags and writes the report on the standard output.
func Run(flags Flags) error {
	return run(context.Background(), flags, os.Stdout)
}

func run(ctx context.Context, flags Flags, w io.Writer) error {
	cfg, err := tools.LoadConfig(flags.CommonFlags)
	if err != nil {
		return err
	}
	cfg.UnusedDeclarationPaths = append(cfg.UnusedDeclarationPaths, flags.paths...)
	if !cfg.DeadCodeEnabled() {
		return ErrNoPaths
	}
	res, err := tools.AnalyzePaths(ctx, cfg, "unused", flags.FlagSet.Args())
	if err != nil {
		return err
	}
	if err := taint.WriteUnusedReport(w, cfg, res); err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}
	return nil
}
