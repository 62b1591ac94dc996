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


// Package taint implements the phpscan taint sub-command.
package taint

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/awslabs/ar-php-tools/analysis/taint"
	"github.com/awslabs/ar-php-tools/cmd/phpscan/tools"
)

// Usage is the help message of the sub-command
const Usage = ` Report the arguments of dangerous PHP operations that carry unmitigated risks.
Usage:
  phpscan taint [options] <tree file or directory>...
Examples:
  % phpscan taint -config config.yaml trees/
  % phpscan taint -ignore-risk XSS -format json trees/index.json
`

// Flags represents the parsed flags for the taint analysis.
type Flags struct {
	tools.CommonFlags
	maxAlarms int
}

// NewFlags returns the parsed flags for the taint analysis with args.
func NewFlags(args []string) (Flags, error) {
	flags := tools.NewUnparsedCommonFlags("taint")
	maxAlarms := flags.FlagSet.Int("max-alarms", 0, "override the maximum number of reported findings in config")
	tools.SetUsage(flags.FlagSet, Usage)
	common, err := flags.Parse(args)
	if err != nil {
		return Flags{}, err
	}
	return Flags{CommonFlags: common, maxAlarms: *maxAlarms}, nil
}

// Run runs the taint analysis with flags and writes the report on the standard output.
func Run(flags Flags) error {
	return run(context.Background(), flags, os.Stdout)
}

func run(ctx context.Context, flags Flags, w io.Writer) error {
	cfg, err := tools.LoadConfig(flags.CommonFlags)
	if err != nil {
		return err
	}
	if flags.maxAlarms > 0 {
		cfg.MaxAlarms = flags.maxAlarms
	}
	res, err := tools.AnalyzePaths(ctx, cfg, "taint", flags.FlagSet.Args())
	if err != nil {
		return err
	}
	if err := taint.WriteReport(w, cfg, res); err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}
	return nil
}
