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


// Package includes implements the phpscan includes sub-command.
package includes

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/awslabs/ar-php-tools/analysis/config"
	"github.com/awslabs/ar-php-tools/analysis/includes"
	"github.com/awslabs/ar-php-tools/cmd/phpscan/tools"
)

// Usage is the help message of the sub-command
const Usage = ` Print the include graph of PHP files: include cycles and includes whose target is not static.
Usage:
  phpscan includes [options] <tree file or directory>...
Examples:
  % phpscan includes trees/
  % phpscan includes -dot includes.dot trees/
  % phpscan includes -from /srv/app/index.php -to /srv/app/lib/db.php trees/
`

// Flags represents the parsed flags for the include graph.
type Flags struct {
	tools.CommonFlags
	from string
	to   string
	dot  string
}

// NewFlags returns the parsed flags for the include graph with args.
func NewFlags(args []string) (Flags, error) {
	flags := tools.NewUnparsedCommonFlags("includes")
	from := flags.FlagSet.String("from", "", "with -to, check whether this file includes the other one")
	to := flags.FlagSet.String("to", "", "with -from, check whether this file is included by the other one")
	dot := flags.FlagSet.String("dot", "", "also write the graph in graphviz format to this file")
	tools.SetUsage(flags.FlagSet, Usage)
	common, err := flags.Parse(args)
	if err != nil {
		return Flags{}, err
	}
	return Flags{CommonFlags: common, from: *from, to: *to, dot: *dot}, nil
}

// Run builds the include graph with flags and writes the report on the standard output.
func Run(flags Flags) error {
	return run(context.Background(), flags, os.Stdout)
}

func run(ctx context.Context, flags Flags, w io.Writer) error {
	if (flags.from == "") != (flags.to == "") {
		return fmt.Errorf("-from and -to must be used together")
	}
	cfg, err := tools.LoadConfig(flags.CommonFlags)
	if err != nil {
		return err
	}
	res, err := tools.AnalyzePaths(ctx, cfg, "includes", flags.FlagSet.Args())
	if err != nil {
		return err
	}
	g := includes.Build(res.Includes)
	if flags.dot != "" {
		if err := includes.GraphvizToFile(g, flags.dot); err != nil {
			return err
		}
	}

	if flags.from != "" {
		if g.Includes(flags.from, flags.to) {
			_, err = fmt.Fprintf(w, "%s includes %s\n", flags.from, flags.to)
		} else {
			_, err = fmt.Fprintf(w, "%s does not include %s\n", flags.from, flags.to)
		}
		return err
	}
	if cfg.ReportFormat == config.ReportFormatJSON {
		return includes.WriteJSONReport(w, g)
	}
	return includes.WriteTextReport(w, g)
}
