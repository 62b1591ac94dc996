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


// Package tools contains utility types and functions for the phpscan sub-commands.
package tools

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/awslabs/ar-php-tools/analysis/config"
	"github.com/awslabs/ar-php-tools/analysis/risk"
	"github.com/awslabs/ar-php-tools/internal/formatutil"
)

// UnparsedCommonFlags represents an unparsed CLI sub-command flags.
type UnparsedCommonFlags struct {
	FlagSet     *flag.FlagSet
	ConfigPath  *string
	Verbose     *bool
	IgnoreRisks *RiskNames
	Format      *string
	NoColor     *bool
}

// NewUnparsedCommonFlags returns an unparsed flag set with a given name.
// This is useful for creating sub-commands that have the flags -config, -verbose, -ignore-risk, -format and
// -no-color but need other flags in addition.
func NewUnparsedCommonFlags(name string) UnparsedCommonFlags {
	cmd := flag.NewFlagSet(name, flag.ExitOnError)
	configPath := cmd.String("config", "", "config file path for analysis")
	verbose := cmd.Bool("verbose", false, "verbose printing on standard error")
	ignoreRisks := &RiskNames{}
	cmd.Var(ignoreRisks, "ignore-risk", "risk category that should not be reported (repeatable)")
	format := cmd.String("format", "", "report format, text or json (overrides the config)")
	noColor := cmd.Bool("no-color", false, "never color the report")
	return UnparsedCommonFlags{
		FlagSet:     cmd,
		ConfigPath:  configPath,
		Verbose:     verbose,
		IgnoreRisks: ignoreRisks,
		Format:      format,
		NoColor:     noColor,
	}
}

// Parse parses args and returns the common flags.
func (u UnparsedCommonFlags) Parse(args []string) (CommonFlags, error) {
	if err := u.FlagSet.Parse(args); err != nil {
		return CommonFlags{}, fmt.Errorf("failed to parse command %s with args %v: %v", u.FlagSet.Name(), args, err)
	}
	return CommonFlags{
		FlagSet:     u.FlagSet,
		ConfigPath:  *u.ConfigPath,
		Verbose:     *u.Verbose,
		IgnoreRisks: []string(*u.IgnoreRisks),
		Format:      *u.Format,
		NoColor:     *u.NoColor,
	}, nil
}

// CommonFlags represents a parsed CLI sub-command flags.
// E.g., for the command `phpscan taint ...`, "taint" is the sub-command.
type CommonFlags struct {
	FlagSet     *flag.FlagSet
	ConfigPath  string
	Verbose     bool
	IgnoreRisks []string
	Format      string
	NoColor     bool
}

// NewCommonFlags returns a parsed flag set with a given name.
// Returns an error if args are invalid.
// Prints cmdUsage along with flag docs as the --help message.
func NewCommonFlags(name string, args []string, cmdUsage string) (CommonFlags, error) {
	flags := NewUnparsedCommonFlags(name)
	SetUsage(flags.FlagSet, cmdUsage)
	return flags.Parse(args)
}

// SetUsage sets cmd's usage (for --help flag) to output the string cmdUsage
// followed by each flag's documentation.
func SetUsage(cmd *flag.FlagSet, cmdUsage string) {
	cmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n", cmdUsage)
		fmt.Fprintf(os.Stderr, "Options:\n")
		cmd.VisitAll(func(f *flag.Flag) {
			fmt.Fprintf(os.Stderr, "  %s: %s (default: %q)\n", f.Name, f.Usage, f.DefValue)
		})
	}
}

// RiskNames represents risk category names given on the command line.
type RiskNames []string

func (r *RiskNames) String() string {
	if r == nil {
		return "[]"
	}
	return fmt.Sprintf("%v", []string(*r))
}

// Set adds value to r. Value must be a risk category name.
// This method satisfies the flag.Value interface.
func (r *RiskNames) Set(value string) error {
	if _, err := risk.Parse(value); err != nil {
		return err
	}
	*r = append(*r, value)
	return nil
}

// LoadConfig loads the config file from the path in flags, or the default config when no path is given, and
// applies the command-line overrides.
func LoadConfig(flags CommonFlags) (*config.Config, error) {
	config.SetGlobalConfig(flags.ConfigPath)
	cfg, err := config.LoadGlobal()
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %v", flags.ConfigPath, err)
	}

	// Override config parameters with command-line parameters
	if flags.Verbose {
		cfg.LogLevel = int(config.DebugLevel)
	}
	cfg.IgnoredRisks = append(cfg.IgnoredRisks, flags.IgnoreRisks...)
	switch flags.Format {
	case "":
	case config.ReportFormatText, config.ReportFormatJSON:
		cfg.ReportFormat = flags.Format
	default:
		return nil, fmt.Errorf("unknown report format %q", flags.Format)
	}
	if flags.NoColor || cfg.ReportFormat == config.ReportFormatJSON {
		formatutil.DisableColors()
	}
	return cfg, nil
}

// CollectFiles returns the syntax tree files designated by paths. A file path is used as is; a directory is walked
// and the files whose name matches the file pattern of cfg are collected in lexical order. Duplicates are
// removed.
func CollectFiles(cfg *config.Config, paths []string) ([]string, error) {
	var files []string
	seen := map[string]bool{}
	add := func(file string) {
		if !seen[file] {
			seen[file] = true
			files = append(files, file)
		}
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("could not find tree files: %w", err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(file string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() && cfg.MatchFilePattern(d.Name()) {
				add(file)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("could not find tree files: %w", err)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no tree file to analyze in %v", paths)
	}
	return files, nil
}
