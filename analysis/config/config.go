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

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path"
	"regexp"

	"github.com/awslabs/ar-php-tools/analysis/risk"
	"gopkg.in/yaml.v3"
)

var (
	// The global config file
	configFile string

	//go:embed default-methods.yaml
	defaultMethods []byte
)

// SetGlobalConfig sets the global config filename
func SetGlobalConfig(filename string) {
	configFile = filename
}

// LoadGlobal loads the config file that has been set by SetGlobalConfig. If no file has been set, the default
// configuration is returned.
func LoadGlobal() (*Config, error) {
	if configFile == "" {
		return NewDefault(), nil
	}
	return Load(configFile)
}

// Config contains the risk catalog, the risks of interest and the dead code detection paths.
// To add elements to a config file, add fields to this struct.
// If some field is not defined in the config file, it will be empty/zero in the struct.
// private fields are not populated from a yaml file, but computed after initialization
type Config struct {
	Options

	sourceFile string

	// the compiled FilePattern
	filePatternRegex *regexp.Regexp

	// IgnoredRisks lists the names of the risks that should not be reported
	IgnoredRisks []string `yaml:"ignored-risks"`

	// DangerousMethods maps sink names to a comma separated list of the risks the sink is sensitive to.
	// When absent, the built-in catalog is used.
	DangerousMethods map[string]string `yaml:"dangerous-methods"`

	// MitigatingMethods maps function names to a comma separated list of the risks they remove.
	// When absent, the built-in catalog is used.
	MitigatingMethods map[string]string `yaml:"mitigating-methods"`

	// UnusedDeclarationPaths lists the path prefixes under which declarations are checked for usage. Dead code
	// detection is disabled when the list is empty.
	UnusedDeclarationPaths []string `yaml:"unused-declaration-paths"`
}

type Options struct {
	// Loglevel controls the verbosity of the tool
	LogLevel int `yaml:"log-level"`

	// FilePattern is a regex selecting the syntax tree files analyzed when a directory is given on the command line
	FilePattern string `yaml:"file-pattern"`

	// MaxAlarms sets a limit for the number of alarms reported by an analysis.  If MaxAlarms > 0, then at most
	// MaxAlarms will be reported. Otherwise, if MaxAlarms <= 0, it is ignored.
	MaxAlarms int `yaml:"max-alarms"`

	// Parallelism is the number of files analyzed concurrently. If Parallelism <= 0, the number of CPUs is used.
	Parallelism int `yaml:"parallelism"`

	// ReportFormat is either "text" or "json"
	ReportFormat string `yaml:"report-format"`
}

// catalog is the layout of the embedded default tables
type catalog struct {
	DangerousMethods  map[string]string `yaml:"dangerous-methods"`
	MitigatingMethods map[string]string `yaml:"mitigating-methods"`
}

// DefaultCatalog returns fresh copies of the built-in dangerous and mitigating method tables.
func DefaultCatalog() (dangerous map[string]string, mitigating map[string]string) {
	var c catalog
	if err := yaml.Unmarshal(defaultMethods, &c); err != nil {
		panic(fmt.Sprintf("embedded method catalog is invalid: %v", err))
	}
	return c.DangerousMethods, c.MitigatingMethods
}

func defaultOptions() Options {
	return Options{
		LogLevel:     int(InfoLevel),
		FilePattern:  DefaultFilePattern,
		MaxAlarms:    0,
		Parallelism:  0,
		ReportFormat: ReportFormatText,
	}
}

// NewDefault returns a default config: all risks are of interest, the built-in catalog is used and dead code
// detection is disabled.
func NewDefault() *Config {
	dangerous, mitigating := DefaultCatalog()
	c := &Config{
		sourceFile:             "",
		IgnoredRisks:           nil,
		DangerousMethods:       dangerous,
		MitigatingMethods:      mitigating,
		UnusedDeclarationPaths: nil,
		Options:                defaultOptions(),
	}
	c.filePatternRegex = regexp.MustCompile(c.FilePattern)
	return c
}

// Load reads a configuration from a file
func Load(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	return Parse(filename, b)
}

// Parse reads a configuration from the content b of the file filename. The filename is only used to resolve
// relative paths.
//
//gocyclo:ignore
func Parse(filename string, b []byte) (*Config, error) {
	cfg := &Config{Options: defaultOptions()}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config file: %w", err)
	}

	cfg.sourceFile = filename

	// If logLevel has not been specified (i.e. it is 0) set the default to Info
	if cfg.LogLevel == 0 {
		cfg.LogLevel = int(InfoLevel)
	}
	if cfg.LogLevel < int(ErrLevel) || cfg.LogLevel > int(TraceLevel) {
		return nil, fmt.Errorf("log-level must be between %d and %d, got %d", ErrLevel, TraceLevel, cfg.LogLevel)
	}

	if cfg.FilePattern == "" {
		cfg.FilePattern = DefaultFilePattern
	}
	r, err := regexp.Compile(cfg.FilePattern)
	if err != nil {
		return nil, fmt.Errorf("invalid file-pattern %q: %w", cfg.FilePattern, err)
	}
	cfg.filePatternRegex = r

	switch cfg.ReportFormat {
	case "":
		cfg.ReportFormat = ReportFormatText
	case ReportFormatText, ReportFormatJSON:
	default:
		return nil, fmt.Errorf("unknown report-format %q", cfg.ReportFormat)
	}

	if cfg.DangerousMethods == nil || cfg.MitigatingMethods == nil {
		dangerous, mitigating := DefaultCatalog()
		if cfg.DangerousMethods == nil {
			cfg.DangerousMethods = dangerous
		}
		if cfg.MitigatingMethods == nil {
			cfg.MitigatingMethods = mitigating
		}
	}
	if err := validateTable("dangerous-methods", cfg.DangerousMethods); err != nil {
		return nil, err
	}
	if err := validateTable("mitigating-methods", cfg.MitigatingMethods); err != nil {
		return nil, err
	}
	for _, name := range cfg.IgnoredRisks {
		if _, err := risk.Parse(name); err != nil {
			return nil, fmt.Errorf("in ignored-risks: %w", err)
		}
	}

	return cfg, nil
}

func validateTable(table string, m map[string]string) error {
	for name, list := range m {
		if _, err := risk.ParseList(list); err != nil {
			return fmt.Errorf("in %s, entry %q: %w", table, name, err)
		}
	}
	return nil
}

// RelPath returns filename path relative to the config source file
func (c Config) RelPath(filename string) string {
	return path.Join(path.Dir(c.sourceFile), filename)
}

// MatchFilePattern returns true if the file name matches the file pattern of the config.
func (c Config) MatchFilePattern(filename string) bool {
	if c.filePatternRegex != nil {
		return c.filePatternRegex.MatchString(filename)
	}
	return regexp.MustCompile(DefaultFilePattern).MatchString(filename)
}

// InterestingRisks returns the risks the operator wants reported: every risk that is not ignored.
// Unknown names are skipped; they are rejected when the config is loaded.
func (c Config) InterestingRisks() risk.Set {
	ignored := risk.Set(0)
	for _, name := range c.IgnoredRisks {
		if r, err := risk.Parse(name); err == nil {
			ignored = ignored.Add(r)
		}
	}
	return risk.All().Without(ignored)
}

// DeadCodeEnabled returns true when declarations should be checked for usage.
func (c Config) DeadCodeEnabled() bool {
	return len(c.UnusedDeclarationPaths) > 0
}

// Verbose returns true if the configuration verbosity setting is larger than Info (i.e. Debug or Trace)
func (c Config) Verbose() bool {
	return c.LogLevel >= int(DebugLevel)
}
