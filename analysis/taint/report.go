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
	"encoding/json"
	"fmt"
	"io"

	"github.com/awslabs/ar-php-tools/analysis/config"
	"github.com/awslabs/ar-php-tools/analysis/deadcode"
	"github.com/awslabs/ar-php-tools/analysis/phpast"
	"github.com/awslabs/ar-php-tools/analysis/risk"
	"github.com/awslabs/ar-php-tools/internal/formatutil"
)

type jsonFinding struct {
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Class    string   `json:"class,omitempty"`
	Function string   `json:"function,omitempty"`
	Sink     string   `json:"sink"`
	Risks    risk.Set `json:"risks"`
	Witness  string   `json:"witness"`
}

type jsonDeclaration struct {
	Name string        `json:"name"`
	Kind deadcode.Kind `json:"kind"`
	File string        `json:"file"`
	Line int           `json:"line"`
}

type jsonReport struct {
	Findings []jsonFinding     `json:"findings"`
	Unused   []jsonDeclaration `json:"unused"`
}

// MarshalJSON encodes the finding as a flat record with the witness printed as PHP.
func (f Finding) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSONFinding(f))
}

func toJSONFinding(f Finding) jsonFinding {
	return jsonFinding{
		File:     f.Location.File,
		Line:     f.Location.Line,
		Class:    f.Location.Class,
		Function: f.Location.Function,
		Sink:     f.Sink,
		Risks:    f.Risks,
		Witness:  phpast.Sprint(f.Witness),
	}
}

// capFindings returns at most maxAlarms findings. If maxAlarms <= 0, all findings are returned.
func capFindings(findings []Finding, maxAlarms int) []Finding {
	if maxAlarms > 0 && len(findings) > maxAlarms {
		return findings[:maxAlarms]
	}
	return findings
}

// WriteReport writes the report of res in the format of cfg.ReportFormat, capping the number of findings to
// cfg.MaxAlarms.
func WriteReport(w io.Writer, cfg *config.Config, res AnalysisResult) error {
	switch cfg.ReportFormat {
	case config.ReportFormatJSON:
		return WriteJSONReport(w, res, cfg.MaxAlarms)
	default:
		return WriteTextReport(w, res, cfg.MaxAlarms)
	}
}

// WriteJSONReport writes res as one JSON document.
func WriteJSONReport(w io.Writer, res AnalysisResult, maxAlarms int) error {
	report := jsonReport{Findings: []jsonFinding{}, Unused: []jsonDeclaration{}}
	for _, f := range capFindings(res.Findings, maxAlarms) {
		report.Findings = append(report.Findings, toJSONFinding(f))
	}
	for _, d := range res.Unused {
		report.Unused = append(report.Unused, jsonDeclaration{
			Name: d.Name,
			Kind: d.Kind,
			File: d.Location.File,
			Line: d.Location.Line,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// WriteTextReport writes res in a human readable form, colored when the output is a terminal.
func WriteTextReport(w io.Writer, res AnalysisResult, maxAlarms int) error {
	findings := capFindings(res.Findings, maxAlarms)
	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	if len(findings) == 0 {
		printf("%s\n", formatutil.Green("No unmitigated risk found."))
	} else {
		printf("%s\n", formatutil.Bold(fmt.Sprintf("%d unmitigated risk(s):", len(findings))))
	}
	for _, f := range findings {
		printf(" 💀 %s at %s\n", formatutil.Red(f.Sink), f.Location)
		printf("    risks:   %s\n", formatutil.Yellow(f.Risks))
		printf("    witness: %s\n", formatutil.Sanitize(phpast.Sprint(f.Witness)))
	}
	if len(res.Findings) > len(findings) {
		printf("%s\n", formatutil.Faint(fmt.Sprintf("(%d more not shown, max-alarms is %d)",
			len(res.Findings)-len(findings), maxAlarms)))
	}

	if len(res.Unused) > 0 {
		if err != nil {
			return err
		}
		return writeUnused(w, res.Unused)
	}
	return err
}

// WriteUnusedReport writes only the unused declarations of res, in the format of cfg.ReportFormat.
func WriteUnusedReport(w io.Writer, cfg *config.Config, res AnalysisResult) error {
	if cfg.ReportFormat == config.ReportFormatJSON {
		res.Findings = nil
		return WriteJSONReport(w, res, 0)
	}
	if len(res.Unused) == 0 {
		_, err := fmt.Fprintf(w, "%s\n", formatutil.Green("No unused declaration found."))
		return err
	}
	return writeUnused(w, res.Unused)
}

func writeUnused(w io.Writer, unused []deadcode.Declaration) error {
	if _, err := fmt.Fprintf(w, "%s\n", formatutil.Bold(fmt.Sprintf("%d unused declaration(s):", len(unused)))); err != nil {
		return err
	}
	for _, d := range unused {
		if _, err := fmt.Fprintf(w, " - %s at %s\n", formatutil.Cyan(d.Name), d.Location); err != nil {
			return err
		}
	}
	return nil
}
