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
	"fmt"

	"github.com/awslabs/ar-php-tools/analysis/config"
	"github.com/awslabs/ar-php-tools/analysis/risk"
)

// MethodInformation is the catalog of sinks and mitigations. Names are matched exactly, case included.
// It is immutable once built and can be shared by concurrent analyses.
type MethodInformation struct {
	dangerous  map[string]risk.Set
	mitigating map[string]risk.Set
}

// NewMethodInformation parses the two name to risk-list tables.
func NewMethodInformation(dangerous, mitigating map[string]string) (*MethodInformation, error) {
	d, err := parseTable(dangerous)
	if err != nil {
		return nil, fmt.Errorf("dangerous methods: %w", err)
	}
	m, err := parseTable(mitigating)
	if err != nil {
		return nil, fmt.Errorf("mitigating methods: %w", err)
	}
	return &MethodInformation{dangerous: d, mitigating: m}, nil
}

// MethodInformationFromConfig builds the catalog from the tables of cfg.
func MethodInformationFromConfig(cfg *config.Config) (*MethodInformation, error) {
	return NewMethodInformation(cfg.DangerousMethods, cfg.MitigatingMethods)
}

func parseTable(table map[string]string) (map[string]risk.Set, error) {
	res := make(map[string]risk.Set, len(table))
	for name, list := range table {
		s, err := risk.ParseList(list)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", name, err)
		}
		res[name] = s
	}
	return res, nil
}

// Dangers returns the risks the sink name is sensitive to. The boolean is false when the catalog has no entry.
func (m *MethodInformation) Dangers(name string) (risk.Set, bool) {
	s, ok := m.dangerous[name]
	return s, ok
}

// Mitigations returns the risks removed by the function name. The boolean is false when the catalog has no entry.
func (m *MethodInformation) Mitigations(name string) (risk.Set, bool) {
	s, ok := m.mitigating[name]
	return s, ok
}
