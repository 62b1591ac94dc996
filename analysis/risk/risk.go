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

// Package risk defines the closed set of vulnerability categories tracked by the analyses, and sets of them.
package risk

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"strings"
)

// Risk is a vulnerability category.
type Risk uint8

const (
	// SQLInjection is the injection of attacker data into a database query
	SQLInjection Risk = iota
	// CommandInjection is the injection of attacker data into an operating system command
	CommandInjection
	// FileInclusion is the inclusion of a file whose name is attacker controlled
	FileInclusion
	// CrossSiteScripting is the output of attacker data into a web page
	CrossSiteScripting
	// CodeEvaluation is the evaluation of attacker data as PHP code
	CodeEvaluation

	numRisks
)

var names = [numRisks]string{
	SQLInjection:       "SQL_INJECTION",
	CommandInjection:   "COMMAND_INJECTION",
	FileInclusion:      "FILE_INCLUSION",
	CrossSiteScripting: "XSS",
	CodeEvaluation:     "CODE_EVALUATION",
}

func (r Risk) String() string {
	if r < numRisks {
		return names[r]
	}
	return fmt.Sprintf("Risk(%d)", uint8(r))
}

// Parse returns the risk named s. Names are matched ignoring case and surrounding space.
func Parse(s string) (Risk, error) {
	s = strings.TrimSpace(s)
	for i, name := range names {
		if strings.EqualFold(name, s) {
			return Risk(i), nil
		}
	}
	return 0, fmt.Errorf("unknown risk %q", s)
}

// ParseList parses a comma separated list of risk names. Empty elements are skipped.
func ParseList(s string) (Set, error) {
	var set Set
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		r, err := Parse(part)
		if err != nil {
			return 0, err
		}
		set = set.Add(r)
	}
	return set, nil
}

// Set is a set of risks. The zero value is the empty set.
type Set uint8

// All returns the set of all risks.
func All() Set {
	return Set(1<<numRisks - 1)
}

// NewSet returns the set containing the risks given.
func NewSet(risks ...Risk) Set {
	var s Set
	for _, r := range risks {
		s = s.Add(r)
	}
	return s
}

// Add returns s with r added.
func (s Set) Add(r Risk) Set {
	return s | 1<<r
}

// Union returns the risks in s or t.
func (s Set) Union(t Set) Set {
	return s | t
}

// Without returns the risks in s that are not in t.
func (s Set) Without(t Set) Set {
	return s &^ t
}

// Intersect returns the risks in both s and t.
func (s Set) Intersect(t Set) Set {
	return s & t
}

// Has returns true when r is in s.
func (s Set) Has(r Risk) bool {
	return s&(1<<r) != 0
}

// Len returns the number of risks in s.
func (s Set) Len() int {
	return bits.OnesCount8(uint8(s))
}

// IsEmpty returns true for the empty set.
func (s Set) IsEmpty() bool {
	return s == 0
}

// Risks returns the members of s in declaration order.
func (s Set) Risks() []Risk {
	var res []Risk
	for r := Risk(0); r < numRisks; r++ {
		if s.Has(r) {
			res = append(res, r)
		}
	}
	return res
}

// Strings returns the names of the members of s in declaration order.
func (s Set) Strings() []string {
	var res []string
	for _, r := range s.Risks() {
		res = append(res, r.String())
	}
	return res
}

func (s Set) String() string {
	return "[" + strings.Join(s.Strings(), ", ") + "]"
}

// MarshalJSON encodes the set as a list of risk names.
func (s Set) MarshalJSON() ([]byte, error) {
	list := s.Strings()
	if list == nil {
		list = []string{}
	}
	return json.Marshal(list)
}
