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
	"github.com/awslabs/ar-php-tools/analysis/phpast"
	"github.com/awslabs/ar-php-tools/analysis/risk"
)

// Result is the taint of an expression: the risks its value may carry, and the expression that best illustrates
// them.
//
// Results are only created by NoRisk and Unsafe. Once a Result has been returned by the analyzers, it may be shared
// (for example, stored for a variable and returned by every read of that variable) and must not be modified.
type Result struct {
	Risks risk.Set

	// Witness is the expression a finding points to. It may be nil.
	Witness phpast.Expr
}

// NoRisk returns a result without any risk.
func NoRisk(witness phpast.Expr) *Result {
	return &Result{Witness: witness}
}

// Unsafe returns a result carrying every risk.
func Unsafe(witness phpast.Expr) *Result {
	return &Result{Risks: risk.All(), Witness: witness}
}

// Merge returns a new result with the risks of first and second. The witness of second replaces the witness of
// first when it is not nil, and either second has strictly more risks than first or first has no witness.
// Merge is not commutative. A nil first is treated as NoRisk(nil); a nil second is ignored. The arguments are not
// modified.
func Merge(first, second *Result) *Result {
	merged := &Result{}
	if first != nil {
		*merged = *first
	}
	if second == nil {
		return merged
	}
	firstLen := merged.Risks.Len()
	merged.Risks = merged.Risks.Union(second.Risks)
	if second.Witness != nil && (second.Risks.Len() > firstLen || merged.Witness == nil) {
		merged.Witness = second.Witness
	}
	return merged
}

// AddRisks adds the risks s to r. It must only be called on a result that has not been shared yet.
func (r *Result) AddRisks(s risk.Set) {
	r.Risks = r.Risks.Union(s)
}

// RemoveRisks removes the risks s from r. It must only be called on a result that has not been shared yet.
func (r *Result) RemoveRisks(s risk.Set) {
	r.Risks = r.Risks.Without(s)
}

// withWitness returns a copy of r whose witness is w.
func (r *Result) withWitness(w phpast.Expr) *Result {
	return &Result{Risks: r.Risks, Witness: w}
}

func (r *Result) String() string {
	if r == nil {
		return "<nil>"
	}
	return r.Risks.String() + " via " + phpast.Sprint(r.Witness)
}
