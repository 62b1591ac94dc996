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

	"github.com/awslabs/ar-php-tools/analysis/phpast"
)

// CoverageError is returned when the analysis meets a node it does not know how to analyze. A run that hits a
// coverage error is not trustworthy: skipping the node could hide a sink.
type CoverageError struct {
	// Kind is the kind tag of the node
	Kind string

	// Location is the location of the node, or the last known location before it
	Location phpast.Location
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("unknown node kind %q at %s", e.Kind, e.Location)
}
