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


package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/awslabs/ar-php-tools/analysis"
	"github.com/awslabs/ar-php-tools/analysis/config"
	"github.com/awslabs/ar-php-tools/analysis/taint"
	"github.com/awslabs/ar-php-tools/internal/formatutil"
)

// AnalyzePaths collects the tree files designated by paths and runs the analysis on them with cfg.
func AnalyzePaths(ctx context.Context, cfg *config.Config, tool string, paths []string) (taint.AnalysisResult, error) {
	logger := config.NewLogGroup(cfg)
	logger.Infof("%s", formatutil.Faint("phpscan "+tool+" - "+analysis.Version))

	files, err := CollectFiles(cfg, paths)
	if err != nil {
		return taint.AnalysisResult{}, err
	}
	logger.Infof("%s", formatutil.Faint(fmt.Sprintf("Reading %d tree files", len(files))))

	start := time.Now()
	res, err := taint.AnalyzeFiles(ctx, cfg, logger, files)
	if err != nil {
		return res, fmt.Errorf("%s analysis failed: %w", tool, err)
	}
	if len(res.Errors) > 0 {
		logger.Warnf("%d tree file(s) could not be decoded and were skipped", len(res.Errors))
	}
	logger.Infof("Analysis took %3.4f s", time.Since(start).Seconds())
	return res, nil
}
