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
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/awslabs/ar-php-tools/analysis/config"
	"github.com/awslabs/ar-php-tools/analysis/deadcode"
	"github.com/awslabs/ar-php-tools/analysis/phpast"
	"golang.org/x/sync/errgroup"
)

// ErrNoRisks is returned when the configuration ignores every risk.
var ErrNoRisks = errors.New("no risks to analyze")

// AnalysisResult is the outcome of an analysis run over one or more programs.
type AnalysisResult struct {
	// Findings contains the findings of all programs, in program order, then in source order
	Findings []Finding

	// Unused contains the unused declarations, when dead code detection is enabled
	Unused []deadcode.Declaration

	// Includes contains the include sites of all programs, in program order, then in source order
	Includes []IncludeSite

	// Errors contains the files that could not be decoded. Those files are skipped.
	Errors []error
}

// A Session holds the collectors of an analysis run. Sessions analyzing disjoint sets of programs can run
// concurrently and be merged afterwards.
type Session struct {
	Logger  *config.LogGroup
	Results *ResultCollector
	Usage   *deadcode.Collector
}

// NewSession returns a session with empty collectors, configured by cfg.
func NewSession(cfg *config.Config, logger *config.LogGroup) (*Session, error) {
	interest := cfg.InterestingRisks()
	if interest.IsEmpty() {
		return nil, ErrNoRisks
	}
	methods, err := MethodInformationFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid method catalog: %w", err)
	}
	return &Session{
		Logger:  logger,
		Results: NewResultCollector(logger, methods, interest),
		Usage:   deadcode.NewCollector(logger, cfg.UnusedDeclarationPaths),
	}, nil
}

// Fork returns a session with the configuration of s and empty collectors.
func (s *Session) Fork() *Session {
	return &Session{
		Logger:  s.Logger,
		Results: s.Results.fork(),
		Usage:   s.Usage.Fork(),
	}
}

// AnalyzeProgram analyzes prog and records its findings, include sites, declarations and usages in s.
func (s *Session) AnalyzeProgram(prog *phpast.Program) error {
	return NewProgramAnalyzer(s.Logger, s.Results, s.Usage).AnalyzeProgram(prog)
}

// Merge adds the content of other after the content of s.
func (s *Session) Merge(other *Session) {
	if other == nil {
		return
	}
	s.Results.Merge(other.Results)
	s.Usage.Merge(other.Usage)
}

// Result returns the findings and include sites collected so far, and runs the unused declaration analysis
// when it is enabled.
func (s *Session) Result() AnalysisResult {
	res := AnalysisResult{
		Findings: s.Results.Findings(),
		Includes: s.Results.Includes(),
	}
	if s.Usage.Enabled() {
		res.Unused = s.Usage.AnalyzeUsage()
	}
	return res
}

// Analyze runs the analysis on programs, in order. Analysis stops at the first program containing a node the
// analysis does not know, and the *CoverageError is returned with the partial result.
func Analyze(cfg *config.Config, logger *config.LogGroup, programs []*phpast.Program) (AnalysisResult, error) {
	s, err := NewSession(cfg, logger)
	if err != nil {
		return AnalysisResult{}, err
	}
	for _, prog := range programs {
		if err := s.AnalyzeProgram(prog); err != nil {
			return s.Result(), fmt.Errorf("%s: %w", prog.File, err)
		}
	}
	return s.Result(), nil
}

// shard is the outcome of the analysis of one file
type shard struct {
	session   *Session
	decodeErr error
}

// AnalyzeFiles decodes and analyzes the syntax tree files, using cfg.Parallelism goroutines (the number of CPUs
// when cfg.Parallelism <= 0). Each file is analyzed in its own session, and the sessions are merged in the order of
// files, so the result does not depend on scheduling.
//
// Files that cannot be decoded are logged and skipped; their errors are listed in AnalysisResult.Errors. A file
// containing a node the analysis does not know aborts the run: the files not yet analyzed are cancelled and the
// *CoverageError is returned with an empty result.
func AnalyzeFiles(ctx context.Context, cfg *config.Config, logger *config.LogGroup,
	files []string) (AnalysisResult, error) {
	root, err := NewSession(cfg, logger)
	if err != nil {
		return AnalysisResult{}, err
	}
	numRoutines := cfg.Parallelism
	if numRoutines <= 0 {
		numRoutines = runtime.NumCPU()
	}

	start := time.Now()
	logger.Infof("Analyzing %d files with %d routines ...", len(files), numRoutines)
	shards := make([]shard, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(numRoutines)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			prog, err := phpast.DecodeFile(file)
			if err != nil {
				logger.Errorf("Skipping %s: %s", file, err)
				shards[i].decodeErr = err
				return nil
			}
			session := root.Fork()
			if err := session.AnalyzeProgram(prog); err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			shards[i].session = session
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return AnalysisResult{}, err
	}

	var decodeErrs []error
	for _, sh := range shards {
		if sh.decodeErr != nil {
			decodeErrs = append(decodeErrs, sh.decodeErr)
			continue
		}
		root.Merge(sh.session)
	}
	res := root.Result()
	res.Errors = decodeErrs
	logger.Infof("Analysis done (%.2f s): %d findings.", time.Since(start).Seconds(), len(res.Findings))
	return res, nil
}
