// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/kraklabs/specgen/internal/contract"
	"github.com/kraklabs/specgen/pkg/classify"
	"github.com/kraklabs/specgen/pkg/extract"
	"github.com/kraklabs/specgen/pkg/intent"
	"github.com/kraklabs/specgen/pkg/scan"
)

// Options configures one pipeline run.
type Options struct {
	// Root is the directory to scan.
	Root string

	// ExtraRoots are additional directories scanned after Root, in order.
	// Their records append after the primary root's, so discovery order
	// stays deterministic across the whole run.
	ExtraRoots []string

	// Description is the free-text project description. Mandatory when
	// Classify is set; ignored otherwise.
	Description string

	// ReadmePath optionally points at a README; when empty, a conventional
	// README is discovered at Root. The README only augments intent mining,
	// it is never required.
	ReadmePath string

	// Classify enables the intent-mining and classification steps. The
	// extraction-only path (specgen scan) leaves it off.
	Classify bool

	// AuthMode and AuthWindow configure the endpoint auth detector.
	AuthMode   extract.AuthMode
	AuthWindow int

	// OnFile, when set, is called after each candidate file finishes
	// extraction. Used by the CLI for progress display.
	OnFile func(done, total int)
}

// UnitSummary aggregates the endpoints of one owning unit, in first-seen
// order. Methods holds the unique observed verbs; Paths keeps every
// endpoint path in discovery order, duplicates included.
type UnitSummary struct {
	Name          string
	Methods       []string
	Paths         []string
	EndpointCount int
}

// Result is the normalized model handed to the renderers. All slices
// preserve discovery order; owning-unit grouping is first-seen order,
// never alphabetical.
type Result struct {
	RootPath string

	Endpoints []extract.Endpoint
	Models    []extract.DataModelRecord
	Views     []extract.ViewRecord
	Services  []extract.ServiceRecord

	// Units lists the endpoint-owning units in first-seen order.
	Units []UnitSummary

	// ActorMappings is keyed by owning-unit name; nil when classification
	// was not requested. Every unit in Units has exactly one entry.
	ActorMappings map[string]classify.ActorMapping

	// Intent is the mined context; nil when classification was not requested.
	Intent *intent.Context

	// FilesExtracted counts candidates that were actually opened and parsed.
	FilesExtracted int

	// SkipReasons aggregates scan- and extract-level skips (reason -> count).
	SkipReasons map[string]int

	ScanDuration     time.Duration
	ExtractDuration  time.Duration
	MineDuration     time.Duration
	ClassifyDuration time.Duration
	TotalDuration    time.Duration
}

// SkippedFiles returns the total number of skipped entries across reasons.
func (r *Result) SkippedFiles() int {
	total := 0
	for _, n := range r.SkipReasons {
		total += n
	}
	return total
}

// Pipeline runs the scan → extract → mine → classify sequence. The run is
// single-threaded and batch-oriented; each file is processed to completion
// before the next begins, and the context is honored between steps.
type Pipeline struct {
	opts       Options
	logger     *slog.Logger
	scanner    *scan.Scanner
	extractor  *extract.Extractor
	miner      *intent.Miner
	classifier *classify.Classifier
}

// New creates a pipeline for the given options.
func New(opts Options, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.AuthMode == "" {
		opts.AuthMode = extract.DefaultAuthMode
	}

	detector := extract.NewAuthDetector(opts.AuthMode, opts.AuthWindow, logger)
	return &Pipeline{
		opts:       opts,
		logger:     logger,
		scanner:    scan.NewScanner(logger),
		extractor:  extract.NewExtractor(detector, logger),
		miner:      intent.NewMiner(logger),
		classifier: classify.NewClassifier(logger),
	}
}

// Run executes the pipeline. Fatal errors (missing or unusable description,
// unusable scan root) abort before any result is produced; single-file
// failures only shrink the result set and are reported via SkipReasons.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	pipelineMetrics.init()
	startTime := time.Now()
	p.logger.Info("pipeline.start", "root", p.opts.Root, "classify", p.opts.Classify)

	// Step 1: mine intent. Runs first so a missing description aborts
	// before any extraction work happens.
	var intentCtx *intent.Context
	var mineDuration time.Duration
	if p.opts.Classify {
		mineStart := time.Now()
		mined, err := p.mineIntent()
		if err != nil {
			return nil, err
		}
		intentCtx = mined
		mineDuration = time.Since(mineStart)
		pipelineMetrics.mineDuration.Observe(mineDuration.Seconds())
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 2: one full directory walk per root, primary root first.
	scanStart := time.Now()
	var scanResults []*scan.Result
	for _, root := range append([]string{p.opts.Root}, p.opts.ExtraRoots...) {
		scanResult, err := p.scanner.Scan(root)
		if err != nil {
			return nil, fmt.Errorf("scan source root: %w", err)
		}
		scanResults = append(scanResults, scanResult)
		pipelineMetrics.filesScanned.Add(float64(scanResult.FileCount))
	}
	scanDuration := time.Since(scanStart)
	pipelineMetrics.scanDuration.Observe(scanDuration.Seconds())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 3: per-file extraction, sequential, discovery order.
	extractStart := time.Now()
	result := &Result{
		RootPath:    scanResults[0].RootPath,
		SkipReasons: make(map[string]int),
	}
	for _, scanResult := range scanResults {
		for reason, n := range scanResult.SkipReasons {
			result.SkipReasons[reason] += n
		}
	}
	p.extractAll(ctx, scanResults, result)
	result.ExtractDuration = time.Since(extractStart)
	pipelineMetrics.extractDuration.Observe(result.ExtractDuration.Seconds())

	result.Units = groupUnits(result.Endpoints)

	p.logger.Info("pipeline.extract.complete",
		"endpoints", len(result.Endpoints),
		"models", len(result.Models),
		"views", len(result.Views),
		"services", len(result.Services),
		"units", len(result.Units),
		"skipped", result.SkippedFiles(),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 4: one full classification pass.
	if p.opts.Classify {
		classifyStart := time.Now()
		result.Intent = intentCtx
		result.ActorMappings = p.classifyUnits(result.Units, intentCtx)
		result.ClassifyDuration = time.Since(classifyStart)
		pipelineMetrics.classifyDuration.Observe(result.ClassifyDuration.Seconds())

		if err := validateMappings(result); err != nil {
			return nil, err
		}
	}

	result.ScanDuration = scanDuration
	result.MineDuration = mineDuration
	result.TotalDuration = time.Since(startTime)
	pipelineMetrics.totalDuration.Observe(result.TotalDuration.Seconds())

	p.logger.Info("pipeline.complete",
		"root", result.RootPath,
		"endpoints", len(result.Endpoints),
		"units", len(result.Units),
		"duration_ms", result.TotalDuration.Milliseconds(),
	)
	return result, nil
}

// mineIntent resolves the description and README inputs and mines the
// intent context. Both failure modes here are configuration errors.
func (p *Pipeline) mineIntent() (*intent.Context, error) {
	if strings.TrimSpace(p.opts.Description) == "" {
		return nil, intent.ErrEmptyDescription
	}
	if v := contract.ValidateDescription(p.opts.Description); !v.OK {
		return nil, fmt.Errorf("invalid description: %s", v.Message)
	}

	readmePath := p.opts.ReadmePath
	if readmePath == "" {
		readmePath = scan.FindReadme(p.opts.Root)
	}
	readme, found := scan.ReadReadme(readmePath)
	if found {
		p.logger.Debug("pipeline.readme.loaded", "path", readmePath, "bytes", len(readme))
	}

	return p.miner.Mine(p.opts.Description, readme)
}

// extractAll walks the candidate lists kind by kind, roots in scan order
// within each kind. Unreadable candidates are warned about, counted, and
// skipped; they never abort the run.
func (p *Pipeline) extractAll(ctx context.Context, scanResults []*scan.Result, result *Result) {
	total := 0
	for _, scanResult := range scanResults {
		total += scanResult.FileCount
	}
	done := 0
	advance := func() {
		done++
		if p.opts.OnFile != nil {
			p.opts.OnFile(done, total)
		}
	}

	for _, scanResult := range scanResults {
		for _, file := range scanResult.CandidatesFor(scan.KindEndpoints) {
			if ctx.Err() != nil {
				return
			}
			src, err := p.extractor.Load(file)
			if err != nil {
				p.logger.Warn("pipeline.extract.skip", "path", file.Path, "err", err)
				result.SkipReasons["unreadable"]++
				advance()
				continue
			}
			result.FilesExtracted++
			endpoints := p.extractor.ExtractEndpoints(src)
			result.Endpoints = append(result.Endpoints, endpoints...)
			pipelineMetrics.endpointsExtracted.Add(float64(len(endpoints)))
			advance()
		}
	}

	for _, scanResult := range scanResults {
		for _, file := range scanResult.CandidatesFor(scan.KindModels) {
			if ctx.Err() != nil {
				return
			}
			src, err := p.extractor.Load(file)
			if err != nil {
				p.logger.Warn("pipeline.extract.skip", "path", file.Path, "err", err)
				result.SkipReasons["unreadable"]++
				advance()
				continue
			}
			result.FilesExtracted++
			if record := p.extractor.ExtractModel(src); record != nil {
				result.Models = append(result.Models, *record)
				pipelineMetrics.modelsExtracted.Inc()
			}
			advance()
		}
	}

	// Views and services are recorded by existence; no file is opened.
	for _, scanResult := range scanResults {
		for _, file := range scanResult.CandidatesFor(scan.KindViews) {
			if ctx.Err() != nil {
				return
			}
			result.Views = append(result.Views, p.extractor.ExtractView(file))
			pipelineMetrics.viewsExtracted.Inc()
			advance()
		}
	}
	for _, scanResult := range scanResults {
		for _, file := range scanResult.CandidatesFor(scan.KindServices) {
			if ctx.Err() != nil {
				return
			}
			result.Services = append(result.Services, p.extractor.ExtractService(file))
			pipelineMetrics.servicesExtracted.Inc()
			advance()
		}
	}

	for _, n := range result.SkipReasons {
		pipelineMetrics.filesSkipped.Add(float64(n))
	}
}

// classifyUnits produces one mapping per owning unit.
func (p *Pipeline) classifyUnits(units []UnitSummary, intentCtx *intent.Context) map[string]classify.ActorMapping {
	signals := make([]classify.UnitSignals, 0, len(units))
	for _, unit := range units {
		signals = append(signals, classify.UnitSignals{
			Name:          unit.Name,
			Methods:       unit.Methods,
			Paths:         unit.Paths,
			EndpointCount: unit.EndpointCount,
		})
	}

	mappings := p.classifier.ClassifyAll(signals, intentCtx)
	for _, mapping := range mappings {
		pipelineMetrics.unitsClassified.WithLabelValues(string(mapping.OutcomeFocus)).Inc()
	}
	return mappings
}

// groupUnits builds the first-seen-ordered unit summaries from the endpoint
// list. Duplicate endpoint tuples are preserved upstream; here they count
// toward the unit like any other endpoint.
func groupUnits(endpoints []extract.Endpoint) []UnitSummary {
	index := make(map[string]int)
	var units []UnitSummary

	for _, ep := range endpoints {
		i, ok := index[ep.OwningUnitName]
		if !ok {
			i = len(units)
			index[ep.OwningUnitName] = i
			units = append(units, UnitSummary{Name: ep.OwningUnitName})
		}
		unit := &units[i]
		unit.EndpointCount++
		unit.Paths = append(unit.Paths, ep.Path)
		if !containsString(unit.Methods, ep.HTTPMethod) {
			unit.Methods = append(unit.Methods, ep.HTTPMethod)
		}
	}
	return units
}

// validateMappings enforces the rendering precondition: every endpoint's
// owning unit has exactly one actor mapping. A violation is a bug in the
// grouping or classification pass, not a user error.
func validateMappings(result *Result) error {
	for _, ep := range result.Endpoints {
		if _, ok := result.ActorMappings[ep.OwningUnitName]; !ok {
			return fmt.Errorf("internal: endpoint %s %s has no actor mapping for unit %q",
				ep.HTTPMethod, ep.Path, ep.OwningUnitName)
		}
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
