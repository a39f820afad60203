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
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsPipeline holds Prometheus metrics for the generation pipeline.
type metricsPipeline struct {
	once sync.Once

	// Extraction
	filesScanned       prometheus.Counter
	filesSkipped       prometheus.Counter
	endpointsExtracted prometheus.Counter
	modelsExtracted    prometheus.Counter
	viewsExtracted     prometheus.Counter
	servicesExtracted  prometheus.Counter

	// Classification, labeled by outcome focus
	unitsClassified *prometheus.CounterVec

	// Durations
	scanDuration     prometheus.Histogram
	extractDuration  prometheus.Histogram
	mineDuration     prometheus.Histogram
	classifyDuration prometheus.Histogram
	totalDuration    prometheus.Histogram
}

var pipelineMetrics metricsPipeline

func (m *metricsPipeline) init() {
	m.once.Do(func() {
		m.filesScanned = prometheus.NewCounter(prometheus.CounterOpts{Name: "specgen_files_scanned_total", Help: "Candidate source files discovered by the scanner"})
		m.filesSkipped = prometheus.NewCounter(prometheus.CounterOpts{Name: "specgen_files_skipped_total", Help: "Files skipped during scan or extraction"})
		m.endpointsExtracted = prometheus.NewCounter(prometheus.CounterOpts{Name: "specgen_endpoints_extracted_total", Help: "HTTP endpoints extracted"})
		m.modelsExtracted = prometheus.NewCounter(prometheus.CounterOpts{Name: "specgen_models_extracted_total", Help: "Data models extracted"})
		m.viewsExtracted = prometheus.NewCounter(prometheus.CounterOpts{Name: "specgen_views_extracted_total", Help: "View files recorded"})
		m.servicesExtracted = prometheus.NewCounter(prometheus.CounterOpts{Name: "specgen_services_extracted_total", Help: "Service files recorded"})

		m.unitsClassified = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "specgen_units_classified_total", Help: "Owning units classified, by outcome focus"}, []string{"focus"})

		buckets := []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
		m.scanDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "specgen_scan_seconds", Help: "Duration of the directory walk", Buckets: buckets})
		m.extractDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "specgen_extract_seconds", Help: "Duration of pattern extraction", Buckets: buckets})
		m.mineDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "specgen_mine_seconds", Help: "Duration of intent mining", Buckets: buckets})
		m.classifyDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "specgen_classify_seconds", Help: "Duration of actor classification", Buckets: buckets})
		m.totalDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "specgen_total_seconds", Help: "Total pipeline duration", Buckets: buckets})

		prometheus.MustRegister(
			m.filesScanned, m.filesSkipped,
			m.endpointsExtracted, m.modelsExtracted, m.viewsExtracted, m.servicesExtracted,
			m.unitsClassified,
			m.scanDuration, m.extractDuration, m.mineDuration, m.classifyDuration, m.totalDuration,
		)
	})
}
