package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "modfather_parsing_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	FilesAnalyzedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "modfather_files_analyzed_total",
		Help: "Total number of source files parsed and visited.",
	})

	FileWarningsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modfather_file_warnings_total",
		Help: "Total number of files that produced a warning, by reason.",
	}, []string{"reason"})

	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "modfather_graph_nodes_total",
		Help: "Total number of nodes in the dependency graph.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "modfather_graph_edges_total",
		Help: "Total number of edges in the dependency graph.",
	})

	CyclesDetected = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "modfather_cycles_detected",
		Help: "Namespace cycles found by the last recommend run, by severity.",
	}, []string{"severity"})

	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "modfather_analysis_seconds",
		Help:    "Time spent on high-level analysis tasks.",
		Buckets: prometheus.DefBuckets,
	}, []string{"task"})
)

// Warning reasons.
const (
	ReasonRead  = "read"
	ReasonParse = "parse"
)

// WriteTextfile dumps the default registry in the node-exporter textfile
// format. An empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
