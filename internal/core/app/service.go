package app

import (
	"context"
	"fmt"
	"log/slog"
	"modfather/internal/core/config"
	"modfather/internal/core/errors"
	"modfather/internal/core/ports"
	"modfather/internal/engine/extract"
	"modfather/internal/engine/modularity"
	"modfather/internal/shared/observability"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type analysisService struct {
	app *App
}

var _ ports.AnalysisService = (*analysisService)(nil)

func NewAnalysisService(app *App) ports.AnalysisService {
	return &analysisService{app: app}
}

// Analyze runs discovery, parallel extraction, graph building, the optional
// modularity report and output for one request.
func (s *analysisService) Analyze(ctx context.Context, req ports.AnalysisRequest) (ports.AnalysisResult, error) {
	if s.app == nil || s.app.Config == nil {
		return ports.AnalysisResult{}, fmt.Errorf("app is required")
	}
	cfg := s.app.Config
	start := time.Now()
	runID := uuid.NewString()
	logger := slog.With("run_id", runID)

	ctx, span := observability.Tracer.Start(ctx, "analysisService.Analyze", trace.WithAttributes(
		attribute.String("modfather.run_id", runID),
		attribute.String("modfather.analysis_type", cfg.Analysis.Type),
	))
	defer span.End()

	result := ports.AnalysisResult{RunID: runID, Type: cfg.Analysis.Type}

	var files []string
	err := s.phase(ctx, "discover", func(context.Context) error {
		var err error
		files, err = s.app.Discover(req.Paths)
		return err
	})
	if err != nil {
		observability.RecordError(span, err)
		return result, err
	}
	result.FilesDiscovered = len(files)
	logger.Info("found PHP files", "count", len(files))

	analyzer := s.app.newAnalyzer()
	err = s.phase(ctx, "analyze", func(ctx context.Context) error {
		var err error
		result.FilesAnalyzed, result.Warnings, err = s.app.AnalyzeFiles(ctx, files, analyzer)
		return err
	})
	if err != nil {
		observability.RecordError(span, err)
		return result, err
	}

	_ = s.phase(ctx, "build_graph", func(context.Context) error {
		// recommend always works on internal namespaces only
		includeExternal := cfg.Analysis.IncludeExternal && cfg.Analysis.Type != config.AnalysisRecommend
		result.Graph = analyzer.BuildGraph(includeExternal)
		return nil
	})
	observability.GraphNodes.Set(float64(result.Graph.NodeCount()))
	observability.GraphEdges.Set(float64(result.Graph.EdgeCount()))
	logger.Debug("graph statistics", "nodes", result.Graph.NodeCount(), "edges", result.Graph.EdgeCount())

	if cfg.Analysis.Type == config.AnalysisRecommend {
		_ = s.phase(ctx, "recommend", func(context.Context) error {
			result.Report = modularity.NewRecommender(result.Graph).GenerateReport()
			return nil
		})
		recordCycles(result.Report)
		logger.Debug("modularity report", "cycles", len(result.Report.Cycles), "modules", len(result.Report.ModuleSuggestions))
	}

	err = s.phase(ctx, "output", func(context.Context) error {
		rendered, format, err := s.app.render(result.Graph, result.Report)
		if err != nil {
			return err
		}
		result.Rendered, result.Format = rendered, string(format)
		result.OutputPath, err = s.app.emit(rendered)
		return err
	})
	if err != nil {
		observability.RecordError(span, err)
		return result, errors.AddContext(err, errors.CtxFormat, cfg.EffectiveFormat())
	}
	if result.OutputPath != "" {
		logger.Info("output written", "path", result.OutputPath, "format", result.Format)
	}

	result.Duration = time.Since(start)
	span.SetAttributes(
		attribute.Int("modfather.files", result.FilesAnalyzed),
		attribute.Int("modfather.warnings", len(result.Warnings)),
		attribute.Int("modfather.graph.nodes", result.Graph.NodeCount()),
		attribute.Int("modfather.graph.edges", result.Graph.EdgeCount()),
	)
	return result, nil
}

// phase runs fn inside a child span and records its duration.
func (s *analysisService) phase(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := observability.Tracer.Start(ctx, "analysis."+name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	observability.AnalysisDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	observability.RecordError(span, err)
	return err
}

func (a *App) newAnalyzer() extract.Analyzer {
	if a.Config.Analysis.Type == config.AnalysisClass {
		return extract.NewClassAnalyzer()
	}
	ns := extract.NewNamespaceAnalyzer()
	ns.DropSelfEdges = !a.Config.KeepsNamespaceSelfEdges()
	return ns
}

func recordCycles(report *modularity.Report) {
	counts := map[modularity.Severity]int{
		modularity.SeverityLow:    0,
		modularity.SeverityMedium: 0,
		modularity.SeverityHigh:   0,
	}
	for _, c := range report.Cycles {
		counts[c.Severity]++
	}
	for severity, n := range counts {
		observability.CyclesDetected.WithLabelValues(string(severity)).Set(float64(n))
	}
}
