package app

import (
	"context"
	"log/slog"
	"modfather/internal/core/errors"
	"modfather/internal/core/ports"
	"modfather/internal/engine/extract"
	"modfather/internal/shared/observability"
	"os"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// fileOutcome is what one worker produced for one file.
type fileOutcome struct {
	visitor *extract.Visitor
	warning *ports.FileWarning
}

// AnalyzeFiles reads, parses and visits files on up to Config.Analysis.Workers
// goroutines, each file with its own visitor. Visitors are merged into target
// in file order once every worker is done, so duplicate declarations resolve
// the same way as a sequential run. Unreadable and unparsable files produce
// warnings; a parse error still merges the partial tree. Only cancellation
// aborts the run.
func (a *App) AnalyzeFiles(ctx context.Context, files []string, target extract.Analyzer) (int, []ports.FileWarning, error) {
	outcomes := make([]fileOutcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Config.Analysis.Workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slog.Debug("analyzing", "index", i+1, "total", len(files), "path", path)
			outcomes[i] = a.analyzeFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, nil, errors.AddContext(err, errors.CtxOperation, "analyze_files")
	}

	analyzed := 0
	var warnings []ports.FileWarning
	for _, outcome := range outcomes {
		if outcome.warning != nil {
			warnings = append(warnings, *outcome.warning)
		}
		if outcome.visitor == nil {
			continue
		}
		target.Merge(outcome.visitor)
		analyzed++
	}
	return analyzed, warnings, nil
}

func (a *App) analyzeFile(path string) fileOutcome {
	shown := displayPath(path)

	content, err := os.ReadFile(path)
	if err == nil && !utf8.Valid(content) {
		err = errors.New(errors.CodeIO, "file is not valid UTF-8")
	}
	if err != nil {
		err = errors.AddContext(errors.Wrap(err, errors.CodeIO, "read file"), errors.CtxPath, shown)
		slog.Warn("failed to read file", "path", shown, "error", err)
		observability.FileWarningsTotal.WithLabelValues(observability.ReasonRead).Inc()
		return fileOutcome{warning: &ports.FileWarning{Path: shown, Reason: observability.ReasonRead, Err: err}}
	}

	start := time.Now()
	file, err := a.Parser.ParseFile(shown, content)
	observability.ParsingDuration.WithLabelValues("php").Observe(time.Since(start).Seconds())

	var outcome fileOutcome
	if err != nil {
		slog.Warn("failed to parse file", "path", shown, "error", err)
		observability.FileWarningsTotal.WithLabelValues(observability.ReasonParse).Inc()
		outcome.warning = &ports.FileWarning{Path: shown, Reason: observability.ReasonParse, Err: err}
	}
	if file == nil {
		return outcome
	}

	v := extract.NewVisitor()
	v.Visit(file, shown)
	observability.FilesAnalyzedTotal.Inc()
	outcome.visitor = v
	return outcome
}
