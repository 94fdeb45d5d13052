package app

import (
	"fmt"
	"io"
	"modfather/internal/core/errors"
	"modfather/internal/engine/graph"
	"modfather/internal/engine/modularity"
	"modfather/internal/shared/util"
	"modfather/internal/ui/report/formats"
	"strings"
)

// render formats either the report (recommend runs) or the graph.
func (a *App) render(g *graph.Graph, report *modularity.Report) (string, formats.Format, error) {
	format, err := formats.ParseFormat(a.Config.EffectiveFormat())
	if err != nil {
		return "", "", err
	}

	var out string
	if report != nil {
		out, err = formats.RenderReport(format, report)
	} else {
		out, err = formats.RenderGraph(format, g, formats.RenderOptions{
			GraphName: a.Config.Output.GraphName,
			CSVHeader: a.Config.WantsCSVHeader(),
		})
	}
	if err != nil {
		return "", "", fmt.Errorf("render %s output: %w", format, err)
	}
	return out, format, nil
}

// emit writes rendered output to the configured path, or to Stdout.
func (a *App) emit(rendered string) (string, error) {
	path := a.Config.Output.Path
	if path == "" {
		if !strings.HasSuffix(rendered, "\n") {
			rendered += "\n"
		}
		if _, err := io.WriteString(a.Stdout, rendered); err != nil {
			return "", errors.AddContext(errors.Wrap(err, errors.CodeIO, "write output"), errors.CtxPath, "stdout")
		}
		return "", nil
	}
	if err := util.WriteFileAtomic(path, []byte(rendered), 0o644); err != nil {
		return "", errors.AddContext(errors.Wrap(err, errors.CodeIO, "write output"), errors.CtxPath, path)
	}
	return path, nil
}
