// Package formats renders dependency graphs and modularization reports.
package formats

import (
	"fmt"
	"modfather/internal/core/errors"
	"modfather/internal/engine/graph"
	"modfather/internal/engine/modularity"
	"strings"
)

type Format string

const (
	FormatDOT  Format = "dot"
	FormatCSV  Format = "csv"
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// GraphFormats can render a dependency graph.
var GraphFormats = []Format{FormatDOT, FormatCSV, FormatYAML, FormatJSON}

// ReportFormats can render a modularization report.
var ReportFormats = []Format{FormatText, FormatYAML, FormatJSON}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatDOT, FormatCSV, FormatText, FormatYAML, FormatJSON:
		return f, nil
	}
	return "", errors.AddContext(
		errors.New(errors.CodeValidationError, fmt.Sprintf("unknown output format %q", s)),
		errors.CtxFormat, s,
	)
}

func supported(f Format, list []Format) bool {
	for _, candidate := range list {
		if candidate == f {
			return true
		}
	}
	return false
}

// RenderOptions tune graph output.
type RenderOptions struct {
	GraphName string
	CSVHeader bool
}

func RenderGraph(f Format, g *graph.Graph, opts RenderOptions) (string, error) {
	if !supported(f, GraphFormats) {
		return "", errors.AddContext(
			errors.New(errors.CodeNotSupported, "format cannot render a dependency graph"),
			errors.CtxFormat, string(f),
		)
	}
	switch f {
	case FormatDOT:
		return NewDOTGenerator(opts.GraphName).Generate(g)
	case FormatCSV:
		return NewCSVGenerator(opts.CSVHeader).Generate(g)
	}
	gen, err := NewStructuredGenerator(f)
	if err != nil {
		return "", err
	}
	return gen.GenerateGraph(opts.GraphName, g)
}

func RenderReport(f Format, report *modularity.Report) (string, error) {
	if !supported(f, ReportFormats) {
		return "", errors.AddContext(
			errors.New(errors.CodeNotSupported, "format cannot render a modularization report"),
			errors.CtxFormat, string(f),
		)
	}
	if f == FormatText {
		return NewTextGenerator().Generate(report)
	}
	gen, err := NewStructuredGenerator(f)
	if err != nil {
		return "", err
	}
	return gen.GenerateReport(report)
}
