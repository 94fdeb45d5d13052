package ports

import (
	"context"
	"modfather/internal/engine/ast"
	"modfather/internal/engine/graph"
	"modfather/internal/engine/modularity"
	"time"
)

// CodeParser abstracts source parsing. Implementations may return a partial
// file together with an error; callers decide whether to use it.
type CodeParser interface {
	ParseFile(path string, content []byte) (*ast.File, error)
}

// AnalysisRequest names the files and directories to analyze.
type AnalysisRequest struct {
	Paths []string
}

// FileWarning records a file that could not be read or parsed cleanly.
type FileWarning struct {
	Path   string
	Reason string
	Err    error
}

// AnalysisResult summarizes a completed analysis run.
type AnalysisResult struct {
	RunID           string
	Type            string
	FilesDiscovered int
	FilesAnalyzed   int
	Warnings        []FileWarning
	Graph           *graph.Graph
	// Report is set for recommend runs only.
	Report *modularity.Report
	// Rendered is the formatted output; OutputPath is empty when it went to
	// the configured writer instead of a file.
	Rendered   string
	Format     string
	OutputPath string
	Duration   time.Duration
}

// AnalysisService is the driving port used by the CLI.
type AnalysisService interface {
	Analyze(ctx context.Context, req AnalysisRequest) (AnalysisResult, error)
}
