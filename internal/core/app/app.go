// Package app wires discovery, parsing, dependency extraction and output
// into a single analysis run.
package app

import (
	"fmt"
	"io"
	"modfather/internal/core/config"
	"modfather/internal/core/errors"
	"modfather/internal/core/ports"
	"modfather/internal/engine/parser"
	"os"

	"github.com/gobwas/glob"
)

type App struct {
	Config *config.Config
	Parser ports.CodeParser
	// Stdout receives rendered output when no output path is configured.
	Stdout io.Writer

	excludeDirs  []glob.Glob
	excludeFiles []glob.Glob
}

// Option customizes an App built by New.
type Option func(*App)

func WithParser(p ports.CodeParser) Option {
	return func(a *App) { a.Parser = p }
}

func WithStdout(w io.Writer) Option {
	return func(a *App) { a.Stdout = w }
}

func New(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New(errors.CodeValidationError, "config is required")
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	excludeDirs, err := compileGlobs(cfg.Exclude.Dirs, "exclude dir")
	if err != nil {
		return nil, err
	}
	excludeFiles, err := compileGlobs(cfg.Exclude.Files, "exclude file")
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:       cfg,
		Stdout:       os.Stdout,
		excludeDirs:  excludeDirs,
		excludeFiles: excludeFiles,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.Parser == nil {
		a.Parser = parser.NewParser()
	}
	return a, nil
}

func compileGlobs(patterns []string, label string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeValidationError, fmt.Sprintf("invalid %s pattern %q", label, p))
		}
		out = append(out, g)
	}
	return out, nil
}

// AnalysisService exposes the app through the driving port.
func (a *App) AnalysisService() ports.AnalysisService {
	return NewAnalysisService(a)
}
