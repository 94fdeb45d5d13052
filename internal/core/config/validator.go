package config

import (
	"fmt"
	"modfather/internal/core/errors"
	"strings"

	"github.com/gobwas/glob"
)

var (
	graphFormats  = []string{"dot", "csv", "yaml", "json"}
	reportFormats = []string{"text", "yaml", "json"}
)

// Validate checks cfg after defaults and overrides have been applied. The
// first failing section is reported as a VALIDATION_ERROR.
func Validate(cfg *Config) error {
	for _, check := range []func(*Config) error{
		validateAnalysis,
		validateExclude,
		validateOutput,
		validateObservability,
	} {
		if err := check(cfg); err != nil {
			return errors.Wrap(err, errors.CodeValidationError, "invalid config")
		}
	}
	return nil
}

func validateAnalysis(cfg *Config) error {
	switch cfg.Analysis.Type {
	case AnalysisClass, AnalysisNamespace, AnalysisRecommend:
	default:
		return fmt.Errorf("analysis.type must be one of: class, namespace, recommend; got %q", cfg.Analysis.Type)
	}
	if cfg.Analysis.Workers < 1 {
		return fmt.Errorf("analysis.workers must be >= 1, got %d", cfg.Analysis.Workers)
	}
	return nil
}

func validateExclude(cfg *Config) error {
	for i, pattern := range cfg.Exclude.Dirs {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("exclude.dirs[%d] %q is not a valid glob: %w", i, pattern, err)
		}
	}
	for i, pattern := range cfg.Exclude.Files {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("exclude.files[%d] %q is not a valid glob: %w", i, pattern, err)
		}
	}
	return nil
}

func validateOutput(cfg *Config) error {
	if strings.TrimSpace(cfg.Output.GraphName) == "" {
		return fmt.Errorf("output.graph_name must not be empty")
	}

	format := cfg.EffectiveFormat()
	allowed := graphFormats
	if cfg.Analysis.Type == AnalysisRecommend {
		allowed = reportFormats
	}
	for _, f := range allowed {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("output.format %q is not available for analysis.type %q; use one of: %s",
		format, cfg.Analysis.Type, strings.Join(allowed, ", "))
}

func validateObservability(cfg *Config) error {
	if cfg.Observability.SampleRate < 0 || cfg.Observability.SampleRate > 1 {
		return fmt.Errorf("observability.sample_rate must be within [0, 1], got %v", cfg.Observability.SampleRate)
	}
	if strings.TrimSpace(cfg.Observability.ServiceName) == "" {
		return fmt.Errorf("observability.service_name must not be empty")
	}
	return nil
}
