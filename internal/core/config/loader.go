package config

import (
	stderrors "errors"
	"io/fs"
	"modfather/internal/core/errors"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeIO, "read config"), errors.CtxPath, path)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeValidationError, "decode config"), errors.CtxPath, path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, errors.AddContext(
			errors.New(errors.CodeValidationError, "unknown config keys: "+strings.Join(keys, ", ")),
			errors.CtxPath, path,
		)
	}

	applyDefaults(&cfg)
	normalize(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, errors.AddContext(err, errors.CtxPath, path)
	}
	return &cfg, nil
}

// LoadOrDefault loads path. When path is the default location and no file
// exists there, the built-in defaults are returned instead.
func LoadOrDefault(path string) (*Config, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultPath
	}
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && stderrors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return nil, err
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Analysis.Type) == "" {
		cfg.Analysis.Type = AnalysisClass
	}
	if cfg.Analysis.Workers == 0 {
		cfg.Analysis.Workers = DefaultWorkers()
	}
	if cfg.Analysis.NamespaceSelfEdges == nil {
		enabled := true
		cfg.Analysis.NamespaceSelfEdges = &enabled
	}

	if cfg.Exclude.Dirs == nil {
		cfg.Exclude.Dirs = []string{"vendor", ".git", "node_modules"}
	}

	if strings.TrimSpace(cfg.Output.GraphName) == "" {
		cfg.Output.GraphName = "php_dependencies"
	}
	if cfg.Output.CSVHeader == nil {
		enabled := true
		cfg.Output.CSVHeader = &enabled
	}

	if strings.TrimSpace(cfg.Observability.ServiceName) == "" {
		cfg.Observability.ServiceName = "modfather"
	}
	if cfg.Observability.SampleRate == 0 {
		cfg.Observability.SampleRate = 1.0
	}
}

func normalize(cfg *Config) {
	cfg.Analysis.Type = strings.ToLower(strings.TrimSpace(cfg.Analysis.Type))
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	cfg.Output.Path = strings.TrimSpace(cfg.Output.Path)
	cfg.Observability.OTLPEndpoint = strings.TrimSpace(cfg.Observability.OTLPEndpoint)
	cfg.Observability.MetricsTextfile = strings.TrimSpace(cfg.Observability.MetricsTextfile)
	cfg.Exclude.Dirs = trimPatterns(cfg.Exclude.Dirs)
	cfg.Exclude.Files = trimPatterns(cfg.Exclude.Files)
}

func trimPatterns(patterns []string) []string {
	if patterns == nil {
		return nil
	}
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
