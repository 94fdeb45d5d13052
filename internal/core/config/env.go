package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: MODFATHER_[SECTION]_[KEY] (e.g., MODFATHER_ANALYSIS_WORKERS).
func ApplyEnvOverrides(cfg *Config) {
	// Analysis
	setEnvString(&cfg.Analysis.Type, "MODFATHER_ANALYSIS_TYPE")
	setEnvBool(&cfg.Analysis.IncludeExternal, "MODFATHER_ANALYSIS_INCLUDE_EXTERNAL")
	setEnvInt(&cfg.Analysis.Workers, "MODFATHER_ANALYSIS_WORKERS")

	// Output
	setEnvString(&cfg.Output.Path, "MODFATHER_OUTPUT_PATH")
	setEnvString(&cfg.Output.Format, "MODFATHER_OUTPUT_FORMAT")
	setEnvString(&cfg.Output.GraphName, "MODFATHER_OUTPUT_GRAPH_NAME")

	// Observability
	setEnvString(&cfg.Observability.MetricsTextfile, "MODFATHER_OBSERVABILITY_METRICS_TEXTFILE")
	setEnvString(&cfg.Observability.OTLPEndpoint, "MODFATHER_OBSERVABILITY_OTLP_ENDPOINT")
	setEnvFloat64(&cfg.Observability.SampleRate, "MODFATHER_OBSERVABILITY_SAMPLE_RATE")

	normalize(cfg)
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = val
	}
}

func setEnvInt(target *int, key string) {
	setEnvParsed(target, key, strconv.Atoi)
}

func setEnvBool(target *bool, key string) {
	setEnvParsed(target, key, func(v string) (bool, error) {
		return strconv.ParseBool(strings.ToLower(v))
	})
}

func setEnvFloat64(target *float64, key string) {
	setEnvParsed(target, key, func(v string) (float64, error) {
		return strconv.ParseFloat(v, 64)
	})
}

// setEnvParsed leaves target untouched when the variable does not parse.
func setEnvParsed[T any](target *T, key string, parse func(string) (T, error)) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	parsed, err := parse(strings.TrimSpace(val))
	if err != nil {
		slog.Warn("ignoring invalid env override", "key", key, "value", val, "error", err)
		return
	}
	slog.Debug("applying env override", "key", key, "value", val)
	*target = parsed
}
