// # internal/core/config/config_test.go
package config

import (
	"modfather/internal/core/errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modfather.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	content := `
[analysis]
type = "Namespace"
include_external = true
workers = 3
namespace_self_edges = false

[exclude]
dirs = ["vendor", "build*"]
files = ["*Test.php", " "]

[output]
path = "out/deps.csv"
format = "CSV"
graph_name = "deps"
csv_header = false

[observability]
metrics_textfile = "metrics.prom"
otlp_endpoint = "localhost:4317"
sample_rate = 0.5
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Analysis.Type != AnalysisNamespace {
		t.Errorf("expected namespace analysis, got %q", cfg.Analysis.Type)
	}
	if !cfg.Analysis.IncludeExternal {
		t.Error("expected include_external to be set")
	}
	if cfg.KeepsNamespaceSelfEdges() {
		t.Error("expected namespace self edges to be disabled")
	}
	if cfg.Analysis.Workers != 3 {
		t.Errorf("expected 3 workers, got %d", cfg.Analysis.Workers)
	}
	if len(cfg.Exclude.Dirs) != 2 || cfg.Exclude.Dirs[1] != "build*" {
		t.Errorf("unexpected exclude dirs: %v", cfg.Exclude.Dirs)
	}
	if len(cfg.Exclude.Files) != 1 {
		t.Errorf("expected blank patterns to be dropped, got %v", cfg.Exclude.Files)
	}
	if cfg.EffectiveFormat() != "csv" {
		t.Errorf("expected csv format, got %q", cfg.EffectiveFormat())
	}
	if cfg.WantsCSVHeader() {
		t.Error("expected csv header to be disabled")
	}
	if cfg.Output.GraphName != "deps" || cfg.Output.Path != "out/deps.csv" {
		t.Errorf("unexpected output section: %+v", cfg.Output)
	}
	if cfg.Observability.ServiceName != "modfather" {
		t.Errorf("expected default service name, got %q", cfg.Observability.ServiceName)
	}
	if cfg.Observability.SampleRate != 0.5 {
		t.Errorf("expected sample rate 0.5, got %v", cfg.Observability.SampleRate)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Analysis.Type != AnalysisClass {
		t.Errorf("expected class analysis, got %q", cfg.Analysis.Type)
	}
	if cfg.Analysis.Workers != runtime.GOMAXPROCS(0) {
		t.Errorf("expected GOMAXPROCS workers, got %d", cfg.Analysis.Workers)
	}
	if cfg.Output.GraphName != "php_dependencies" {
		t.Errorf("unexpected graph name %q", cfg.Output.GraphName)
	}
	if !cfg.WantsCSVHeader() {
		t.Error("expected csv header by default")
	}
	if !cfg.KeepsNamespaceSelfEdges() {
		t.Error("expected namespace self edges by default")
	}
	if strings.Join(cfg.Exclude.Dirs, ",") != "vendor,.git,node_modules" {
		t.Errorf("unexpected default excludes: %v", cfg.Exclude.Dirs)
	}
	if cfg.EffectiveFormat() != "dot" {
		t.Errorf("expected dot for class analysis, got %q", cfg.EffectiveFormat())
	}

	cfg.Analysis.Type = AnalysisRecommend
	if cfg.EffectiveFormat() != "text" {
		t.Errorf("expected text for recommend, got %q", cfg.EffectiveFormat())
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_EmptyExcludeOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[exclude]\ndirs = []\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Exclude.Dirs) != 0 {
		t.Errorf("expected explicit empty dirs to be kept, got %v", cfg.Exclude.Dirs)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		code    errors.ErrorCode
		substr  string
	}{
		{name: "Syntax", content: "[analysis\n", code: errors.CodeValidationError, substr: "decode config"},
		{name: "UnknownKey", content: "[analysis]\nmode = \"x\"\n", code: errors.CodeValidationError, substr: "analysis.mode"},
		{name: "BadType", content: "[analysis]\ntype = \"file\"\n", code: errors.CodeValidationError, substr: "analysis.type"},
		{name: "BadWorkers", content: "[analysis]\nworkers = -2\n", code: errors.CodeValidationError, substr: "analysis.workers"},
		{name: "BadGlob", content: "[exclude]\nfiles = [\"[a\"]\n", code: errors.CodeValidationError, substr: "exclude.files[0]"},
		{name: "ReportFormatForGraph", content: "[output]\nformat = \"text\"\n", code: errors.CodeValidationError, substr: "output.format"},
		{name: "GraphFormatForReport", content: "[analysis]\ntype = \"recommend\"\n[output]\nformat = \"dot\"\n", code: errors.CodeValidationError, substr: "output.format"},
		{name: "SampleRate", content: "[observability]\nsample_rate = 2.0\n", code: errors.CodeValidationError, substr: "sample_rate"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsCode(err, tc.code) {
				t.Errorf("expected code %s, got %v", tc.code, err)
			}
			if !strings.Contains(err.Error(), tc.substr) {
				t.Errorf("expected error to mention %q, got %v", tc.substr, err)
			}
			if !strings.Contains(err.Error(), "path="+path) {
				t.Errorf("expected path context, got %v", err)
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("expected missing default config to be tolerated, got %v", err)
	}
	if cfg.Analysis.Type != AnalysisClass {
		t.Errorf("expected defaults, got %+v", cfg.Analysis)
	}

	if _, err := LoadOrDefault(filepath.Join(dir, "missing.toml")); !errors.IsCode(err, errors.CodeIO) {
		t.Errorf("expected IO error for an explicit missing file, got %v", err)
	}

	if err := os.WriteFile(DefaultPath, []byte("[analysis]\ntype = \"recommend\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if cfg.Analysis.Type != AnalysisRecommend {
		t.Errorf("expected the default file to be read, got %q", cfg.Analysis.Type)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("MODFATHER_ANALYSIS_TYPE", " Recommend ")
	t.Setenv("MODFATHER_ANALYSIS_WORKERS", "7")
	t.Setenv("MODFATHER_ANALYSIS_INCLUDE_EXTERNAL", "TRUE")
	t.Setenv("MODFATHER_OUTPUT_FORMAT", "json")
	t.Setenv("MODFATHER_OBSERVABILITY_SAMPLE_RATE", "not-a-number")

	cfg := DefaultConfig()
	ApplyEnvOverrides(cfg)

	if cfg.Analysis.Type != AnalysisRecommend {
		t.Errorf("expected normalized type override, got %q", cfg.Analysis.Type)
	}
	if cfg.Analysis.Workers != 7 || !cfg.Analysis.IncludeExternal {
		t.Errorf("unexpected analysis overrides: %+v", cfg.Analysis)
	}
	if cfg.EffectiveFormat() != "json" {
		t.Errorf("expected json, got %q", cfg.EffectiveFormat())
	}
	if cfg.Observability.SampleRate != 1.0 {
		t.Errorf("expected invalid float to be ignored, got %v", cfg.Observability.SampleRate)
	}
}
