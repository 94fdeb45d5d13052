// # internal/core/config/config.go
package config

import "runtime"

const (
	AnalysisClass     = "class"
	AnalysisNamespace = "namespace"
	AnalysisRecommend = "recommend"
)

// DefaultPath is the config file looked up when none is given explicitly.
const DefaultPath = "modfather.toml"

type Config struct {
	Analysis      Analysis      `toml:"analysis"`
	Exclude       Exclude       `toml:"exclude"`
	Output        Output        `toml:"output"`
	Observability Observability `toml:"observability"`
}

type Analysis struct {
	Type            string `toml:"type"`
	IncludeExternal bool   `toml:"include_external"`
	Workers         int    `toml:"workers"`

	// NamespaceSelfEdges keeps intra-namespace dependencies in namespace
	// graphs. Defaults to true.
	NamespaceSelfEdges *bool `toml:"namespace_self_edges"`
}

// Exclude holds glob patterns matched against directory and file base names.
type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Output struct {
	// Path is the output file; empty means stdout.
	Path      string `toml:"path"`
	Format    string `toml:"format"`
	GraphName string `toml:"graph_name"`
	CSVHeader *bool  `toml:"csv_header"`
}

type Observability struct {
	MetricsTextfile string  `toml:"metrics_textfile"`
	OTLPEndpoint    string  `toml:"otlp_endpoint"`
	ServiceName     string  `toml:"service_name"`
	SampleRate      float64 `toml:"sample_rate"`
}

func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// EffectiveFormat returns the configured output format or the default for
// the analysis type: text for recommend, dot otherwise.
func (c *Config) EffectiveFormat() string {
	if c.Output.Format != "" {
		return c.Output.Format
	}
	if c.Analysis.Type == AnalysisRecommend {
		return "text"
	}
	return "dot"
}

func (c *Config) WantsCSVHeader() bool {
	return c.Output.CSVHeader == nil || *c.Output.CSVHeader
}

func (c *Config) KeepsNamespaceSelfEdges() bool {
	return c.Analysis.NamespaceSelfEdges == nil || *c.Analysis.NamespaceSelfEdges
}

// DefaultWorkers is the analysis parallelism used when none is configured.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}
