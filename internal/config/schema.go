// Package config provides configuration loading and validation for uetest.yaml.
package config

import "time"

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "uetest.yaml"

// Config is the complete uetest configuration. Every field can also be set
// from the command line or the environment; those take precedence.
type Config struct {
	EnginePath   string       `yaml:"engine_path,omitempty"`
	Project      string       `yaml:"project,omitempty"`
	Editor       string       `yaml:"editor,omitempty"` // overrides the editor derived from EnginePath
	Workdir      string       `yaml:"workdir,omitempty"`
	ExtraArgs    []string     `yaml:"extra_args,omitempty"`
	Timeout      string       `yaml:"timeout,omitempty"` // Go duration, per invocation
	Malformed    string       `yaml:"malformed,omitempty"`
	TestList     string       `yaml:"test_list,omitempty"`
	TestListFile string       `yaml:"test_list_file,omitempty"`
	LogLevel     string       `yaml:"log_level,omitempty"`
	Report       ReportConfig `yaml:"report,omitempty"`
}

// ReportConfig configures where run results are written besides stdout.
type ReportConfig struct {
	File        string `yaml:"file,omitempty"`
	MetricsFile string `yaml:"metrics_file,omitempty"`
	Bucket      string `yaml:"bucket,omitempty"`
	Prefix      string `yaml:"prefix,omitempty"`
	Region      string `yaml:"region,omitempty"`
	// TraceFile receives one JSON document per span.
	TraceFile    string `yaml:"trace_file,omitempty"`
	OTLPEndpoint string `yaml:"otlp_endpoint,omitempty"`
}

// TimeoutDuration returns the parsed per-invocation timeout; zero means none.
// Validate has already rejected unparsable values.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Timeout)
	return d
}
