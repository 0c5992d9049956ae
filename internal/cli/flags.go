package cli

import (
	"github.com/urfave/cli/v2"

	"github.com/AndreyAkinshin/uetest/internal/config"
)

// EnvVarPrefix prefixes the environment variable of every flag.
const EnvVarPrefix = "UETEST"

// Flag names.
const (
	flagConfig       = "config"
	flagEnginePath   = "engine-path"
	flagProject      = "project"
	flagEditor       = "editor"
	flagWorkdir      = "workdir"
	flagExtraArg     = "extra-arg"
	flagTimeout      = "timeout"
	flagMalformed    = "malformed"
	flagTestList     = "test-list"
	flagTestListFile = "test-list-file"
	flagReportFile   = "report-file"
	flagMetricsFile  = "metrics-file"
	flagReportBucket = "report-bucket"
	flagReportPrefix = "report-prefix"
	flagReportRegion = "report-region"
	flagTraceFile    = "trace-file"
	flagOTLPEndpoint = "otlp-endpoint"
	flagLogLevel     = "log-level"
	flagQuiet        = "quiet"
	flagVerbose      = "verbose"
	flagJSON         = "json"
)

// envVars returns the UETEST_ variable for suffix followed by any extra
// names, such as the INPUT_ variables GitHub Actions sets for action inputs.
func envVars(suffix string, extra ...string) []string {
	return append([]string{EnvVarPrefix + "_" + suffix}, extra...)
}

// inputFlags configure where the test list comes from and how it is parsed.
// The plan command needs only these.
func inputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Value:   config.DefaultFile,
			EnvVars: envVars("CONFIG"),
			Usage:   "Path to the configuration file",
		},
		&cli.StringFlag{
			Name:    flagTestList,
			EnvVars: envVars("TEST_LIST", "INPUT_TESTLIST"),
			Usage:   "Tests to run, one comma-separated path per line (eg. 'Rendering,Shadows,BasicCast')",
		},
		&cli.StringFlag{
			Name:    flagTestListFile,
			EnvVars: envVars("TEST_LIST_FILE", "INPUT_TESTLISTFILE"),
			Usage:   "File holding the test list, read before --test-list",
		},
		&cli.StringFlag{
			Name:    flagMalformed,
			EnvVars: envVars("MALFORMED"),
			Usage:   "What to do with malformed test list lines: reject or skip",
		},
	}
}

// runFlags are the flags of the run command.
func runFlags() []cli.Flag {
	return append(inputFlags(),
		&cli.StringFlag{
			Name:    flagEnginePath,
			EnvVars: envVars("ENGINE_PATH", "INPUT_ENGINEPATH"),
			Usage:   "Unreal Engine installation directory",
		},
		&cli.StringFlag{
			Name:    flagProject,
			EnvVars: envVars("PROJECT", "INPUT_UPROJECTFILE"),
			Usage:   "Path to the .uproject file",
		},
		&cli.StringFlag{
			Name:    flagEditor,
			EnvVars: envVars("EDITOR"),
			Usage:   "Editor executable, overriding the one found under --engine-path",
		},
		&cli.StringFlag{
			Name:    flagWorkdir,
			EnvVars: envVars("WORKDIR"),
			Usage:   "Working directory of the editor; results are read from <workdir>/test_results (default: current directory)",
		},
		&cli.StringSliceFlag{
			Name:    flagExtraArg,
			EnvVars: envVars("EXTRA_ARGS"),
			Usage:   "Additional editor argument (repeatable)",
		},
		&cli.StringFlag{
			Name:    flagTimeout,
			EnvVars: envVars("TIMEOUT"),
			Usage:   "Limit for a single editor invocation (eg. '30m'); 0 disables it",
		},
		&cli.StringFlag{
			Name:    flagReportFile,
			EnvVars: envVars("REPORT_FILE"),
			Usage:   "Write the full JSON result to this file",
		},
		&cli.StringFlag{
			Name:    flagMetricsFile,
			EnvVars: envVars("METRICS_FILE"),
			Usage:   "Write Prometheus metrics in text format to this file",
		},
		&cli.StringFlag{
			Name:    flagReportBucket,
			EnvVars: envVars("REPORT_BUCKET"),
			Usage:   "Upload the JSON result to this S3 bucket",
		},
		&cli.StringFlag{
			Name:    flagReportPrefix,
			EnvVars: envVars("REPORT_PREFIX"),
			Usage:   "Key prefix for uploaded results",
		},
		&cli.StringFlag{
			Name:    flagReportRegion,
			EnvVars: envVars("REPORT_REGION"),
			Usage:   "AWS region of the report bucket",
		},
		&cli.StringFlag{
			Name:    flagTraceFile,
			EnvVars: envVars("TRACE_FILE"),
			Usage:   "Write OpenTelemetry spans of the run as JSON to this file",
		},
		&cli.StringFlag{
			Name:    flagOTLPEndpoint,
			EnvVars: envVars("OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"),
			Usage:   "Export OpenTelemetry spans over OTLP/gRPC to this endpoint (eg. 'http://localhost:4317')",
		},
		&cli.StringFlag{
			Name:    flagLogLevel,
			EnvVars: envVars("LOG_LEVEL"),
			Usage:   "Log level: debug, info, warn or error",
		},
		&cli.BoolFlag{
			Name:    flagQuiet,
			Aliases: []string{"q"},
			EnvVars: envVars("QUIET"),
			Usage:   "Print only failures and the final summary",
		},
		&cli.BoolFlag{
			Name:    flagVerbose,
			Aliases: []string{"v"},
			EnvVars: envVars("VERBOSE"),
			Usage:   "Stream editor output and log at debug level",
		},
	)
}
