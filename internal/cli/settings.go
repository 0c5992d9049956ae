package cli

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/AndreyAkinshin/uetest/internal/config"
	"github.com/AndreyAkinshin/uetest/internal/engine"
	uerrors "github.com/AndreyAkinshin/uetest/internal/errors"
	"github.com/AndreyAkinshin/uetest/internal/testset"
)

// loadSettings reads the configuration file and overlays every flag that
// was set on the command line or through the environment. Defaults are
// applied last.
func loadSettings(c *cli.Context) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.IsSet(flagConfig) {
		cfg, err = config.Load(c.String(flagConfig))
	} else {
		cfg, err = config.LoadOptional(c.String(flagConfig))
	}
	if err != nil {
		return nil, err
	}

	overrides := []struct {
		flag string
		dst  *string
	}{
		{flagEnginePath, &cfg.EnginePath},
		{flagProject, &cfg.Project},
		{flagEditor, &cfg.Editor},
		{flagWorkdir, &cfg.Workdir},
		{flagTimeout, &cfg.Timeout},
		{flagMalformed, &cfg.Malformed},
		{flagTestList, &cfg.TestList},
		{flagTestListFile, &cfg.TestListFile},
		{flagLogLevel, &cfg.LogLevel},
		{flagReportFile, &cfg.Report.File},
		{flagMetricsFile, &cfg.Report.MetricsFile},
		{flagReportBucket, &cfg.Report.Bucket},
		{flagReportPrefix, &cfg.Report.Prefix},
		{flagReportRegion, &cfg.Report.Region},
		{flagTraceFile, &cfg.Report.TraceFile},
		{flagOTLPEndpoint, &cfg.Report.OTLPEndpoint},
	}
	for _, o := range overrides {
		if c.IsSet(o.flag) {
			*o.dst = c.String(o.flag)
		}
	}
	if c.IsSet(flagExtraArg) {
		cfg.ExtraArgs = c.StringSlice(flagExtraArg)
	}

	if err := config.ApplyDefaults(cfg); err != nil {
		return nil, uerrors.Environmentf("cannot determine working directory: %v", err)
	}
	return cfg, nil
}

// buildTree joins the test list file and the inline list and parses them.
func buildTree(cfg *config.Config) (*testset.Tree, []testset.Diagnostic, error) {
	policy, ok := testset.ParseMalformedPolicy(cfg.Malformed)
	if !ok {
		return nil, nil, uerrors.Configf("malformed: unknown policy %q", cfg.Malformed)
	}

	opts := testset.BuildOptions{Malformed: policy}
	if cfg.TestListFile != "" {
		return testset.BuildFromFile(cfg.TestListFile, opts, cfg.TestList)
	}
	return testset.Build(cfg.TestList, opts)
}

// resolveEditor returns the editor executable for cfg and checks that it exists.
func resolveEditor(cfg *config.Config, goos string) (string, error) {
	editor := cfg.Editor
	if editor == "" {
		var err error
		editor, err = engine.EditorPath(cfg.EnginePath, goos)
		if err != nil {
			return "", err
		}
	}
	if _, err := os.Stat(editor); err != nil {
		return "", uerrors.Environmentf("editor not found: %s", editor)
	}
	return editor, nil
}

// resolveProject returns the absolute path of the project file.
func resolveProject(cfg *config.Config) (string, error) {
	project, err := filepath.Abs(cfg.Project)
	if err != nil {
		return "", uerrors.Environmentf("project file %s: %v", cfg.Project, err)
	}
	if _, err := os.Stat(project); err != nil {
		return "", uerrors.Environmentf("project file not found: %s", project)
	}
	return project, nil
}
