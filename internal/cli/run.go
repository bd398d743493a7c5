package cli

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/sqlpackage-runner/internal/config"
	"github.com/shinji-kodama/sqlpackage-runner/internal/dacpac"
	"github.com/shinji-kodama/sqlpackage-runner/internal/model"
	"github.com/shinji-kodama/sqlpackage-runner/internal/sqlpackage"
)

// runLaunch resolves the invocation and either prints it (dry run) or runs
// SqlPackage. A non-zero tool exit code is returned as a model.ToolExitError.
func runLaunch(cmd *cobra.Command, cfg *config.Config, args []string) error {
	plan, err := resolvePlan(cfg, args)
	if err != nil {
		return err
	}

	if cfg.DryRun {
		return printPlan(cmd.OutOrStdout(), plan, cfg.Output)
	}

	runner := &sqlpackage.Runner{
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}

	log.WithField("command", plan.Command()).Debug("starting sqlpackage")
	code, err := runner.Run(cmd.Context(), plan.Host, plan.Args)
	if err != nil {
		return err
	}

	log.WithField("exit_code", code).Debug("sqlpackage finished")
	if code != int(model.ExitSuccess) {
		return &model.ToolExitError{Code: model.ExitCode(code)}
	}
	return nil
}

// resolvePlan performs every check that precedes the launch: package file,
// tool location, argument defaults and publish profile.
func resolvePlan(cfg *config.Config, args []string) (*model.Plan, error) {
	log.WithFields(log.Fields{
		"work_dir":    cfg.WorkDir,
		"dacpac_name": cfg.DacpacName,
	}).Debug("resolving package file")

	packagePath, err := dacpac.Resolve(cfg.WorkDir, cfg.DacpacName)
	if err != nil {
		return nil, err
	}
	log.WithField("package", packagePath).Debug("resolved package file")

	toolPath, err := sqlpackage.Locate(cfg.ToolDir)
	if err != nil {
		return nil, err
	}
	log.WithField("tool", toolPath).Debug("located sqlpackage")

	finalArgs, profilePath, err := sqlpackage.BuildArgs(sqlpackage.ArgsOptions{
		ToolPath:      toolPath,
		PackagePath:   packagePath,
		WorkDir:       cfg.WorkDir,
		DefaultAction: cfg.DefaultAction,
	}, args)
	if err != nil {
		return nil, err
	}
	if profilePath != "" {
		log.WithField("profile", profilePath).Debug("validated publish profile")
	}

	return &model.Plan{
		Host:        cfg.Host,
		Args:        finalArgs,
		WorkDir:     cfg.WorkDir,
		PackagePath: packagePath,
		ToolPath:    toolPath,
		ProfilePath: profilePath,
	}, nil
}
