// Package cli implements the cobra command for sqlpackage-runner.
//
// The runner has no flags of its own: cobra flag parsing is disabled and every
// argument is forwarded to SqlPackage. Settings come from the environment
// (see package config). This file defines the root command, the exit-code
// translation and error output.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/sqlpackage-runner/internal/config"
	"github.com/shinji-kodama/sqlpackage-runner/internal/model"
)

// jsonErrors controls whether failures are printed as JSON objects.
// It is set from the loaded configuration before the launch starts.
var jsonErrors bool

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package and logged at debug level.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sqlpackage-runner [sqlpackage arguments...]",
		Short: "Deploy the .dacpac in the work directory with SqlPackage",
		Long: `sqlpackage-runner finds the single .dacpac file in the work directory
(or the one named by DACPAC_NAME), locates the installed SqlPackage tool and
runs it, forwarding SqlPackage's exit code.

/Action:Publish and /SourceFile:<dacpac> are added unless given explicitly.
All arguments are passed to SqlPackage unchanged.

Examples:
  sqlpackage-runner /TargetConnectionString:"Server=db;Database=app;..."
  sqlpackage-runner /Action:Script /Profile:dev.publish.xml /OutputPath:/work/deploy.sql`,

		// SqlPackage arguments look like flags (/Action:x, -Action:x), so cobra
		// must not try to parse them.
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,

		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			jsonErrors = cfg.JSONErrors
			setupLogging(cfg, cmd.ErrOrStderr())

			log.WithFields(log.Fields{
				"version": Version,
				"commit":  Commit,
				"date":    Date,
			}).Debug("sqlpackage-runner starting")
			if cfg.File != "" {
				log.WithField("file", cfg.File).Debug("loaded config file")
			}

			return runLaunch(cmd, cfg, args)
		},
	}

	return rootCmd
}

// Execute runs the root command and returns the process exit code.
// main passes the result to os.Exit.
//
// CLIError values carry their own exit codes and are printed to stderr.
// ToolExitError values forward SqlPackage's code silently because the tool
// has already reported the failure. Other errors exit with code 1.
func Execute(rootCmd *cobra.Command) int {
	err := rootCmd.Execute()
	if err == nil {
		return int(model.ExitSuccess)
	}

	stderr := rootCmd.ErrOrStderr()

	var toolErr *model.ToolExitError
	if errors.As(err, &toolErr) {
		return int(toolErr.Code)
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(stderr, cliErr.Message, cliErr.Err)
		return int(cliErr.Code)
	}

	printError(stderr, err.Error(), nil)
	return int(model.ExitGeneralError)
}

// printError writes an error message in text or JSON form.
func printError(w io.Writer, message string, underlying error) {
	if jsonErrors {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// setupLogging configures the package-level logrus logger.
// An unknown level falls back to warn.
func setupLogging(cfg *config.Config, w io.Writer) {
	log.SetOutput(w)

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.WarnLevel
	}
	log.SetLevel(level)

	if cfg.LogFormat == config.LogFormatJSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	}

	if err != nil {
		log.WithField("log_level", cfg.LogLevel).Warn("unknown log level, using warn")
	}
}
