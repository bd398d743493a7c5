// Package config loads the runner's settings.
//
// Settings come from three layers, later layers winning:
//
//  1. built-in defaults matching the container image layout (/work, /app/sqlpkg)
//  2. an optional file named by SQLPACKAGE_RUNNER_CONFIG (.json, .jsonc, .yaml, .yml)
//  3. SQLPACKAGE_RUNNER_* environment variables, plus the bare DACPAC_NAME
//
// Command-line arguments are never read here; they all belong to SqlPackage.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/sqlpackage-runner/internal/model"
)

const (
	// EnvPrefix is prepended to every upper-cased key when reading the environment.
	EnvPrefix = "SQLPACKAGE_RUNNER"

	// EnvConfigFile names the optional configuration file.
	EnvConfigFile = EnvPrefix + "_CONFIG"

	// EnvDacpacName is the package file override understood by the container image.
	EnvDacpacName = "DACPAC_NAME"
)

// Output formats for dry runs.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds the resolved settings for one invocation.
type Config struct {
	// WorkDir contains the .dacpac file(s) and publish profiles.
	WorkDir string `mapstructure:"work_dir"`

	// ToolDir is the --tool-path SqlPackage was installed into.
	ToolDir string `mapstructure:"tool_dir"`

	// Host is the executable that runs sqlpackage.dll.
	Host string `mapstructure:"host"`

	// DacpacName overrides package file discovery when non-blank.
	DacpacName string `mapstructure:"dacpac_name"`

	// DefaultAction is injected as /Action when the caller does not set one.
	DefaultAction string `mapstructure:"default_action"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// DryRun prints the resolved invocation instead of running it.
	DryRun bool `mapstructure:"dry_run"`

	// Output is the dry-run format: text, json or yaml.
	Output string `mapstructure:"output"`

	// JSONErrors makes the CLI print failures as JSON objects on stderr.
	JSONErrors bool `mapstructure:"json_errors"`

	// File is the configuration file that was read, if any.
	File string `mapstructure:"-"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		WorkDir:       "/work",
		ToolDir:       "/app/sqlpkg",
		Host:          "dotnet",
		DefaultAction: "Publish",
		LogLevel:      "warn",
		LogFormat:     LogFormatText,
		Output:        OutputText,
	}
}

// Load builds a Config from defaults, the optional config file and the
// environment. Any failure is a model.CLIError.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("work_dir", defaults.WorkDir)
	v.SetDefault("tool_dir", defaults.ToolDir)
	v.SetDefault("host", defaults.Host)
	v.SetDefault("dacpac_name", defaults.DacpacName)
	v.SetDefault("default_action", defaults.DefaultAction)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("dry_run", defaults.DryRun)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("json_errors", defaults.JSONErrors)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// The prefixed name wins over the bare one when both are set.
	if err := v.BindEnv("dacpac_name", EnvPrefix+"_DACPAC_NAME", EnvDacpacName); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to bind environment", err)
	}

	path := os.Getenv(EnvConfigFile)
	if path != "" {
		if err := readFile(v, path); err != nil {
			return nil, model.WrapCLIError(model.ExitResolutionFailed,
				fmt.Sprintf("failed to load config file %s", path), err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, model.WrapCLIError(model.ExitResolutionFailed, "failed to parse config", err)
	}
	cfg.File = path

	if err := cfg.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitResolutionFailed, "invalid config", err)
	}
	return cfg, nil
}

// readFile merges a config file into v. JSON files may contain comments and
// trailing commas, like devcontainer.json and launchSettings.json do.
func readFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".jsonc":
		v.SetConfigType("json")
		data = jsonc.ToJSON(data)
	case ".yaml", ".yml":
		v.SetConfigType("yaml")
	default:
		return fmt.Errorf("unsupported config file extension %q (valid: .json, .jsonc, .yaml, .yml)", ext)
	}

	return v.ReadConfig(bytes.NewReader(data))
}

// Validate checks field values that viper cannot.
func (c *Config) Validate() error {
	required := []struct {
		key, value string
	}{
		{"work_dir", c.WorkDir},
		{"tool_dir", c.ToolDir},
		{"host", c.Host},
		{"default_action", c.DefaultAction},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%s must not be empty", r.key)
		}
	}

	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("invalid output %q (valid: text, json, yaml)", c.Output)
	}

	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log_format %q (valid: text, json)", c.LogFormat)
	}
	return nil
}
