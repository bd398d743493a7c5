package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/sqlpackage-runner/internal/config"
	"github.com/shinji-kodama/sqlpackage-runner/internal/model"
)

func samplePlan() *model.Plan {
	return &model.Plan{
		Host:        "dotnet",
		Args:        []string{"/app/sqlpkg/sqlpackage.dll", "/Action:Publish", "/SourceFile:/work/a.dacpac", "/Profile:dev.publish.xml"},
		WorkDir:     "/work",
		PackagePath: "/work/a.dacpac",
		ToolPath:    "/app/sqlpkg/sqlpackage.dll",
		ProfilePath: "/work/dev.publish.xml",
	}
}

func TestPrintPlan_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printPlan(&buf, samplePlan(), config.OutputJSON))

	var got model.Plan
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *samplePlan(), got)
	assert.Contains(t, buf.String(), `"packagePath": "/work/a.dacpac"`)
}

func TestPrintPlan_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printPlan(&buf, samplePlan(), config.OutputYAML))

	var got model.Plan
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *samplePlan(), got)
	assert.Contains(t, buf.String(), "host: dotnet\n")
}

// TestPrintPlan_Text verifies the summary lines and that the command is
// printed host first, one argument per line.
func TestPrintPlan_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printPlan(&buf, samplePlan(), config.OutputText))

	out := buf.String()
	assert.Contains(t, out, "  package:  /work/a.dacpac\n")
	assert.Contains(t, out, "  profile:  /work/dev.publish.xml\n")
	assert.Contains(t, out, "    dotnet\n    /app/sqlpkg/sqlpackage.dll\n    /Action:Publish\n")
}

func TestPrintPlan_TextWithoutProfile(t *testing.T) {
	plan := samplePlan()
	plan.ProfilePath = ""

	var buf bytes.Buffer
	require.NoError(t, printPlan(&buf, plan, config.OutputText))
	assert.NotContains(t, buf.String(), "profile:")
}

// TestExecute_DryRun verifies that a dry run performs every check, prints the
// plan and does not start the tool.
func TestExecute_DryRun(t *testing.T) {
	env := setupTestEnv(t, "a.dacpac")
	t.Setenv("SQLPACKAGE_RUNNER_DRY_RUN", "true")
	t.Setenv("SQLPACKAGE_RUNNER_OUTPUT", "json")
	t.Setenv("FAKE_EXIT", "9")

	code, stdout, stderr := execute(t, "/TargetServerName:db")
	assert.Equal(t, 0, code, "stderr: %s", stderr)

	var plan model.Plan
	require.NoError(t, json.Unmarshal([]byte(stdout), &plan))
	assert.Equal(t, "sh", plan.Host)
	assert.Equal(t, env.toolPath, plan.ToolPath)
	assert.Equal(t, filepath.Join(env.workDir, "a.dacpac"), plan.PackagePath)
	assert.Equal(t, []string{
		env.toolPath,
		"/Action:Publish",
		"/SourceFile:" + filepath.Join(env.workDir, "a.dacpac"),
		"/TargetServerName:db",
	}, plan.Args)
}

func TestExecute_DryRunStillValidates(t *testing.T) {
	setupTestEnv(t, "a.dacpac")
	t.Setenv("SQLPACKAGE_RUNNER_DRY_RUN", "true")

	code, stdout, _ := execute(t, "-Profile:absent.xml")
	assert.Equal(t, int(model.ExitResolutionFailed), code)
	assert.Empty(t, stdout)
}
