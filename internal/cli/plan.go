package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/sqlpackage-runner/internal/config"
	"github.com/shinji-kodama/sqlpackage-runner/internal/model"
)

// printPlan writes a dry-run plan in the requested format.
func printPlan(w io.Writer, plan *model.Plan, format string) error {
	switch format {
	case config.OutputJSON:
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to encode plan", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(plan); err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to encode plan", err)
		}
		return enc.Close()

	default:
		printPlanText(w, plan)
		return nil
	}
}

// printPlanText writes the plan as a short summary followed by the command,
// one argument per line.
func printPlanText(w io.Writer, plan *model.Plan) {
	fmt.Fprintln(w, "Dry run: sqlpackage would be started as")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-9s %s\n", "work dir:", plan.WorkDir)
	fmt.Fprintf(w, "  %-9s %s\n", "package:", plan.PackagePath)
	fmt.Fprintf(w, "  %-9s %s\n", "tool:", plan.ToolPath)
	if plan.ProfilePath != "" {
		fmt.Fprintf(w, "  %-9s %s\n", "profile:", plan.ProfilePath)
	}
	fmt.Fprintln(w)

	for _, arg := range plan.Command() {
		fmt.Fprintf(w, "    %s\n", arg)
	}
}
