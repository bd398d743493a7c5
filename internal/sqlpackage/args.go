package sqlpackage

import (
	"fmt"
	"strings"

	"github.com/shinji-kodama/sqlpackage-runner/internal/dacpac"
	"github.com/shinji-kodama/sqlpackage-runner/internal/model"
)

// Flag is a SqlPackage parameter the runner inspects before forwarding the
// caller's arguments. SqlPackage accepts each parameter under a long and a
// short name, with either a "/" or "-" prefix, case-insensitively.
type Flag struct {
	Name  string
	Short string
}

var (
	// FlagAction selects the operation (Publish, Script, Extract, ...).
	FlagAction = Flag{Name: "Action", Short: "a"}

	// FlagSourceFile names the package file to deploy.
	FlagSourceFile = Flag{Name: "SourceFile", Short: "sf"}

	// FlagProfile names a publish profile, relative to the working directory.
	FlagProfile = Flag{Name: "Profile", Short: "pr"}
)

// flagPrefixes are the two prefix conventions SqlPackage accepts.
var flagPrefixes = []string{"/", "-"}

// Value reports whether arg sets f and returns the text after the first ':'.
func (f Flag) Value(arg string) (string, bool) {
	for _, prefix := range flagPrefixes {
		for _, name := range []string{f.Name, f.Short} {
			head := prefix + name + ":"
			if len(arg) >= len(head) && strings.EqualFold(arg[:len(head)], head) {
				return arg[len(head):], true
			}
		}
	}
	return "", false
}

// Find returns the value of the first argument in args that sets f.
func (f Flag) Find(args []string) (string, bool) {
	for _, arg := range args {
		if v, ok := f.Value(arg); ok {
			return v, true
		}
	}
	return "", false
}

// ArgsOptions are the resolved inputs to BuildArgs.
type ArgsOptions struct {
	// ToolPath is the sqlpackage.dll to run; it becomes the first argument.
	ToolPath string

	// PackagePath is used for the default /SourceFile.
	PackagePath string

	// WorkDir is the base for relative publish profile paths.
	WorkDir string

	// DefaultAction is used when the caller does not pass /Action.
	DefaultAction string
}

// BuildArgs assembles the argument vector for the dotnet host.
//
// The result starts with the tool path, then /Action and /SourceFile defaults
// for whichever of the two the caller did not set, then every caller argument
// verbatim and in order. If the caller passes /Profile, the profile file must
// exist below WorkDir; it is checked but not rewritten. The returned string is
// the validated profile path, or empty when no profile was given.
func BuildArgs(opts ArgsOptions, userArgs []string) ([]string, string, error) {
	args := make([]string, 0, len(userArgs)+3)
	args = append(args, opts.ToolPath)

	if _, ok := FlagAction.Find(userArgs); !ok {
		args = append(args, fmt.Sprintf("/%s:%s", FlagAction.Name, opts.DefaultAction))
	}

	if _, ok := FlagSourceFile.Find(userArgs); !ok {
		args = append(args, fmt.Sprintf("/%s:%s", FlagSourceFile.Name, opts.PackagePath))
	}

	var profilePath string
	if profile, ok := FlagProfile.Find(userArgs); ok {
		profilePath = dacpac.JoinWorkDir(opts.WorkDir, profile)
		if !dacpac.IsFile(profilePath) {
			return nil, "", model.NewCLIError(model.ExitResolutionFailed,
				fmt.Sprintf("publish profile not found: %s", profilePath))
		}
	}

	args = append(args, userArgs...)
	return args, profilePath, nil
}
