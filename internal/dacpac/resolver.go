package dacpac

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shinji-kodama/sqlpackage-runner/internal/model"
)

// Extension is the file extension of SqlPackage package files.
const Extension = ".dacpac"

// Resolve returns the absolute path of the package file to deploy.
//
// A non-blank override is used as the file name (relative to workDir unless it
// is absolute). Otherwise workDir must contain exactly one *.dacpac file.
// Every failure is a model.CLIError with ExitResolutionFailed.
func Resolve(workDir, override string) (string, error) {
	name := strings.TrimSpace(override)
	if name == "" {
		var err error
		name, err = discover(workDir)
		if err != nil {
			return "", err
		}
	}

	path := JoinWorkDir(workDir, name)
	if !IsFile(path) {
		return "", model.NewCLIError(model.ExitResolutionFailed,
			fmt.Sprintf("DACPAC not found: %s", path))
	}
	return path, nil
}

// Candidates lists the names of the *.dacpac files directly inside workDir,
// sorted by name. Directories are ignored even if their name matches.
func Candidates(workDir string) ([]string, error) {
	entries, err := os.ReadDir(workDir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Extension) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// discover picks the single package file in workDir.
func discover(workDir string) (string, error) {
	names, err := Candidates(workDir)
	if err != nil {
		return "", model.WrapCLIError(model.ExitResolutionFailed,
			fmt.Sprintf("cannot read work directory %s", workDir), err)
	}

	switch len(names) {
	case 1:
		return names[0], nil
	case 0:
		return "", model.NewCLIError(model.ExitResolutionFailed,
			fmt.Sprintf("no %s files found in %s", Extension, workDir))
	default:
		return "", model.NewCLIError(model.ExitResolutionFailed,
			fmt.Sprintf("multiple %s files found; set DACPAC_NAME to choose one. Found: %s",
				Extension, strings.Join(names, ", ")))
	}
}

// JoinWorkDir resolves name against workDir. Absolute names are returned
// unchanged.
func JoinWorkDir(workDir, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(workDir, name)
}

// IsFile reports whether path exists and is not a directory.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
