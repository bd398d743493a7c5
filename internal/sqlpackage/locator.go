package sqlpackage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shinji-kodama/sqlpackage-runner/internal/model"
)

const (
	// ToolFileName is the entry point of the SqlPackage .NET tool.
	ToolFileName = "sqlpackage.dll"

	// storeDir is where `dotnet tool install --tool-path` keeps the
	// package contents, relative to the tool path.
	storeDir = ".store"

	// packageID is the NuGet package id of SqlPackage, lower-cased the way
	// the tool store lays it out.
	packageID = "microsoft.sqlpackage"
)

// StoreRoot returns the directory that holds every installed version of the
// SqlPackage tool under toolDir.
func StoreRoot(toolDir string) string {
	return filepath.Join(toolDir, storeDir, packageID)
}

// Locate finds sqlpackage.dll below the tool store of toolDir.
//
// The store is walked in lexical order and the first match is returned. When
// several versions are installed no attempt is made to pick the newest one.
// Failures are model.CLIError values with ExitToolNotFound.
func Locate(toolDir string) (string, error) {
	root := StoreRoot(toolDir)
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return "", model.NewCLIError(model.ExitToolNotFound,
			fmt.Sprintf("SqlPackage not found in %s", toolDir))
	}

	var found string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped; another version may still be usable.
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return err
		}
		if !d.IsDir() && d.Name() == ToolFileName {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", model.WrapCLIError(model.ExitToolNotFound,
			fmt.Sprintf("cannot search tool store %s", root), err)
	}

	if found == "" {
		return "", model.NewCLIError(model.ExitToolNotFound,
			fmt.Sprintf("%s not found in tool store", ToolFileName))
	}
	return found, nil
}
