// Package dacpac resolves which package file the runner deploys.
//
// The file is named explicitly (DACPAC_NAME) or discovered as the only
// *.dacpac file in the working directory. The package never opens the file;
// reading the dacpac format is left to SqlPackage.
package dacpac
