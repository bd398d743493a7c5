// Package sqlpackage locates and runs the SqlPackage tool.
//
// SqlPackage is installed as a .NET tool, so its entry point is a
// sqlpackage.dll somewhere below <tooldir>/.store/microsoft.sqlpackage and it
// is started through the dotnet host:
//
//	dotnet <tool>/sqlpackage.dll /Action:Publish /SourceFile:/work/db.dacpac [caller args...]
//
// Arguments are passed to os/exec as a vector, never through a shell.
package sqlpackage
