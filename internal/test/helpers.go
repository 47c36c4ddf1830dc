// Package test holds helpers shared by the package tests.
package test

import (
	"os"
	"path/filepath"
	"testing"
)

// Files maps slash-separated relative paths to file contents.
type Files map[string]string

// DefaultFiles returns template sources for every known template, each
// referencing a few of the recognized tokens.
func DefaultFiles() Files {
	return Files{
		"packr/Info.plist": `<plist version="1.0"><dict>
<key>CFBundleName</key><string>@finalName@</string>
<key>CFBundleVersion</key><string>@project.version@</string>
<key>CFBundleIdentifier</key><string>@project.group@.@artifact@</string>
</dict></plist>
`,
		"innosetup/openosrs.iss": `#define AppName "@finalName@"
AppVersion=@project.version@
SourceDir=@basedir@
`,
		"innosetup/openosrs32.iss": `#define AppName "@finalName@ (32-bit)"
AppVersion=@project.version@
SourceDir=@basedir@
`,
		"appimage/openosrs.desktop": `[Desktop Entry]
Name=@finalName@
Comment=@description@
Exec=@artifact@
`,
		"src/main/resources/launcher.properties": `launcher.version=@project.version@
`,
	}
}

// WriteFiles creates files under dir, making parent directories as needed.
func WriteFiles(t testing.TB, dir string, files Files) {
	t.Helper()
	for name, contents := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(contents), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// ProjectDir creates a temporary project directory holding files.
func ProjectDir(t testing.TB, files Files) string {
	t.Helper()
	dir := t.TempDir()
	WriteFiles(t, dir, files)
	return dir
}
