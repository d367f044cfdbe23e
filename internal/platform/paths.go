// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

// Package platform resolves installation and configuration paths.
package platform

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/smoothtype/smoothtype/internal/domain"
)

// File names inside the bootstrap directory.
const (
	targetName    = "index.html"
	backupWindows = "index.html.bak-smoothtype"
	backupUnix    = "index.bak-smoothtype"
)

// bootstrapParts leads from the editor's application directory to the bootstrap directory.
var bootstrapParts = []string{"vs", "workbench", "electron-browser", "bootstrap"} //nolint:gochecknoglobals

// ResolvePaths returns the target and backup locations under baseDir using the
// separator of the given platform. The directory is not validated here.
func ResolvePaths(baseDir string, windows bool) domain.Paths {
	sep := "/"
	backup := backupUnix

	if windows {
		sep = `\`
		backup = backupWindows
	}

	base := strings.TrimRight(baseDir, `/\`)
	dir := base + sep + strings.Join(bootstrapParts, sep)

	return domain.Paths{
		Target: dir + sep + targetName,
		Backup: dir + sep + backup,
	}
}

// IsWindows reports whether the platform flag selects Windows semantics.
// "auto" defers to goos.
func IsWindows(platform, goos string) bool {
	switch strings.ToLower(platform) {
	case "windows":
		return true
	case "unix", "linux", "darwin":
		return false
	default:
		return goos == "windows"
	}
}

// CandidateAppDirs lists well-known editor application directories for goos,
// most common first.
func CandidateAppDirs(goos string, getenv func(string) string) []string {
	switch goos {
	case "windows":
		var dirs []string
		if local := getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, local+`\Programs\Microsoft VS Code\resources\app\out`)
		}

		if programs := getenv("ProgramFiles"); programs != "" {
			dirs = append(dirs, programs+`\Microsoft VS Code\resources\app\out`)
		}

		return dirs
	case "darwin":
		return []string{"/Applications/Visual Studio Code.app/Contents/Resources/app/out"}
	default:
		return []string{
			"/usr/share/code/resources/app/out",
			"/opt/visual-studio-code/resources/app/out",
			"/usr/lib/code/out",
			"/snap/code/current/usr/share/code/resources/app/out",
		}
	}
}

// DetectAppDir returns the first candidate whose target file exists, or "".
func DetectAppDir(goos string, getenv func(string) string, exists func(string) bool) string {
	windows := goos == "windows"

	for _, dir := range CandidateAppDirs(goos, getenv) {
		if exists(ResolvePaths(dir, windows).Target) {
			return dir
		}
	}

	return ""
}

// GetXDGConfigHome returns XDG config directory.
func GetXDGConfigHome() string {
	return GetXDGConfigHomeWithEnv(os.Getenv("XDG_CONFIG_HOME"))
}

// GetXDGConfigHomeWithEnv returns XDG config directory with custom environment override for testing.
func GetXDGConfigHomeWithEnv(xdgConfigHome string) string {
	if xdgConfigHome != "" {
		return xdgConfigHome
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}

	return ""
}

// GetConfigPath returns the default configuration file path.
func GetConfigPath() string {
	return filepath.Join(GetXDGConfigHome(), "smoothtype", "config.toml")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}

	return path
}
