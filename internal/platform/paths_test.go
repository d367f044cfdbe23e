// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/smoothtype/smoothtype/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolvePaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		baseDir string
		windows bool
		want    domain.Paths
	}{
		{
			name:    "unix",
			baseDir: "/usr/share/code/resources/app/out",
			want: domain.Paths{
				Target: "/usr/share/code/resources/app/out/vs/workbench/electron-browser/bootstrap/index.html",
				Backup: "/usr/share/code/resources/app/out/vs/workbench/electron-browser/bootstrap/index.bak-smoothtype",
			},
		},
		{
			name:    "unix with trailing separator",
			baseDir: "/opt/code/out/",
			want: domain.Paths{
				Target: "/opt/code/out/vs/workbench/electron-browser/bootstrap/index.html",
				Backup: "/opt/code/out/vs/workbench/electron-browser/bootstrap/index.bak-smoothtype",
			},
		},
		{
			name:    "windows",
			baseDir: `C:\Code\resources\app\out`,
			windows: true,
			want: domain.Paths{
				Target: `C:\Code\resources\app\out\vs\workbench\electron-browser\bootstrap\index.html`,
				Backup: `C:\Code\resources\app\out\vs\workbench\electron-browser\bootstrap\index.html.bak-smoothtype`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ResolvePaths(tt.baseDir, tt.windows))
		})
	}
}

func TestIsWindows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		platform string
		goos     string
		want     bool
	}{
		{"auto", "windows", true},
		{"auto", "linux", false},
		{"", "darwin", false},
		{"Windows", "linux", true},
		{"unix", "windows", false},
	}

	for _, tt := range tests {
		t.Run(tt.platform+"/"+tt.goos, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, IsWindows(tt.platform, tt.goos))
		})
	}
}

func TestCandidateAppDirs(t *testing.T) {
	t.Parallel()

	env := map[string]string{"LOCALAPPDATA": `C:\Users\me\AppData\Local`}
	getenv := func(key string) string { return env[key] }

	windows := CandidateAppDirs("windows", getenv)
	assert.Equal(t, []string{`C:\Users\me\AppData\Local\Programs\Microsoft VS Code\resources\app\out`}, windows)

	assert.NotEmpty(t, CandidateAppDirs("linux", getenv))
	assert.Len(t, CandidateAppDirs("darwin", getenv), 1)
}

func TestDetectAppDir(t *testing.T) {
	t.Parallel()

	want := "/opt/visual-studio-code/resources/app/out"
	exists := func(path string) bool {
		return path == ResolvePaths(want, false).Target
	}

	assert.Equal(t, want, DetectAppDir("linux", os.Getenv, exists))
	assert.Empty(t, DetectAppDir("linux", os.Getenv, func(string) bool { return false }))
}

func TestGetXDGConfigHomeWithEnv(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/custom/config", GetXDGConfigHomeWithEnv("/custom/config"))

	if home, err := os.UserHomeDir(); err == nil {
		assert.Equal(t, filepath.Join(home, ".config"), GetXDGConfigHomeWithEnv(""))
	}
}

func TestExpandPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
	assert.Empty(t, ExpandPath(""))

	if home, err := os.UserHomeDir(); err == nil {
		assert.Equal(t, filepath.Join(home, "code"), ExpandPath("~/code"))
	}
}
