/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
// Package platform exposes the host environment consumed by resolution:
// file probing, directory listing, path resolution, and the host's
// case-sensitivity policy.
package platform

import (
	"os"
	"path"
	"path/filepath"
	"runtime"

	"bennypowers.dev/ponte/fs"
	"bennypowers.dev/ponte/paths"
)

// Host is the environment surface that loaders and the language-service
// host probe during resolution.
type Host interface {
	FileExists(path string) bool
	DirectoryExists(path string) bool

	// ReadFile returns the file contents, or ok=false if the file is absent
	// or unreadable.
	ReadFile(path string) (contents string, ok bool)

	// GetDirectories lists the names of immediate subdirectories.
	GetDirectories(path string) []string

	// ResolvePath maps a path to its stable on-disk form (symlinks resolved
	// where the underlying filesystem supports it).
	ResolvePath(path string) string

	GetCurrentDirectory() string
	GetExecutingFilePath() string
	UseCaseSensitiveFileNames() bool
}

// FSHost implements Host on top of a fs.FileSystem.
type FSHost struct {
	fsys          fs.FileSystem
	cwd           string
	executingFile string
	caseSensitive bool
}

// System creates a Host backed by the operating system: working directory,
// executable path, and case-sensitivity policy are detected from the
// running process.
func System(fsys fs.FileSystem) *FSHost {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "/"
	}
	exe, err := os.Executable()
	if err != nil {
		exe = "ponte"
	}
	return &FSHost{
		fsys:          fsys,
		cwd:           paths.Normalize(cwd),
		executingFile: paths.Normalize(exe),
		caseSensitive: detectCaseSensitivity(),
	}
}

// Virtual creates a Host with an explicit working directory and
// case-sensitivity policy. Used with the in-memory filesystem in tests.
func Virtual(fsys fs.FileSystem, cwd string, caseSensitive bool) *FSHost {
	return &FSHost{
		fsys:          fsys,
		cwd:           paths.Normalize(cwd),
		executingFile: path.Join(paths.Normalize(cwd), "ponte"),
		caseSensitive: caseSensitive,
	}
}

// WithExecutingFilePath returns a copy of the host reporting the given
// executing file path. The default lib lookup is anchored next to it.
func (h *FSHost) WithExecutingFilePath(p string) *FSHost {
	return &FSHost{
		fsys:          h.fsys,
		cwd:           h.cwd,
		executingFile: paths.Normalize(p),
		caseSensitive: h.caseSensitive,
	}
}

// WithCurrentDirectory returns a copy of the host anchored at the given
// working directory. Relative configured paths (baseUrl, typeRoots)
// resolve against it.
func (h *FSHost) WithCurrentDirectory(cwd string) *FSHost {
	return &FSHost{
		fsys:          h.fsys,
		cwd:           path.Clean(paths.Normalize(cwd)),
		executingFile: h.executingFile,
		caseSensitive: h.caseSensitive,
	}
}

func (h *FSHost) FileExists(p string) bool {
	info, err := h.fsys.Stat(filepath.FromSlash(p))
	return err == nil && !info.IsDir()
}

func (h *FSHost) DirectoryExists(p string) bool {
	info, err := h.fsys.Stat(filepath.FromSlash(p))
	return err == nil && info.IsDir()
}

func (h *FSHost) ReadFile(p string) (string, bool) {
	data, err := h.fsys.ReadFile(filepath.FromSlash(p))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (h *FSHost) GetDirectories(p string) []string {
	entries, err := h.fsys.ReadDir(filepath.FromSlash(p))
	if err != nil {
		return nil
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}
	return dirs
}

func (h *FSHost) ResolvePath(p string) string {
	resolved, err := h.fsys.Realpath(filepath.FromSlash(p))
	if err != nil {
		return paths.Normalize(p)
	}
	return paths.Normalize(resolved)
}

func (h *FSHost) GetCurrentDirectory() string {
	return h.cwd
}

func (h *FSHost) GetExecutingFilePath() string {
	return h.executingFile
}

func (h *FSHost) UseCaseSensitiveFileNames() bool {
	return h.caseSensitive
}

// detectCaseSensitivity reports the conventional policy for the platform.
// Darwin and Windows filesystems are case-insensitive by default.
func detectCaseSensitivity() bool {
	switch runtime.GOOS {
	case "darwin", "windows":
		return false
	}
	return true
}
