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
package project

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"bennypowers.dev/ponte/fs"
	"bennypowers.dev/ponte/paths"
	"bennypowers.dev/ponte/resolver"
	"bennypowers.dev/ponte/tsconfig"
)

// DiscoverRootFiles expands a tsconfig's files, include, and exclude
// settings against the filesystem, returning the project's root files in
// walk order. Explicit files are taken as-is; include matches are
// filtered to supported extensions and against the exclude patterns.
func DiscoverRootFiles(fsys fs.FileSystem, rootDir string, cfg *tsconfig.Config) []string {
	rootDir = path.Clean(paths.Normalize(rootDir))

	var files []string
	for _, f := range cfg.Files {
		files = append(files, path.Join(rootDir, paths.Normalize(f)))
	}

	includes := cfg.IncludePatterns()
	if len(includes) == 0 {
		return files
	}
	excludes := cfg.ExcludePatterns()
	allowJS := cfg.CompilerOptions.AllowJS

	walkFiles(fsys, rootDir, func(fullPath string) {
		rel := strings.TrimPrefix(strings.TrimPrefix(fullPath, rootDir), "/")
		if !resolver.HasSupportedExtension(rel, allowJS) {
			return
		}
		if !matchAny(includes, rel) || matchAny(excludes, rel) {
			return
		}
		files = append(files, fullPath)
	})
	return files
}

// matchAny reports whether rel matches any of the glob patterns. A
// pattern without glob metacharacters matches as a directory prefix, the
// way tsconfig include entries like "src" do.
func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		pattern = strings.TrimSuffix(paths.Normalize(pattern), "/")
		pattern = strings.TrimPrefix(pattern, "./")
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if !strings.ContainsAny(pattern, "*?[{") {
			if rel == pattern || strings.HasPrefix(rel, pattern+"/") {
				return true
			}
		}
	}
	return false
}

// walkFiles visits every file under dir, depth-first in directory order.
func walkFiles(fsys fs.FileSystem, dir string, visit func(fullPath string)) {
	entries, err := fsys.ReadDir(filepath.FromSlash(dir))
	if err != nil {
		return
	}
	for _, entry := range entries {
		full := path.Join(dir, entry.Name())
		if entry.IsDir() {
			walkFiles(fsys, full, visit)
		} else {
			visit(full)
		}
	}
}
