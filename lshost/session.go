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
package lshost

import (
	"fmt"
	"path"

	"bennypowers.dev/ponte/fs"
	"bennypowers.dev/ponte/paths"
	"bennypowers.dev/ponte/platform"
	"bennypowers.dev/ponte/project"
	"bennypowers.dev/ponte/resolver"
	"bennypowers.dev/ponte/tsconfig"
)

// Session bundles the host, its project, and the configuration they were
// opened from. The CLI commands work through a Session.
type Session struct {
	Host    *Host
	Project *project.Project
	Root    string
	Config  *tsconfig.Config
}

// Open loads the tsconfig.json under rootDir when one exists, discovers
// the project's root files, and builds a Host over them. A missing
// tsconfig.json opens the directory with default settings; a malformed
// one is an error.
func Open(fsys fs.FileSystem, host platform.Host, rootDir string, logger resolver.Logger) (*Session, error) {
	rootDir = path.Clean(paths.Normalize(rootDir))

	cfg := &tsconfig.Config{}
	cfgPath := path.Join(rootDir, "tsconfig.json")
	if host.FileExists(cfgPath) {
		parsed, err := tsconfig.ParseFile(fsys, cfgPath)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", cfgPath, err)
		}
		cfg = parsed
		if logger != nil {
			logger.Debug("loaded %s", cfgPath)
		}
	}

	proj := project.New(host, logger)
	for _, fileName := range project.DiscoverRootFiles(fsys, rootDir, cfg) {
		proj.AddRoot(fileName)
	}

	return &Session{
		Host:    New(host, proj, cfg.CompilerOptions.Clone(), logger),
		Project: proj,
		Root:    rootDir,
		Config:  cfg,
	}, nil
}
