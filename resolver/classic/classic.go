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
// Package classic implements the legacy resolution strategy: relative
// specifiers resolve against the containing file, and bare specifiers are
// probed name-plus-extension at every directory up the chain, without
// consulting node_modules.
package classic

import (
	"path"
	"strings"

	"bennypowers.dev/ponte/paths"
	"bennypowers.dev/ponte/platform"
	"bennypowers.dev/ponte/resolution"
	"bennypowers.dev/ponte/resolver"
	"bennypowers.dev/ponte/tsconfig"
)

// Resolver resolves module specifiers with the classic strategy.
// It implements resolution.Loader[resolver.ResolvedModule].
type Resolver struct {
	host    platform.Host
	options *tsconfig.CompilerOptions
	logger  resolver.Logger
}

// New creates a classic Resolver for the given settings.
func New(host platform.Host, options *tsconfig.CompilerOptions, logger resolver.Logger) *Resolver {
	return &Resolver{host: host, options: options, logger: logger}
}

// Resolve resolves one specifier from one containing file.
func (r *Resolver) Resolve(name, containingFile string) *resolution.Record[resolver.ResolvedModule] {
	tracker := resolver.NewTracker(r.host)
	containingDir := path.Dir(paths.Normalize(containingFile))

	var found string
	switch {
	case resolver.IsRelativeSpecifier(name):
		candidate := paths.Normalize(name)
		if strings.HasPrefix(candidate, "./") || strings.HasPrefix(candidate, "../") {
			candidate = path.Join(containingDir, candidate)
		}
		found = r.probeExtensions(tracker, candidate)
	case resolver.IsBareSpecifier(name):
		for dir := containingDir; ; {
			if found = r.probeExtensions(tracker, path.Join(dir, name)); found != "" {
				break
			}
			parent := path.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	record := &resolution.Record[resolver.ResolvedModule]{
		FailedLookupLocations: tracker.Failed(),
	}
	if found != "" {
		record.Resolved = &resolver.ResolvedModule{FileName: found}
		if r.logger != nil {
			r.logger.Debug("resolved %q from %s to %s", name, containingFile, found)
		}
	}
	return record
}

func (r *Resolver) probeExtensions(t *resolver.Tracker, candidate string) string {
	allowJS := r.options != nil && r.options.AllowJS
	if resolver.HasSupportedExtension(candidate, allowJS) {
		if t.FileExists(candidate) {
			return candidate
		}
	}
	for _, ext := range resolver.SupportedExtensions(allowJS) {
		if t.FileExists(candidate + ext) {
			return candidate + ext
		}
	}
	return ""
}
