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
// Package node implements node-style module resolution: relative
// specifiers with extension probing, baseUrl/paths mapping, and bare
// specifiers resolved through node_modules directories up the containing
// file's directory chain.
package node

import (
	"path"
	"strings"

	"bennypowers.dev/ponte/packagejson"
	"bennypowers.dev/ponte/paths"
	"bennypowers.dev/ponte/platform"
	"bennypowers.dev/ponte/resolution"
	"bennypowers.dev/ponte/resolver"
	"bennypowers.dev/ponte/tsconfig"
)

// Resolver resolves module specifiers to declaration or source files.
// It implements resolution.Loader[resolver.ResolvedModule].
type Resolver struct {
	host    platform.Host
	options *tsconfig.CompilerOptions
	logger  resolver.Logger
	pkgs    packagejson.Cache
}

// New creates a node-style module Resolver for the given settings.
func New(host platform.Host, options *tsconfig.CompilerOptions, logger resolver.Logger) *Resolver {
	return &Resolver{
		host:    host,
		options: options,
		logger:  logger,
		pkgs:    packagejson.NewMemoryCache(),
	}
}

// Resolve resolves one specifier from one containing file. It always
// returns a record; an unresolvable name yields a record with the probed
// locations and no target.
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
		found = r.resolveFileOrDirectory(tracker, candidate)
	case resolver.IsBareSpecifier(name):
		found = r.resolvePathsMapping(tracker, name)
		if found == "" {
			found = r.resolveNodeModules(tracker, name, containingDir)
		}
	}

	record := &resolution.Record[resolver.ResolvedModule]{
		FailedLookupLocations: tracker.Failed(),
	}
	if found != "" {
		record.Resolved = &resolver.ResolvedModule{
			FileName:                found,
			IsExternalLibraryImport: strings.Contains(found, "/node_modules/"),
		}
		if r.logger != nil {
			r.logger.Debug("resolved %q from %s to %s", name, containingFile, found)
		}
	}
	return record
}

// resolveFileOrDirectory tries the candidate as a file, then as a
// directory package.
func (r *Resolver) resolveFileOrDirectory(t *resolver.Tracker, candidate string) string {
	if found := r.resolveFile(t, candidate); found != "" {
		return found
	}
	return r.resolveDirectory(t, candidate)
}

// resolveFile probes a candidate path with the supported extensions.
// A specifier written against emitted output ("./b.js") probes the
// TypeScript sources it was compiled from first.
func (r *Resolver) resolveFile(t *resolver.Tracker, candidate string) string {
	allowJS := r.allowJS()

	if trimmed, ok := stripJSExtension(candidate); ok {
		for _, ext := range resolver.TypeScriptExtensions {
			if t.FileExists(trimmed + ext) {
				return trimmed + ext
			}
		}
	}
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

// resolveDirectory treats the candidate as a package directory: entry
// points from package.json first, then index files.
func (r *Resolver) resolveDirectory(t *resolver.Tracker, candidate string) string {
	if !t.DirectoryExists(candidate) {
		return ""
	}
	if pkg := r.packageJSON(t, path.Join(candidate, "package.json")); pkg != nil {
		for _, entry := range pkg.EntryPoints(nil) {
			if found := r.resolveFile(t, path.Join(candidate, entry)); found != "" {
				return found
			}
		}
	}
	return r.resolveFile(t, path.Join(candidate, "index"))
}

// resolvePathsMapping applies baseUrl and paths substitution for bare
// specifiers.
func (r *Resolver) resolvePathsMapping(t *resolver.Tracker, name string) string {
	if r.options == nil || r.options.BaseURL == "" {
		return ""
	}
	base := r.absolute(r.options.BaseURL)

	if pattern, sub, ok := matchPaths(r.options.Paths, name); ok {
		for _, target := range r.options.Paths[pattern] {
			candidate := path.Join(base, strings.Replace(target, "*", sub, 1))
			if found := r.resolveFileOrDirectory(t, candidate); found != "" {
				return found
			}
		}
	}

	return r.resolveFileOrDirectory(t, path.Join(base, name))
}

// resolveNodeModules walks node_modules directories up the chain,
// probing the package itself and its @types fallback at each level.
func (r *Resolver) resolveNodeModules(t *resolver.Tracker, name, containingDir string) string {
	for dir := containingDir; ; {
		nodeModules := path.Join(dir, "node_modules")
		if t.DirectoryExists(nodeModules) {
			if found := r.resolveFileOrDirectory(t, path.Join(nodeModules, name)); found != "" {
				return found
			}
			atTypes := path.Join(nodeModules, "@types", mangleScopedName(name))
			if found := r.resolveFileOrDirectory(t, atTypes); found != "" {
				return found
			}
		}
		parent := path.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// packageJSON returns a cached parse of the package.json at pkgPath, or
// nil when the file is absent or malformed. Absence is recorded as a
// failed lookup so the cache validator retries when one appears.
func (r *Resolver) packageJSON(t *resolver.Tracker, pkgPath string) *packagejson.PackageJSON {
	if pkg, ok := r.pkgs.Get(pkgPath); ok {
		return pkg
	}
	contents, ok := t.ReadFile(pkgPath)
	if !ok {
		return nil
	}
	pkg, err := packagejson.Parse([]byte(contents))
	if err != nil {
		if r.logger != nil {
			r.logger.Warning("failed to parse %s: %v", pkgPath, err)
		}
		return nil
	}
	r.pkgs.Set(pkgPath, pkg)
	return pkg
}

func (r *Resolver) allowJS() bool {
	return r.options != nil && r.options.AllowJS
}

// absolute anchors a possibly relative configured path at the host's
// current directory.
func (r *Resolver) absolute(p string) string {
	p = paths.Normalize(p)
	if path.IsAbs(p) {
		return path.Clean(p)
	}
	return path.Join(r.host.GetCurrentDirectory(), p)
}

// matchPaths finds the paths pattern matching name, preferring the
// longest literal prefix the way tsc does. Returns the winning pattern
// and the text matched by its wildcard.
func matchPaths(patterns map[string][]string, name string) (pattern, sub string, ok bool) {
	bestLen := -1
	for candidate := range patterns {
		star := strings.Index(candidate, "*")
		if star < 0 {
			if candidate == name && len(candidate) > bestLen {
				pattern, sub, ok = candidate, "", true
				bestLen = len(candidate)
			}
			continue
		}
		prefix, suffix := candidate[:star], candidate[star+1:]
		if len(name) >= len(prefix)+len(suffix) &&
			strings.HasPrefix(name, prefix) &&
			strings.HasSuffix(name, suffix) &&
			len(prefix) > bestLen {
			pattern = candidate
			sub = name[len(prefix) : len(name)-len(suffix)]
			ok = true
			bestLen = len(prefix)
		}
	}
	return pattern, sub, ok
}

// stripJSExtension removes a JavaScript output extension so the probe can
// look for the TypeScript source that would emit it.
func stripJSExtension(candidate string) (string, bool) {
	for _, ext := range []string{".js", ".jsx", ".mjs", ".cjs"} {
		if strings.HasSuffix(candidate, ext) {
			return strings.TrimSuffix(candidate, ext), true
		}
	}
	return candidate, false
}

// mangleScopedName maps a scoped package to its @types directory name,
// e.g. "@scope/pkg" -> "scope__pkg".
func mangleScopedName(name string) string {
	if strings.HasPrefix(name, "@") {
		return strings.Replace(strings.TrimPrefix(name, "@"), "/", "__", 1)
	}
	return name
}
