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
// Package typeref resolves type-reference directives: a primary lookup in
// the configured type roots (node_modules/@types by default), then a
// secondary lookup of a package's own bundled declarations.
package typeref

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

// Resolver resolves type-reference directive names to declaration files.
// It implements resolution.Loader[resolver.ResolvedTypeReference].
type Resolver struct {
	host    platform.Host
	options *tsconfig.CompilerOptions
	logger  resolver.Logger
	pkgs    packagejson.Cache
}

// New creates a type-reference Resolver for the given settings.
func New(host platform.Host, options *tsconfig.CompilerOptions, logger resolver.Logger) *Resolver {
	return &Resolver{
		host:    host,
		options: options,
		logger:  logger,
		pkgs:    packagejson.NewMemoryCache(),
	}
}

// Resolve resolves one directive name from one containing file.
func (r *Resolver) Resolve(name, containingFile string) *resolution.Record[resolver.ResolvedTypeReference] {
	tracker := resolver.NewTracker(r.host)
	containingDir := path.Dir(paths.Normalize(containingFile))

	// Primary: configured type roots
	for _, root := range r.typeRoots(containingDir) {
		if found := r.lookupPackage(tracker, path.Join(root, name)); found != "" {
			return r.record(tracker, name, found, true)
		}
	}

	// Secondary: a package shipping its own declarations
	for dir := containingDir; ; {
		candidate := path.Join(dir, "node_modules", name)
		if found := r.lookupPackage(tracker, candidate); found != "" {
			return r.record(tracker, name, found, false)
		}
		parent := path.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return &resolution.Record[resolver.ResolvedTypeReference]{
		FailedLookupLocations: tracker.Failed(),
	}
}

func (r *Resolver) record(t *resolver.Tracker, name, fileName string, primary bool) *resolution.Record[resolver.ResolvedTypeReference] {
	if r.logger != nil {
		r.logger.Debug("resolved type reference %q to %s (primary=%v)", name, fileName, primary)
	}
	return &resolution.Record[resolver.ResolvedTypeReference]{
		Resolved: &resolver.ResolvedTypeReference{
			FileName: fileName,
			Primary:  primary,
		},
		FailedLookupLocations: t.Failed(),
	}
}

// typeRoots returns the directories searched for the primary lookup:
// the configured typeRoots, or every node_modules/@types up the chain.
func (r *Resolver) typeRoots(containingDir string) []string {
	if r.options != nil && len(r.options.TypeRoots) > 0 {
		roots := make([]string, 0, len(r.options.TypeRoots))
		for _, root := range r.options.TypeRoots {
			roots = append(roots, r.absolute(root))
		}
		return roots
	}

	var roots []string
	for dir := containingDir; ; {
		roots = append(roots, path.Join(dir, "node_modules", "@types"))
		parent := path.Dir(dir)
		if parent == dir {
			return roots
		}
		dir = parent
	}
}

// lookupPackage probes one candidate package directory for a declaration
// entry: package.json types/typings first, then index.d.ts.
func (r *Resolver) lookupPackage(t *resolver.Tracker, candidate string) string {
	if !t.DirectoryExists(candidate) {
		return ""
	}

	if pkg := r.packageJSON(t, path.Join(candidate, "package.json")); pkg != nil {
		if entry := pkg.TypesEntry(); entry != "" {
			full := path.Join(candidate, entry)
			if isDeclarationFile(full) && t.FileExists(full) {
				return full
			}
		}
	}

	index := path.Join(candidate, "index.d.ts")
	if t.FileExists(index) {
		return index
	}
	return ""
}

// packageJSON returns a cached parse of the package.json at pkgPath.
// Misses are recorded by the tracker, not cached, so a package.json that
// appears later is picked up on the retry the validator forces.
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

func (r *Resolver) absolute(p string) string {
	p = paths.Normalize(p)
	if path.IsAbs(p) {
		return path.Clean(p)
	}
	return path.Join(r.host.GetCurrentDirectory(), p)
}

func isDeclarationFile(p string) bool {
	return strings.HasSuffix(p, ".d.ts")
}
