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
// Package lshost implements the language-service host: the component that
// owns the per-namespace resolution caches, the current compiler settings,
// and the project model, bridging an incremental language service to the
// filesystem. One Host exists per project; the language service invokes it
// synchronously, one request at a time.
package lshost

import (
	"path"
	"strings"

	"bennypowers.dev/ponte/paths"
	"bennypowers.dev/ponte/platform"
	"bennypowers.dev/ponte/project"
	"bennypowers.dev/ponte/resolution"
	"bennypowers.dev/ponte/resolver"
	"bennypowers.dev/ponte/resolver/classic"
	"bennypowers.dev/ponte/resolver/node"
	"bennypowers.dev/ponte/resolver/typeref"
	"bennypowers.dev/ponte/tsconfig"
)

// Host owns the module-name and type-reference resolution caches and the
// settings they depend on. The two caches and the settings value are
// mutated only through Host methods.
type Host struct {
	platform platform.Host
	project  *project.Project
	logger   resolver.Logger
	options  *tsconfig.CompilerOptions

	modules  *resolution.Cache[resolver.ResolvedModule]
	typeRefs *resolution.Cache[resolver.ResolvedTypeReference]

	moduleLoader  resolution.Loader[resolver.ResolvedModule]
	typeRefLoader resolution.Loader[resolver.ResolvedTypeReference]
}

// New creates a Host over the given platform, project, and settings.
func New(p platform.Host, proj *project.Project, options *tsconfig.CompilerOptions, logger resolver.Logger) *Host {
	h := &Host{
		platform: p,
		project:  proj,
		logger:   logger,
		options:  options,
		modules:  resolution.NewCache[resolver.ResolvedModule](),
		typeRefs: resolution.NewCache[resolver.ResolvedTypeReference](),
	}
	h.rebuildLoaders()
	return h
}

// rebuildLoaders constructs fresh loader strategies for the current
// settings. Fresh loaders also start with empty package.json caches, so
// nothing parsed under the old settings leaks through.
func (h *Host) rebuildLoaders() {
	if h.options.ResolutionKind() == tsconfig.ClassicResolution {
		h.moduleLoader = classic.New(h.platform, h.options, h.logger)
	} else {
		h.moduleLoader = node.New(h.platform, h.options, h.logger)
	}
	h.typeRefLoader = typeref.New(h.platform, h.options, h.logger)
}

func (h *Host) canonical(fileName string) string {
	return paths.Canonical(fileName, h.platform.GetCurrentDirectory(), h.platform.UseCaseSensitiveFileNames())
}

// ResolveModuleNames resolves the module specifiers requested by
// containingFile, position-for-position. An unresolvable name yields nil
// at its position.
func (h *Host) ResolveModuleNames(names []string, containingFile string) []*resolver.ResolvedModule {
	return resolution.ResolveNames(
		h.modules, names, containingFile, h.canonical(containingFile), h.moduleLoader,
		func(record *resolution.Record[resolver.ResolvedModule]) *resolver.ResolvedModule {
			return record.Resolved
		})
}

// ResolveTypeReferenceDirectives resolves the type-reference directive
// names requested by containingFile, position-for-position.
func (h *Host) ResolveTypeReferenceDirectives(names []string, containingFile string) []*resolver.ResolvedTypeReference {
	return resolution.ResolveNames(
		h.typeRefs, names, containingFile, h.canonical(containingFile), h.typeRefLoader,
		func(record *resolution.Record[resolver.ResolvedTypeReference]) *resolver.ResolvedTypeReference {
			return record.Resolved
		})
}

// GetCompilationSettings returns the current compiler settings.
func (h *Host) GetCompilationSettings() *tsconfig.CompilerOptions {
	return h.options
}

// SetCompilationSettings replaces the compiler settings and clears both
// caches completely. Any cached record could be invalid under the new
// settings and there is no cheap way to know which, so the conservative
// full clear is the correct choice.
func (h *Host) SetCompilationSettings(options *tsconfig.CompilerOptions) {
	h.options = options
	h.modules.Clear()
	h.typeRefs.Clear()
	h.rebuildLoaders()
}

// RemoveRoot drops a file from the project's root set and evicts its
// entries from both caches: its resolutions are no longer relevant once
// it is not part of the compilation.
func (h *Host) RemoveRoot(info *project.ScriptInfo) {
	if info == nil {
		return
	}
	h.project.RemoveRoot(info)
	h.evict(info.Path())
}

// RemoveReferencedFile drops a non-root file from tracking and evicts its
// cache entries, unless the file is open in an editor: open files remain
// likely to be re-resolved imminently, and evicting them would only force
// redundant recomputation.
func (h *Host) RemoveReferencedFile(info *project.ScriptInfo) {
	if info == nil || info.IsOpen() {
		return
	}
	h.project.Remove(info)
	h.evict(info.Path())
}

func (h *Host) evict(key string) {
	h.modules.Remove(key)
	h.typeRefs.Remove(key)
}

// GetScriptFileNames returns the project's root files.
func (h *Host) GetScriptFileNames() []string {
	return h.project.GetRootFiles()
}

// GetScriptSnapshot returns the live text snapshot for a file, attaching
// it from disk on first reference.
func (h *Host) GetScriptSnapshot(fileName string) (string, bool) {
	info := h.project.GetOrCreateScriptInfo(fileName)
	if info == nil {
		return "", false
	}
	return info.Snapshot(), true
}

// GetScriptVersion returns the version token for a tracked file, or the
// empty string for an untracked one.
func (h *Host) GetScriptVersion(fileName string) string {
	info := h.project.GetScriptInfo(fileName)
	if info == nil {
		return ""
	}
	return info.Version()
}

// GetScriptKind returns the script kind for a file.
func (h *Host) GetScriptKind(fileName string) project.ScriptKind {
	if info := h.project.GetScriptInfo(fileName); info != nil {
		return info.Kind()
	}
	return project.KindFromFileName(fileName)
}

// GetDefaultLibFileName returns the default library matching the
// configured target, located next to the executing binary.
func (h *Host) GetDefaultLibFileName() string {
	return path.Join(path.Dir(h.platform.GetExecutingFilePath()), defaultLibName(h.options))
}

// GetProjectVersion returns the project model's version token.
func (h *Host) GetProjectVersion() string {
	return h.project.GetProjectVersion()
}

// GetCurrentDirectory returns the host's working directory.
func (h *Host) GetCurrentDirectory() string {
	return h.platform.GetCurrentDirectory()
}

// FileExists is a passthrough to the platform host.
func (h *Host) FileExists(path string) bool {
	return h.platform.FileExists(path)
}

// DirectoryExists is a passthrough to the platform host.
func (h *Host) DirectoryExists(path string) bool {
	return h.platform.DirectoryExists(path)
}

// ReadFile is a passthrough to the platform host.
func (h *Host) ReadFile(path string) (string, bool) {
	return h.platform.ReadFile(path)
}

// GetDirectories is a passthrough to the platform host.
func (h *Host) GetDirectories(path string) []string {
	return h.platform.GetDirectories(path)
}

// ModuleCache exposes the module-name cache for inspection.
func (h *Host) ModuleCache() *resolution.Cache[resolver.ResolvedModule] {
	return h.modules
}

// TypeReferenceCache exposes the type-reference cache for inspection.
func (h *Host) TypeReferenceCache() *resolution.Cache[resolver.ResolvedTypeReference] {
	return h.typeRefs
}

// defaultLibName maps a target to its default library file.
func defaultLibName(options *tsconfig.CompilerOptions) string {
	target := ""
	if options != nil {
		target = strings.ToLower(options.Target)
	}
	switch target {
	case "es6", "es2015":
		return "lib.es2015.d.ts"
	case "es2016", "es2017", "es2018", "es2019", "es2020", "es2021", "es2022", "es2023":
		return "lib." + target + ".d.ts"
	case "esnext":
		return "lib.esnext.d.ts"
	}
	return "lib.d.ts"
}
