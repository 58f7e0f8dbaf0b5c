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
// Package trace walks a module graph from an entrypoint, resolving every
// import and reference directive through the language-service host, so
// repeated traversals of shared files hit the resolution caches.
package trace

import (
	"fmt"
	"path"
	"sort"

	"bennypowers.dev/ponte/lshost"
	"bennypowers.dev/ponte/paths"
	"bennypowers.dev/ponte/resolver"
	"bennypowers.dev/ponte/scan"
)

// Module represents one traced file in the graph.
type Module struct {
	// Path is the file, slash-normalized.
	Path string

	// Imports are the module specifiers the file requests, in source order.
	Imports []scan.ModuleImport

	// References are the file's triple-slash reference directives.
	References []scan.Reference

	// Resolutions maps each specifier to the file it resolved to. Absent
	// keys did not resolve.
	Resolutions map[string]string

	// TypeResolutions maps each types directive to its declaration file.
	TypeResolutions map[string]string
}

// Unresolved records a specifier or directive that did not resolve.
type Unresolved struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	Specifier string `json:"specifier"`
}

// Graph is the result of a trace: every module reachable from the
// entrypoints, plus what could not be resolved along the way.
type Graph struct {
	Entrypoints []string
	Modules     map[string]*Module
	Unresolved  []Unresolved
	Errors      []error
}

// Tracer walks module graphs through a language-service host.
type Tracer struct {
	host           *lshost.Host
	followExternal bool
}

// NewTracer creates a Tracer over the given host.
func NewTracer(host *lshost.Host) *Tracer {
	return &Tracer{host: host}
}

// WithExternal returns a Tracer that descends into node_modules packages
// instead of stopping at the package boundary.
func (t *Tracer) WithExternal() *Tracer {
	return &Tracer{host: t.host, followExternal: true}
}

// TraceModule traces a module and all its transitive dependencies.
func (t *Tracer) TraceModule(entry string) (*Graph, error) {
	entry = paths.Normalize(entry)
	graph := &Graph{
		Entrypoints: []string{entry},
		Modules:     make(map[string]*Module),
	}
	if err := t.traceModule(graph, entry); err != nil {
		return nil, err
	}
	return graph, nil
}

// traceModule scans and resolves one file, then recurses into every file
// its imports resolved to.
func (t *Tracer) traceModule(graph *Graph, modulePath string) error {
	if _, traced := graph.Modules[modulePath]; traced {
		return nil
	}

	content, ok := t.host.GetScriptSnapshot(modulePath)
	if !ok {
		return fmt.Errorf("cannot read %s", modulePath)
	}

	imports, err := scan.ExtractImports([]byte(content))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", modulePath, err)
	}
	references, err := scan.ExtractReferences([]byte(content))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", modulePath, err)
	}

	mod := &Module{
		Path:            modulePath,
		Imports:         imports,
		References:      references,
		Resolutions:     make(map[string]string),
		TypeResolutions: make(map[string]string),
	}
	graph.Modules[modulePath] = mod

	var next []string

	specifiers := scan.Specifiers(imports)
	for i, resolved := range t.host.ResolveModuleNames(specifiers, modulePath) {
		if resolved == nil {
			graph.Unresolved = append(graph.Unresolved, Unresolved{
				File:      modulePath,
				Line:      imports[i].Line,
				Specifier: imports[i].Specifier,
			})
			continue
		}
		mod.Resolutions[imports[i].Specifier] = resolved.FileName
		if resolved.IsExternalLibraryImport && !t.followExternal {
			continue
		}
		next = append(next, resolved.FileName)
	}

	directives := scan.TypeDirectives(references)
	for i, resolved := range t.host.ResolveTypeReferenceDirectives(directives, modulePath) {
		if resolved == nil {
			line := 0
			for _, ref := range references {
				if ref.Kind == scan.ReferenceTypes && ref.Name == directives[i] {
					line = ref.Line
					break
				}
			}
			graph.Unresolved = append(graph.Unresolved, Unresolved{
				File:      modulePath,
				Line:      line,
				Specifier: directives[i],
			})
			continue
		}
		mod.TypeResolutions[directives[i]] = resolved.FileName
		if t.followExternal {
			next = append(next, resolved.FileName)
		}
	}

	// path references resolve relative to the containing file
	dir := path.Dir(modulePath)
	for _, ref := range references {
		if ref.Kind != scan.ReferencePath {
			continue
		}
		target := path.Join(dir, paths.Normalize(ref.Name))
		if !t.host.FileExists(target) {
			graph.Unresolved = append(graph.Unresolved, Unresolved{
				File:      modulePath,
				Line:      ref.Line,
				Specifier: ref.Name,
			})
			continue
		}
		mod.Resolutions[ref.Name] = target
		next = append(next, target)
	}

	for _, dep := range next {
		if err := t.traceModule(graph, dep); err != nil {
			graph.Errors = append(graph.Errors, err)
		}
	}
	return nil
}

// Files returns the sorted paths of every traced module.
func (g *Graph) Files() []string {
	files := make([]string, 0, len(g.Modules))
	for p := range g.Modules {
		files = append(files, p)
	}
	sort.Strings(files)
	return files
}

// BareSpecifiers returns the sorted bare specifiers requested anywhere in
// the graph, resolved or not.
func (g *Graph) BareSpecifiers() []string {
	seen := make(map[string]bool)
	for _, mod := range g.Modules {
		for _, imp := range mod.Imports {
			if resolver.IsBareSpecifier(imp.Specifier) {
				seen[imp.Specifier] = true
			}
		}
	}
	specifiers := make([]string, 0, len(seen))
	for spec := range seen {
		specifiers = append(specifiers, spec)
	}
	sort.Strings(specifiers)
	return specifiers
}
