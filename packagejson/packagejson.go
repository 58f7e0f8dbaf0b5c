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
// Package packagejson provides parsing and entry-point resolution for
// package.json files as consumed by the module and type-reference loaders.
package packagejson

import (
	"encoding/json"
	"errors"
	"strings"

	"bennypowers.dev/ponte/fs"
)

// ErrNotExported is returned when a subpath is not exported by the package.
var ErrNotExported = errors.New("not exported by package.json")

// DefaultConditions is the export condition priority for a type-checking
// host: declaration entries first, then ESM, then the default fallback.
var DefaultConditions = []string{"types", "import", "default"}

// ResolveOptions configures how conditional exports are resolved.
type ResolveOptions struct {
	// Conditions is the ordered list of conditions to try when resolving
	// exports. If nil, DefaultConditions applies.
	Conditions []string
}

// PackageJSON represents the subset of package.json relevant for
// resolution.
type PackageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Main            string            `json:"main,omitempty"`
	Module          string            `json:"module,omitempty"`
	Types           string            `json:"types,omitempty"`
	Typings         string            `json:"typings,omitempty"`
	Exports         any               `json:"exports,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// Parse parses package.json data.
func Parse(data []byte) (*PackageJSON, error) {
	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// ParseFile parses a package.json file.
func ParseFile(fsys fs.FileSystem, path string) (*PackageJSON, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// TypesEntry returns the declared entry point for type information.
// "types" takes precedence over the legacy "typings" alias. Empty when the
// package declares neither.
func (pkg *PackageJSON) TypesEntry() string {
	if pkg.Types != "" {
		return trimDotSlash(pkg.Types)
	}
	if pkg.Typings != "" {
		return trimDotSlash(pkg.Typings)
	}
	return ""
}

// EntryPoints returns candidate entry files for the package root, in
// probe order: the exports-resolved root, declared types, module, then
// main. Paths are package-relative without a leading "./". Pass nil opts
// for DefaultConditions.
func (pkg *PackageJSON) EntryPoints(opts *ResolveOptions) []string {
	var entries []string
	seen := make(map[string]bool)
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			entries = append(entries, p)
		}
	}

	if resolved, err := pkg.ResolveExport(".", opts); err == nil {
		add(resolved)
	}
	add(pkg.TypesEntry())
	add(trimDotSlash(pkg.Module))
	add(trimDotSlash(pkg.Main))
	return entries
}

// ResolveExport resolves a subpath export to its target file path.
// The subpath should be "." for the main export or "./subpath" for subpath
// exports. Returns the resolved path without leading "./". Pass nil opts
// for DefaultConditions.
func (pkg *PackageJSON) ResolveExport(subpath string, opts *ResolveOptions) (string, error) {
	if pkg.Exports == nil {
		return "", ErrNotExported
	}

	// String export covers only the root subpath
	if exportStr, ok := pkg.Exports.(string); ok {
		if subpath == "." {
			return trimDotSlash(exportStr), nil
		}
		return "", ErrNotExported
	}

	exportsMap, ok := pkg.Exports.(map[string]any)
	if !ok {
		return "", ErrNotExported
	}

	// A map without "." keys is a condition map for the root subpath
	hasSubpaths := false
	for key := range exportsMap {
		if strings.HasPrefix(key, ".") {
			hasSubpaths = true
			break
		}
	}
	if !hasSubpaths {
		if subpath == "." {
			return resolveConditions(exportsMap, opts)
		}
		return "", ErrNotExported
	}

	exportValue, ok := exportsMap[subpath]
	if !ok {
		return "", ErrNotExported
	}
	return resolveExportValue(exportValue, opts)
}

// resolveExportValue resolves a single export value.
func resolveExportValue(value any, opts *ResolveOptions) (string, error) {
	switch v := value.(type) {
	case string:
		return trimDotSlash(v), nil
	case map[string]any:
		return resolveConditions(v, opts)
	case []any:
		// Fallback array: first entry that resolves wins
		for _, item := range v {
			if resolved, err := resolveExportValue(item, opts); err == nil {
				return resolved, nil
			}
		}
	}
	return "", ErrNotExported
}

// resolveConditions resolves a conditional export map to a path, trying
// each configured condition in order and recursing into nested maps.
func resolveConditions(conditions map[string]any, opts *ResolveOptions) (string, error) {
	conditionList := DefaultConditions
	if opts != nil && len(opts.Conditions) > 0 {
		conditionList = opts.Conditions
	}

	for _, cond := range conditionList {
		if value, ok := conditions[cond]; ok {
			if valueMap, ok := value.(map[string]any); ok {
				if result, err := resolveConditions(valueMap, opts); err == nil {
					return result, nil
				}
			} else if valueStr, ok := value.(string); ok {
				return trimDotSlash(valueStr), nil
			}
		}
	}

	return "", ErrNotExported
}

// trimDotSlash removes a leading "./" from a path.
func trimDotSlash(path string) string {
	return strings.TrimPrefix(path, "./")
}
