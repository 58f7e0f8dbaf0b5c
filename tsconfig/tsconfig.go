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
// Package tsconfig provides parsing for tsconfig.json project files and the
// compiler settings that drive resolution.
package tsconfig

import (
	"encoding/json"
	"strings"

	"bennypowers.dev/ponte/fs"
)

// ModuleResolutionKind selects the loader strategy for module names.
type ModuleResolutionKind string

const (
	// NodeResolution walks node_modules directories up the containing
	// file's directory chain.
	NodeResolution ModuleResolutionKind = "node"

	// ClassicResolution probes name-plus-extension up the directory chain
	// without consulting node_modules.
	ClassicResolution ModuleResolutionKind = "classic"
)

// CompilerOptions is the subset of compilerOptions relevant for resolution.
type CompilerOptions struct {
	Module           string              `json:"module,omitempty"`
	ModuleResolution string              `json:"moduleResolution,omitempty"`
	Target           string              `json:"target,omitempty"`
	BaseURL          string              `json:"baseUrl,omitempty"`
	Paths            map[string][]string `json:"paths,omitempty"`
	TypeRoots        []string            `json:"typeRoots,omitempty"`
	Types            []string            `json:"types,omitempty"`
	AllowJS          bool                `json:"allowJs,omitempty"`
	CheckJS          bool                `json:"checkJs,omitempty"`
	JSX              string              `json:"jsx,omitempty"`
	Strict           bool                `json:"strict,omitempty"`
}

// ResolutionKind returns the configured strategy, defaulting to node-style
// resolution when the field is absent or unrecognized.
func (o *CompilerOptions) ResolutionKind() ModuleResolutionKind {
	if o == nil {
		return NodeResolution
	}
	switch strings.ToLower(o.ModuleResolution) {
	case "classic":
		return ClassicResolution
	}
	return NodeResolution
}

// Clone returns a deep copy of the options.
func (o *CompilerOptions) Clone() *CompilerOptions {
	if o == nil {
		return nil
	}
	clone := *o
	if o.Paths != nil {
		clone.Paths = make(map[string][]string, len(o.Paths))
		for pattern, targets := range o.Paths {
			clone.Paths[pattern] = append([]string(nil), targets...)
		}
	}
	clone.TypeRoots = append([]string(nil), o.TypeRoots...)
	clone.Types = append([]string(nil), o.Types...)
	return &clone
}

// Config represents a tsconfig.json project file.
type Config struct {
	CompilerOptions CompilerOptions `json:"compilerOptions"`
	Files           []string        `json:"files,omitempty"`
	Include         []string        `json:"include,omitempty"`
	Exclude         []string        `json:"exclude,omitempty"`
}

// DefaultInclude is used when a config lists neither files nor include
// patterns.
var DefaultInclude = []string{"**/*"}

// DefaultExclude is always applied on top of configured excludes.
var DefaultExclude = []string{"node_modules/**", "bower_components/**", "jspm_packages/**"}

// Parse parses tsconfig.json data. Comments and trailing commas are
// tolerated, as they are in the editors this feeds.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(stripJSONC(data), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseFile parses a tsconfig.json file.
func ParseFile(fsys fs.FileSystem, path string) (*Config, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// IncludePatterns returns the effective include globs.
func (c *Config) IncludePatterns() []string {
	if len(c.Include) > 0 {
		return c.Include
	}
	if len(c.Files) > 0 {
		return nil
	}
	return DefaultInclude
}

// ExcludePatterns returns the effective exclude globs.
func (c *Config) ExcludePatterns() []string {
	return append(append([]string{}, c.Exclude...), DefaultExclude...)
}
