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
package trace

import (
	"sort"
	"strings"
)

// Report is the serializable summary of a trace.
type Report struct {
	Entrypoints    []string          `json:"entrypoints"`
	Modules        []string          `json:"modules"`
	Resolutions    map[string]string `json:"resolutions"`
	TypeReferences map[string]string `json:"type_references,omitempty"`
	BareSpecifiers []string          `json:"bare_specifiers,omitempty"`
	Unresolved     []Unresolved      `json:"unresolved,omitempty"`
	Errors         []string          `json:"errors,omitempty"`
}

// BuildReport flattens a graph into its serializable form. Paths are
// relativized against root when they fall under it, for portable output.
func BuildReport(g *Graph, root string) *Report {
	relativize := func(p string) string {
		if root != "" && strings.HasPrefix(p, root+"/") {
			return strings.TrimPrefix(p, root+"/")
		}
		return p
	}

	report := &Report{
		Resolutions:    make(map[string]string),
		TypeReferences: make(map[string]string),
		BareSpecifiers: g.BareSpecifiers(),
		Unresolved:     g.Unresolved,
	}

	for _, ep := range g.Entrypoints {
		report.Entrypoints = append(report.Entrypoints, relativize(ep))
	}
	for _, p := range g.Files() {
		report.Modules = append(report.Modules, relativize(p))
	}
	for _, mod := range g.Modules {
		for specifier, target := range mod.Resolutions {
			report.Resolutions[specifier] = relativize(target)
		}
		for directive, target := range mod.TypeResolutions {
			report.TypeReferences[directive] = relativize(target)
		}
	}
	for i := range report.Unresolved {
		report.Unresolved[i].File = relativize(report.Unresolved[i].File)
	}
	for _, err := range g.Errors {
		report.Errors = append(report.Errors, err.Error())
	}
	sort.Strings(report.Errors)

	if len(report.TypeReferences) == 0 {
		report.TypeReferences = nil
	}
	return report
}
