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

// Package scan provides the scan command for ponte.
package scan

import (
	"fmt"

	"github.com/spf13/cobra"

	"bennypowers.dev/ponte/fs"
	"bennypowers.dev/ponte/internal/output"
	"bennypowers.dev/ponte/scan"
)

// FileResult is the JSON shape of one scanned file.
type FileResult struct {
	File       string              `json:"file"`
	Imports    []scan.ModuleImport `json:"imports,omitempty"`
	References []scan.Reference    `json:"references,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// Cmd is the scan command: it lists the resolution requests of source
// files without resolving them.
var Cmd = &cobra.Command{
	Use:   "scan <file.ts...>",
	Short: "List the imports and reference directives of source files",
	Example: `  # Show what src/main.ts asks the resolver for
  ponte scan src/main.ts`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()

	var results []FileResult
	for _, file := range args {
		result := FileResult{File: file}
		content, err := osfs.ReadFile(file)
		if err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		imports, err := scan.ExtractImports(content)
		if err != nil {
			result.Error = fmt.Sprintf("parsing: %v", err)
			results = append(results, result)
			continue
		}
		references, err := scan.ExtractReferences(content)
		if err != nil {
			result.Error = fmt.Sprintf("parsing: %v", err)
			results = append(results, result)
			continue
		}
		result.Imports = imports
		result.References = references
		results = append(results, result)
	}

	if len(results) == 1 {
		return output.JSON(osfs, results[0])
	}
	return output.JSON(osfs, results)
}
