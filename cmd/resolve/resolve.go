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

// Package resolve provides the resolve command for ponte.
package resolve

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/ponte/fs"
	"bennypowers.dev/ponte/internal/logging"
	"bennypowers.dev/ponte/internal/output"
	"bennypowers.dev/ponte/lshost"
	"bennypowers.dev/ponte/paths"
	"bennypowers.dev/ponte/platform"
)

// Resolution is the JSON shape of one resolved name.
type Resolution struct {
	Name             string `json:"name"`
	Resolved         bool   `json:"resolved"`
	ResolvedFileName string `json:"resolved_file_name,omitempty"`
	External         bool   `json:"external,omitempty"`
	Primary          bool   `json:"primary,omitempty"`
}

// Result is the JSON output of the resolve command.
type Result struct {
	ContainingFile string       `json:"containing_file"`
	Resolutions    []Resolution `json:"resolutions"`
}

// Cmd is the resolve command: it resolves module specifiers or
// type-reference directives the way the language service would.
var Cmd = &cobra.Command{
	Use:   "resolve <containing-file> <specifier>...",
	Short: "Resolve module specifiers from a containing file",
	Long: `Resolve module specifiers against the project configuration, the way
an editor's language service would: relative paths with extension probing,
baseUrl/paths mapping, and node_modules lookup with @types fallback.`,
	Example: `  # Resolve an import as seen from src/main.ts
  ponte resolve src/main.ts lit ./util

  # Resolve type-reference directives instead
  ponte resolve --types src/main.ts node

  # Use an explicit project directory
  ponte resolve -p packages/app src/main.ts @shared/button`,
	Args: cobra.MinimumNArgs(2),
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("types", false, "Resolve names as type-reference directives")
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()
	logger := logging.New(viper.GetBool("verbose"))

	rootDir, err := filepath.Abs(viper.GetString("project"))
	if err != nil {
		return fmt.Errorf("invalid project directory: %w", err)
	}

	host := platform.System(osfs).WithCurrentDirectory(rootDir)
	session, err := lshost.Open(osfs, host, rootDir, logger)
	if err != nil {
		return err
	}

	containingFile, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid containing file %q: %w", args[0], err)
	}
	containingFile = paths.Normalize(containingFile)
	names := args[1:]

	result := &Result{ContainingFile: containingFile}

	asTypes, _ := cmd.Flags().GetBool("types")
	if asTypes {
		for i, resolved := range session.Host.ResolveTypeReferenceDirectives(names, containingFile) {
			res := Resolution{Name: names[i]}
			if resolved != nil {
				res.Resolved = true
				res.ResolvedFileName = resolved.FileName
				res.Primary = resolved.Primary
			}
			result.Resolutions = append(result.Resolutions, res)
		}
	} else {
		for i, resolved := range session.Host.ResolveModuleNames(names, containingFile) {
			res := Resolution{Name: names[i]}
			if resolved != nil {
				res.Resolved = true
				res.ResolvedFileName = resolved.FileName
				res.External = resolved.IsExternalLibraryImport
			}
			result.Resolutions = append(result.Resolutions, res)
		}
	}

	return output.JSON(osfs, result)
}
