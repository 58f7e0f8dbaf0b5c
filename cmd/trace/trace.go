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

// Package trace provides the trace command for ponte.
package trace

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/ponte/fs"
	"bennypowers.dev/ponte/internal/logging"
	"bennypowers.dev/ponte/internal/output"
	"bennypowers.dev/ponte/lshost"
	"bennypowers.dev/ponte/paths"
	"bennypowers.dev/ponte/platform"
	"bennypowers.dev/ponte/trace"
)

// Cmd is the trace command: it walks the module graph from one or more
// entrypoints, resolving every import through the shared resolution cache.
var Cmd = &cobra.Command{
	Use:   "trace [entry.ts...]",
	Short: "Trace module graphs from TypeScript entrypoints",
	Long: `Trace the transitive module graph reachable from the given entrypoints.
Every import and reference directive is resolved through the language-service
host, so shared files are only resolved once across entrypoints.`,
	Example: `  # Trace a single entrypoint
  ponte trace src/main.ts

  # Trace everything matching a glob
  ponte trace --glob "src/**/*.ts"

  # Follow imports into node_modules packages
  ponte trace src/main.ts --external`,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("external", false, "Follow imports into node_modules packages")
	Cmd.Flags().String("glob", "", "Glob pattern to match entrypoints (e.g., \"src/**/*.ts\")")
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()
	logger := logging.New(viper.GetBool("verbose"))

	rootDir, err := filepath.Abs(viper.GetString("project"))
	if err != nil {
		return fmt.Errorf("invalid project directory: %w", err)
	}

	// Collect entrypoints from args and glob pattern, deduplicating
	seen := make(map[string]struct{})
	var files []string

	add := func(name string) error {
		absPath, err := filepath.Abs(name)
		if err != nil {
			return fmt.Errorf("invalid file path %q: %w", name, err)
		}
		absPath = paths.Normalize(absPath)
		if _, exists := seen[absPath]; !exists {
			seen[absPath] = struct{}{}
			files = append(files, absPath)
		}
		return nil
	}

	for _, arg := range args {
		if err := add(arg); err != nil {
			return err
		}
	}

	globPattern, _ := cmd.Flags().GetString("glob")
	if globPattern != "" {
		matches, err := doublestar.FilepathGlob(globPattern)
		if err != nil {
			return fmt.Errorf("invalid glob pattern: %w", err)
		}
		for _, match := range matches {
			if err := add(match); err != nil {
				return err
			}
		}
	}

	if len(files) == 0 {
		return fmt.Errorf("no entrypoints to trace: provide file arguments or use --glob")
	}

	host := platform.System(osfs).WithCurrentDirectory(rootDir)
	session, err := lshost.Open(osfs, host, rootDir, logger)
	if err != nil {
		return err
	}

	tracer := trace.NewTracer(session.Host)
	if external, _ := cmd.Flags().GetBool("external"); external {
		tracer = tracer.WithExternal()
	}

	var reports []*trace.Report
	for _, file := range files {
		graph, err := tracer.TraceModule(file)
		if err != nil {
			return fmt.Errorf("tracing %s: %w", file, err)
		}
		reports = append(reports, trace.BuildReport(graph, session.Root))
	}

	if len(reports) == 1 {
		return output.JSON(osfs, reports[0])
	}
	return output.JSON(osfs, reports)
}
