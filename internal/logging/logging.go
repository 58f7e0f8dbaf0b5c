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
// Package logging adapts the CLI logger to the interface resolution
// consumes.
package logging

import (
	"os"

	"github.com/charmbracelet/log"
)

// Adapter implements resolver.Logger on top of a charmbracelet logger.
type Adapter struct {
	logger *log.Logger
}

// New creates an Adapter writing to stderr. Debug output is suppressed
// unless verbose is set.
func New(verbose bool) *Adapter {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return &Adapter{logger: logger}
}

// Warning logs at warn level.
func (a *Adapter) Warning(format string, args ...any) {
	a.logger.Warnf(format, args...)
}

// Debug logs at debug level.
func (a *Adapter) Debug(format string, args ...any) {
	a.logger.Debugf(format, args...)
}
