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
// Package resolver provides the shared vocabulary for module and
// type-reference loader strategies.
package resolver

import "strings"

// ResolvedModule is the externally visible result of module-name resolution.
type ResolvedModule struct {
	// FileName is the resolved file, slash-normalized.
	FileName string

	// IsExternalLibraryImport is true when the module was found under a
	// node_modules directory.
	IsExternalLibraryImport bool
}

// ResolvedTypeReference is the externally visible result of resolving a
// type-reference directive.
type ResolvedTypeReference struct {
	// FileName is the resolved declaration file, slash-normalized.
	FileName string

	// Primary is true when the directive was found in a configured type
	// root rather than via the secondary node_modules lookup.
	Primary bool
}

// Logger is an interface for logging messages during resolution.
type Logger interface {
	Warning(format string, args ...any)
	Debug(format string, args ...any)
}

// TypeScriptExtensions are the extensions probed for TypeScript sources,
// in priority order.
var TypeScriptExtensions = []string{".ts", ".tsx", ".d.ts"}

// JavaScriptExtensions are additionally probed when allowJs is on.
var JavaScriptExtensions = []string{".js", ".jsx"}

// SupportedExtensions returns the probe order for the given settings.
func SupportedExtensions(allowJS bool) []string {
	if allowJS {
		return append(append([]string{}, TypeScriptExtensions...), JavaScriptExtensions...)
	}
	return TypeScriptExtensions
}

// HasSupportedExtension reports whether the path already ends in one of the
// extensions resolution understands.
func HasSupportedExtension(p string, allowJS bool) bool {
	for _, ext := range SupportedExtensions(allowJS) {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}

// IsRelativeSpecifier reports whether the specifier is relative to the
// containing file ("./x", "../x") or rooted ("/x", "c:/x").
func IsRelativeSpecifier(specifier string) bool {
	if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") {
		return true
	}
	if strings.HasPrefix(specifier, "/") {
		return true
	}
	// Windows drive prefix
	if len(specifier) >= 2 && specifier[1] == ':' {
		return true
	}
	return false
}

// IsBareSpecifier reports whether the specifier names a package rather
// than a path, so it must be resolved through lookup locations.
func IsBareSpecifier(specifier string) bool {
	if specifier == "" {
		return false
	}
	if IsRelativeSpecifier(specifier) {
		return false
	}
	// URL schemes are not resolvable from disk
	if strings.Contains(specifier, "://") {
		return false
	}
	return true
}

// PackageName extracts the package name from a bare specifier.
// e.g. "lit/decorators.js" -> "lit", "@scope/pkg/util" -> "@scope/pkg".
func PackageName(specifier string) string {
	if strings.HasPrefix(specifier, "@") {
		parts := strings.SplitN(specifier, "/", 3)
		if len(parts) >= 2 {
			return parts[0] + "/" + parts[1]
		}
		return specifier
	}
	if idx := strings.Index(specifier, "/"); idx > 0 {
		return specifier[:idx]
	}
	return specifier
}
