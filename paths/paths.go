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
// Package paths provides canonical path keys for resolution caches.
package paths

import (
	"path"
	"strings"
)

// Canonical maps a file name to the key used by the per-file resolution
// caches. Two names that denote the same file on disk (modulo separators,
// dot segments, and case when the host is case-insensitive) map to the same
// key. Relative names are anchored at cwd. Pure function; malformed input
// is normalized as far as possible and passed through.
func Canonical(fileName, cwd string, caseSensitive bool) string {
	key := Normalize(fileName)
	if !path.IsAbs(key) && !hasDrivePrefix(key) {
		key = path.Join(Normalize(cwd), key)
	}
	key = path.Clean(key)
	if !caseSensitive {
		key = strings.ToLower(key)
	}
	return key
}

// Normalize converts platform separators to forward slashes.
func Normalize(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// hasDrivePrefix reports whether p starts with a Windows drive letter,
// which makes it rooted even though path.IsAbs says otherwise.
func hasDrivePrefix(p string) bool {
	return len(p) >= 2 && p[1] == ':' && isASCIILetter(p[0])
}

func isASCIILetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
