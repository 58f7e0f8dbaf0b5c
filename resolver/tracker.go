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
package resolver

import "bennypowers.dev/ponte/platform"

// Tracker wraps a platform.Host and records every file probe that missed.
// Loaders create one Tracker per attempt; the accumulated misses become the
// record's failed lookup locations, which is what the cache validator uses
// to decide whether a failed attempt may be reused.
type Tracker struct {
	host   platform.Host
	failed []string
}

// NewTracker creates a Tracker over the given host.
func NewTracker(host platform.Host) *Tracker {
	return &Tracker{host: host}
}

// FileExists probes for a file, recording the location on a miss.
func (t *Tracker) FileExists(path string) bool {
	if t.host.FileExists(path) {
		return true
	}
	t.failed = append(t.failed, path)
	return false
}

// DirectoryExists probes for a directory. Directory misses are not
// recorded; only file candidates count as lookup locations.
func (t *Tracker) DirectoryExists(path string) bool {
	return t.host.DirectoryExists(path)
}

// ReadFile reads a file through the host, recording the location when the
// file is absent.
func (t *Tracker) ReadFile(path string) (string, bool) {
	contents, ok := t.host.ReadFile(path)
	if !ok {
		t.failed = append(t.failed, path)
	}
	return contents, ok
}

// Failed returns the locations probed and found empty, in probe order.
func (t *Tracker) Failed() []string {
	return t.failed
}
