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
// Package resolution implements the per-file resolution cache that lets an
// incremental language service reuse module-specifier and
// type-reference-directive lookups across edits instead of re-probing the
// filesystem on every request.
package resolution

// Record is the outcome of one resolution attempt for one name in one
// containing file: the resolved payload, if any, plus every location that
// was probed and found empty along the way. A resolution attempt always
// yields a Record, even on total failure.
type Record[T any] struct {
	// Resolved is the successfully resolved artifact, or nil when the name
	// did not resolve.
	Resolved *T

	// FailedLookupLocations lists the paths probed during this attempt that
	// did not yield the target, in probe order. Empty when resolution had no
	// candidate locations to try.
	FailedLookupLocations []string
}

// Reusable reports whether the record may be trusted without re-running the
// loader. A prior success is always reused. A failure is reused only when
// resolution had nowhere to look: re-probing zero locations cannot change
// the outcome. A failure that probed at least one location must be
// recomputed, since a file appearing in any of them could flip the result.
func (r *Record[T]) Reusable() bool {
	return r.Resolved != nil || len(r.FailedLookupLocations) == 0
}
