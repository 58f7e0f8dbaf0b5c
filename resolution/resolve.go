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
package resolution

import "fmt"

// Loader performs the actual filesystem probing for one namespace. A
// loader must always return a non-nil Record; an unresolvable name is
// expressed as a record with a nil Resolved field, not as an error.
type Loader[T any] interface {
	Resolve(name, containingFile string) *Record[T]
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc[T any] func(name, containingFile string) *Record[T]

// Resolve implements Loader.
func (f LoaderFunc[T]) Resolve(name, containingFile string) *Record[T] {
	return f(name, containingFile)
}

// ResolveNames runs one resolution pass: it resolves the ordered name list
// requested by containingFile, reusing cached records where Reusable allows
// and delegating the rest to loader, then atomically replaces the file's
// cache entry with exactly the records of this pass.
//
// key must be the canonical form of containingFile. names may contain
// duplicates; the loader runs at most once per distinct name per pass, and
// the output preserves order position-for-position, repeats included.
// extract projects each record onto the externally visible result.
func ResolveNames[T, R any](
	cache *Cache[T],
	names []string,
	containingFile, key string,
	loader Loader[T],
	extract func(*Record[T]) R,
) []R {
	previous := cache.Entry(key)

	pass := make(map[string]*Record[T], len(names))
	results := make([]R, 0, len(names))

	for _, name := range names {
		record, seen := pass[name]
		if !seen {
			if prior, hit := previous[name]; hit && prior.Reusable() {
				record = prior
			} else {
				record = loader.Resolve(name, containingFile)
			}
			if record == nil {
				// A pass must end with a record for every requested name.
				// Returning an absent result here would be indistinguishable
				// from a legitimate resolution failure and hide the defect.
				panic(fmt.Sprintf("resolution: no record produced for %q in %s", name, containingFile))
			}
			pass[name] = record
		}
		results = append(results, extract(record))
	}

	cache.SetEntry(key, pass)
	return results
}
