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

import (
	"sort"
	"sync"
)

// Cache maps canonical file paths to the records of each file's most recent
// resolution pass. One instance exists per namespace (module names,
// type-reference directives). Entries are replaced wholesale by the pass
// executor and evicted by lifecycle events; no history is kept.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]map[string]*Record[T]
}

// NewCache creates an empty resolution cache.
func NewCache[T any]() *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]map[string]*Record[T]),
	}
}

// Entry returns the per-file entry for the canonical key, or nil if the
// file has not been resolved yet. Callers must treat the returned map as
// read-only; the executor replaces it rather than mutating it.
func (c *Cache[T]) Entry(key string) map[string]*Record[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[key]
}

// Lookup returns the record for one name in one file's entry.
func (c *Cache[T]) Lookup(key, name string) (*Record[T], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	record, ok := c.entries[key][name]
	return record, ok
}

// SetEntry replaces the per-file entry in its entirety. Names present in
// the old entry but not in the new one are dropped, which bounds memory to
// the file's live imports.
func (c *Cache[T]) SetEntry(key string, entry map[string]*Record[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
}

// Remove evicts one file's entry.
func (c *Cache[T]) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear drops every entry, keeping the cache itself usable.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]map[string]*Record[T])
}

// Len returns the number of files with a cached entry.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Names returns the sorted names recorded in one file's entry.
func (c *Cache[T]) Names(key string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry := c.entries[key]
	names := make([]string, 0, len(entry))
	for name := range entry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
