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
package typeref_test

import (
	"testing"

	"bennypowers.dev/ponte/internal/mapfs"
	"bennypowers.dev/ponte/platform"
	"bennypowers.dev/ponte/resolver/typeref"
	"bennypowers.dev/ponte/tsconfig"
)

func typesFS() *mapfs.MapFileSystem {
	fsys := mapfs.New()
	fsys.AddFile("/app/src/a.ts", "", 0o644)
	fsys.AddFile("/app/node_modules/@types/node/index.d.ts", "", 0o644)
	fsys.AddFile("/app/node_modules/@types/jest/package.json", `{"types":"build/index.d.ts"}`, 0o644)
	fsys.AddFile("/app/node_modules/@types/jest/build/index.d.ts", "", 0o644)
	fsys.AddFile("/app/node_modules/bundled/package.json", `{"types":"dist/types.d.ts"}`, 0o644)
	fsys.AddFile("/app/node_modules/bundled/dist/types.d.ts", "", 0o644)
	fsys.AddFile("/app/typings/custom/index.d.ts", "", 0o644)
	return fsys
}

func newResolver(options *tsconfig.CompilerOptions) *typeref.Resolver {
	return typeref.New(platform.Virtual(typesFS(), "/app", true), options, nil)
}

func TestPrimaryAtTypesLookup(t *testing.T) {
	r := newResolver(nil)

	record := r.Resolve("node", "/app/src/a.ts")
	if record.Resolved == nil || record.Resolved.FileName != "/app/node_modules/@types/node/index.d.ts" {
		t.Fatalf("expected @types/node index, got %+v", record.Resolved)
	}
	if !record.Resolved.Primary {
		t.Error("expected primary resolution")
	}
}

func TestPrimaryHonorsPackageJSONTypes(t *testing.T) {
	r := newResolver(nil)

	record := r.Resolve("jest", "/app/src/a.ts")
	if record.Resolved == nil || record.Resolved.FileName != "/app/node_modules/@types/jest/build/index.d.ts" {
		t.Errorf("expected package.json types entry, got %+v", record.Resolved)
	}
}

func TestSecondaryBundledDeclarations(t *testing.T) {
	r := newResolver(nil)

	record := r.Resolve("bundled", "/app/src/a.ts")
	if record.Resolved == nil || record.Resolved.FileName != "/app/node_modules/bundled/dist/types.d.ts" {
		t.Fatalf("expected bundled declarations, got %+v", record.Resolved)
	}
	if record.Resolved.Primary {
		t.Error("expected secondary resolution")
	}
}

func TestConfiguredTypeRoots(t *testing.T) {
	r := newResolver(&tsconfig.CompilerOptions{TypeRoots: []string{"typings"}})

	record := r.Resolve("custom", "/app/src/a.ts")
	if record.Resolved == nil || record.Resolved.FileName != "/app/typings/custom/index.d.ts" {
		t.Fatalf("expected configured type root lookup, got %+v", record.Resolved)
	}
	if !record.Resolved.Primary {
		t.Error("expected primary resolution from configured root")
	}

	// configured roots replace the @types default
	record = r.Resolve("node", "/app/src/a.ts")
	if record.Resolved != nil && record.Resolved.Primary {
		t.Error("expected @types default to be replaced by configured roots")
	}
}

func TestUnresolvedDirectiveRecordsProbes(t *testing.T) {
	r := newResolver(nil)

	record := r.Resolve("missing", "/app/src/a.ts")
	if record.Resolved != nil {
		t.Fatalf("expected failure, got %+v", record.Resolved)
	}
	if record.Reusable() != (len(record.FailedLookupLocations) == 0) {
		t.Error("reusability must track recorded probes")
	}
}
