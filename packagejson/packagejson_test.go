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
package packagejson_test

import (
	"errors"
	"reflect"
	"testing"

	"bennypowers.dev/ponte/packagejson"
)

func TestParseDeclarationFields(t *testing.T) {
	pkg, err := packagejson.Parse([]byte(`{
		"name": "lit",
		"version": "3.0.0",
		"main": "index.js",
		"types": "./index.d.ts"
	}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if pkg.TypesEntry() != "index.d.ts" {
		t.Errorf("TypesEntry = %q, want index.d.ts", pkg.TypesEntry())
	}
}

func TestTypesWinsOverTypings(t *testing.T) {
	pkg := &packagejson.PackageJSON{Types: "./dist/a.d.ts", Typings: "./legacy.d.ts"}
	if pkg.TypesEntry() != "dist/a.d.ts" {
		t.Errorf("TypesEntry = %q, want dist/a.d.ts", pkg.TypesEntry())
	}
	pkg = &packagejson.PackageJSON{Typings: "./legacy.d.ts"}
	if pkg.TypesEntry() != "legacy.d.ts" {
		t.Errorf("TypesEntry = %q, want legacy.d.ts", pkg.TypesEntry())
	}
}

func TestEntryPointsPriority(t *testing.T) {
	pkg, err := packagejson.Parse([]byte(`{
		"name": "pkg",
		"main": "./index.js",
		"module": "./index.mjs",
		"types": "./index.d.ts",
		"exports": { ".": { "types": "./dist/index.d.ts", "default": "./dist/index.js" } }
	}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got := pkg.EntryPoints(nil)
	want := []string{"dist/index.d.ts", "index.d.ts", "index.mjs", "index.js"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EntryPoints = %v, want %v", got, want)
	}
}

func TestResolveExportString(t *testing.T) {
	pkg := &packagejson.PackageJSON{Exports: "./main.js"}
	got, err := pkg.ResolveExport(".", nil)
	if err != nil || got != "main.js" {
		t.Errorf("ResolveExport(.) = %q, %v; want main.js", got, err)
	}
	if _, err := pkg.ResolveExport("./sub", nil); !errors.Is(err, packagejson.ErrNotExported) {
		t.Errorf("string exports should not cover subpaths, got %v", err)
	}
}

func TestResolveExportConditions(t *testing.T) {
	pkg, err := packagejson.Parse([]byte(`{
		"exports": { "types": "./index.d.ts", "import": "./index.js" }
	}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got, err := pkg.ResolveExport(".", nil)
	if err != nil || got != "index.d.ts" {
		t.Errorf("ResolveExport = %q, %v; want index.d.ts (types condition first)", got, err)
	}

	got, err = pkg.ResolveExport(".", &packagejson.ResolveOptions{Conditions: []string{"import"}})
	if err != nil || got != "index.js" {
		t.Errorf("ResolveExport with custom conditions = %q, %v; want index.js", got, err)
	}
}

func TestResolveExportSubpath(t *testing.T) {
	pkg, err := packagejson.Parse([]byte(`{
		"exports": {
			".": "./index.js",
			"./decorators": { "types": "./decorators.d.ts", "default": "./decorators.js" }
		}
	}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got, err := pkg.ResolveExport("./decorators", nil)
	if err != nil || got != "decorators.d.ts" {
		t.Errorf("ResolveExport(./decorators) = %q, %v", got, err)
	}
	if _, err := pkg.ResolveExport("./secret", nil); !errors.Is(err, packagejson.ErrNotExported) {
		t.Errorf("unlisted subpath should not resolve, got %v", err)
	}
}

func TestResolveExportFallbackArray(t *testing.T) {
	pkg, err := packagejson.Parse([]byte(`{
		"exports": { ".": [{ "unknown-condition": "./nope.js" }, "./fallback.js"] }
	}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got, err := pkg.ResolveExport(".", nil)
	if err != nil || got != "fallback.js" {
		t.Errorf("ResolveExport fallback array = %q, %v; want fallback.js", got, err)
	}
}

func TestNoExports(t *testing.T) {
	pkg := &packagejson.PackageJSON{Main: "index.js"}
	if _, err := pkg.ResolveExport(".", nil); !errors.Is(err, packagejson.ErrNotExported) {
		t.Errorf("ResolveExport without exports field = %v, want ErrNotExported", err)
	}
	got := pkg.EntryPoints(nil)
	if !reflect.DeepEqual(got, []string{"index.js"}) {
		t.Errorf("EntryPoints = %v, want [index.js]", got)
	}
}
