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
package scan_test

import (
	"slices"
	"testing"

	"bennypowers.dev/ponte/scan"
)

func TestExtractImports(t *testing.T) {
	source := []byte(`import { html } from "lit";
import "./styles.js";
export { helper } from "../shared/helper";
const mod = await import("./lazy.js");
const legacy = require("legacy-pkg");
`)

	imports, err := scan.ExtractImports(source)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"lit", "./styles.js", "../shared/helper", "./lazy.js", "legacy-pkg"}
	if got := scan.Specifiers(imports); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	for _, imp := range imports {
		dynamic := imp.Specifier == "./lazy.js"
		if imp.IsDynamic != dynamic {
			t.Errorf("%q: IsDynamic = %v, want %v", imp.Specifier, imp.IsDynamic, dynamic)
		}
	}
	if imports[0].Line != 1 || imports[1].Line != 2 {
		t.Errorf("unexpected lines %d, %d", imports[0].Line, imports[1].Line)
	}
}

func TestExtractImportsEmpty(t *testing.T) {
	imports, err := scan.ExtractImports([]byte(`const x = 1;`))
	if err != nil {
		t.Fatal(err)
	}
	if len(imports) != 0 {
		t.Errorf("expected no imports, got %v", imports)
	}
}

func TestExtractReferences(t *testing.T) {
	source := []byte(`/// <reference types="node" />
/// <reference path="./legacy.d.ts" />
/// <reference lib="es2020" />
// not a directive
import "lit";
`)

	refs, err := scan.ExtractReferences(source)
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 3 {
		t.Fatalf("expected 3 references, got %v", refs)
	}
	if refs[0].Kind != scan.ReferenceTypes || refs[0].Name != "node" || refs[0].Line != 1 {
		t.Errorf("unexpected first reference %+v", refs[0])
	}
	if refs[1].Kind != scan.ReferencePath || refs[1].Name != "./legacy.d.ts" {
		t.Errorf("unexpected second reference %+v", refs[1])
	}
	if refs[2].Kind != scan.ReferenceLib || refs[2].Name != "es2020" {
		t.Errorf("unexpected third reference %+v", refs[2])
	}

	if got := scan.TypeDirectives(refs); !slices.Equal(got, []string{"node"}) {
		t.Errorf("unexpected type directives %v", got)
	}
}
