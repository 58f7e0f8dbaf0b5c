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
package lshost_test

import (
	"slices"
	"testing"

	"bennypowers.dev/ponte/lshost"
	"bennypowers.dev/ponte/platform"
	"bennypowers.dev/ponte/testutil"
)

func TestOpenSession(t *testing.T) {
	fsys := testutil.NewFixtureFS(t, "project/simple", "/app")
	host := platform.Virtual(fsys, "/app", true)

	session, err := lshost.Open(fsys, host, "/app", nil)
	if err != nil {
		t.Fatal(err)
	}

	roots := session.Host.GetScriptFileNames()
	want := []string{"/app/src/main.ts", "/app/src/util.ts"}
	if !slices.Equal(roots, want) {
		t.Errorf("got roots %v, want %v", roots, want)
	}

	if got := session.Host.GetCompilationSettings().Target; got != "es2020" {
		t.Errorf("expected target es2020, got %q", got)
	}

	results := session.Host.ResolveModuleNames([]string{"./util", "lit"}, "/app/src/main.ts")
	if results[0] == nil || results[0].FileName != "/app/src/util.ts" {
		t.Errorf("expected ./util to resolve, got %+v", results[0])
	}
	if results[1] == nil || results[1].FileName != "/app/node_modules/lit/index.d.ts" {
		t.Errorf("expected lit to resolve, got %+v", results[1])
	}
}

func TestOpenSessionWithoutConfig(t *testing.T) {
	fsys := testutil.NewFixtureFS(t, "project/simple", "/bare")
	if err := fsys.Remove("/bare/tsconfig.json"); err != nil {
		t.Fatal(err)
	}
	host := platform.Virtual(fsys, "/bare", true)

	session, err := lshost.Open(fsys, host, "/bare", nil)
	if err != nil {
		t.Fatal(err)
	}

	// default include picks up everything supported, node_modules excluded
	roots := session.Host.GetScriptFileNames()
	if slices.ContainsFunc(roots, func(r string) bool {
		return r == "/bare/node_modules/lit/index.d.ts"
	}) {
		t.Errorf("expected node_modules excluded, got %v", roots)
	}
	if !slices.Contains(roots, "/bare/src/main.ts") {
		t.Errorf("expected src/main.ts in %v", roots)
	}
}
