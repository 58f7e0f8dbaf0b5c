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

	"bennypowers.dev/ponte/internal/mapfs"
	"bennypowers.dev/ponte/lshost"
	"bennypowers.dev/ponte/platform"
	"bennypowers.dev/ponte/project"
	"bennypowers.dev/ponte/tsconfig"
)

// countingHost wraps a platform.Host and counts filesystem probes, so
// tests can tell a cache hit from a fresh resolution.
type countingHost struct {
	platform.Host
	probes int
}

func (c *countingHost) FileExists(path string) bool {
	c.probes++
	return c.Host.FileExists(path)
}

func (c *countingHost) ReadFile(path string) (string, bool) {
	c.probes++
	return c.Host.ReadFile(path)
}

type fixture struct {
	fsys     *mapfs.MapFileSystem
	counting *countingHost
	project  *project.Project
	host     *lshost.Host
}

func newFixture(t *testing.T, options *tsconfig.CompilerOptions) *fixture {
	t.Helper()
	fsys := mapfs.New()
	fsys.AddFile("/app/src/a.ts", `import "./b";`, 0o644)
	fsys.AddFile("/app/src/b.ts", `export const b = 1;`, 0o644)
	fsys.AddFile("/app/node_modules/left-pad/package.json", `{"main":"index.js","types":"index.d.ts"}`, 0o644)
	fsys.AddFile("/app/node_modules/left-pad/index.js", `module.exports = pad;`, 0o644)
	fsys.AddFile("/app/node_modules/left-pad/index.d.ts", `export default function pad(s: string, n: number): string;`, 0o644)
	fsys.AddFile("/app/node_modules/@types/node/index.d.ts", `declare var process: any;`, 0o644)

	counting := &countingHost{Host: platform.Virtual(fsys, "/app", true)}
	proj := project.New(counting, nil)
	return &fixture{
		fsys:     fsys,
		counting: counting,
		project:  proj,
		host:     lshost.New(counting, proj, options, nil),
	}
}

func TestResolveModuleNames(t *testing.T) {
	f := newFixture(t, nil)

	results := f.host.ResolveModuleNames([]string{"./b", "left-pad", "./missing"}, "/app/src/a.ts")
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0] == nil || results[0].FileName != "/app/src/b.ts" {
		t.Errorf("expected ./b -> /app/src/b.ts, got %+v", results[0])
	}
	if results[1] == nil || results[1].FileName != "/app/node_modules/left-pad/index.d.ts" {
		t.Errorf("expected left-pad -> index.d.ts, got %+v", results[1])
	}
	if !results[1].IsExternalLibraryImport {
		t.Error("expected left-pad to be an external library import")
	}
	if results[2] != nil {
		t.Errorf("expected ./missing to be unresolved, got %+v", results[2])
	}
}

func TestResolveTypeReferenceDirectives(t *testing.T) {
	f := newFixture(t, nil)

	results := f.host.ResolveTypeReferenceDirectives([]string{"node", "nonexistent"}, "/app/src/a.ts")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0] == nil || results[0].FileName != "/app/node_modules/@types/node/index.d.ts" {
		t.Errorf("expected node -> @types/node/index.d.ts, got %+v", results[0])
	}
	if !results[0].Primary {
		t.Error("expected @types lookup to be primary")
	}
	if results[1] != nil {
		t.Errorf("expected nonexistent to be unresolved, got %+v", results[1])
	}
}

func TestRepeatedResolveReusesCache(t *testing.T) {
	f := newFixture(t, nil)

	first := f.host.ResolveModuleNames([]string{"./b", "left-pad"}, "/app/src/a.ts")
	probesAfterFirst := f.counting.probes

	second := f.host.ResolveModuleNames([]string{"./b", "left-pad"}, "/app/src/a.ts")
	if f.counting.probes != probesAfterFirst {
		t.Errorf("second pass probed the filesystem %d times, want 0",
			f.counting.probes-probesAfterFirst)
	}
	if first[0] != second[0] || first[1] != second[1] {
		t.Error("expected cached results to be reused pointer-for-pointer")
	}
}

func TestDuplicateNamesResolvedOnce(t *testing.T) {
	f := newFixture(t, nil)

	results := f.host.ResolveModuleNames([]string{"./b", "./b", "./b"}, "/app/src/a.ts")
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0] != results[1] || results[1] != results[2] {
		t.Error("expected one record shared across duplicate positions")
	}
}

func TestFailedResolutionRetriedAfterFileAppears(t *testing.T) {
	f := newFixture(t, nil)

	results := f.host.ResolveModuleNames([]string{"./c"}, "/app/src/a.ts")
	if results[0] != nil {
		t.Fatalf("expected ./c to be unresolved, got %+v", results[0])
	}

	f.fsys.AddFile("/app/src/c.ts", `export {};`, 0o644)

	results = f.host.ResolveModuleNames([]string{"./c"}, "/app/src/a.ts")
	if results[0] == nil || results[0].FileName != "/app/src/c.ts" {
		t.Errorf("expected ./c to resolve after the file appeared, got %+v", results[0])
	}
}

func TestEntryReplacementDropsStaleNames(t *testing.T) {
	f := newFixture(t, nil)

	f.host.ResolveModuleNames([]string{"./b", "left-pad"}, "/app/src/a.ts")
	f.host.ResolveModuleNames([]string{"./b"}, "/app/src/a.ts")

	names := f.host.ModuleCache().Names("/app/src/a.ts")
	if !slices.Equal(names, []string{"./b"}) {
		t.Errorf("expected entry to hold only ./b, got %v", names)
	}
}

func TestSetCompilationSettingsClearsCaches(t *testing.T) {
	f := newFixture(t, nil)

	f.host.ResolveModuleNames([]string{"./b"}, "/app/src/a.ts")
	f.host.ResolveTypeReferenceDirectives([]string{"node"}, "/app/src/a.ts")

	f.host.SetCompilationSettings(&tsconfig.CompilerOptions{ModuleResolution: "classic"})
	if f.host.ModuleCache().Len() != 0 {
		t.Error("expected module cache to be cleared")
	}
	if f.host.TypeReferenceCache().Len() != 0 {
		t.Error("expected type-reference cache to be cleared")
	}

	// classic resolution cannot see node_modules packages
	results := f.host.ResolveModuleNames([]string{"left-pad"}, "/app/src/a.ts")
	if results[0] != nil {
		t.Errorf("expected left-pad to be unresolved under classic resolution, got %+v", results[0])
	}
}

func TestRemoveRootEvictsCacheEntries(t *testing.T) {
	f := newFixture(t, nil)

	info := f.project.AddRoot("/app/src/a.ts")
	if info == nil {
		t.Fatal("expected root to attach")
	}
	f.host.ResolveModuleNames([]string{"./b"}, "/app/src/a.ts")
	f.host.ResolveTypeReferenceDirectives([]string{"node"}, "/app/src/a.ts")

	f.host.RemoveRoot(info)

	if f.host.ModuleCache().Entry("/app/src/a.ts") != nil {
		t.Error("expected module cache entry to be evicted")
	}
	if f.host.TypeReferenceCache().Entry("/app/src/a.ts") != nil {
		t.Error("expected type-reference cache entry to be evicted")
	}
	if slices.Contains(f.host.GetScriptFileNames(), "/app/src/a.ts") {
		t.Error("expected file to leave the root set")
	}
}

func TestRemoveReferencedFileEvictsWhenClosed(t *testing.T) {
	f := newFixture(t, nil)

	info := f.project.GetOrCreateScriptInfo("/app/src/b.ts")
	f.host.ResolveModuleNames([]string{"./c"}, "/app/src/b.ts")

	f.host.RemoveReferencedFile(info)

	if f.host.ModuleCache().Entry("/app/src/b.ts") != nil {
		t.Error("expected cache entry to be evicted for closed file")
	}
	if f.project.GetScriptInfo("/app/src/b.ts") != nil {
		t.Error("expected file to leave tracking")
	}
}

func TestRemoveReferencedFileKeepsOpenFile(t *testing.T) {
	f := newFixture(t, nil)

	info := f.project.OpenFile("/app/src/b.ts", `export const b = 1;`)
	f.host.ResolveModuleNames([]string{"./a"}, "/app/src/b.ts")

	f.host.RemoveReferencedFile(info)

	if f.host.ModuleCache().Entry("/app/src/b.ts") == nil {
		t.Error("expected cache entry to survive for open file")
	}
	if f.project.GetScriptInfo("/app/src/b.ts") == nil {
		t.Error("expected open file to stay tracked")
	}
}

func TestScriptSurface(t *testing.T) {
	f := newFixture(t, nil)
	f.project.AddRoot("/app/src/a.ts")

	if got, ok := f.host.GetScriptSnapshot("/app/src/a.ts"); !ok || got != `import "./b";` {
		t.Errorf("unexpected snapshot %q ok=%v", got, ok)
	}
	if got := f.host.GetScriptVersion("/app/src/a.ts"); got != "1" {
		t.Errorf("expected version 1, got %q", got)
	}
	f.project.EditFile("/app/src/a.ts", `import "./b"; import "./c";`)
	if got := f.host.GetScriptVersion("/app/src/a.ts"); got != "2" {
		t.Errorf("expected version 2 after edit, got %q", got)
	}
	if got := f.host.GetScriptKind("/app/src/a.ts"); got != project.KindTS {
		t.Errorf("expected ts kind, got %v", got)
	}
	if got := f.host.GetScriptVersion("/app/src/unknown.ts"); got != "" {
		t.Errorf("expected empty version for untracked file, got %q", got)
	}
}

func TestGetDefaultLibFileName(t *testing.T) {
	fsys := mapfs.New()
	p := platform.Virtual(fsys, "/app", true).WithExecutingFilePath("/opt/ponte/bin/ponte")
	proj := project.New(p, nil)

	host := lshost.New(p, proj, &tsconfig.CompilerOptions{Target: "ES2020"}, nil)
	if got := host.GetDefaultLibFileName(); got != "/opt/ponte/bin/lib.es2020.d.ts" {
		t.Errorf("unexpected default lib %q", got)
	}

	host.SetCompilationSettings(nil)
	if got := host.GetDefaultLibFileName(); got != "/opt/ponte/bin/lib.d.ts" {
		t.Errorf("unexpected default lib %q", got)
	}
}

func TestProjectVersionAdvances(t *testing.T) {
	f := newFixture(t, nil)

	before := f.host.GetProjectVersion()
	f.project.AddRoot("/app/src/a.ts")
	if f.host.GetProjectVersion() == before {
		t.Error("expected project version to advance after adding a root")
	}
}
