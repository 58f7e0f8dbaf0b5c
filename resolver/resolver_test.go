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
package resolver_test

import (
	"slices"
	"testing"

	"bennypowers.dev/ponte/internal/mapfs"
	"bennypowers.dev/ponte/platform"
	"bennypowers.dev/ponte/resolver"
)

func TestSpecifierClassification(t *testing.T) {
	for _, tt := range []struct {
		specifier string
		relative  bool
		bare      bool
	}{
		{"./a", true, false},
		{"../a", true, false},
		{"/abs/a", true, false},
		{"c:/abs/a", true, false},
		{"lit", false, true},
		{"@scope/pkg", false, true},
		{"lit/decorators.js", false, true},
		{"https://esm.sh/lit", false, false},
		{"", false, false},
	} {
		if got := resolver.IsRelativeSpecifier(tt.specifier); got != tt.relative {
			t.Errorf("IsRelativeSpecifier(%q) = %v, want %v", tt.specifier, got, tt.relative)
		}
		if got := resolver.IsBareSpecifier(tt.specifier); got != tt.bare {
			t.Errorf("IsBareSpecifier(%q) = %v, want %v", tt.specifier, got, tt.bare)
		}
	}
}

func TestPackageName(t *testing.T) {
	for _, tt := range []struct{ specifier, want string }{
		{"lit", "lit"},
		{"lit/decorators.js", "lit"},
		{"@scope/pkg", "@scope/pkg"},
		{"@scope/pkg/util", "@scope/pkg"},
	} {
		if got := resolver.PackageName(tt.specifier); got != tt.want {
			t.Errorf("PackageName(%q) = %q, want %q", tt.specifier, got, tt.want)
		}
	}
}

func TestSupportedExtensions(t *testing.T) {
	if got := resolver.SupportedExtensions(false); !slices.Equal(got, []string{".ts", ".tsx", ".d.ts"}) {
		t.Errorf("unexpected extensions %v", got)
	}
	if got := resolver.SupportedExtensions(true); !slices.Contains(got, ".js") {
		t.Errorf("expected .js with allowJs, got %v", got)
	}
	if resolver.HasSupportedExtension("a.css", true) {
		t.Error("css must not be a supported extension")
	}
}

func TestTrackerRecordsMisses(t *testing.T) {
	fsys := mapfs.New()
	fsys.AddFile("/app/hit.ts", "", 0o644)
	fsys.AddFile("/app/dir/.keep", "", 0o644)
	tracker := resolver.NewTracker(platform.Virtual(fsys, "/app", true))

	if !tracker.FileExists("/app/hit.ts") {
		t.Error("expected hit")
	}
	if tracker.FileExists("/app/miss.ts") {
		t.Error("expected miss")
	}
	if _, ok := tracker.ReadFile("/app/absent.json"); ok {
		t.Error("expected read miss")
	}
	tracker.DirectoryExists("/app/nodir") // not recorded

	want := []string{"/app/miss.ts", "/app/absent.json"}
	if got := tracker.Failed(); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
